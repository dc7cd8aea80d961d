// Package types provides type definitions for structured data used throughout the resume-builder system.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Clearance is a security clearance level.
type Clearance string

// Supported clearance levels.
const (
	ClearanceNone        Clearance = "None"
	ClearancePublicTrust Clearance = "Public Trust"
	ClearanceSecret      Clearance = "Secret"
	ClearanceTS          Clearance = "TS"
	ClearanceTSSCI       Clearance = "TS/SCI"
)

// Clearances returns every accepted clearance level in display order.
func Clearances() []Clearance {
	return []Clearance{ClearanceNone, ClearancePublicTrust, ClearanceSecret, ClearanceTS, ClearanceTSSCI}
}

// IsValid reports whether c is one of the accepted clearance levels.
func (c Clearance) IsValid() bool {
	for _, v := range Clearances() {
		if c == v {
			return true
		}
	}
	return false
}

// Branch is a military service branch.
type Branch string

// Service branches. BranchUnknown is only produced by the MOS catalog when a
// row carries no recognisable branch.
const (
	BranchArmy       Branch = "Army"
	BranchNavy       Branch = "Navy"
	BranchMarines    Branch = "Marines"
	BranchAirForce   Branch = "Air Force"
	BranchSpaceForce Branch = "Space Force"
	BranchCoastGuard Branch = "Coast Guard"
	BranchUnknown    Branch = "Unknown"
)

// Branches returns the six service branches accepted on a profile.
func Branches() []Branch {
	return []Branch{BranchArmy, BranchNavy, BranchMarines, BranchAirForce, BranchSpaceForce, BranchCoastGuard}
}

// IsValid reports whether b is one of the six service branches.
func (b Branch) IsValid() bool {
	for _, v := range Branches() {
		if b == v {
			return true
		}
	}
	return false
}

// Contact holds the header information of a resume.
// Phone is stored in canonical "(XXX) XXX-XXXX" form; URLs always carry a scheme.
type Contact struct {
	FullName  string    `json:"full_name" validate:"required,min=2,max=100"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone" validate:"required"`
	City      string    `json:"city" validate:"required,max=100"`
	State     string    `json:"state" validate:"required,max=50"`
	LinkedIn  string    `json:"linkedin,omitempty"`
	Portfolio string    `json:"portfolio,omitempty"`
	Clearance Clearance `json:"security_clearance"`
	Branch    Branch    `json:"branch,omitempty"`
}

// Location returns "City, State" with empty parts dropped.
func (c Contact) Location() string {
	parts := make([]string, 0, 2)
	if c.City != "" {
		parts = append(parts, c.City)
	}
	if c.State != "" {
		parts = append(parts, c.State)
	}
	return strings.Join(parts, ", ")
}

// WorkHistoryEntry is one position held by the candidate.
type WorkHistoryEntry struct {
	Title              string     `json:"title" validate:"required,min=2,max=200"`
	Organization       string     `json:"organization" validate:"required,min=2,max=200"`
	Location           string     `json:"location,omitempty" validate:"max=100"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            *time.Time `json:"end_date,omitempty"`
	Current            bool       `json:"current"`
	Bullets            []string   `json:"bullets,omitempty" validate:"max=10"`
	MOSCodes           []string   `json:"mos_codes,omitempty"`
	ScopeMetrics       string     `json:"scope_metrics,omitempty" validate:"max=1000"`
	AIGeneratedBullets []string   `json:"ai_generated_bullets,omitempty"`
}

// Ongoing reports whether the position has no end.
func (w WorkHistoryEntry) Ongoing() bool {
	return w.Current || w.EndDate == nil
}

// DisplayBullets returns the generated bullets when present, the authored ones otherwise.
func (w WorkHistoryEntry) DisplayBullets() []string {
	if len(w.AIGeneratedBullets) > 0 {
		return w.AIGeneratedBullets
	}
	return w.Bullets
}

// DateRange formats the entry as "January 2020 – Present" or "January 2020 – March 2022".
func (w WorkHistoryEntry) DateRange() string {
	start := w.StartDate.Format("January 2006")
	if w.Ongoing() {
		return start + " – Present"
	}
	return fmt.Sprintf("%s – %s", start, w.EndDate.Format("January 2006"))
}

// EducationEntry is one degree or program.
type EducationEntry struct {
	Institution     string   `json:"institution" validate:"required,min=2,max=200"`
	Degree          string   `json:"degree" validate:"required,min=2,max=200"`
	FieldOfStudy    string   `json:"field_of_study,omitempty" validate:"max=200"`
	Location        string   `json:"location,omitempty" validate:"max=100"`
	Overview        string   `json:"overview,omitempty" validate:"max=400"`
	Courses         []string `json:"courses,omitempty"`
	CoursesOverview string   `json:"courses_overview,omitempty" validate:"max=400"`
	GraduationYear  *int     `json:"graduation_year,omitempty" validate:"omitempty,min=1950,max=2050"`
	InProgress      bool     `json:"in_progress"`
	GPA             *float64 `json:"gpa,omitempty" validate:"omitempty,gte=0,lte=4"`
	Honors          []string `json:"honors,omitempty"`
}

// CertificationEntry is one professional certification.
type CertificationEntry struct {
	Name         string `json:"name" validate:"required,min=2,max=200"`
	Issuer       string `json:"issuer" validate:"required,min=2,max=200"`
	Year         *int   `json:"year,omitempty" validate:"omitempty,min=1950,max=2050"`
	CredentialID string `json:"credential_id,omitempty" validate:"max=100"`
}

// AdditionalInfo collects the optional trailing sections of a resume.
type AdditionalInfo struct {
	Awards              []string         `json:"awards,omitempty"`
	Volunteer           []VolunteerEntry `json:"volunteer,omitempty"`
	VeteranExperience   []string         `json:"veteran_experience,omitempty"`
	Languages           []string         `json:"languages,omitempty"`
	ClearanceNote       string           `json:"clearance_note,omitempty" validate:"max=200"`
	ReferencesAvailable bool             `json:"references_available"`
}

// DocumentPreferences controls template selection and generation density.
type DocumentPreferences struct {
	Template      string `json:"template"`
	BulletDensity int    `json:"bullet_density" validate:"min=2,max=6"`
}

// DefaultPreferences returns the preferences used when a profile carries none.
func DefaultPreferences() DocumentPreferences {
	return DocumentPreferences{Template: "classic", BulletDensity: 4}
}

// ResumeProfile is the aggregate root for one candidate's resume content.
type ResumeProfile struct {
	Contact             Contact              `json:"contact"`
	MOS                 *MOSEntry            `json:"mos,omitempty"`
	TargetRoles         []string             `json:"target_roles" validate:"required,min=1,dive,required"`
	Summary             string               `json:"summary,omitempty" validate:"max=1000"`
	CoreSkills          []string             `json:"core_skills,omitempty"`
	ToolsTechnologies   []string             `json:"tools_technologies,omitempty"`
	TargetKeywords      []string             `json:"target_keywords,omitempty"`
	MOSTranslatedSkills []string             `json:"mos_translated_skills,omitempty"`
	WorkHistory         []WorkHistoryEntry   `json:"work_history,omitempty" validate:"dive"`
	Education           []EducationEntry     `json:"education,omitempty" validate:"dive"`
	Certifications      []CertificationEntry `json:"certifications,omitempty" validate:"dive"`
	AdditionalInfo      *AdditionalInfo      `json:"additional_info,omitempty"`
	Preferences         DocumentPreferences  `json:"preferences"`
}

// PrimaryRole returns the first target role, or "Professional" when none is set.
func (p *ResumeProfile) PrimaryRole() string {
	if len(p.TargetRoles) == 0 || p.TargetRoles[0] == "" {
		return "Professional"
	}
	return p.TargetRoles[0]
}

// ServiceBranch returns the contact branch, falling back to the MOS branch.
func (p *ResumeProfile) ServiceBranch() Branch {
	if p.Contact.Branch != "" {
		return p.Contact.Branch
	}
	if p.MOS != nil && p.MOS.Branch != BranchUnknown {
		return p.MOS.Branch
	}
	return ""
}

// MergedSkills returns MOS-translated skills, core skills, tools, target keywords
// and MOS civilian skills in that order with exact duplicates removed.
func (p *ResumeProfile) MergedSkills() []string {
	sources := [][]string{p.MOSTranslatedSkills, p.CoreSkills, p.ToolsTechnologies, p.TargetKeywords}
	if p.MOS != nil {
		sources = append(sources, p.MOS.CivilianSkills)
	}

	seen := make(map[string]bool)
	var merged []string
	for _, src := range sources {
		for _, s := range src {
			s = strings.TrimSpace(s)
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			merged = append(merged, s)
		}
	}
	return merged
}

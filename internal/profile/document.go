package profile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// Document is the JSON exchange format for a profile. It is what import reads
// and export writes; dates are ISO-8601 strings and several fields accept
// more than one shape.
type Document struct {
	Contact             ContactInput               `json:"contact"`
	MOSCodes            []types.MOSEntry           `json:"mos_codes,omitempty"`
	TargetRole          StringList                 `json:"target_role,omitempty"`
	Summary             string                     `json:"summary,omitempty"`
	Experience          []ExperienceInput          `json:"experience,omitempty"`
	Education           []EducationInput           `json:"education,omitempty"`
	Skills              []SkillInput               `json:"skills,omitempty"`
	ToolsTechnologies   []string                   `json:"tools_technologies,omitempty"`
	TargetKeywords      []string                   `json:"target_keywords,omitempty"`
	MOSTranslatedSkills []string                   `json:"mos_translated_skills,omitempty"`
	Certifications      []CertificationInput       `json:"certifications,omitempty"`
	AdditionalInfo      *AdditionalInfoInput       `json:"additional_info,omitempty"`
	Preferences         *types.DocumentPreferences `json:"preferences,omitempty"`
}

// ContactInput is the raw contact block.
type ContactInput struct {
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	City              string `json:"city"`
	State             string `json:"state"`
	LinkedIn          string `json:"linkedin,omitempty"`
	Portfolio         string `json:"portfolio,omitempty"`
	SecurityClearance string `json:"security_clearance,omitempty"`
	Branch            string `json:"branch,omitempty"`
}

// ExperienceInput is one raw work-history entry. Title falls back to JobTitle
// and Organization to Employer.
type ExperienceInput struct {
	Title              string   `json:"title,omitempty"`
	JobTitle           string   `json:"job_title,omitempty"`
	Organization       string   `json:"organization,omitempty"`
	Employer           string   `json:"employer,omitempty"`
	Location           string   `json:"location,omitempty"`
	StartDate          string   `json:"start_date"`
	EndDate            string   `json:"end_date,omitempty"`
	Current            bool     `json:"current,omitempty"`
	Bullets            []string `json:"bullets,omitempty"`
	MOSCodes           []string `json:"mos_codes,omitempty"`
	ScopeMetrics       string   `json:"scope_metrics,omitempty"`
	AIGeneratedBullets []string `json:"ai_generated_bullets,omitempty"`
}

// EducationInput is one raw education entry. GPA may be a number or a string.
type EducationInput struct {
	Institution     string   `json:"institution"`
	Degree          string   `json:"degree"`
	FieldOfStudy    string   `json:"field_of_study,omitempty"`
	Location        string   `json:"location,omitempty"`
	Overview        string   `json:"overview,omitempty"`
	Courses         []string `json:"courses,omitempty"`
	CoursesOverview string   `json:"courses_overview,omitempty"`
	GraduationDate  string   `json:"graduation_date,omitempty"`
	GraduationYear  *int     `json:"graduation_year,omitempty"`
	InProgress      bool     `json:"in_progress,omitempty"`
	GPA             any      `json:"gpa,omitempty"`
	Honors          []string `json:"honors,omitempty"`
}

// CertificationInput is one raw certification.
type CertificationInput struct {
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	IssueDate    string `json:"issue_date,omitempty"`
	Year         *int   `json:"year,omitempty"`
	CredentialID string `json:"credential_id,omitempty"`
}

// AdditionalInfoInput is the raw additional-info block. ReferencesAvailable
// defaults to true when absent.
type AdditionalInfoInput struct {
	Awards              []string               `json:"awards,omitempty"`
	Volunteer           []types.VolunteerEntry `json:"volunteer,omitempty"`
	VeteranExperience   []string               `json:"veteran_experience,omitempty"`
	Languages           []string               `json:"languages,omitempty"`
	ClearanceNote       string                 `json:"clearance_note,omitempty"`
	ReferencesAvailable *bool                  `json:"references_available,omitempty"`
}

// StringList accepts either a single JSON string or an array of strings.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*s = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected a string or a list of strings: %w", err)
	}
	*s = many
	return nil
}

// SkillInput accepts either a plain string or an object with a name.
type SkillInput struct {
	Name string
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SkillInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.Name)
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("skill must be a string or an object with a name: %w", err)
	}
	s.Name = obj.Name
	return nil
}

// MarshalJSON writes skills as plain strings.
func (s SkillInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Name)
}

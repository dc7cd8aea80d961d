package profile

import (
	"encoding/json"

	"github.com/jonathan/resume-builder/internal/types"
)

const isoDate = "2006-01-02"

// Export converts a profile back into its exchange Document with ISO-8601 dates.
// Importing the result yields an equal profile.
func Export(p *types.ResumeProfile) *Document {
	doc := &Document{
		Contact: ContactInput{
			FullName:          p.Contact.FullName,
			Email:             p.Contact.Email,
			Phone:             p.Contact.Phone,
			City:              p.Contact.City,
			State:             p.Contact.State,
			LinkedIn:          p.Contact.LinkedIn,
			Portfolio:         p.Contact.Portfolio,
			SecurityClearance: string(p.Contact.Clearance),
			Branch:            string(p.Contact.Branch),
		},
		TargetRole:          StringList(p.TargetRoles),
		Summary:             p.Summary,
		ToolsTechnologies:   p.ToolsTechnologies,
		TargetKeywords:      p.TargetKeywords,
		MOSTranslatedSkills: p.MOSTranslatedSkills,
	}

	if p.MOS != nil {
		doc.MOSCodes = []types.MOSEntry{*p.MOS}
	}
	for _, s := range p.CoreSkills {
		doc.Skills = append(doc.Skills, SkillInput{Name: s})
	}

	for _, w := range p.WorkHistory {
		in := ExperienceInput{
			Title:              w.Title,
			Organization:       w.Organization,
			Location:           w.Location,
			Current:            w.Current,
			Bullets:            w.Bullets,
			MOSCodes:           w.MOSCodes,
			ScopeMetrics:       w.ScopeMetrics,
			AIGeneratedBullets: w.AIGeneratedBullets,
		}
		if !w.StartDate.IsZero() {
			in.StartDate = w.StartDate.Format(isoDate)
		}
		if w.EndDate != nil {
			in.EndDate = w.EndDate.Format(isoDate)
		}
		doc.Experience = append(doc.Experience, in)
	}

	for _, e := range p.Education {
		in := EducationInput{
			Institution:     e.Institution,
			Degree:          e.Degree,
			FieldOfStudy:    e.FieldOfStudy,
			Location:        e.Location,
			Overview:        e.Overview,
			Courses:         e.Courses,
			CoursesOverview: e.CoursesOverview,
			GraduationYear:  e.GraduationYear,
			InProgress:      e.InProgress,
			Honors:          e.Honors,
		}
		if e.GPA != nil {
			in.GPA = *e.GPA
		}
		doc.Education = append(doc.Education, in)
	}

	for _, c := range p.Certifications {
		doc.Certifications = append(doc.Certifications, CertificationInput{
			Name:         c.Name,
			Issuer:       c.Issuer,
			Year:         c.Year,
			CredentialID: c.CredentialID,
		})
	}

	if p.AdditionalInfo != nil {
		refs := p.AdditionalInfo.ReferencesAvailable
		doc.AdditionalInfo = &AdditionalInfoInput{
			Awards:              p.AdditionalInfo.Awards,
			Volunteer:           p.AdditionalInfo.Volunteer,
			VeteranExperience:   p.AdditionalInfo.VeteranExperience,
			Languages:           p.AdditionalInfo.Languages,
			ClearanceNote:       p.AdditionalInfo.ClearanceNote,
			ReferencesAvailable: &refs,
		}
	}

	prefs := p.Preferences
	doc.Preferences = &prefs
	return doc
}

// Marshal exports a profile as indented JSON.
func Marshal(p *types.ResumeProfile) ([]byte, error) {
	data, err := json.MarshalIndent(Export(p), "", "  ")
	if err != nil {
		return nil, &ExportError{Message: "failed to marshal profile", Cause: err}
	}
	return data, nil
}

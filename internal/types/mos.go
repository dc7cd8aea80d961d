package types

import "strings"

// MOSEntry is one Military Occupational Specialty row from the reference dataset,
// or the MOS attached to a profile.
type MOSEntry struct {
	Code               string   `json:"code"`
	Branch             Branch   `json:"branch"`
	BranchCode         string   `json:"branch_code,omitempty"`
	PersonnelCategory  string   `json:"personnel_category,omitempty"`
	Title              string   `json:"title,omitempty"`
	CivilianSkills     []string `json:"civilian_skills,omitempty"`
	CivilianEquivalent string   `json:"civilian_equivalent,omitempty"`
	SOCCode            string   `json:"soc_code,omitempty"`
	SOCCodeTitle       string   `json:"soc_code_title,omitempty"`
	SOCTitle           string   `json:"soc_title,omitempty"`
	ONETCode           string   `json:"onet_code,omitempty"`
	ONETOccupation     string   `json:"onet_occupation,omitempty"`
	LookupKey          string   `json:"csv_lookup_key,omitempty"`
	Keywords           []string `json:"keywords,omitempty"`
	YearsOfService     *float64 `json:"years_of_service,omitempty" validate:"omitempty,gte=0,lte=50"`
}

// Key returns the composite "branch|code" key, preferring the dataset's own key.
func (m *MOSEntry) Key() string {
	if m.LookupKey != "" {
		return m.LookupKey
	}
	return string(m.Branch) + "|" + strings.ToUpper(m.Code)
}

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// VolunteerEntry is either a free-text line or a structured volunteer record.
// A plain entry has only Text set.
type VolunteerEntry struct {
	Text         string `json:"-"`
	Organization string `json:"organization,omitempty"`
	Role         string `json:"role,omitempty"`
	Description  string `json:"description,omitempty"`
	DateRange    string `json:"date_range,omitempty"`
	Location     string `json:"location,omitempty"`
}

// IsPlain reports whether the entry is a free-text line.
func (v VolunteerEntry) IsPlain() bool {
	return v.Text != "" && v.Organization == "" && v.Role == "" && v.Description == ""
}

// IsEmpty reports whether the entry has nothing to show.
func (v VolunteerEntry) IsEmpty() bool {
	return strings.TrimSpace(v.Text) == "" &&
		strings.TrimSpace(v.Organization) == "" &&
		strings.TrimSpace(v.Role) == "" &&
		strings.TrimSpace(v.Description) == ""
}

type volunteerRecord struct {
	Organization string `json:"organization,omitempty"`
	Role         string `json:"role,omitempty"`
	Description  string `json:"description,omitempty"`
	DateRange    string `json:"date_range,omitempty"`
	Location     string `json:"location,omitempty"`
}

// UnmarshalJSON accepts either a JSON string or an object.
func (v *VolunteerEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = VolunteerEntry{Text: s}
		return nil
	}

	var rec volunteerRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("volunteer entry must be a string or an object: %w", err)
	}
	*v = VolunteerEntry{
		Organization: rec.Organization,
		Role:         rec.Role,
		Description:  rec.Description,
		DateRange:    rec.DateRange,
		Location:     rec.Location,
	}
	return nil
}

// MarshalJSON writes plain entries back as strings.
func (v VolunteerEntry) MarshalJSON() ([]byte, error) {
	if v.IsPlain() {
		return json.Marshal(v.Text)
	}
	return json.Marshal(volunteerRecord{
		Organization: v.Organization,
		Role:         v.Role,
		Description:  v.Description,
		DateRange:    v.DateRange,
		Location:     v.Location,
	})
}

//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestClearance_IsValid(t *testing.T) {
	for _, c := range Clearances() {
		assert.True(t, c.IsValid(), c)
	}
	assert.False(t, Clearance("Top Secret").IsValid())
	assert.False(t, Clearance("").IsValid())
}

func TestBranch_IsValid(t *testing.T) {
	assert.True(t, BranchSpaceForce.IsValid())
	assert.False(t, BranchUnknown.IsValid())
	assert.False(t, Branch("army").IsValid())
}

func TestContact_Location(t *testing.T) {
	assert.Equal(t, "Austin, TX", Contact{City: "Austin", State: "TX"}.Location())
	assert.Equal(t, "TX", Contact{State: "TX"}.Location())
	assert.Equal(t, "", Contact{}.Location())
}

func TestWorkHistoryEntry_DateRange(t *testing.T) {
	end := date(2022, time.March)

	tests := []struct {
		name  string
		entry WorkHistoryEntry
		want  string
	}{
		{
			name:  "closed range",
			entry: WorkHistoryEntry{StartDate: date(2020, time.January), EndDate: &end},
			want:  "January 2020 – March 2022",
		},
		{
			name:  "no end date is ongoing",
			entry: WorkHistoryEntry{StartDate: date(2020, time.January)},
			want:  "January 2020 – Present",
		},
		{
			name:  "current flag wins over end date",
			entry: WorkHistoryEntry{StartDate: date(2019, time.June), EndDate: &end, Current: true},
			want:  "June 2019 – Present",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.DateRange())
		})
	}
}

func TestWorkHistoryEntry_DisplayBullets(t *testing.T) {
	entry := WorkHistoryEntry{Bullets: []string{"authored"}}
	assert.Equal(t, []string{"authored"}, entry.DisplayBullets())

	entry.AIGeneratedBullets = []string{"generated"}
	assert.Equal(t, []string{"generated"}, entry.DisplayBullets())
}

func TestResumeProfile_MergedSkills(t *testing.T) {
	p := &ResumeProfile{
		MOSTranslatedSkills: []string{"Leadership", "Logistics"},
		CoreSkills:          []string{"Logistics", "Planning"},
		ToolsTechnologies:   []string{"Excel"},
		TargetKeywords:      []string{"Planning", "leadership"},
		MOS:                 &MOSEntry{CivilianSkills: []string{"Security", "Excel"}},
	}

	assert.Equal(t,
		[]string{"Leadership", "Logistics", "Planning", "Excel", "leadership", "Security"},
		p.MergedSkills())
}

func TestResumeProfile_PrimaryRoleAndBranch(t *testing.T) {
	p := &ResumeProfile{}
	assert.Equal(t, "Professional", p.PrimaryRole())
	assert.Equal(t, Branch(""), p.ServiceBranch())

	p.TargetRoles = []string{"Operations Manager"}
	p.MOS = &MOSEntry{Code: "11B", Branch: BranchArmy}
	assert.Equal(t, "Operations Manager", p.PrimaryRole())
	assert.Equal(t, BranchArmy, p.ServiceBranch())

	p.Contact.Branch = BranchNavy
	assert.Equal(t, BranchNavy, p.ServiceBranch())
}

func TestResumeProfile_ValidatorTags(t *testing.T) {
	validate := validator.New()
	gpa := 4.5

	p := ResumeProfile{
		Contact: Contact{
			FullName: "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "(963) 258-7410",
			City:     "Austin",
			State:    "TX",
		},
		TargetRoles: []string{"Analyst"},
		Education:   []EducationEntry{{Institution: "UT", Degree: "BS", GPA: &gpa}},
		Preferences: DefaultPreferences(),
	}

	err := validate.Struct(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GPA")

	gpa = 3.5
	assert.NoError(t, validate.Struct(p))
}

func TestVolunteerEntry_JSON(t *testing.T) {
	input := `["Food bank driver", {"organization": "Habitat", "role": "Builder", "description": "Framed houses", "date_range": "2021 - Present"}]`

	var entries []VolunteerEntry
	require.NoError(t, json.Unmarshal([]byte(input), &entries))
	require.Len(t, entries, 2)

	assert.True(t, entries[0].IsPlain())
	assert.Equal(t, "Food bank driver", entries[0].Text)

	assert.False(t, entries[1].IsPlain())
	assert.Equal(t, "Habitat", entries[1].Organization)
	assert.Equal(t, "2021 - Present", entries[1].DateRange)

	out, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Food bank driver"`)
	assert.Contains(t, string(out), `"organization":"Habitat"`)
}

func TestVolunteerEntry_RejectsNumbers(t *testing.T) {
	var v VolunteerEntry
	err := json.Unmarshal([]byte(`42`), &v)
	assert.Error(t, err)
}

func TestMOSEntry_Key(t *testing.T) {
	m := &MOSEntry{Code: "11b", Branch: BranchArmy}
	assert.Equal(t, "Army|11B", m.Key())

	m.LookupKey = "A|11B"
	assert.Equal(t, "A|11B", m.Key())
}

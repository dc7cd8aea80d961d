package rendering

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/docx"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func fullProfile() *types.ResumeProfile {
	return &types.ResumeProfile{
		Contact: types.Contact{
			FullName:  "Marcus Reed",
			Email:     "marcus.reed@example.com",
			Phone:     "(963) 258-7410",
			City:      "Norfolk",
			State:     "VA",
			LinkedIn:  "https://linkedin.com/in/marcusreed",
			Clearance: types.ClearanceSecret,
		},
		MOS: &types.MOSEntry{
			Code:           "IT",
			Branch:         types.BranchNavy,
			Title:          "Information Systems Technician",
			CivilianSkills: []string{"Network Administration", "Help Desk Support"},
		},
		TargetRoles:         []string{"Network Administrator"},
		Summary:             "Navy IT with six years running shipboard networks.",
		CoreSkills:          []string{"Network Administration", "Incident Response"},
		ToolsTechnologies:   []string{"Cisco IOS", "Active Directory"},
		MOSTranslatedSkills: []string{"Systems Administration"},
		WorkHistory: []types.WorkHistoryEntry{
			{
				Title:        "Information Systems Technician",
				Organization: "U.S. Navy",
				Location:     "Norfolk, VA",
				StartDate:    date(2017, time.June),
				EndDate:      timePtr(date(2023, time.March)),
				Bullets:      []string{"Administered a 400-user network", "Cut outage time by 30%"},
			},
			{
				Title:              "Network Technician",
				Organization:       "Tidewater IT",
				Location:           "Tidewater IT",
				StartDate:          date(2023, time.May),
				Current:            true,
				Bullets:            []string{"Original bullet"},
				AIGeneratedBullets: []string{"Generated bullet"},
			},
		},
		Education: []types.EducationEntry{
			{
				Institution:    "Old Dominion University",
				Degree:         "B.S. Information Technology",
				Location:       "Norfolk, VA",
				Overview:       "Focus on network security",
				Courses:        []string{"Routing", "Security"},
				GraduationYear: intPtr(2022),
				GPA:            floatPtr(3.4),
				Honors:         []string{"Cum Laude"},
			},
			{
				Institution: "Tidewater Community College",
				Degree:      "A.S. Cybersecurity",
				InProgress:  true,
			},
		},
		Certifications: []types.CertificationEntry{
			{Name: "CompTIA Security+", Issuer: "CompTIA"},
			{Name: "CCNA", Issuer: "Cisco"},
			{Name: "ITIL Foundation", Issuer: "Axelos"},
		},
		AdditionalInfo: &types.AdditionalInfo{
			Awards: []string{"Navy Achievement Medal"},
			Volunteer: []types.VolunteerEntry{
				{Text: "Habitat for Humanity builder"},
				{Organization: "VFW Post 392", Description: "Mentored transitioning sailors", DateRange: "2021 – Present"},
			},
		},
		Preferences: types.DefaultPreferences(),
	}
}

func classic(t *testing.T) Template {
	t.Helper()
	tmpl, err := LookupTemplate("")
	require.NoError(t, err)
	return tmpl
}

func renderText(t *testing.T, p *types.ResumeProfile) string {
	t.Helper()
	data, err := Render(p, classic(t))
	require.NoError(t, err)
	text, err := docx.ExtractText(data)
	require.NoError(t, err)
	return text
}

func tables(doc *docx.Document) []*docx.Table {
	var out []*docx.Table
	for _, b := range doc.Blocks() {
		if tbl, ok := b.(*docx.Table); ok {
			out = append(out, tbl)
		}
	}
	return out
}

func TestLayout_SectionOrder(t *testing.T) {
	text := renderText(t, fullProfile())

	order := []string{
		"MARCUS REED",
		"Norfolk, VA | (963) 258-7410 | marcus.reed@example.com | https://linkedin.com/in/marcusreed | Clearance: Secret",
		"UNITED STATES NAVY - INFORMATION SYSTEMS TECHNICIAN",
		HeadingSummary,
		HeadingExperience,
		HeadingEducationCerts,
		HeadingSkills,
		HeadingAwards,
		HeadingVolunteer,
	}
	last := -1
	for _, s := range order {
		idx := strings.Index(text, s)
		require.GreaterOrEqual(t, idx, 0, "missing %q in:\n%s", s, text)
		assert.Greater(t, idx, last, "%q out of order", s)
		last = idx
	}
}

func TestLayout_ExperienceTable(t *testing.T) {
	doc, err := Layout(fullProfile(), classic(t))
	require.NoError(t, err)

	tbls := tables(doc)
	require.GreaterOrEqual(t, len(tbls), 2)

	exp := tbls[0]
	assert.Len(t, exp.Rows, 2, "one row per work entry in a single table")
	assert.Equal(t, []docx.Twips{7668, 2556}, exp.ColumnWidths)
	require.NotNil(t, exp.Borders.InsideH)
	require.NotNil(t, exp.Borders.InsideV)
	require.NotNil(t, exp.Borders.Top)

	text := renderText(t, fullProfile())
	assert.Contains(t, text, "Information Systems Technician, U.S. Navy, Norfolk, VA\n")
	assert.Contains(t, text, "• Administered a 400-user network\n")
	assert.Contains(t, text, "June 2017 – March 2023\n")
	assert.Contains(t, text, "May 2023 – Present\n")

	// Location equal to the organization is not repeated.
	assert.Contains(t, text, "Network Technician, Tidewater IT\n")
	// Generated bullets replace authored ones.
	assert.Contains(t, text, "• Generated bullet")
	assert.NotContains(t, text, "Original bullet")
}

func TestLayout_EducationAndCertifications(t *testing.T) {
	doc, err := Layout(fullProfile(), classic(t))
	require.NoError(t, err)

	edu := tables(doc)[1]
	// Two education rows plus two certification rows for three certifications.
	assert.Len(t, edu.Rows, 4)

	text := renderText(t, fullProfile())
	assert.Contains(t, text, "B.S. Information Technology\nOld Dominion University, Norfolk, VA\n")
	assert.Contains(t, text, "• Focus on network security\n")
	assert.Contains(t, text, "• Relevant Coursework: Routing, Security\n")
	assert.Contains(t, text, "• Cum Laude; GPA: 3.40\n")
	assert.Contains(t, text, "2022\n")
	assert.Contains(t, text, "In Progress\n")
	assert.Contains(t, text, "- CompTIA Security+: CompTIA\t- CCNA: Cisco\n")
	assert.Contains(t, text, "- ITIL Foundation: Axelos\t\n")

	certRow := edu.Rows[2]
	require.Len(t, certRow.Cells, 2)
	assert.Empty(t, certRow.Cells[1].Paragraphs[0].Runs, "right column of certification rows is blank")
	assert.Equal(t, docx.Inches(3.0), certRow.Cells[0].Paragraphs[0].TabStops[0].Position)
}

func TestLayout_SkillsMergedInPriorityOrder(t *testing.T) {
	text := renderText(t, fullProfile())
	assert.Contains(t, text,
		"Systems Administration, Network Administration, Incident Response, Cisco IOS, Active Directory, Help Desk Support\n")
}

func TestLayout_Volunteer(t *testing.T) {
	doc, err := Layout(fullProfile(), classic(t))
	require.NoError(t, err)

	tbls := tables(doc)
	vol := tbls[len(tbls)-1]
	assert.Nil(t, vol.Borders.Top)
	assert.NotNil(t, vol.Borders.InsideV)

	text := renderText(t, fullProfile())
	assert.Contains(t, text, "• Habitat for Humanity builder\n")
	assert.Contains(t, text, "Volunteer, VFW Post 392\n")
	assert.Contains(t, text, "• Mentored transitioning sailors\n")
	assert.Contains(t, text, "2021 – Present\n")
}

func TestLayout_BlankVolunteerEntriesOmitHeading(t *testing.T) {
	p := fullProfile()
	p.AdditionalInfo.Awards = nil
	p.AdditionalInfo.Volunteer = []types.VolunteerEntry{
		{Text: "   "},
		{Role: " ", Description: "\t"},
		{DateRange: "2020"},
	}

	text := renderText(t, p)
	assert.NotContains(t, text, HeadingVolunteer)
	assert.NotContains(t, text, HeadingAwards)

	p.AdditionalInfo.Volunteer = append(p.AdditionalInfo.Volunteer, types.VolunteerEntry{Text: "  Food bank driver "})
	text = renderText(t, p)
	assert.Contains(t, text, HeadingVolunteer+"\n• Food bank driver\n")
}

func TestLayout_MinimalProfileOmitsEmptySections(t *testing.T) {
	p := &types.ResumeProfile{
		Contact: types.Contact{
			FullName:  "Dana Cruz",
			Email:     "dana@example.com",
			Phone:     "(555) 123-4567",
			City:      "Austin",
			State:     "TX",
			Clearance: types.ClearanceNone,
		},
		TargetRoles: []string{"Analyst"},
		Summary:     "Analyst.",
		CoreSkills:  []string{"Excel"},
	}
	text := renderText(t, p)

	assert.Contains(t, text, "DANA CRUZ")
	assert.Contains(t, text, HeadingSummary)
	assert.Contains(t, text, HeadingSkills)
	assert.NotContains(t, text, "Clearance")
	assert.NotContains(t, text, "UNITED STATES")
	for _, h := range []string{HeadingExperience, HeadingEducationCerts, HeadingAwards, HeadingVolunteer} {
		assert.NotContains(t, text, h)
	}

	doc, err := Layout(p, classic(t))
	require.NoError(t, err)
	assert.Empty(t, tables(doc))
}

func TestLayout_Deterministic(t *testing.T) {
	a, err := Render(fullProfile(), classic(t))
	require.NoError(t, err)
	b, err := Render(fullProfile(), classic(t))
	require.NoError(t, err)

	textA, err := docx.ExtractText(a)
	require.NoError(t, err)
	textB, err := docx.ExtractText(b)
	require.NoError(t, err)
	assert.Equal(t, textA, textB)
}

func TestLayout_Errors(t *testing.T) {
	_, err := Layout(nil, classic(t))
	var renderErr *RenderError
	assert.True(t, errors.As(err, &renderErr))

	_, err = Layout(&types.ResumeProfile{}, classic(t))
	assert.True(t, errors.As(err, &renderErr))

	assert.Contains(t, err.Error(), "header: profile has no full name")

	_, err = Layout(fullProfile(), Template{})
	var tmplErr *TemplateError
	require.True(t, errors.As(err, &tmplErr))
	assert.Equal(t, "template is not set", tmplErr.Reason())
}

func TestTemplateError_Reason(t *testing.T) {
	assert.Equal(t, `unknown template "x"`, (&TemplateError{Name: "x"}).Reason())
	assert.Equal(t, `template error: unknown template "x" (available: a, b)`,
		(&TemplateError{Name: "x", Available: []string{"a", "b"}}).Error())
}

func TestContactLine_OmitsEmptyParts(t *testing.T) {
	c := types.Contact{Phone: "(555) 123-4567", Email: "a@b.co", State: "TX"}
	assert.Equal(t, "TX | (555) 123-4567 | a@b.co", ContactLine(c))
	assert.Equal(t, "", ContactLine(types.Contact{Clearance: types.ClearanceNone}))
}

func TestBranchLine(t *testing.T) {
	tests := []struct {
		name    string
		profile types.ResumeProfile
		want    string
	}{
		{
			name:    "contact branch with MOS title",
			profile: types.ResumeProfile{Contact: types.Contact{Branch: types.BranchArmy}, MOS: &types.MOSEntry{Title: "Infantryman"}},
			want:    "UNITED STATES ARMY - INFANTRYMAN",
		},
		{
			name:    "marines use the service name",
			profile: types.ResumeProfile{Contact: types.Contact{Branch: types.BranchMarines}},
			want:    "UNITED STATES MARINE CORPS VETERAN",
		},
		{
			name:    "branch from MOS",
			profile: types.ResumeProfile{MOS: &types.MOSEntry{Branch: types.BranchCoastGuard}},
			want:    "UNITED STATES COAST GUARD VETERAN",
		},
		{
			name:    "unknown branch",
			profile: types.ResumeProfile{MOS: &types.MOSEntry{Branch: types.BranchUnknown, Title: "Clerk"}},
			want:    "",
		},
		{
			name:    "no branch",
			profile: types.ResumeProfile{},
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BranchLine(&tt.profile))
		})
	}
}

func TestLookupTemplate(t *testing.T) {
	for _, name := range []string{"", "default", "Classic", " classic "} {
		tmpl, err := LookupTemplate(name)
		require.NoError(t, err, name)
		assert.Equal(t, "classic", tmpl.Name)
	}

	compact, err := LookupTemplate("compact")
	require.NoError(t, err)
	assert.Less(t, compact.BodySize, 10.0)

	_, err = LookupTemplate("fancy")
	var tmplErr *TemplateError
	require.True(t, errors.As(err, &tmplErr))
	assert.Equal(t, "fancy", tmplErr.Name)
	assert.Contains(t, err.Error(), "classic, compact")

	assert.Equal(t, []string{"classic", "compact"}, Templates())
}

func TestLayout_CompactTemplateColumns(t *testing.T) {
	tmpl, err := LookupTemplate("compact")
	require.NoError(t, err)

	doc, err := Layout(fullProfile(), tmpl)
	require.NoError(t, err)
	exp := tables(doc)[0]
	assert.Equal(t, tmpl.Page.UsableWidth(), exp.Width())
}

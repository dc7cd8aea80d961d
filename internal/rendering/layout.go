package rendering

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/docx"
	"github.com/jonathan/resume-builder/internal/types"
)

// Section headings in the order they appear.
const (
	HeadingSummary        = "SUMMARY"
	HeadingExperience     = "PROFESSIONAL EXPERIENCE"
	HeadingEducationCerts = "EDUCATION & CERTIFICATIONS"
	HeadingSkills         = "SKILLS"
	HeadingAwards         = "AWARDS & HONORS"
	HeadingVolunteer      = "VOLUNTEER EXPERIENCE"
)

var branchNames = map[types.Branch]string{
	types.BranchArmy:       "UNITED STATES ARMY",
	types.BranchNavy:       "UNITED STATES NAVY",
	types.BranchMarines:    "UNITED STATES MARINE CORPS",
	types.BranchAirForce:   "UNITED STATES AIR FORCE",
	types.BranchSpaceForce: "UNITED STATES SPACE FORCE",
	types.BranchCoastGuard: "UNITED STATES COAST GUARD",
}

// Layout builds the document model for a validated profile. The result
// depends only on the profile and template, so equal inputs give equal documents.
func Layout(p *types.ResumeProfile, tmpl Template) (*docx.Document, error) {
	if p == nil {
		return nil, &RenderError{Section: "profile", Message: "profile is nil"}
	}
	if strings.TrimSpace(p.Contact.FullName) == "" {
		return nil, &RenderError{Section: "header", Message: "profile has no full name"}
	}
	if tmpl.Name == "" {
		return nil, &TemplateError{}
	}

	l := &layout{
		tmpl: tmpl,
		doc:  docx.New(tmpl.Page, tmpl.Font, tmpl.BodySize),
		cols: tmpl.columns(),
	}
	l.doc.Title = "Resume - " + p.Contact.FullName
	l.doc.Author = p.Contact.FullName

	l.header(p.Contact)
	l.branch(p)
	if s := strings.TrimSpace(p.Summary); s != "" {
		l.summary(s)
	}
	if len(p.WorkHistory) > 0 {
		l.experience(p.WorkHistory)
	}
	if len(p.Education) > 0 || len(p.Certifications) > 0 {
		l.educationAndCertifications(p.Education, p.Certifications)
	}
	if skills := p.MergedSkills(); len(skills) > 0 {
		l.skills(skills)
	}
	if info := p.AdditionalInfo; info != nil {
		if awards := nonEmpty(info.Awards); len(awards) > 0 {
			l.awards(awards)
		}
		if volunteer := visibleVolunteer(info.Volunteer); len(volunteer) > 0 {
			l.volunteer(volunteer)
		}
	}
	return l.doc, nil
}

// Render lays out the profile and packages it as .docx bytes.
func Render(p *types.ResumeProfile, tmpl Template) ([]byte, error) {
	doc, err := Layout(p, tmpl)
	if err != nil {
		return nil, err
	}
	data, err := doc.Bytes()
	if err != nil {
		return nil, &RenderError{Section: "package", Message: "failed to package document", Cause: err}
	}
	return data, nil
}

type layout struct {
	tmpl Template
	doc  *docx.Document
	cols []docx.Twips
}

func (l *layout) run(text string, size float64) docx.Run {
	return docx.Run{Text: text, Size: size, Font: l.tmpl.Font}
}

func (l *layout) bold(text string, size float64) docx.Run {
	r := l.run(text, size)
	r.Bold = true
	return r
}

func (l *layout) italic(text string, size float64) docx.Run {
	r := l.run(text, size)
	r.Italic = true
	return r
}

// bullet is a "• text" paragraph whose wrapped lines align under the text.
func (l *layout) bullet(text string, indent float64, spaceAfter float64) docx.Paragraph {
	return docx.Paragraph{
		Runs:          []docx.Run{l.run("• "+text, l.tmpl.BodySize)},
		IndentLeft:    docx.Inches(indent),
		IndentHanging: docx.Inches(indent),
		SpaceAfter:    spaceAfter,
	}
}

func (l *layout) spacer(after float64) docx.Paragraph {
	return docx.Paragraph{SpaceAfter: after}
}

func (l *layout) twoColumnTable() *docx.Table {
	return &docx.Table{
		ColumnWidths: l.cols,
		Borders:      docx.AllBorders(docx.SingleBorder()),
	}
}

func (l *layout) header(c types.Contact) {
	l.doc.Add(docx.Paragraph{
		Align:      docx.AlignCenter,
		SpaceAfter: 2,
		Runs:       []docx.Run{l.bold(strings.ToUpper(c.FullName), l.tmpl.NameSize)},
	})

	if line := ContactLine(c); line != "" {
		l.doc.Add(docx.Paragraph{
			Align:      docx.AlignCenter,
			SpaceAfter: 2,
			Runs:       []docx.Run{l.run(line, l.tmpl.BodySize)},
		})
	}
}

// ContactLine joins location, phone, email, LinkedIn and clearance with " | ",
// leaving out empty parts. A clearance of None is not shown.
func ContactLine(c types.Contact) string {
	parts := []string{c.Location(), c.Phone, c.Email, c.LinkedIn}
	if c.Clearance != "" && c.Clearance != types.ClearanceNone {
		parts = append(parts, "Clearance: "+string(c.Clearance))
	}
	return strings.Join(nonEmpty(parts), " | ")
}

// BranchLine returns "UNITED STATES <BRANCH> - <MOS TITLE>", or
// "UNITED STATES <BRANCH> VETERAN" without a title. It is empty when the
// branch is unknown.
func BranchLine(p *types.ResumeProfile) string {
	branch := p.ServiceBranch()
	if branch == "" || branch == types.BranchUnknown {
		return ""
	}
	name, ok := branchNames[branch]
	if !ok {
		name = strings.ToUpper(string(branch))
	}
	if p.MOS != nil && strings.TrimSpace(p.MOS.Title) != "" {
		return name + " - " + strings.ToUpper(strings.TrimSpace(p.MOS.Title))
	}
	return name + " VETERAN"
}

func (l *layout) branch(p *types.ResumeProfile) {
	line := BranchLine(p)
	if line == "" {
		return
	}
	l.doc.Add(docx.Paragraph{
		Align:      docx.AlignCenter,
		SpaceAfter: 2,
		Runs:       []docx.Run{l.bold(line, l.tmpl.TitleSize)},
	})
}

// heading draws a full-width rule followed by the centered section title.
func (l *layout) heading(text string) {
	rule := docx.SingleBorder()
	l.doc.Add(
		docx.Paragraph{TopBorder: &rule},
		docx.Paragraph{
			Align:      docx.AlignCenter,
			SpaceAfter: 2,
			Runs:       []docx.Run{l.run(strings.ToUpper(text), l.tmpl.HeadingSize)},
		},
	)
}

func (l *layout) summary(text string) {
	l.heading(HeadingSummary)
	l.doc.Add(docx.Paragraph{
		Align:      docx.AlignJustify,
		SpaceAfter: 2,
		Runs:       []docx.Run{l.run(text, l.tmpl.BodySize)},
	})
}

func (l *layout) experience(entries []types.WorkHistoryEntry) {
	l.heading(HeadingExperience)

	tbl := l.twoColumnTable()
	for _, e := range entries {
		titleLine := []docx.Run{
			l.bold(e.Title, l.tmpl.TitleSize),
			l.run(", ", l.tmpl.BodySize),
			l.italic(e.Organization, l.tmpl.BodySize),
		}
		if e.Location != "" && e.Location != e.Organization {
			titleLine = append(titleLine, l.run(", ", l.tmpl.BodySize), l.italic(e.Location, l.tmpl.BodySize))
		}

		left := []docx.Paragraph{{Runs: titleLine}}
		for _, b := range nonEmpty(e.DisplayBullets()) {
			left = append(left, l.bullet(b, 0.15, 0))
		}

		right := []docx.Paragraph{{
			Align: docx.AlignRight,
			Runs:  []docx.Run{l.run(e.DateRange(), l.tmpl.BodySize)},
		}}
		tbl.AddRow(docx.Cell{Paragraphs: left}, docx.Cell{Paragraphs: right})
	}
	l.doc.Add(tbl, l.spacer(4))
}

func (l *layout) educationAndCertifications(education []types.EducationEntry, certs []types.CertificationEntry) {
	l.heading(HeadingEducationCerts)

	tbl := l.twoColumnTable()
	for _, e := range education {
		left := []docx.Paragraph{
			{Runs: []docx.Run{l.bold(e.Degree, l.tmpl.TitleSize)}},
			{SpaceAfter: 2, Runs: []docx.Run{l.italic(institutionLine(e), l.tmpl.BodySize)}},
		}
		if e.Overview != "" {
			left = append(left, l.bullet(e.Overview, 0.15, 0))
		}
		if courses := coursesLine(e); courses != "" {
			left = append(left, l.bullet(courses, 0.15, 0))
		}
		if honors := honorsLine(e); honors != "" {
			left = append(left, l.bullet(honors, 0.15, 0))
		}

		right := docx.Paragraph{Align: docx.AlignRight}
		if g := graduationLabel(e); g != "" {
			right.Runs = []docx.Run{l.run(g, l.tmpl.BodySize)}
		}
		tbl.AddRow(docx.Cell{Paragraphs: left}, docx.Cell{Paragraphs: []docx.Paragraph{right}})
	}

	for i := 0; i < len(certs); i += 2 {
		para := docx.Paragraph{
			TabStops:      []docx.TabStop{{Position: docx.Inches(3.0)}},
			IndentLeft:    docx.Inches(0.15),
			IndentHanging: docx.Inches(0.15),
			SpaceAfter:    2,
		}
		para.Runs = append(para.Runs, l.certRuns(certs[i])...)
		para.Runs = append(para.Runs, l.run("\t", l.tmpl.BodySize))
		if i+1 < len(certs) {
			para.Runs = append(para.Runs, l.certRuns(certs[i+1])...)
		}
		tbl.AddRow(
			docx.Cell{Paragraphs: []docx.Paragraph{para}},
			docx.Cell{Paragraphs: []docx.Paragraph{{SpaceAfter: 2}}},
		)
	}
	l.doc.Add(tbl, l.spacer(4))
}

func (l *layout) certRuns(c types.CertificationEntry) []docx.Run {
	return []docx.Run{
		l.run("- ", l.tmpl.BodySize),
		l.bold(c.Name, l.tmpl.BodySize),
		l.run(": ", l.tmpl.BodySize),
		l.run(c.Issuer, l.tmpl.BodySize),
	}
}

func institutionLine(e types.EducationEntry) string {
	if e.Location == "" {
		return e.Institution
	}
	return e.Institution + ", " + e.Location
}

func coursesLine(e types.EducationEntry) string {
	if e.CoursesOverview != "" {
		return e.CoursesOverview
	}
	if courses := nonEmpty(e.Courses); len(courses) > 0 {
		return "Relevant Coursework: " + strings.Join(courses, ", ")
	}
	return ""
}

func honorsLine(e types.EducationEntry) string {
	var parts []string
	if honors := nonEmpty(e.Honors); len(honors) > 0 {
		parts = append(parts, strings.Join(honors, ", "))
	}
	if e.GPA != nil && *e.GPA > 0 {
		parts = append(parts, fmt.Sprintf("GPA: %.2f", *e.GPA))
	}
	return strings.Join(parts, "; ")
}

func graduationLabel(e types.EducationEntry) string {
	switch {
	case e.InProgress:
		return "In Progress"
	case e.GraduationYear != nil:
		return strconv.Itoa(*e.GraduationYear)
	}
	return ""
}

func (l *layout) skills(skills []string) {
	l.heading(HeadingSkills)
	l.doc.Add(docx.Paragraph{
		Align:      docx.AlignJustify,
		SpaceAfter: 8,
		Runs:       []docx.Run{l.run(strings.Join(skills, ", "), l.tmpl.BodySize)},
	})
}

func (l *layout) awards(awards []string) {
	l.heading(HeadingAwards)
	for _, a := range awards {
		l.doc.Add(l.bullet(a, 0.25, 2))
	}
}

func (l *layout) volunteer(entries []types.VolunteerEntry) {
	l.heading(HeadingVolunteer)
	for _, v := range entries {
		if v.IsPlain() {
			l.doc.Add(l.bullet(strings.TrimSpace(v.Text), 0.25, 2))
			continue
		}
		l.volunteerRecord(v)
	}
}

// visibleVolunteer drops entries with no text, role, organization or
// description, so the heading is only written when something follows it.
func visibleVolunteer(entries []types.VolunteerEntry) []types.VolunteerEntry {
	out := make([]types.VolunteerEntry, 0, len(entries))
	for _, v := range entries {
		if !v.IsEmpty() {
			out = append(out, v)
		}
	}
	return out
}

// volunteerRecord is a one-row table with only the rule between role and dates.
func (l *layout) volunteerRecord(v types.VolunteerEntry) {
	role := v.Role
	if role == "" {
		role = "Volunteer"
	}
	runs := []docx.Run{l.bold(role, l.tmpl.TitleSize)}
	if v.Organization != "" {
		runs = append(runs, l.run(", ", l.tmpl.BodySize), l.italic(v.Organization, l.tmpl.BodySize))
	}
	if v.Location != "" && v.Location != v.Organization {
		runs = append(runs, l.run(", ", l.tmpl.BodySize), l.italic(v.Location, l.tmpl.BodySize))
	}

	left := []docx.Paragraph{{Runs: runs}}
	if v.Description != "" {
		left = append(left, l.bullet(v.Description, 0.15, 0))
	}
	right := docx.Paragraph{Align: docx.AlignRight}
	if v.DateRange != "" {
		right.Runs = []docx.Run{l.run(v.DateRange, l.tmpl.BodySize)}
	}

	divider := docx.SingleBorder()
	tbl := &docx.Table{ColumnWidths: l.cols, Borders: docx.TableBorders{InsideV: &divider}}
	tbl.AddRow(docx.Cell{Paragraphs: left}, docx.Cell{Paragraphs: []docx.Paragraph{right}})
	l.doc.Add(tbl, l.spacer(2))
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

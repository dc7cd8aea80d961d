package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// MaxBullets is the most bullets a single work-history entry may carry.
const MaxBullets = 10

// Builder turns raw Documents into validated profiles.
type Builder struct {
	validate     *validator.Validate
	logger       *zap.Logger
	dateFallback *time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithDateFallback makes unparseable work-history dates resolve to fallback
// instead of failing. Every substitution is logged as a warning.
func WithDateFallback(fallback time.Time) Option {
	return func(b *Builder) {
		f := time.Date(fallback.Year(), fallback.Month(), fallback.Day(), 0, 0, 0, 0, time.UTC)
		b.dateFallback = &f
	}
}

// NewBuilder creates a Builder. Without options it rejects malformed dates and logs nothing.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		validate: newValidator(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build normalizes and validates doc. Every field is checked; on failure the
// returned error is a ValidationErrors holding all problems found.
func (b *Builder) Build(doc *Document) (*types.ResumeProfile, error) {
	if doc == nil {
		return nil, ValidationErrors{{Field: "(root)", Code: CodeRequiredFieldMissing, Message: "profile is empty"}}
	}

	c := &collector{}
	p := &types.ResumeProfile{
		Contact:             b.buildContact(c, doc.Contact),
		Summary:             strings.TrimSpace(doc.Summary),
		CoreSkills:          skillNames(doc.Skills),
		ToolsTechnologies:   cleanList(doc.ToolsTechnologies),
		TargetKeywords:      cleanList(doc.TargetKeywords),
		MOSTranslatedSkills: cleanList(doc.MOSTranslatedSkills),
		Preferences:         types.DefaultPreferences(),
	}

	p.TargetRoles = cleanList(doc.TargetRole)
	if len(p.TargetRoles) == 0 {
		p.TargetRoles = []string{"Professional"}
	}

	if err := CheckSummary(p.Summary); err != nil {
		c.add("summary", err)
	}

	if len(doc.MOSCodes) > 0 {
		p.MOS = buildMOS(c, doc.MOSCodes[0])
	}

	for i, in := range doc.Experience {
		p.WorkHistory = append(p.WorkHistory, b.buildWork(c, fmt.Sprintf("work_history[%d]", i), in))
	}
	for i, in := range doc.Education {
		p.Education = append(p.Education, buildEducation(c, fmt.Sprintf("education[%d]", i), in))
	}
	for i, in := range doc.Certifications {
		p.Certifications = append(p.Certifications, buildCertification(c, fmt.Sprintf("certifications[%d]", i), in))
	}

	if doc.AdditionalInfo != nil {
		p.AdditionalInfo = buildAdditionalInfo(doc.AdditionalInfo)
	}
	if doc.Preferences != nil {
		p.Preferences = *doc.Preferences
		if p.Preferences.Template == "" {
			p.Preferences.Template = "classic"
		}
		if p.Preferences.BulletDensity == 0 {
			p.Preferences.BulletDensity = 4
		}
	}

	c.merge(structErrors(b.validate, p))

	if len(c.errs) > 0 {
		return nil, c.errs
	}
	return p, nil
}

// Validate re-checks an already built profile, for example after generated
// content has been merged into it.
func (b *Builder) Validate(p *types.ResumeProfile) error {
	if p == nil {
		return ValidationErrors{{Field: "(root)", Code: CodeRequiredFieldMissing, Message: "profile is empty"}}
	}

	c := &collector{}
	if p.Contact.Phone != "" {
		if canonical, err := NormalizePhone(p.Contact.Phone); err != nil {
			c.add("contact.phone", err)
		} else if canonical != p.Contact.Phone {
			c.add("contact.phone", FieldError{Code: CodeInvalidPhoneFormat, Message: "phone number is not in (XXX) XXX-XXXX form"})
		}
	}
	if p.Contact.LinkedIn != "" {
		if _, err := NormalizeLinkedIn(p.Contact.LinkedIn); err != nil {
			c.add("contact.linkedin", err)
		}
	}
	if err := CheckSummary(p.Summary); err != nil {
		c.add("summary", err)
	}
	for i, w := range p.WorkHistory {
		if w.StartDate.IsZero() {
			c.add(fmt.Sprintf("work_history[%d].start_date", i), requiredError("start date"))
		}
		if w.EndDate != nil && w.EndDate.Before(w.StartDate) {
			c.add(fmt.Sprintf("work_history[%d].end_date", i), rangeError(w.StartDate, *w.EndDate))
		}
	}
	c.merge(structErrors(b.validate, p))

	if len(c.errs) > 0 {
		return c.errs
	}
	return nil
}

func (b *Builder) buildContact(c *collector, in ContactInput) types.Contact {
	out := types.Contact{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.TrimSpace(in.Email),
		City:     strings.TrimSpace(in.City),
		State:    strings.TrimSpace(in.State),
	}

	if strings.TrimSpace(in.Phone) == "" {
		c.add("contact.phone", requiredError("phone"))
	} else if phone, err := NormalizePhone(in.Phone); err != nil {
		c.add("contact.phone", err)
	} else {
		out.Phone = phone
	}

	if linkedIn, err := NormalizeLinkedIn(in.LinkedIn); err != nil {
		c.add("contact.linkedin", err)
	} else {
		out.LinkedIn = linkedIn
	}
	out.Portfolio = NormalizeURL(in.Portfolio)

	out.Clearance = types.ClearanceNone
	if s := strings.TrimSpace(in.SecurityClearance); s != "" {
		out.Clearance = types.Clearance(s)
		if !out.Clearance.IsValid() {
			c.add("contact.security_clearance", FieldError{
				Code:    CodeInvalidValue,
				Message: fmt.Sprintf("clearance %q must be one of %s", s, joinClearances()),
			})
		}
	}

	if s := strings.TrimSpace(in.Branch); s != "" {
		out.Branch = types.Branch(s)
		if !out.Branch.IsValid() {
			c.add("contact.branch", branchError(s))
		}
	}
	return out
}

func buildMOS(c *collector, in types.MOSEntry) *types.MOSEntry {
	m := in
	m.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	m.Title = strings.TrimSpace(in.Title)
	m.CivilianSkills = cleanList(in.CivilianSkills)
	m.Keywords = cleanList(in.Keywords)

	if m.Code == "" {
		c.add("mos_codes[0].code", requiredError("MOS code"))
	}
	if !m.Branch.IsValid() {
		if m.Branch == "" {
			c.add("mos_codes[0].branch", requiredError("MOS branch"))
		} else {
			c.add("mos_codes[0].branch", branchError(string(m.Branch)))
		}
	}
	return &m
}

func (b *Builder) buildWork(c *collector, path string, in ExperienceInput) types.WorkHistoryEntry {
	w := types.WorkHistoryEntry{
		Title:              firstNonEmpty(in.Title, in.JobTitle),
		Organization:       firstNonEmpty(in.Organization, in.Employer),
		Location:           strings.TrimSpace(in.Location),
		Current:            in.Current,
		Bullets:            cleanList(in.Bullets),
		MOSCodes:           cleanList(in.MOSCodes),
		ScopeMetrics:       strings.TrimSpace(in.ScopeMetrics),
		AIGeneratedBullets: cleanList(in.AIGeneratedBullets),
	}
	if w.Title == "" {
		c.add(path+".title", requiredError("job title"))
	}
	if w.Organization == "" {
		c.add(path+".organization", requiredError("organization"))
	}
	if len(w.Bullets) > MaxBullets {
		c.add(path+".bullets", FieldError{
			Code:    CodeInvalidValue,
			Message: fmt.Sprintf("at most %d bullets allowed, got %d", MaxBullets, len(w.Bullets)),
		})
	}

	start, _, err := b.parseWorkDate(path+".start_date", in.StartDate)
	switch {
	case err != nil:
		c.add(path+".start_date", err)
	case start == nil:
		c.add(path+".start_date", requiredError("start date"))
	default:
		w.StartDate = *start
	}

	end, ongoing, err := b.parseWorkDate(path+".end_date", in.EndDate)
	if err != nil {
		c.add(path+".end_date", err)
	}
	w.EndDate = end
	if ongoing {
		w.Current = true
	}

	if start != nil && end != nil && end.Before(*start) {
		c.add(path+".end_date", rangeError(*start, *end))
	}

	return w
}

func (b *Builder) parseWorkDate(field, raw string) (*time.Time, bool, error) {
	t, ongoing, err := ParseDate(raw)
	if err == nil || b.dateFallback == nil {
		return t, ongoing, err
	}
	b.logger.Warn("substituting fallback date for unparseable value",
		zap.String("field", field),
		zap.String("value", raw),
		zap.Time("fallback", *b.dateFallback),
	)
	f := *b.dateFallback
	return &f, false, nil
}

func buildEducation(c *collector, path string, in EducationInput) types.EducationEntry {
	e := types.EducationEntry{
		Institution:     strings.TrimSpace(in.Institution),
		Degree:          strings.TrimSpace(in.Degree),
		FieldOfStudy:    strings.TrimSpace(in.FieldOfStudy),
		Location:        strings.TrimSpace(in.Location),
		Overview:        strings.TrimSpace(in.Overview),
		Courses:         cleanList(in.Courses),
		CoursesOverview: strings.TrimSpace(in.CoursesOverview),
		InProgress:      in.InProgress,
		GPA:             NormalizeGPA(in.GPA),
		Honors:          cleanList(in.Honors),
	}
	if e.Institution == "" {
		c.add(path+".institution", requiredError("institution"))
	}
	if e.Degree == "" {
		c.add(path+".degree", requiredError("degree"))
	}

	switch {
	case strings.TrimSpace(in.GraduationDate) != "":
		t, ongoing, err := ParseDate(in.GraduationDate)
		switch {
		case err != nil:
			c.add(path+".graduation_date", err)
		case ongoing:
			e.InProgress = true
		case t != nil:
			y := t.Year()
			e.GraduationYear = &y
		}
	case in.GraduationYear != nil:
		y := *in.GraduationYear
		e.GraduationYear = &y
	}

	return e
}

func buildCertification(c *collector, path string, in CertificationInput) types.CertificationEntry {
	cert := types.CertificationEntry{
		Name:         strings.TrimSpace(in.Name),
		Issuer:       strings.TrimSpace(in.Issuer),
		CredentialID: strings.TrimSpace(in.CredentialID),
	}
	if cert.Name == "" {
		c.add(path+".name", requiredError("certification name"))
	}
	if cert.Issuer == "" {
		c.add(path+".issuer", requiredError("issuer"))
	}

	switch {
	case strings.TrimSpace(in.IssueDate) != "":
		t, _, err := ParseDate(in.IssueDate)
		if err != nil {
			c.add(path+".issue_date", err)
		} else if t != nil {
			y := t.Year()
			cert.Year = &y
		}
	case in.Year != nil:
		y := *in.Year
		cert.Year = &y
	}

	return cert
}

func buildAdditionalInfo(in *AdditionalInfoInput) *types.AdditionalInfo {
	info := &types.AdditionalInfo{
		Awards:              cleanList(in.Awards),
		VeteranExperience:   cleanList(in.VeteranExperience),
		Languages:           cleanList(in.Languages),
		ClearanceNote:       strings.TrimSpace(in.ClearanceNote),
		ReferencesAvailable: true,
	}
	if in.ReferencesAvailable != nil {
		info.ReferencesAvailable = *in.ReferencesAvailable
	}
	for _, v := range in.Volunteer {
		v = types.VolunteerEntry{
			Text:         strings.TrimSpace(v.Text),
			Organization: strings.TrimSpace(v.Organization),
			Role:         strings.TrimSpace(v.Role),
			Description:  strings.TrimSpace(v.Description),
			DateRange:    strings.TrimSpace(v.DateRange),
			Location:     strings.TrimSpace(v.Location),
		}
		if !v.IsEmpty() {
			info.Volunteer = append(info.Volunteer, v)
		}
	}
	return info
}

// collector accumulates field errors in the order they are found.
type collector struct {
	errs ValidationErrors
}

func (c *collector) add(field string, err error) {
	var fe FieldError
	if errors.As(err, &fe) {
		fe.Field = field
		c.errs = append(c.errs, fe)
		return
	}
	c.errs = append(c.errs, FieldError{Field: field, Code: CodeInvalidValue, Message: err.Error()})
}

// merge appends errors for fields that have not already been reported.
func (c *collector) merge(more ValidationErrors) {
	for _, e := range more {
		if len(c.errs.ForField(e.Field)) == 0 {
			c.errs = append(c.errs, e)
		}
	}
}

func requiredError(what string) FieldError {
	return FieldError{Code: CodeRequiredFieldMissing, Message: what + " is required"}
}

func rangeError(start, end time.Time) FieldError {
	return FieldError{
		Code: CodeInvalidDateRange,
		Message: fmt.Sprintf("end date %s is before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02")),
	}
}

func branchError(value string) FieldError {
	names := make([]string, 0, len(types.Branches()))
	for _, b := range types.Branches() {
		names = append(names, string(b))
	}
	return FieldError{
		Code:    CodeInvalidValue,
		Message: fmt.Sprintf("branch %q must be one of %s", value, strings.Join(names, ", ")),
	}
}

func joinClearances() string {
	names := make([]string, 0, len(types.Clearances()))
	for _, c := range types.Clearances() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// cleanList trims entries and drops blanks. It returns nil for an empty result.
func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func skillNames(in []SkillInput) []string {
	names := make([]string, 0, len(in))
	for _, s := range in {
		names = append(names, s.Name)
	}
	return cleanList(names)
}

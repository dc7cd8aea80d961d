package llm

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

var summaryTemplates = []string{
	"Results-driven {role} with {years}+ years of military experience transitioning to the civilian sector. Proven track record in {skill1}, {skill2}, and {skill3}. Seeking to leverage leadership and technical expertise in a dynamic organization.",
	"Accomplished military professional with expertise in {skill1} and {skill2}, seeking a {role} position. {years}+ years of experience leading teams and executing complex operations. Strong problem-solver with excellent communication skills.",
	"Highly motivated {role} candidate with {years} years of service in {branch}. Expert in {skill1}, {skill2}, and {skill3}. Committed to excellence and continuous improvement in fast-paced environments.",
}

var bulletTemplates = []string{
	"Led team of {team_size} personnel in {activity}, resulting in {metric}% improvement in operational efficiency",
	"Managed equipment and supplies worth ${value}K, ensuring 100% accountability and zero loss incidents",
	"Coordinated {activity} across multiple departments, supporting {beneficiary}+ personnel and exceeding performance standards",
	"Implemented a process improvement initiative that reduced processing time by {metric}%, saving {value} hours annually",
	"Trained and mentored {team_size}+ personnel in {skill}, achieving {metric}% proficiency rate",
	"Executed {activity} under high-pressure conditions, maintaining 98% accuracy rate",
	"Developed and maintained a tracking system supporting multiple departments, ensuring 99% uptime",
	"Analyzed performance metrics to identify trends and optimize workflow, improving throughput by {metric}%",
}

var defaultSkills = []string{"leadership", "operations management", "team coordination"}

// TemplateGenerator fills fixed sentence templates from profile data. Output
// depends only on the profile and the generator's clock, so it is a stable
// stand-in for a model in tests and offline runs.
type TemplateGenerator struct {
	// Variant picks the summary template, modulo the number of templates.
	Variant int
	now     func() time.Time
}

// NewTemplateGenerator returns a generator using the first summary template.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{now: time.Now}
}

// WithClock returns a copy of g that measures ongoing positions up to now().
func (g *TemplateGenerator) WithClock(now func() time.Time) *TemplateGenerator {
	c := *g
	c.now = now
	return &c
}

// GenerateSummary implements TextGenerator.
func (g *TemplateGenerator) GenerateSummary(ctx context.Context, profile *types.ResumeProfile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	skills := topSkills(profile, 3)
	branch := "the military"
	if b := profile.ServiceBranch(); b != "" {
		branch = "the " + string(b)
	}

	tmpl := summaryTemplates[abs(g.Variant)%len(summaryTemplates)]
	return fill(tmpl, map[string]string{
		"role":   profile.PrimaryRole(),
		"years":  strconv.Itoa(g.yearsOfService(profile)),
		"skill1": skills[0],
		"skill2": skills[1],
		"skill3": skills[2],
		"branch": branch,
	}), nil
}

// GenerateBullets implements TextGenerator. At most len(bulletTemplates)
// bullets are produced.
func (g *TemplateGenerator) GenerateBullets(ctx context.Context, entry types.WorkHistoryEntry, profile *types.ResumeProfile, count int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count = bulletCount(count)
	if count > len(bulletTemplates) {
		count = len(bulletTemplates)
	}

	values := map[string]string{
		"team_size":   "10",
		"activity":    activityFor(entry.Title),
		"metric":      "25",
		"value":       "250",
		"beneficiary": "200",
		"skill":       topSkills(profile, 1)[0],
	}
	bullets := make([]string, 0, count)
	for _, tmpl := range bulletTemplates[:count] {
		bullets = append(bullets, fill(tmpl, values))
	}
	return bullets, nil
}

// yearsOfService sums the length of every position, counting ongoing ones up
// to now. With no work history it assumes a four year enlistment.
func (g *TemplateGenerator) yearsOfService(p *types.ResumeProfile) int {
	if p.MOS != nil && p.MOS.YearsOfService != nil && *p.MOS.YearsOfService >= 1 {
		return int(*p.MOS.YearsOfService)
	}
	if len(p.WorkHistory) == 0 {
		return 4
	}
	now := g.now
	if now == nil {
		now = time.Now
	}

	var total time.Duration
	for _, w := range p.WorkHistory {
		end := now()
		if !w.Ongoing() {
			end = *w.EndDate
		}
		if end.After(w.StartDate) {
			total += end.Sub(w.StartDate)
		}
	}
	years := int(total.Hours() / 24 / 365)
	if years < 1 {
		return 1
	}
	return years
}

// topSkills returns count skills, padding with generic ones.
func topSkills(p *types.ResumeProfile, count int) []string {
	var skills []string
	skills = append(skills, p.CoreSkills...)
	skills = append(skills, p.MOSTranslatedSkills...)
	if p.MOS != nil {
		n := len(p.MOS.CivilianSkills)
		if n > 2 {
			n = 2
		}
		skills = append(skills, p.MOS.CivilianSkills[:n]...)
	}

	out := make([]string, 0, count)
	seen := map[string]bool{}
	for _, s := range append(skills, defaultSkills...) {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(s))
		if len(out) == count {
			break
		}
	}
	for len(out) < count {
		out = append(out, defaultSkills[len(out)%len(defaultSkills)])
	}
	return out
}

func activityFor(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "engineer"):
		return "construction and maintenance operations"
	case strings.Contains(t, "medic"), strings.Contains(t, "medical"), strings.Contains(t, "corpsman"):
		return "emergency medical response"
	case strings.Contains(t, "intelligence"):
		return "intelligence gathering and analysis"
	case strings.Contains(t, "supply"), strings.Contains(t, "logistics"):
		return "supply chain operations"
	case strings.Contains(t, "network"), strings.Contains(t, "information"), strings.Contains(t, "cyber"):
		return "network and systems operations"
	}
	return "tactical operations"
}

func fill(tmpl string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// GeminiGenerator drafts resume text with a remote model.
type GeminiGenerator struct {
	client Client
	logger *zap.Logger
}

// NewGeminiGenerator wraps client. Any Client works; the name reflects the
// provider it is configured for in practice.
func NewGeminiGenerator(client Client, logger *zap.Logger) *GeminiGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiGenerator{client: client, logger: logger}
}

// GenerateSummary implements TextGenerator.
func (g *GeminiGenerator) GenerateSummary(ctx context.Context, profile *types.ResumeProfile) (string, error) {
	prompt, err := prompts.Render(prompts.ResumeFile, prompts.KeySummary, map[string]string{
		"TargetRole": profile.PrimaryRole(),
		"Military":   militaryBackground(profile),
		"Skills":     joinOr(firstN(profile.CoreSkills, 5), "leadership, operations, team management, communication, problem-solving"),
		"Clearance":  clearanceLabel(profile.Contact.Clearance),
	})
	if err != nil {
		return "", err
	}

	text, err := g.client.GenerateContent(ctx, prompt, TierLite)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	summary := CleanSummary(text)
	if summary == "" {
		return "", fmt.Errorf("failed to generate summary: empty response")
	}
	g.logger.Info("generated summary", zap.String("model", g.client.GetModel(TierLite)), zap.Int("chars", len(summary)))
	return summary, nil
}

// GenerateBullets implements TextGenerator. The model is asked for a JSON
// array; a plain line-per-bullet answer is accepted too.
func (g *GeminiGenerator) GenerateBullets(ctx context.Context, entry types.WorkHistoryEntry, profile *types.ResumeProfile, count int) ([]string, error) {
	count = bulletCount(count)

	mos := strings.Join(entry.MOSCodes, ", ")
	if mos == "" {
		mos = militaryBackground(profile)
	}
	prompt, err := prompts.Render(prompts.ResumeFile, prompts.KeySTARBullets, map[string]string{
		"Count":        strconv.Itoa(count),
		"Position":     entry.Title,
		"Organization": entry.Organization,
		"MOSCodes":     mos,
		"TargetRole":   profile.PrimaryRole(),
		"Skills":       strings.Join(profile.CoreSkills, ", "),
		"Context":      bulletContext(entry),
	})
	if err != nil {
		return nil, err
	}

	text, err := g.client.GenerateJSON(ctx, prompt, TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to generate bullets: %w", err)
	}

	var bullets []string
	if err := json.Unmarshal([]byte(text), &bullets); err != nil {
		g.logger.Debug("bullet response was not a JSON array, parsing lines", zap.Error(err))
		bullets = ParseBullets(text, count)
	}
	bullets = ParseBullets(strings.Join(bullets, "\n"), count)
	if len(bullets) == 0 {
		return nil, fmt.Errorf("failed to generate bullets: empty response")
	}

	g.logger.Info("generated bullets",
		zap.String("title", entry.Title),
		zap.Int("requested", count),
		zap.Int("returned", len(bullets)))
	return bullets, nil
}

func militaryBackground(p *types.ResumeProfile) string {
	if p.MOS == nil || p.MOS.Code == "" {
		return "Military service professional"
	}
	if p.MOS.Title == "" {
		return p.MOS.Code
	}
	return fmt.Sprintf("%s (%s)", p.MOS.Code, p.MOS.Title)
}

func bulletContext(entry types.WorkHistoryEntry) string {
	var parts []string
	if entry.ScopeMetrics != "" {
		parts = append(parts, "Metrics/Outcomes: "+entry.ScopeMetrics)
	}
	if len(entry.Bullets) > 0 {
		parts = append(parts, "Existing Achievements: "+strings.Join(firstN(entry.Bullets, 3), "; "))
	}
	return strings.Join(parts, "\n")
}

func clearanceLabel(c types.Clearance) string {
	if c == "" || c == types.ClearanceNone {
		return "N/A"
	}
	return string(c)
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

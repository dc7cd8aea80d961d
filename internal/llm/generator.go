package llm

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// DefaultBulletCount is used when a caller asks for zero or fewer bullets.
const DefaultBulletCount = 4

// TextGenerator drafts resume text from a profile.
type TextGenerator interface {
	// GenerateSummary returns a short professional summary.
	GenerateSummary(ctx context.Context, profile *types.ResumeProfile) (string, error)
	// GenerateBullets returns up to count achievement bullets for one position.
	GenerateBullets(ctx context.Context, entry types.WorkHistoryEntry, profile *types.ResumeProfile, count int) ([]string, error)
}

// GeneratorOptions selects and configures a TextGenerator.
type GeneratorOptions struct {
	Provider Provider
	APIKey   string
	// Model overrides every tier when set.
	Model  string
	Logger *zap.Logger
}

// NewTextGenerator builds the generator for opts.Provider. Gemini without an
// API key falls back to the template generator with a warning. The returned
// close function releases any client and is never nil.
func NewTextGenerator(ctx context.Context, opts GeneratorOptions) (TextGenerator, func() error, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	noop := func() error { return nil }

	switch opts.Provider {
	case ProviderTemplate, "":
		return NewTemplateGenerator(), noop, nil
	case ProviderGemini:
		if opts.APIKey == "" {
			logger.Warn("Gemini selected without an API key, using template generator")
			return NewTemplateGenerator(), noop, nil
		}
		config := DefaultGeminiConfig()
		if opts.Model != "" {
			config = config.WithAllModels(opts.Model)
		}
		client, err := NewGeminiClient(ctx, config, opts.APIKey)
		if err != nil {
			return nil, noop, err
		}
		return NewGeminiGenerator(client, logger), client.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown AI provider %q", opts.Provider)
}

func bulletCount(count int) int {
	if count <= 0 {
		return DefaultBulletCount
	}
	return count
}

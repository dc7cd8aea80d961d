package resume

import (
	"context"

	"github.com/jonathan/resume-builder/internal/profile"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// Enrich returns a copy of p with generated text filled in: a summary when p
// has none, and generated bullets for every position without bullets. The
// bullet count follows the profile's bullet density. Generator failures are
// logged and leave the affected section unchanged; only cancellation of ctx
// fails the call. Without a generator p is returned as is.
func (s *Service) Enrich(ctx context.Context, p *types.ResumeProfile) (*types.ResumeProfile, error) {
	if p == nil || s.generator == nil {
		return p, nil
	}
	name := profileName(p)
	logger := s.logger.With(zap.String("profile", name))

	out := *p
	out.WorkHistory = append([]types.WorkHistoryEntry(nil), p.WorkHistory...)

	if out.Summary == "" {
		summary, err := s.generator.GenerateSummary(ctx, &out)
		switch {
		case ctx.Err() != nil:
			return nil, newGenerationFailed(name, StepEnrich, ctx.Err())
		case err != nil:
			logger.Warn("summary generation failed", zap.Error(err))
		case profile.CheckSummary(summary) != nil:
			logger.Warn("generated summary rejected", zap.Error(profile.CheckSummary(summary)))
		default:
			out.Summary = summary
		}
	}

	count := bulletDensity(p)
	for i := range out.WorkHistory {
		entry := &out.WorkHistory[i]
		if len(entry.Bullets) > 0 || len(entry.AIGeneratedBullets) > 0 {
			continue
		}
		bullets, err := s.generator.GenerateBullets(ctx, *entry, &out, count)
		if ctx.Err() != nil {
			return nil, newGenerationFailed(name, StepEnrich, ctx.Err())
		}
		if err != nil {
			logger.Warn("bullet generation failed", zap.String("title", entry.Title), zap.Error(err))
			continue
		}
		if len(bullets) > profile.MaxBullets {
			bullets = bullets[:profile.MaxBullets]
		}
		entry.AIGeneratedBullets = bullets
	}
	return &out, nil
}

func bulletDensity(p *types.ResumeProfile) int {
	d := p.Preferences.BulletDensity
	if d <= 0 {
		return types.DefaultPreferences().BulletDensity
	}
	return d
}

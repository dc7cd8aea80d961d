package resume

import (
	"context"

	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchJob is one profile to generate in a batch.
type BatchJob struct {
	Profile  *types.ResumeProfile
	Template string
	Filename string
	// Enrich runs text generation before layout.
	Enrich bool
}

// BatchResult is the outcome of one BatchJob. Results keep the job order.
type BatchResult struct {
	ProfileName string
	Path        string
	Err         error
}

// GenerateBatch generates every job in parallel, at most the service's
// concurrency at a time. A failed job does not stop the others; its error is
// reported in its result. The returned error is non-nil only when ctx ends
// before every job has run.
func (s *Service) GenerateBatch(ctx context.Context, jobs []BatchJob) ([]BatchResult, error) {
	results := make([]BatchResult, len(jobs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, job := range jobs {
		i, job := i, job
		results[i].ProfileName = profileName(job.Profile)
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			p := job.Profile
			if job.Enrich {
				enriched, err := s.Enrich(gCtx, p)
				if err != nil {
					results[i].Err = err
					return nil
				}
				p = enriched
			}

			path, err := s.Generate(gCtx, p, job.Template, job.Filename)
			results[i].Path = path
			results[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.logger.Info("batch finished",
		zap.Int("jobs", len(jobs)),
		zap.Int("failed", failed))

	return results, ctx.Err()
}

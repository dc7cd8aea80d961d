package resume

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/profile"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// maxCollisionSuffix bounds the search for a free output name.
const maxCollisionSuffix = 1000

// GenerationRecorder stores the outcome of each generation. *db.DB satisfies it.
type GenerationRecorder interface {
	RecordGeneration(ctx context.Context, rec db.GenerationRecord) error
}

// Service turns validated profiles into documents in one output directory.
type Service struct {
	outputDir   string
	builder     *profile.Builder
	generator   llm.TextGenerator
	recorder    GenerationRecorder
	logger      *zap.Logger
	now         func() time.Time
	concurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithGenerator sets the text generator used by Enrich.
func WithGenerator(g llm.TextGenerator) Option {
	return func(s *Service) { s.generator = g }
}

// WithRecorder records every generation attempt.
func WithRecorder(r GenerationRecorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBuilder sets the profile builder used to re-validate profiles.
func WithBuilder(b *profile.Builder) Option {
	return func(s *Service) {
		if b != nil {
			s.builder = b
		}
	}
}

// WithClock sets the time source used for generated filenames.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithConcurrency bounds the number of profiles GenerateBatch builds at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewService creates a Service writing into outputDir.
func NewService(outputDir string, opts ...Option) *Service {
	s := &Service{
		outputDir:   outputDir,
		builder:     profile.NewBuilder(),
		logger:      zap.NewNop(),
		now:         time.Now,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OutputDir returns the directory documents are written to.
func (s *Service) OutputDir() string {
	return s.outputDir
}

// Generate validates p, lays it out with the named template and writes the
// document into the output directory. An empty templateName uses the
// profile's preference. An empty outputFilename produces
// resume_<name>_<timestamp>.docx, with a numeric suffix if that name is taken.
// The returned path is absolute. Failures are *GenerationFailed.
func (s *Service) Generate(ctx context.Context, p *types.ResumeProfile, templateName, outputFilename string) (string, error) {
	start := s.now()
	requestID := uuid.New()
	name := profileName(p)
	if templateName == "" && p != nil {
		templateName = p.Preferences.Template
	}
	logger := s.logger.With(
		zap.String("request_id", requestID.String()),
		zap.String("profile", name),
	)

	path, size, err := s.generate(ctx, p, templateName, outputFilename)

	rec := db.GenerationRecord{
		RequestID:   requestID,
		ProfileName: name,
		Template:    templateName,
		OutputPath:  path,
		SizeBytes:   size,
		Duration:    s.now().Sub(start),
	}
	if err != nil {
		var gf *GenerationFailed
		if !errors.As(err, &gf) {
			gf = newGenerationFailed(name, StepLayout, err)
		}
		logger.Error("resume generation failed",
			zap.String("step", string(gf.Step)),
			zap.Error(gf.Cause),
			zap.ByteString("stack", gf.StackTrace()))
		rec.Error = gf.Error()
		s.record(ctx, logger, rec)
		return "", gf
	}

	logger.Info("resume generated",
		zap.String("path", path),
		zap.Int64("bytes", size),
		zap.Duration("elapsed", rec.Duration))
	s.record(ctx, logger, rec)
	return path, nil
}

func (s *Service) generate(ctx context.Context, p *types.ResumeProfile, templateName, outputFilename string) (string, int64, error) {
	name := profileName(p)
	if err := ctx.Err(); err != nil {
		return "", 0, newGenerationFailed(name, StepValidate, err)
	}
	if err := s.builder.Validate(p); err != nil {
		return "", 0, newGenerationFailed(name, StepValidate, err)
	}

	tmpl, err := rendering.LookupTemplate(templateName)
	if err != nil {
		return "", 0, newGenerationFailed(name, StepTemplate, err)
	}

	data, err := rendering.Render(p, tmpl)
	if err != nil {
		return "", 0, newGenerationFailed(name, StepLayout, err)
	}

	if err := ctx.Err(); err != nil {
		return "", 0, newGenerationFailed(name, StepWrite, err)
	}
	path, err := s.write(name, outputFilename, data)
	if err != nil {
		return "", 0, newGenerationFailed(name, StepWrite, err)
	}
	return path, int64(len(data)), nil
}

// write stores data at its final path through a temp file in the same
// directory, so a reader never sees a partial document and a failed run
// leaves nothing at the destination.
func (s *Service) write(name, outputFilename string, data []byte) (string, error) {
	dir, err := filepath.Abs(s.outputDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := writeTemp(dir, data)
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(tmp) }()

	if strings.TrimSpace(outputFilename) != "" {
		target := filepath.Join(dir, filepath.Base(rendering.EnsureExtension(outputFilename)))
		if err := os.Rename(tmp, target); err != nil {
			return "", fmt.Errorf("failed to move document into place: %w", err)
		}
		return target, nil
	}
	return linkUnique(tmp, dir, rendering.Filename(name, s.now()))
}

// writeTemp writes data to a new hidden file in dir and syncs it. The file is
// removed again if any step fails.
func writeTemp(dir string, data []byte) (path string, err error) {
	tmp := filepath.Join(dir, "."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	if err = f.Sync(); err != nil {
		return "", fmt.Errorf("failed to sync document: %w", err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("failed to close document: %w", err)
	}
	return tmp, nil
}

// linkUnique publishes the finished temp file as filename in dir, or as
// filename with _1, _2, ... before the extension when that name is taken.
// A hard link fails rather than replace an existing file, and the name only
// appears once the document is complete.
func linkUnique(tmp, dir, filename string) (string, error) {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	for i := 0; i < maxCollisionSuffix; i++ {
		candidate := filename
		if i > 0 {
			candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
		}
		path := filepath.Join(dir, candidate)
		err := os.Link(tmp, path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("failed to move document into place as %s: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("no free filename for %s after %d attempts", filename, maxCollisionSuffix)
}

func (s *Service) record(ctx context.Context, logger *zap.Logger, rec db.GenerationRecord) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordGeneration(context.WithoutCancel(ctx), rec); err != nil {
		logger.Warn("failed to record generation", zap.Error(err))
	}
}

func profileName(p *types.ResumeProfile) string {
	if p == nil || strings.TrimSpace(p.Contact.FullName) == "" {
		return "unnamed"
	}
	return strings.TrimSpace(p.Contact.FullName)
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/mos"
	"github.com/jonathan/resume-builder/internal/profile"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// app holds what every command needs once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

// newApp loads configuration, applies the global flags and builds the logger.
func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Verbose = true
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &app{cfg: cfg, logger: logger}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

func (a *app) builder() *profile.Builder {
	opts := []profile.Option{profile.WithLogger(a.logger)}
	if a.cfg.LenientDates {
		opts = append(opts, profile.WithDateFallback(time.Now()))
	}
	return profile.NewBuilder(opts...)
}

func (a *app) catalog(path string) *mos.Catalog {
	if path == "" {
		path = a.cfg.MOSDatasetPath
	}
	return mos.Load(path, a.logger)
}

func (a *app) generator(ctx context.Context, provider string) (llm.TextGenerator, func() error, error) {
	p := a.cfg.Provider()
	if provider != "" {
		parsed, err := llm.ParseProvider(provider)
		if err != nil {
			return nil, func() error { return nil }, err
		}
		p = parsed
	}
	return llm.NewTextGenerator(ctx, llm.GeneratorOptions{
		Provider: p,
		APIKey:   a.cfg.APIKey,
		Model:    a.cfg.Model,
		Logger:   a.logger,
	})
}

// database connects and migrates, or returns nil when no URL is configured.
func (a *app) database(ctx context.Context, required bool) (*db.DB, error) {
	if a.cfg.DatabaseURL == "" {
		if required {
			return nil, fmt.Errorf("DATABASE_URL is not set")
		}
		return nil, nil
	}
	database, err := db.Connect(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}

// completeMOS fills missing MOS details on each profile from the catalog.
func completeMOS(catalog *mos.Catalog, profiles []*types.ResumeProfile, logger *zap.Logger) {
	for _, p := range profiles {
		if p.MOS == nil {
			continue
		}
		if !catalog.Complete(p.MOS) {
			logger.Debug("MOS code not in catalog", zap.String("code", p.MOS.Code))
		}
	}
}

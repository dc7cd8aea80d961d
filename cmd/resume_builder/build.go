package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build <profile.json>...",
	Short: "Generate Word resumes from profile files",
	Long: "Loads and validates each profile, optionally drafts a summary and bullets with the configured text " +
		"generator, and writes a .docx resume per profile into the output directory.",
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

var (
	buildTemplate  string
	buildOutFile   string
	buildOutputDir string
	buildAI        bool
	buildProvider  string
	buildMOSData   string
)

func init() {
	buildCmd.Flags().StringVarP(&buildTemplate, "template", "t", "", "Layout template (classic, compact); defaults to the profile's preference")
	buildCmd.Flags().StringVarP(&buildOutFile, "out", "o", "", "Output file name (single profile only)")
	buildCmd.Flags().StringVar(&buildOutputDir, "output-dir", "", "Directory for generated resumes (overrides config)")
	buildCmd.Flags().BoolVar(&buildAI, "ai", false, "Draft a missing summary and bullets before layout")
	buildCmd.Flags().StringVar(&buildProvider, "provider", "", "Text generator (template, gemini); overrides config")
	buildCmd.Flags().StringVar(&buildMOSData, "mos-data", "", "MOS dataset used to complete MOS details (overrides config)")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if buildOutFile != "" && len(args) > 1 {
		return fmt.Errorf("--out can only be used with a single profile")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	builder := a.builder()
	profiles := make([]*types.ResumeProfile, 0, len(args))
	for _, path := range args {
		p, err := builder.LoadFile(path)
		if err != nil {
			return fmt.Errorf("failed to load profile %s: %w", path, err)
		}
		profiles = append(profiles, p)
	}
	completeMOS(a.catalog(buildMOSData), profiles, a.logger)

	outputDir := a.cfg.OutputDir
	if buildOutputDir != "" {
		outputDir = buildOutputDir
	}
	opts := []resume.Option{
		resume.WithLogger(a.logger),
		resume.WithBuilder(builder),
		resume.WithConcurrency(a.cfg.BatchConcurrency),
	}

	if buildAI {
		generator, closeGenerator, err := a.generator(ctx, buildProvider)
		if err != nil {
			return fmt.Errorf("failed to create text generator: %w", err)
		}
		defer func() { _ = closeGenerator() }()
		opts = append(opts, resume.WithGenerator(generator))
	}

	database, err := a.database(ctx, false)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
		opts = append(opts, resume.WithRecorder(database))
	}

	svc := resume.NewService(outputDir, opts...)

	jobs := make([]resume.BatchJob, 0, len(profiles))
	for _, p := range profiles {
		jobs = append(jobs, resume.BatchJob{
			Profile:  p,
			Template: templateFor(buildTemplate, a.cfg.Template, p),
			Filename: buildOutFile,
			Enrich:   buildAI,
		})
	}

	results, err := svc.GenerateBatch(ctx, jobs)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to generate resumes: %w", err)
	}

	out := cmd.OutOrStdout()
	if a.cfg.Verbose {
		printer := observability.NewPrinter(out)
		for _, p := range profiles {
			printer.PrintProfile(p)
		}
		printer.PrintGeneration(results)
	} else {
		reportResults(out, cmd.ErrOrStderr(), results)
	}

	if failed := countFailed(results); failed > 0 {
		return fmt.Errorf("%d of %d resumes failed", failed, len(results))
	}
	return nil
}

// templateFor picks the template for one profile. The flag wins, then a
// non-default profile preference (returned as "" so the service uses it), then
// the configured default.
func templateFor(flag, configured string, p *types.ResumeProfile) string {
	if flag != "" {
		return flag
	}
	if pref := p.Preferences.Template; pref != "" && pref != types.DefaultPreferences().Template {
		return ""
	}
	return configured
}

func reportResults(out, errOut io.Writer, results []resume.BatchResult) {
	for _, r := range results {
		if r.Err == nil {
			_, _ = fmt.Fprintf(out, "Resume written: %s\n", r.Path)
			continue
		}
		msg := r.Err.Error()
		var gf *resume.GenerationFailed
		if errors.As(r.Err, &gf) {
			msg = gf.UserMessage()
		}
		_, _ = fmt.Fprintf(errOut, "✗ %s: %s\n", r.ProfileName, msg)
	}
}

func countFailed(results []resume.BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

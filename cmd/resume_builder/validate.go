package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/profile"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <profile.json>",
	Short: "Validate a profile file",
	Long:  "Checks a profile against the schema and field rules and lists every problem found.",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	_, err = a.builder().LoadFile(args[0])

	var verrs profile.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &verrs):
	default:
		return fmt.Errorf("failed to load profile: %w", err)
	}

	if a.cfg.Verbose {
		observability.NewPrinter(out).PrintValidationErrors(verrs)
	} else if len(verrs) == 0 {
		_, _ = fmt.Fprintln(out, "Validation passed")
	} else {
		_, _ = fmt.Fprintln(out, "Validation failed:")
		for _, fe := range verrs {
			_, _ = fmt.Fprintf(out, "  %s [%s]: %s\n", fe.Field, fe.Code, fe.Message)
		}
	}

	if len(verrs) > 0 {
		return fmt.Errorf("profile has %d problem(s)", len(verrs))
	}
	return nil
}

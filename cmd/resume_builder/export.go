package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/profile"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <profile.json>",
	Short: "Normalize a profile and write it back out as JSON",
	Long:  "Loads and validates a profile, then writes the canonical JSON form: normalized phone and links, ISO dates and merged fields.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var exportOutputFile string

func init() {
	exportCmd.Flags().StringVarP(&exportOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	p, err := a.builder().LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	data, err := profile.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to export profile: %w", err)
	}

	if exportOutputFile == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if dir := filepath.Dir(exportOutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Profile exported to %s\n", exportOutputFile)
	return nil
}

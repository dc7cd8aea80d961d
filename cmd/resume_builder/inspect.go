package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/docx"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <resume.docx>",
	Short: "Print the text of a generated resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available layout templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(rendering.Templates(), "\n"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	text, err := docx.ExtractTextFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

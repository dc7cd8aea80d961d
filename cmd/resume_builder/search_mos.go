package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var searchMOSCmd = &cobra.Command{
	Use:   "search-mos <query>",
	Short: "Search the MOS catalog",
	Long:  "Finds military occupational specialty codes by code, title, civilian occupation or keyword and shows their civilian equivalents.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearchMOS,
}

var (
	searchMOSLimit   int
	searchMOSBranch  string
	searchMOSDataset string
	searchMOSJSON    bool
)

func init() {
	searchMOSCmd.Flags().IntVarP(&searchMOSLimit, "limit", "n", 10, "Maximum number of results")
	searchMOSCmd.Flags().StringVarP(&searchMOSBranch, "branch", "b", "", "Only show codes from this branch")
	searchMOSCmd.Flags().StringVar(&searchMOSDataset, "mos-data", "", "MOS dataset path (overrides config)")
	searchMOSCmd.Flags().BoolVar(&searchMOSJSON, "json", false, "Print results as JSON")

	rootCmd.AddCommand(searchMOSCmd)
}

func runSearchMOS(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	query := strings.Join(args, " ")
	catalog := a.catalog(searchMOSDataset)

	limit := searchMOSLimit
	if searchMOSBranch != "" {
		// Filter after searching the whole catalog so the limit applies to the branch.
		limit = catalog.Len()
	}
	results := filterBranch(catalog.Search(query, limit), searchMOSBranch)
	if searchMOSLimit > 0 && len(results) > searchMOSLimit {
		results = results[:searchMOSLimit]
	}

	out := cmd.OutOrStdout()
	switch {
	case searchMOSJSON:
		if results == nil {
			results = []types.MOSEntry{}
		}
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(data))
	case a.cfg.Verbose:
		observability.NewPrinter(out).PrintMOSResults(query, results)
	default:
		if len(results) == 0 {
			_, _ = fmt.Fprintf(out, "No MOS codes match %q\n", query)
			return nil
		}
		for _, e := range results {
			_, _ = fmt.Fprintf(out, "%-8s %-12s %s\n", e.Code, e.Branch, e.Title)
			if e.CivilianEquivalent != "" {
				_, _ = fmt.Fprintf(out, "         civilian: %s\n", e.CivilianEquivalent)
			}
		}
	}
	return nil
}

func filterBranch(entries []types.MOSEntry, branch string) []types.MOSEntry {
	if branch == "" {
		return entries
	}
	var out []types.MOSEntry
	for _, e := range entries {
		if strings.EqualFold(string(e.Branch), branch) || strings.EqualFold(e.BranchCode, branch) {
			out = append(out, e)
		}
	}
	return out
}

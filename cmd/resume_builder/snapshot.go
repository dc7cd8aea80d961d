package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/profile"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Store and retrieve profile snapshots in the database",
	Long:  "Saves normalized profiles to PostgreSQL (DATABASE_URL) so they can be retrieved later, and shows the generation history.",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <profile.json>",
	Short: "Validate a profile and save it as a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotSave,
}

var snapshotGetCmd = &cobra.Command{
	Use:   "get <snapshot-id>",
	Short: "Print a saved snapshot as profile JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotGet,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent snapshots",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotList,
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <snapshot-id>",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotDelete,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent resume generations",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var (
	snapshotOutputFile string
	snapshotLimit      int
	historyName        string
	historyStatus      string
)

func init() {
	snapshotGetCmd.Flags().StringVarP(&snapshotOutputFile, "out", "o", "", "Write the snapshot to this file instead of stdout")
	snapshotListCmd.Flags().IntVarP(&snapshotLimit, "limit", "n", db.DefaultListLimit, "Maximum number of snapshots")
	historyCmd.Flags().IntVarP(&snapshotLimit, "limit", "n", db.DefaultListLimit, "Maximum number of records")
	historyCmd.Flags().StringVar(&historyName, "name", "", "Only show generations for names containing this text")
	historyCmd.Flags().StringVar(&historyStatus, "status", "", "Only show generations with this status (succeeded, failed)")

	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotGetCmd, snapshotListCmd, snapshotDeleteCmd, historyCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	p, err := a.builder().LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	document, err := profile.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to export profile: %w", err)
	}

	ctx := cmd.Context()
	database, err := a.database(ctx, true)
	if err != nil {
		return err
	}
	defer database.Close()

	id, err := database.SaveProfileSnapshot(ctx, p.Contact.FullName, document)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Snapshot saved: %s\n", id)
	return nil
}

func runSnapshotGet(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid snapshot id: %w", err)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	database, err := a.database(ctx, true)
	if err != nil {
		return err
	}
	defer database.Close()

	snapshot, err := database.GetProfileSnapshot(ctx, id)
	if err != nil {
		return err
	}
	if snapshot == nil {
		return fmt.Errorf("snapshot not found: %s", id)
	}

	if snapshotOutputFile != "" {
		if err := os.WriteFile(snapshotOutputFile, snapshot.Document, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Snapshot written to %s\n", snapshotOutputFile)
		return nil
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(snapshot.Document))
	return nil
}

func runSnapshotList(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	database, err := a.database(ctx, true)
	if err != nil {
		return err
	}
	defer database.Close()

	snapshots, err := database.ListProfileSnapshots(ctx, snapshotLimit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCREATED")
	for _, s := range snapshots {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.FullName, s.CreatedAt.Format(time.DateTime))
	}
	return w.Flush()
}

func runSnapshotDelete(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid snapshot id: %w", err)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	database, err := a.database(ctx, true)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.DeleteProfileSnapshot(ctx, id); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Snapshot deleted: %s\n", id)
	return nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	database, err := a.database(ctx, true)
	if err != nil {
		return err
	}
	defer database.Close()

	records, err := database.ListGenerations(ctx, db.GenerationFilters{
		ProfileName: historyName,
		Status:      historyStatus,
		Limit:       snapshotLimit,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CREATED\tNAME\tTEMPLATE\tSTATUS\tOUTPUT")
	for _, r := range records {
		output := r.OutputPath
		if r.Status == db.StatusFailed {
			output = r.Error
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.CreatedAt.Format(time.DateTime), r.ProfileName, r.Template, r.Status, output)
	}
	return w.Flush()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Persist rankings and track scores over time",
	Long: `Snapshot stores the scored feed in a local SQLite database (store.path)
so rankings can be compared across runs. Use subcommands to save, list,
inspect a molecule's history, export or prune snapshots.`,
}

// --- save subcommand ---

var snapshotSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Fetch and score the feed, then store the ranking",
	RunE:  runSnapshotSave,
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	profiles, err := loadMolecules(ctx)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	snap, err := st.SaveSnapshot(ctx, appConfig.Feed.URL, profiles)
	if err != nil {
		return err
	}
	logger.WithField("snapshot", snap.ID).WithField("molecules", snap.Molecules).Info("snapshot saved")
	fmt.Printf("Saved snapshot %d (%d molecules)\n", snap.ID, snap.Molecules)
	return nil
}

// --- list subcommand ---

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snapshots, newest first",
	RunE:  runSnapshotList,
}

func runSnapshotList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	snaps, err := st.Snapshots(context.Background())
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("No snapshots saved.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-6s  %-20s  %9s  %s\n", "ID", "Taken", "Molecules", "Source")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
	for _, s := range snaps {
		fmt.Fprintf(os.Stdout, "%-6d  %-20s  %9d  %s\n",
			s.ID, s.TakenAt.Local().Format("2006-01-02 15:04:05"), s.Molecules, s.Source)
	}
	return nil
}

// --- history subcommand ---

var snapshotHistoryCmd = &cobra.Command{
	Use:   "history <molecule-id>",
	Short: "Show a molecule's rank and overall score across snapshots",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotHistory,
}

func runSnapshotHistory(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	points, err := st.History(context.Background(), args[0])
	if err != nil {
		return err
	}
	if len(points) == 0 {
		fmt.Printf("No snapshots contain %s.\n", args[0])
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-8s  %-20s  %4s  %7s  %6s\n", "Snapshot", "Taken", "Rank", "Overall", "Change")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 54))
	for i, pt := range points {
		change := "-"
		if i > 0 {
			change = fmt.Sprintf("%+.1f", pt.OverallScore-points[i-1].OverallScore)
		}
		fmt.Fprintf(os.Stdout, "%-8d  %-20s  %4d  %7.1f  %6s\n",
			pt.SnapshotID, pt.TakenAt.Local().Format("2006-01-02 15:04:05"), pt.Rank, pt.OverallScore, change)
	}
	return nil
}

// --- export subcommand ---

var snapshotExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export the latest snapshot to YAML or JSON",
	Long: `Export writes the newest snapshot and its ranked molecules to path
(default data/export.yaml). A .json extension selects JSON; anything else
is written as YAML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSnapshotExport,
}

func runSnapshotExport(cmd *cobra.Command, args []string) error {
	path := "data/export.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.ExportLatest(context.Background(), path); err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}

// --- prune subcommand ---

var snapshotPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest snapshots",
	RunE:  runSnapshotPrune,
}

func runSnapshotPrune(cmd *cobra.Command, args []string) error {
	keep, _ := cmd.Flags().GetInt("keep")
	if keep < 1 {
		return fmt.Errorf("--keep must be at least 1, got %d", keep)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.Prune(context.Background(), keep)
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d snapshot(s)\n", n)
	return nil
}

func init() {
	snapshotPruneCmd.Flags().Int("keep", 10, "number of newest snapshots to keep")

	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotHistoryCmd)
	snapshotCmd.AddCommand(snapshotExportCmd)
	snapshotCmd.AddCommand(snapshotPruneCmd)

	rootCmd.AddCommand(snapshotCmd)
}

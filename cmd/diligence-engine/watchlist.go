// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/diligence-engine/internal/report"
	"github.com/pdiddy/diligence-engine/internal/store"
	"github.com/pdiddy/diligence-engine/pkg/types"
)

var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Track molecules of interest",
	Long: `Watchlist keeps a list of molecule ids in the local database. Listing
shows each entry's rank and overall score from the latest snapshot, or from
the live feed with --live.`,
}

var watchlistAddCmd = &cobra.Command{
	Use:   "add <molecule-id>",
	Short: "Add a molecule to the watchlist or update its note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, _ := cmd.Flags().GetString("note")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.AddWatch(context.Background(), args[0], note); err != nil {
			return err
		}
		fmt.Printf("Watching %s\n", args[0])
		return nil
	},
}

var watchlistRemoveCmd = &cobra.Command{
	Use:   "remove <molecule-id>",
	Short: "Remove a molecule from the watchlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		removed, err := st.RemoveWatch(context.Background(), args[0])
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("%s is not on the watchlist", args[0])
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

var watchlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List watched molecules with their current rank",
	RunE:  runWatchlistList,
}

func runWatchlistList(cmd *cobra.Command, args []string) error {
	live, _ := cmd.Flags().GetBool("live")

	ctx, stop := signalContext()
	defer stop()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.Watchlist(ctx)
	if err != nil {
		return err
	}

	var profiles []types.MoleculeProfile
	if live {
		profiles, err = loadMolecules(ctx)
		if err != nil {
			return err
		}
	} else {
		_, profiles, err = st.LatestSnapshot(ctx)
		if err != nil && !errors.Is(err, store.ErrNoSnapshot) {
			return err
		}
	}

	report.FormatWatchlist(entries, profiles, os.Stdout)
	return nil
}

func init() {
	watchlistAddCmd.Flags().String("note", "", "free-text note stored with the entry")
	watchlistListCmd.Flags().Bool("live", false, "rank against the live feed instead of the latest snapshot")

	watchlistCmd.AddCommand(watchlistAddCmd)
	watchlistCmd.AddCommand(watchlistRemoveCmd)
	watchlistCmd.AddCommand(watchlistListCmd)

	rootCmd.AddCommand(watchlistCmd)
}

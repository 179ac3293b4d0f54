package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grupomymce/sitemap-tools/internal/storage"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded generate and verify runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.NewStore(cfg.Database.Driver, cfg.Database.URL)
		if err != nil {
			return err
		}
		if store == nil {
			return errors.New("run history is disabled: set database.driver")
		}
		defer store.Close()

		runs, err := store.ListRuns(cmd.Context(), historyLimit, 0)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		w := stdout(cmd)
		for _, run := range runs {
			status := "in sync"
			if !run.InSync() {
				status = fmt.Sprintf("missing %d, extra %d", len(run.Missing), len(run.Extra))
			}
			fmt.Fprintf(w, "%s  %-8s  %4d pages  %s  %s\n",
				run.CreatedAt.Format("2006-01-02 15:04:05"), run.Kind, run.PageCount, status, run.ID)
			for _, p := range run.Missing {
				fmt.Fprintf(w, "    - missing %s\n", p)
			}
			for _, p := range run.Extra {
				fmt.Fprintf(w, "    - extra   %s\n", p)
			}
		}
		if len(runs) == 0 {
			fmt.Fprintln(w, "No runs recorded.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to show")
}

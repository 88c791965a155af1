package main

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-thanawi/internal/events"
	"github.com/p-n-ai/pai-thanawi/internal/platform/config"
	"github.com/p-n-ai/pai-thanawi/internal/platform/database"
)

func newStatsCmd(dbCfg config.DatabaseConfig) *cobra.Command {
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count usage events by type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if url, _ := cmd.Flags().GetString("database-url"); url != "" {
				dbCfg.URL = url
			}
			if dbCfg.URL == "" {
				return errors.New("no database configured (set LEARN_DATABASE_URL or --database-url)")
			}

			db, err := database.New(cmd.Context(), dbCfg)
			if err != nil {
				return err
			}
			defer db.Close()

			counts, err := events.NewPostgres(db).CountByType(cmd.Context(), time.Now().Add(-since))
			if err != nil {
				return err
			}
			printCounts(cmd, since, counts)
			return nil
		},
	}

	cmd.Flags().DurationVar(&since, "since", 24*time.Hour, "Look-back window")
	cmd.Flags().String("database-url", "", "PostgreSQL URL (defaults to LEARN_DATABASE_URL)")

	return cmd
}

func printCounts(cmd *cobra.Command, since time.Duration, counts map[string]int64) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "events in the last %s:\n", since)
	if len(counts) == 0 {
		fmt.Fprintln(out, "  none")
		return
	}
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	slices.Sort(types)
	for _, t := range types {
		fmt.Fprintf(out, "  %-22s %d\n", t, counts[t])
	}
}

// Command paictl inspects the curriculum and question bank offline.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-thanawi/internal/curriculum"
	"github.com/p-n-ai/pai-thanawi/internal/platform/config"
	"github.com/p-n-ai/pai-thanawi/internal/questionbank"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults, err := config.Load()
	if err != nil {
		defaults = &config.Config{}
	}

	root := &cobra.Command{
		Use:          "paictl",
		Short:        "Admin tool for the secondary-school tutor",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Loader logs go to stderr so command output stays clean.
			level := slog.LevelWarn
			if v, _ := cmd.Flags().GetBool("verbose"); v {
				level = slog.LevelInfo
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	root.PersistentFlags().String("curriculum", defaults.Data.CurriculumPath, "Path to the curriculum document")
	root.PersistentFlags().String("bank", defaults.Data.QuestionBankPath, "Path to the question bank document")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log loader details")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newSampleCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newPromptCmd())
	root.AddCommand(newStatsCmd(defaults.Database))

	return root
}

func loadCurriculum(cmd *cobra.Command) (*curriculum.Store, error) {
	path, _ := cmd.Flags().GetString("curriculum")
	store, err := curriculum.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading curriculum: %w", err)
	}
	return store, nil
}

func loadBank(cmd *cobra.Command) (*questionbank.Bank, questionbank.Report, error) {
	path, _ := cmd.Flags().GetString("bank")
	bank, report, err := questionbank.Load(path)
	if err != nil {
		return nil, questionbank.Report{}, fmt.Errorf("loading question bank: %w", err)
	}
	return bank, report, nil
}

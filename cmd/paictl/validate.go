package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-thanawi/internal/curriculum"
	"github.com/p-n-ai/pai-thanawi/internal/questionbank"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the curriculum and question bank documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			store, err := loadCurriculum(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "curriculum: %d subjects\n", len(store.AllSubjects()))

			bank, report, err := loadBank(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "question bank: %d subjects, %d questions, %d dropped\n",
				report.Subjects, report.Records, len(report.Dropped))
			for _, d := range report.Dropped {
				fmt.Fprintf(out, "  dropped %s/%s[%d]: %s\n", d.Subject, d.Difficulty, d.Index, d.Reason)
			}

			known := make(map[string]bool)
			for _, s := range store.AllSubjects() {
				known[s] = true
			}
			var orphans int
			for _, s := range bank.Subjects() {
				if !known[s] {
					orphans++
					fmt.Fprintf(out, "  subject %q is in the bank but not in the curriculum\n", s)
				}
			}

			reportCoverage(out, store, bank)

			if len(report.Dropped) > 0 || orphans > 0 {
				return fmt.Errorf("%d invalid questions, %d unknown subjects", len(report.Dropped), orphans)
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}

// reportCoverage prints per-tier counts and warns about gaps that make
// generation return fewer questions than asked. Gaps do not fail validate.
func reportCoverage(out io.Writer, store *curriculum.Store, bank *questionbank.Bank) {
	for _, subject := range bank.Subjects() {
		counts := make([]string, 0, len(questionbank.Difficulties))
		for _, d := range questionbank.Difficulties {
			counts = append(counts, fmt.Sprintf("%s=%d", d, bank.Count(subject, d)))
		}
		fmt.Fprintf(out, "  %s: %s\n", subject, strings.Join(counts, " "))
		if bank.Count(subject, questionbank.DifficultyEasy) == 0 {
			fmt.Fprintf(out, "  warning: subject %q has no easy questions; empty tiers have nothing to fall back to\n", subject)
		}
	}

	var missing []string
	for _, s := range store.AllSubjects() {
		if !bank.HasSubject(s) {
			missing = append(missing, s)
		}
	}
	if len(missing) > 0 {
		fmt.Fprintf(out, "  %d curriculum subjects have no questions: %s\n", len(missing), strings.Join(missing, "، "))
	}
}

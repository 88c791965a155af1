package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-thanawi/internal/practice"
	"github.com/p-n-ai/pai-thanawi/internal/questionbank"
)

func newSampleCmd() *cobra.Command {
	var (
		subject    string
		difficulty string
		count      int
		seed       uint64
		answers    bool
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a random selection from the question bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bank, _, err := loadBank(cmd)
			if err != nil {
				return err
			}

			var rng *rand.Rand
			if cmd.Flags().Changed("seed") {
				rng = rand.New(rand.NewPCG(seed, seed))
			}

			pool := bank.Pool(subject, questionbank.Difficulty(difficulty))
			picked := questionbank.Sample(pool, count, rng)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s): %d of %d\n", subject, questionbank.Difficulty(difficulty).Label(), len(picked), len(pool))
			for i, r := range picked {
				fmt.Fprintf(out, "%d. %s\n", i+1, r.Question)
				for j, o := range r.Options {
					fmt.Fprintf(out, "   %s) %s\n", practice.OptionLabel(j), o)
				}
				if answers {
					fmt.Fprintf(out, "   = %s\n", r.Correct)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject name as written in the bank")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(questionbank.DifficultyEasy), "easy, medium or hard")
	cmd.Flags().IntVarP(&count, "count", "n", 5, "Number of questions")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible selection")
	cmd.Flags().BoolVar(&answers, "answers", false, "Print correct answers")
	cmd.MarkFlagRequired("subject")

	return cmd
}

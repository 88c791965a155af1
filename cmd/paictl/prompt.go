package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-thanawi/internal/tutor"
)

func newPromptCmd() *cobra.Command {
	var req tutor.AskRequest

	cmd := &cobra.Command{
		Use:   "prompt [question]",
		Short: "Print the prompt a question would produce, without calling a provider",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadCurriculum(cmd)
			if err != nil {
				return err
			}

			req.Question = strings.Join(args, " ")
			prompt, err := tutor.NewService(tutor.Config{Curriculum: store}).Preview(req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Level, "level", "", "1st, 2nd or 3rd")
	cmd.Flags().StringVar(&req.Branch, "branch", "", "Branch key for 2nd and 3rd year")
	cmd.Flags().StringVar(&req.Subject, "subject", "", "Subject name")
	cmd.MarkFlagRequired("level")

	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pai-thanawi/internal/practice"
)

func newExportCmd() *cobra.Command {
	var (
		req practice.GenerateRequest
		out string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate a question set and write it as an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := loadCurriculum(cmd)
			if err != nil {
				return err
			}
			bank, _, err := loadBank(cmd)
			if err != nil {
				return err
			}

			svc := practice.NewService(practice.Config{Curriculum: store, Bank: bank})
			set, err := svc.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			f, err := practice.ExportWorkbook(set)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := f.SaveAs(out); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d questions to %s\n", set.QuestionCount, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.UserType, "user-type", practice.UserTeacher, "teacher or student")
	cmd.Flags().StringVar(&req.Level, "level", "", "1st, 2nd or 3rd")
	cmd.Flags().StringVar(&req.Branch, "branch", "", "Branch key for 2nd and 3rd year")
	cmd.Flags().StringVar(&req.Subject, "subject", "", "Subject name")
	cmd.Flags().IntVarP(&req.QuestionCount, "count", "n", 5, "Number of questions (1-10)")
	cmd.Flags().StringVar(&req.Difficulty, "difficulty", "easy", "easy, medium or hard")
	cmd.Flags().StringVarP(&out, "out", "o", "questions.xlsx", "Output file")
	cmd.MarkFlagRequired("level")
	cmd.MarkFlagRequired("subject")

	return cmd
}

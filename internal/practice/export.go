package practice

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	QuestionsSheet = "الأسئلة"
	AnswersSheet   = "الإجابات"
)

// ExportWorkbook writes set to a right-to-left workbook. The answers sheet
// exists only for teacher sets.
func ExportWorkbook(set Set) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", QuestionsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E7FF"}},
		Alignment: &excelize.Alignment{Horizontal: "center", ReadingOrder: 2},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}

	title := []any{set.Subject, set.LevelLabel, set.BranchLabel, set.DifficultyLabel}
	questionRows := [][]any{
		title,
		{"رقم", "السؤال", "الخيارات"},
	}
	for i, r := range set.Records {
		var opts []string
		for j, o := range r.Options {
			opts = append(opts, OptionLabel(j)+") "+o)
		}
		questionRows = append(questionRows, []any{i + 1, r.Question, strings.Join(opts, "\n")})
	}
	if err := writeSheet(f, QuestionsSheet, questionRows, header, []float64{8, 70, 40}); err != nil {
		f.Close()
		return nil, err
	}

	if set.Teacher {
		if _, err := f.NewSheet(AnswersSheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("create answers sheet: %w", err)
		}
		answerRows := [][]any{
			title,
			{"رقم", "الإجابة الصحيحة", "الحل"},
		}
		for i, r := range set.Records {
			answerRows = append(answerRows, []any{i + 1, r.Correct, r.Solution})
		}
		if err := writeSheet(f, AnswersSheet, answerRows, header, []float64{8, 30, 80}); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// writeSheet fills rows from A1, styles the column header row and sets
// widths left to right.
func writeSheet(f *excelize.File, sheet string, rows [][]any, headerStyle int, widths []float64) error {
	rtl := true
	if err := f.SetSheetView(sheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return fmt.Errorf("sheet view %s: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}

	if err := f.SetRowStyle(sheet, 2, 2, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("width %s column %s: %w", sheet, col, err)
		}
	}
	return nil
}

package practice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/p-n-ai/pai-thanawi/internal/questionbank"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Template names.
const (
	questionsTemplate     = "questions"
	answerKeyTemplate     = "answer_key"
	solutionsTemplate     = "solutions"
	markingSchemeTemplate = "marking_scheme"
)

var fragments = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

type optionView struct {
	Label   string
	Text    string
	Correct bool
}

type questionView struct {
	Number   int
	Text     string
	Options  []optionView
	Correct  string
	Solution string
}

// newQuestionViews numbers the selection from 1. The correct option is
// flagged only when revealAnswers is set.
func newQuestionViews(records []questionbank.Record, revealAnswers bool) []questionView {
	views := make([]questionView, len(records))
	for i, r := range records {
		v := questionView{
			Number:   i + 1,
			Text:     r.Question,
			Correct:  r.Correct,
			Solution: r.Solution,
		}
		if r.IsMCQ() {
			v.Options = make([]optionView, len(r.Options))
			for j, opt := range r.Options {
				v.Options[j] = optionView{
					Label:   OptionLabel(j),
					Text:    opt,
					Correct: revealAnswers && opt == r.Correct,
				}
			}
		}
		views[i] = v
	}
	return views
}

// OptionLabel returns the alphabetic label of the i-th option: a, b, c...
func OptionLabel(i int) string {
	return string(rune('a' + i))
}

// PointsPerQuestion formats 100/n with two decimals, or "N/A" when n is 0.
func PointsPerQuestion(n int) string {
	if n <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", 100/float64(n))
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

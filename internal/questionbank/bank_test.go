package questionbank_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/p-n-ai/pai-thanawi/internal/datafile"
	"github.com/p-n-ai/pai-thanawi/internal/questionbank"
)

const testBankJSON = `{
  "questions_bank": {
    "الرياضيات": {
      "easy": [
        {"type": "mcq", "question": "2+2؟", "options": ["3", "4", "5"], "correct": "4", "solution": "2+2=4"},
        {"type": "open", "question": "عرف الدالة", "correct": "علاقة", "solution": "تعريف"},
        {"type": "mcq", "question": "3×3؟", "options": ["6", "9"], "correct": "9", "solution": "3×3=9"}
      ],
      "medium": [],
      "hard": [
        {"type": "mcq", "question": "مشتقة x²؟", "options": ["x", "2x"], "correct": "2x", "solution": "قاعدة القوة"}
      ]
    },
    "الفلسفة": {
      "medium": [
        {"type": "essay", "question": "ما الحرية؟", "correct": "مفهوم", "solution": "مقالة"}
      ]
    }
  }
}`

func newTestBank(t *testing.T) *questionbank.Bank {
	t.Helper()
	doc, err := questionbank.Parse([]byte(testBankJSON), datafile.FormatJSON)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	bank, report := questionbank.NewBank(doc)
	if len(report.Dropped) != 0 {
		t.Fatalf("NewBank() dropped %v", report.Dropped)
	}
	return bank
}

func TestBank_Pool(t *testing.T) {
	bank := newTestBank(t)

	tests := []struct {
		name       string
		subject    string
		difficulty questionbank.Difficulty
		want       int
	}{
		{"exact tier", "الرياضيات", questionbank.DifficultyEasy, 3},
		{"hard tier", "الرياضيات", questionbank.DifficultyHard, 1},
		{"empty tier falls back to easy", "الرياضيات", questionbank.DifficultyMedium, 3},
		{"unknown difficulty falls back to easy", "الرياضيات", "legendary", 3},
		{"no easy tier to fall back to", "الفلسفة", questionbank.DifficultyHard, 0},
		{"unknown subject", "الكيمياء", questionbank.DifficultyEasy, 0},
		{"subject is trimmed", "  الفلسفة ", questionbank.DifficultyMedium, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bank.Pool(tt.subject, tt.difficulty); len(got) != tt.want {
				t.Errorf("Pool(%q, %q) len = %d, want %d", tt.subject, tt.difficulty, len(got), tt.want)
			}
		})
	}
}

func TestBank_Count(t *testing.T) {
	bank := newTestBank(t)

	if got := bank.Count("الرياضيات", questionbank.DifficultyMedium); got != 0 {
		t.Errorf("Count(medium) = %d, want 0 without fallback", got)
	}
	if got := bank.Count("الرياضيات", questionbank.DifficultyEasy); got != 3 {
		t.Errorf("Count(easy) = %d, want 3", got)
	}
}

func TestBank_Subjects(t *testing.T) {
	bank := newTestBank(t)

	got := bank.Subjects()
	if len(got) != 2 {
		t.Fatalf("Subjects() = %v, want 2", got)
	}
	if !bank.HasSubject("الفلسفة") || bank.HasSubject("التاريخ") {
		t.Error("HasSubject() mismatch")
	}
}

func TestNewBank_DropsInconsistentMCQ(t *testing.T) {
	doc := questionbank.Document{QuestionsBank: map[string]map[questionbank.Difficulty][]questionbank.Record{
		"الرياضيات": {
			questionbank.DifficultyEasy: {
				{Type: "mcq", Question: "ok", Options: []string{"a", "b"}, Correct: "a"},
				{Type: "mcq", Question: "wrong key", Options: []string{"a", "b"}, Correct: "c"},
				{Type: "mcq", Question: "no options", Correct: "a"},
				{Type: "open", Question: "stray options", Options: []string{"x"}, Correct: "y"},
			},
		},
	}}

	bank, report := questionbank.NewBank(doc)

	if len(report.Dropped) != 2 {
		t.Fatalf("Dropped = %d, want 2: %v", len(report.Dropped), report.Dropped)
	}
	if report.Dropped[0].Index != 1 || report.Dropped[1].Index != 2 {
		t.Errorf("Dropped indexes = %d, %d, want 1, 2", report.Dropped[0].Index, report.Dropped[1].Index)
	}
	if report.Records != 2 {
		t.Errorf("Records = %d, want 2", report.Records)
	}

	pool := bank.Pool("الرياضيات", questionbank.DifficultyEasy)
	if len(pool) != 2 {
		t.Fatalf("pool len = %d, want 2", len(pool))
	}
	if pool[1].Options != nil {
		t.Errorf("non multiple-choice record kept options %v", pool[1].Options)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := questionbank.Load(filepath.Join(t.TempDir(), "missing.json"))

	var loadErr *questionbank.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Load() error = %v, want *LoadError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	os.WriteFile(path, []byte(`{"questions_bank": {"الرياضيات": {"trivial": []}}}`), 0o644)

	_, _, err := questionbank.Load(path)

	var schemaErr *datafile.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Load() error = %v, want *datafile.SchemaError", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	os.WriteFile(path, []byte(`
questions_bank:
  الفيزياء والكيمياء:
    easy:
      - type: mcq
        question: وحدة القوة؟
        options: [نيوتن, جول]
        correct: نيوتن
        solution: النيوتن وحدة القوة
`), 0o644)

	bank, report, err := questionbank.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if report.Records != 1 {
		t.Errorf("Records = %d, want 1", report.Records)
	}
	if got := bank.Pool("الفيزياء والكيمياء", questionbank.DifficultyHard); len(got) != 1 {
		t.Errorf("Pool(hard) len = %d, want 1 via easy fallback", len(got))
	}
}

func TestShippedQuestionBank(t *testing.T) {
	bank, report, err := questionbank.Load(filepath.Join("..", "..", "data", "questions-bank.json"))
	if err != nil {
		t.Fatalf("Load(data/questions-bank.json) error = %v", err)
	}
	if len(report.Dropped) != 0 {
		t.Errorf("shipped bank has invalid records: %v", report.Dropped)
	}
	if got := bank.Pool("الرياضيات", questionbank.DifficultyEasy); len(got) == 0 {
		t.Error("shipped bank has no easy الرياضيات questions")
	}
}

func TestDifficultyLabel(t *testing.T) {
	tests := map[questionbank.Difficulty]string{
		questionbank.DifficultyEasy:   "سهل",
		questionbank.DifficultyMedium: "متوسط",
		questionbank.DifficultyHard:   "صعب",
		"":                            "صعب",
	}
	for d, want := range tests {
		if got := d.Label(); got != want {
			t.Errorf("Difficulty(%q).Label() = %q, want %q", d, got, want)
		}
	}
}

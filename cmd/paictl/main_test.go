package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/pai-thanawi/internal/platform/config"
)

var (
	shippedCurriculum = filepath.Join("..", "..", "data", "curriculum.json")
	shippedBank       = filepath.Join("..", "..", "data", "questions-bank.json")
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LEARN_DATABASE_URL", "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--curriculum", shippedCurriculum, "--bank", shippedBank}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate_ShippedData(t *testing.T) {
	out, err := run(t, "validate")
	if err != nil {
		t.Fatalf("validate error = %v\n%s", err, out)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "ok") {
		t.Errorf("validate output = %q, want it to end with ok", out)
	}
}

func TestValidate_ReportsProblems(t *testing.T) {
	dir := t.TempDir()
	bank := filepath.Join(dir, "bank.json")
	os.WriteFile(bank, []byte(`{"questions_bank": {"علم الفلك": {"easy": [
		{"type": "mcq", "question": "س", "options": ["أ", "ب"], "correct": "ج"}
	]}}}`), 0o644)

	out, err := run(t, "--bank", bank, "validate")
	if err == nil {
		t.Fatal("validate should fail for a dropped question and an unknown subject")
	}
	if !strings.Contains(out, "dropped") || !strings.Contains(out, "علم الفلك") {
		t.Errorf("validate output missing details:\n%s", out)
	}
}

func TestValidate_WarnsAboutMissingEasyTier(t *testing.T) {
	dir := t.TempDir()
	bank := filepath.Join(dir, "bank.json")
	os.WriteFile(bank, []byte(`{"questions_bank": {"الرياضيات": {"medium": [
		{"type": "open", "question": "س", "correct": "ج", "solution": "ح"}
	]}}}`), 0o644)

	out, err := run(t, "--bank", bank, "validate")
	if err != nil {
		t.Fatalf("an empty tier is a warning, got error %v\n%s", err, out)
	}
	for _, want := range []string{
		"الرياضيات: easy=0 medium=1 hard=0",
		`warning: subject "الرياضيات" has no easy questions`,
		"curriculum subjects have no questions",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("validate output missing %q:\n%s", want, out)
		}
	}
}

func TestSample_Reproducible(t *testing.T) {
	first, err := run(t, "sample", "--subject", "الرياضيات", "--count", "3", "--seed", "42")
	if err != nil {
		t.Fatalf("sample error = %v", err)
	}
	second, err := run(t, "sample", "--subject", "الرياضيات", "--count", "3", "--seed", "42")
	if err != nil {
		t.Fatalf("sample error = %v", err)
	}
	if first != second {
		t.Errorf("same seed gave different selections:\n%s\n---\n%s", first, second)
	}
	if !strings.Contains(first, "1. ") {
		t.Errorf("sample printed no questions:\n%s", first)
	}
}

func TestSample_RequiresSubject(t *testing.T) {
	if _, err := run(t, "sample"); err == nil {
		t.Error("sample without --subject should fail")
	}
}

func TestExport_WritesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.xlsx")

	out, err := run(t, "export", "--level", "1st", "--subject", "الرياضيات", "--count", "2", "--out", path)
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("export output = %q, want the file path", out)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()
	if got := len(f.GetSheetList()); got != 2 {
		t.Errorf("teacher export has %d sheets, want 2", got)
	}
}

func TestExport_InvalidSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.xlsx")
	if _, err := run(t, "export", "--level", "2nd", "--subject", "الرياضيات", "--out", path); err == nil {
		t.Error("export without a branch for the second year should fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for an invalid selection")
	}
}

func TestPrompt(t *testing.T) {
	out, err := run(t, "prompt", "--level", "1st", "--subject", "الرياضيات", "ما", "هي", "الدالة؟")
	if err != nil {
		t.Fatalf("prompt error = %v", err)
	}
	if !strings.Contains(out, "سؤال الطالب:\nما هي الدالة؟") {
		t.Errorf("prompt output missing the question:\n%s", out)
	}
	if !strings.Contains(out, "هذا السؤال خارج المنهاج الجزائري للثانوي.") {
		t.Errorf("prompt output missing the refusal phrase:\n%s", out)
	}
}

func TestStats_NoDatabase(t *testing.T) {
	_, err := run(t, "stats")
	if err == nil || !strings.Contains(err.Error(), "no database configured") {
		t.Errorf("stats error = %v, want no database configured", err)
	}
}

func TestPrintCounts(t *testing.T) {
	cmd := newStatsCmd(configForTest())
	var out bytes.Buffer
	cmd.SetOut(&out)

	printCounts(cmd, 0, map[string]int64{"questions_generated": 2, "question_asked": 5})

	got := out.String()
	if strings.Index(got, "question_asked") > strings.Index(got, "questions_generated") {
		t.Errorf("counts should be sorted by type:\n%s", got)
	}
}

func configForTest() config.DatabaseConfig {
	return config.DatabaseConfig{}
}

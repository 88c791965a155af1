package curriculum_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/p-n-ai/pai-thanawi/internal/curriculum"
	"github.com/p-n-ai/pai-thanawi/internal/datafile"
)

const testCurriculumJSON = `{
  "curriculum": {
    "1st_year": {
      "name": "السنة الأولى ثانوي",
      "subjects": ["الرياضيات", "الفيزياء والكيمياء", "الأدب العربي"]
    },
    "2nd_year": {
      "branches": {
        "sciences": {"name": "علوم تجريبية", "subjects": ["الرياضيات", "العلوم الطبيعية", "الفيزياء والكيمياء"]},
        "letters": {"name": "آداب وفلسفة", "subjects": ["الأدب العربي", "الفلسفة"]}
      }
    },
    "3rd_year": {
      "branches": {
        "sciences": {"name": "علوم تجريبية", "subjects": ["الرياضيات", "الفلسفة"]}
      }
    }
  }
}`

func newTestStore(t *testing.T) *curriculum.Store {
	t.Helper()
	doc, err := curriculum.Parse([]byte(testCurriculumJSON), datafile.FormatJSON)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return curriculum.NewStore(doc)
}

func TestLoad_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "curriculum.json")
	os.WriteFile(path, []byte(testCurriculumJSON), 0o644)

	store, err := curriculum.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !store.Loaded() {
		t.Error("Loaded() = false after successful load")
	}
	if !store.HasSubject(curriculum.LevelFirst, "", "الرياضيات") {
		t.Error("first year should contain الرياضيات")
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "curriculum.yaml")
	os.WriteFile(path, []byte(`
curriculum:
  1st_year:
    subjects: [الرياضيات]
  2nd_year:
    branches:
      math:
        name: رياضيات
        subjects: [الرياضيات]
  3rd_year:
    branches:
      math:
        name: رياضيات
        subjects: [الرياضيات, الفلسفة]
`), 0o644)

	store, err := curriculum.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	name, ok := store.BranchName(curriculum.LevelThird, "math")
	if !ok || name != "رياضيات" {
		t.Errorf("BranchName(3rd, math) = (%q, %v), want (رياضيات, true)", name, ok)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := curriculum.Load(filepath.Join(t.TempDir(), "nope.json"))

	var loadErr *curriculum.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Load() error = %v, want *LoadError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "curriculum.json")
	// Second year has no branches.
	os.WriteFile(path, []byte(`{"curriculum": {
		"1st_year": {"subjects": ["الرياضيات"]},
		"2nd_year": {"subjects": ["الرياضيات"]},
		"3rd_year": {"branches": {"a": {"name": "A", "subjects": []}}}
	}}`), 0o644)

	_, err := curriculum.Load(path)

	var schemaErr *datafile.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Load() error = %v, want *datafile.SchemaError", err)
	}
}

func TestStore_BranchName(t *testing.T) {
	store := newTestStore(t)

	name, ok := store.BranchName(curriculum.LevelSecond, "letters")
	if !ok || name != "آداب وفلسفة" {
		t.Errorf("BranchName(2nd, letters) = (%q, %v), want (آداب وفلسفة, true)", name, ok)
	}
	if _, ok := store.BranchName(curriculum.LevelSecond, "missing"); ok {
		t.Error("BranchName(2nd, missing) should not be found")
	}
	if _, ok := store.BranchName(curriculum.LevelFirst, "sciences"); ok {
		t.Error("first year has no branches")
	}
}

func TestStore_Branches(t *testing.T) {
	store := newTestStore(t)

	branches := store.Branches(curriculum.LevelSecond)
	if len(branches) != 2 {
		t.Fatalf("Branches(2nd) = %d, want 2", len(branches))
	}
	if branches[0].Key != "letters" || branches[1].Key != "sciences" {
		t.Errorf("Branches(2nd) keys = [%s %s], want sorted [letters sciences]", branches[0].Key, branches[1].Key)
	}
	if got := store.Branches(curriculum.LevelFirst); got != nil {
		t.Errorf("Branches(1st) = %v, want nil", got)
	}
}

func TestStore_Subjects(t *testing.T) {
	store := newTestStore(t)

	first := store.Subjects(curriculum.LevelFirst, "ignored")
	if len(first) != 3 || first[0] != "الرياضيات" {
		t.Errorf("Subjects(1st) = %v, want document order starting with الرياضيات", first)
	}
	if got := store.Subjects(curriculum.LevelSecond, "letters"); len(got) != 2 {
		t.Errorf("Subjects(2nd, letters) = %v, want 2 subjects", got)
	}
	if got := store.Subjects(curriculum.LevelSecond, "missing"); got != nil {
		t.Errorf("Subjects(2nd, missing) = %v, want nil", got)
	}
}

func TestStore_AllSubjects(t *testing.T) {
	store := newTestStore(t)

	all := store.AllSubjects()
	if len(all) != 5 {
		t.Errorf("AllSubjects() = %v, want 5 distinct subjects", all)
	}
}

func TestEmpty(t *testing.T) {
	store := curriculum.Empty()
	if store.Loaded() {
		t.Error("Empty().Loaded() = true")
	}
	if got := store.AllSubjects(); len(got) != 0 {
		t.Errorf("Empty().AllSubjects() = %v, want none", got)
	}
}

func TestShippedCurriculum(t *testing.T) {
	store, err := curriculum.Load(filepath.Join("..", "..", "data", "curriculum.json"))
	if err != nil {
		t.Fatalf("Load(data/curriculum.json) error = %v", err)
	}
	if got := store.Validate("1st", "", "الرياضيات"); !got.Valid {
		t.Errorf("shipped curriculum rejects first-year الرياضيات: %q", got.Message)
	}
}

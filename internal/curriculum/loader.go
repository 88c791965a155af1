package curriculum

import (
	"fmt"
	"log/slog"

	"github.com/p-n-ai/pai-thanawi/internal/datafile"
)

var schema = datafile.MustCompile(documentSchema)

// LoadError reports a curriculum document that could not be read or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading curriculum %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads a curriculum document (JSON or YAML, by extension) and builds a
// Store from it.
func Load(path string) (*Store, error) {
	var doc Document
	if err := datafile.ReadFile(path, schema, &doc); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	store := NewStore(doc)
	slog.Info("curriculum loaded",
		"path", path,
		"subjects", len(store.AllSubjects()),
		"branches_2nd", len(store.Branches(LevelSecond)),
		"branches_3rd", len(store.Branches(LevelThird)),
	)
	return store, nil
}

// Parse decodes a curriculum document from memory.
func Parse(data []byte, format datafile.Format) (Document, error) {
	var doc Document
	if err := datafile.Decode(data, format, schema, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

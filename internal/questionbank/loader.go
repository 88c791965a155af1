package questionbank

import (
	"fmt"
	"log/slog"

	"github.com/p-n-ai/pai-thanawi/internal/datafile"
)

var schema = datafile.MustCompile(documentSchema)

// LoadError reports a question bank that could not be read or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading question bank %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads a question bank document (JSON or YAML, by extension).
func Load(path string) (*Bank, Report, error) {
	var doc Document
	if err := datafile.ReadFile(path, schema, &doc); err != nil {
		return nil, Report{}, &LoadError{Path: path, Err: err}
	}

	bank, report := NewBank(doc)
	for _, d := range report.Dropped {
		slog.Warn("skipping invalid question",
			"subject", d.Subject,
			"difficulty", d.Difficulty,
			"index", d.Index,
			"reason", d.Reason,
		)
	}
	slog.Info("question bank loaded",
		"path", path,
		"subjects", report.Subjects,
		"questions", report.Records,
		"dropped", len(report.Dropped),
	)
	return bank, report, nil
}

// Parse decodes a question bank document from memory.
func Parse(data []byte, format datafile.Format) (Document, error) {
	var doc Document
	if err := datafile.Decode(data, format, schema, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

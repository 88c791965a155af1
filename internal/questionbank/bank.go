// Package questionbank holds the read-only practice question bank and
// samples question sets from it.
package questionbank

import (
	"fmt"
	"slices"
	"sort"

	"github.com/p-n-ai/pai-thanawi/internal/curriculum"
)

// Bank is an immutable subject → difficulty → records index. Safe for
// concurrent reads.
type Bank struct {
	subjects map[string]map[Difficulty][]Record
}

// Dropped describes a record rejected while building a Bank.
type Dropped struct {
	Subject    string
	Difficulty Difficulty
	Index      int
	Reason     string
}

// Report summarises what NewBank kept and rejected.
type Report struct {
	Subjects int
	Records  int
	Dropped  []Dropped
}

// NewBank indexes doc. Multiple-choice records whose correct answer is not
// one of their options are dropped and listed in the report; options on
// non multiple-choice records are discarded.
func NewBank(doc Document) (*Bank, Report) {
	b := &Bank{subjects: make(map[string]map[Difficulty][]Record, len(doc.QuestionsBank))}
	var report Report

	for subject, tiers := range doc.QuestionsBank {
		key := curriculum.Normalize(subject)
		indexed := make(map[Difficulty][]Record, len(tiers))
		for difficulty, records := range tiers {
			kept := make([]Record, 0, len(records))
			for i, r := range records {
				if reason := checkRecord(r); reason != "" {
					report.Dropped = append(report.Dropped, Dropped{
						Subject:    subject,
						Difficulty: difficulty,
						Index:      i,
						Reason:     reason,
					})
					continue
				}
				if !r.IsMCQ() {
					r.Options = nil
				}
				kept = append(kept, r)
			}
			indexed[difficulty] = kept
			report.Records += len(kept)
		}
		b.subjects[key] = indexed
	}
	report.Subjects = len(b.subjects)

	return b, report
}

// Empty returns a bank with no subjects.
func Empty() *Bank {
	b, _ := NewBank(Document{})
	return b
}

// Pool returns the records for subject at difficulty. When that tier is
// empty the easy tier is used instead; an unknown subject yields nil. The
// returned slice is shared and must not be modified.
func (b *Bank) Pool(subject string, difficulty Difficulty) []Record {
	tiers, ok := b.subjects[curriculum.Normalize(subject)]
	if !ok {
		return nil
	}
	if pool := tiers[difficulty]; len(pool) > 0 {
		return pool
	}
	return tiers[DifficultyEasy]
}

// HasSubject reports whether the bank has any tier for subject.
func (b *Bank) HasSubject(subject string) bool {
	_, ok := b.subjects[curriculum.Normalize(subject)]
	return ok
}

// Subjects lists the subjects in the bank, sorted.
func (b *Bank) Subjects() []string {
	out := make([]string, 0, len(b.subjects))
	for s := range b.subjects {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of records stored for subject at exactly the
// given difficulty, without the easy fallback.
func (b *Bank) Count(subject string, difficulty Difficulty) int {
	return len(b.subjects[curriculum.Normalize(subject)][difficulty])
}

func checkRecord(r Record) string {
	if !r.IsMCQ() {
		return ""
	}
	if len(r.Options) == 0 {
		return "multiple-choice record has no options"
	}
	if !slices.Contains(r.Options, r.Correct) {
		return fmt.Sprintf("correct answer %q is not one of the options", r.Correct)
	}
	return ""
}

// Package curriculum holds the read-only level → branch → subject tree and
// validates student selections against it.
package curriculum

import (
	"sort"
)

// Store is an immutable, in-memory view of a curriculum document. It is safe
// for concurrent use without locking because nothing mutates it after
// NewStore returns.
type Store struct {
	doc      Document
	subjects map[Level]subjectSet            // first year
	branches map[Level]map[string]branchData // second and third year
}

type subjectSet map[string]struct{}

type branchData struct {
	name     string
	subjects subjectSet
}

// NewStore indexes doc for lookups. Names are normalised on the way in so
// that lookups with normalised input match.
func NewStore(doc Document) *Store {
	s := &Store{
		doc:      doc,
		subjects: make(map[Level]subjectSet),
		branches: make(map[Level]map[string]branchData),
	}

	for _, level := range Levels {
		entry, ok := doc.Curriculum[level.Key()]
		if !ok {
			continue
		}
		if !level.HasBranches() {
			s.subjects[level] = newSubjectSet(entry.Subjects)
			continue
		}
		branches := make(map[string]branchData, len(entry.Branches))
		for key, b := range entry.Branches {
			branches[Normalize(key)] = branchData{
				name:     b.Name,
				subjects: newSubjectSet(b.Subjects),
			}
		}
		s.branches[level] = branches
	}

	return s
}

// Empty returns a store with no levels populated. Every validation against
// it fails, which is how the service behaves when the document cannot be
// loaded.
func Empty() *Store {
	return NewStore(Document{})
}

// Document returns the document the store was built from. Callers must treat
// it as read-only.
func (s *Store) Document() Document {
	return s.doc
}

// Loaded reports whether any level has content.
func (s *Store) Loaded() bool {
	return len(s.subjects) > 0 || len(s.branches) > 0
}

// HasSubject reports whether subject belongs to the (level, branch) scope.
// The branch is ignored for the first year.
func (s *Store) HasSubject(level Level, branch, subject string) bool {
	set, ok := s.subjectSet(level, branch)
	if !ok {
		return false
	}
	_, found := set[Normalize(subject)]
	return found
}

// BranchName returns the display name of a branch.
func (s *Store) BranchName(level Level, branch string) (string, bool) {
	b, ok := s.branches[level][Normalize(branch)]
	if !ok {
		return "", false
	}
	return b.name, true
}

// Branches lists the branches of a level sorted by key.
func (s *Store) Branches(level Level) []BranchInfo {
	entry, ok := s.doc.Curriculum[level.Key()]
	if !ok || !level.HasBranches() {
		return nil
	}
	out := make([]BranchInfo, 0, len(entry.Branches))
	for key, b := range entry.Branches {
		out = append(out, BranchInfo{Key: key, Name: b.Name, Subjects: b.Subjects})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Subjects returns the subjects of the (level, branch) scope in document
// order. The branch is ignored for the first year.
func (s *Store) Subjects(level Level, branch string) []string {
	entry, ok := s.doc.Curriculum[level.Key()]
	if !ok {
		return nil
	}
	if !level.HasBranches() {
		return entry.Subjects
	}
	for key, b := range entry.Branches {
		if Normalize(key) == Normalize(branch) {
			return b.Subjects
		}
	}
	return nil
}

// AllSubjects returns every distinct subject name in the document, sorted.
func (s *Store) AllSubjects() []string {
	seen := make(subjectSet)
	for _, set := range s.subjects {
		for name := range set {
			seen[name] = struct{}{}
		}
	}
	for _, branches := range s.branches {
		for _, b := range branches {
			for name := range b.subjects {
				seen[name] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s *Store) subjectSet(level Level, branch string) (subjectSet, bool) {
	if !level.HasBranches() {
		set, ok := s.subjects[level]
		return set, ok
	}
	b, ok := s.branches[level][Normalize(branch)]
	if !ok {
		return nil, false
	}
	return b.subjects, true
}

func newSubjectSet(names []string) subjectSet {
	set := make(subjectSet, len(names))
	for _, n := range names {
		set[Normalize(n)] = struct{}{}
	}
	return set
}

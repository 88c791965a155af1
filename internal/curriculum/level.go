package curriculum

import "strings"

// Level identifies a secondary-school year.
type Level string

const (
	LevelFirst  Level = "1st"
	LevelSecond Level = "2nd"
	LevelThird  Level = "3rd"
)

// Levels lists the recognised levels in order.
var Levels = []Level{LevelFirst, LevelSecond, LevelThird}

// ParseLevel accepts the wire identifiers ("1st", "2nd", "3rd") and the
// spelled-out aliases ("first", "second", "third").
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1st", "first":
		return LevelFirst, true
	case "2nd", "second":
		return LevelSecond, true
	case "3rd", "third":
		return LevelThird, true
	default:
		return "", false
	}
}

// HasBranches reports whether subjects at this level are grouped by branch.
func (l Level) HasBranches() bool {
	return l == LevelSecond || l == LevelThird
}

// Key is the level's key in the curriculum document.
func (l Level) Key() string {
	return string(l) + "_year"
}

// Label is the full Arabic name of the level shown to users.
func (l Level) Label() string {
	switch l {
	case LevelFirst:
		return "السنة الأولى ثانوي"
	case LevelSecond:
		return "السنة الثانية ثانوي"
	case LevelThird:
		return "السنة الثالثة ثانوي (بكالوريا)"
	default:
		return ""
	}
}

// ShortName is the Arabic year name without the school qualifier.
func (l Level) ShortName() string {
	switch l {
	case LevelFirst:
		return "السنة الأولى"
	case LevelSecond:
		return "السنة الثانية"
	case LevelThird:
		return "السنة الثالثة"
	default:
		return ""
	}
}

package curriculum

import "fmt"

// Validation messages. Clients match on these strings, so they must not change.
const (
	MsgInvalidLevel    = "المستوى الدراسي غير صحيح"
	MsgBranchRequired  = "الشعبة مطلوبة للسنة الثانية والثالثة"
	MsgSubjectRequired = "يجب تحديد المادة"
	MsgUnknownBranch   = "الشعبة المحددة غير موجودة"
	MsgValid           = "تم التحقق بنجاح"
)

// SubjectNotFoundMessage names the rejected subject and the level searched.
func SubjectNotFoundMessage(subject string, level Level) string {
	return fmt.Sprintf("المادة \"%s\" غير موجودة في برنامج %s", subject, level.ShortName())
}

// Validate checks a (level, branch, subject) selection against the store.
// Checks run in a fixed order and the first failure wins. For the first year
// the branch is ignored entirely.
func (s *Store) Validate(level, branch, subject string) Result {
	lvl, ok := ParseLevel(level)
	if !ok {
		return Result{Message: MsgInvalidLevel}
	}

	branch = Normalize(branch)
	subject = Normalize(subject)

	if lvl.HasBranches() && branch == "" {
		return Result{Message: MsgBranchRequired}
	}

	if subject == "" {
		return Result{Message: MsgSubjectRequired}
	}

	if lvl.HasBranches() {
		if _, found := s.branches[lvl][branch]; !found {
			return Result{Message: MsgUnknownBranch}
		}
	}

	if !s.HasSubject(lvl, branch, subject) {
		return Result{Message: SubjectNotFoundMessage(subject, lvl)}
	}

	return Result{Valid: true, Message: MsgValid}
}

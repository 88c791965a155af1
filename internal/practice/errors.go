package practice

import "errors"

// Error messages shown to clients.
const (
	MsgMissingFields = "يجب تحديد جميع المعلومات المطلوبة"
	MsgCountRange    = "عدد الأسئلة يجب أن يكون بين 1 و 10"
)

// ErrMissingFields means userType, level, subject or questionCount was absent.
var ErrMissingFields = errors.New(MsgMissingFields)

// ValidationError carries a client-facing message for a rejected request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

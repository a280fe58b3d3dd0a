package domain

import "errors"

// Error kinds. Match with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrConstraint = errors.New("constraint error")
	ErrConflict   = errors.New("conflict error")
	ErrPolicy     = errors.New("policy error")
	ErrNotFound   = errors.New("not found")
)

// Error is a domain failure with a message fit for showing back on a form.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NewError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) error { return NewError(ErrValidation, message) }
func Constraint(message string) error { return NewError(ErrConstraint, message) }
func Conflict(message string) error   { return NewError(ErrConflict, message) }
func Policy(message string) error     { return NewError(ErrPolicy, message) }
func NotFound(message string) error   { return NewError(ErrNotFound, message) }

// KindName names the error kind for metrics and logs; "internal" for
// anything outside the taxonomy.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConstraint):
		return "constraint"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrPolicy):
		return "policy"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}

package model

import "github.com/pkg/errors"

// ErrorKind classifies a domain failure. The HTTP layer maps kinds to status codes.
type ErrorKind string

const (
	KindUnauthorized      ErrorKind = "unauthorized"
	KindForbidden         ErrorKind = "forbidden"
	KindValidation        ErrorKind = "validation"
	KindInvalidState      ErrorKind = "invalid_state"
	KindAlreadyClockedIn  ErrorKind = "already_clocked_in"
	KindNotClockedIn      ErrorKind = "not_clocked_in"
	KindAlreadyClockedOut ErrorKind = "already_clocked_out"
	KindNotFound          ErrorKind = "not_found"
	KindStoreUnavailable  ErrorKind = "store_unavailable"
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func ErrUnauthorized(msg string) error { return NewError(KindUnauthorized, msg) }
func ErrForbidden(msg string) error    { return NewError(KindForbidden, msg) }
func ErrValidation(msg string) error   { return NewError(KindValidation, msg) }
func ErrInvalidState(msg string) error { return NewError(KindInvalidState, msg) }
func ErrNotFound(msg string) error     { return NewError(KindNotFound, msg) }

var (
	ErrAlreadyClockedIn  = NewError(KindAlreadyClockedIn, "already clocked in today")
	ErrNotClockedIn      = NewError(KindNotClockedIn, "not clocked in today")
	ErrAlreadyClockedOut = NewError(KindAlreadyClockedOut, "already clocked out today")
	ErrStoreUnavailable  = NewError(KindStoreUnavailable, "record store unavailable")
)

// KindOf returns the kind of the first domain error in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err carries a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

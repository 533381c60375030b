package result

import "fmt"

// Kind classifies an Error so the transport layer can pick a status code
// without inspecting error codes or messages.
type Kind int

const (
	KindFailure Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "failure"
	}
}

// Error is the single error channel for the domain and service layers.
// Code is a stable machine-readable identifier ("Notes.NotFound"), Message
// is safe to show to clients.
type Error struct {
	Code    string
	Message string
	Kind    Kind
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func Failure(code, message string) *Error {
	return &Error{Code: code, Message: message, Kind: KindFailure}
}

func Validation(code, message string) *Error {
	return &Error{Code: code, Message: message, Kind: KindValidation}
}

func NotFound(code, message string) *Error {
	return &Error{Code: code, Message: message, Kind: KindNotFound}
}

func Conflict(code, message string) *Error {
	return &Error{Code: code, Message: message, Kind: KindConflict}
}

func Unauthorized(code, message string) *Error {
	return &Error{Code: code, Message: message, Kind: KindUnauthorized}
}

func Forbidden(code, message string) *Error {
	return &Error{Code: code, Message: message, Kind: KindForbidden}
}

// Result holds either a value or an *Error, never both.
type Result[T any] struct {
	value T
	err   *Error
}

// Void is the value type for operations that succeed without producing
// anything (delete).
type Void struct{}

func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

func Fail[T any](err *Error) Result[T] {
	if err == nil {
		err = Failure("Result.NilError", "failure constructed without an error")
	}
	return Result[T]{err: err}
}

func (r Result[T]) IsSuccess() bool { return r.err == nil }

// Value returns the success value. It panics when called on a failed result:
// callers must check IsSuccess or Err first.
func (r Result[T]) Value() T {
	if r.err != nil {
		panic("result: Value called on failed result: " + r.err.Error())
	}
	return r.value
}

// Err returns the error, or nil for a successful result.
func (r Result[T]) Err() *Error { return r.err }

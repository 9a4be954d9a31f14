package valstream

import (
	"errors"
	"fmt"

	"github.com/reoring/valstream/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	// A call arrived in a nesting context that does not permit it.
	CodeInvalidState = "invalid_state"
	// Nesting went deeper than MaxDepth.
	CodeDepthExceeded = "depth_exceeded"
	// End was reached while sequences or maps were still open.
	CodeUnterminated = "unterminated_structure"
	// A consumer declined a value that reached its Fmt fallback.
	CodeUnsupported = "unsupported"
	// Consumer- or producer-defined failure.
	CodeCustom = "custom"
)

// Sentinels for errors.Is. They match any *Error carrying the same code.
var (
	ErrInvalidState  = &Error{Code: CodeInvalidState}
	ErrDepthExceeded = &Error{Code: CodeDepthExceeded}
	ErrUnterminated  = &Error{Code: CodeUnterminated}
	ErrUnsupported   = &Error{Code: CodeUnsupported}
)

// Error is the failure value shared by producers, consumers and the protocol
// driver.
type Error struct {
	Code    string // One of the codes listed above.
	Message string // Optional: falls back to the translated code.
	Cause   error  // Optional: underlying error.
}

// Error renders the message followed by the cause, if any.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		if e.Cause != nil && e.Code == CodeCustom {
			return e.Cause.Error()
		}
		msg = i18n.T(e.Code, nil)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes the cause to errors.Is/As.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is a bare sentinel with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Cause == nil && t.Code == e.Code
}

// Msg builds a custom error from a plain message.
func Msg(msg string) *Error { return &Error{Code: CodeCustom, Message: msg} }

// Errorf builds a custom error from a format string. Errors wrapped with %w
// stay reachable through errors.Is/As.
func Errorf(format string, args ...any) *Error {
	return &Error{Code: CodeCustom, Cause: fmt.Errorf(format, args...)}
}

// Wrap turns a lower-level failure into a custom *Error. Existing *Error values
// are returned unchanged; nil stays nil.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Code: CodeCustom, Cause: err}
}

// Unsupported builds the error a consumer returns when its fallback declines
// a value, e.g. Unsupported("not a u64").
func Unsupported(msg string) *Error { return &Error{Code: CodeUnsupported, Message: msg} }

// AsError extracts an *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func invalidState(msg string) *Error { return &Error{Code: CodeInvalidState, Message: msg} }

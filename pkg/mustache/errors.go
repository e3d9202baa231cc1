package mustache

import (
	"errors"
	"fmt"
)

// Code identifies a rendering status. Zero is success, negative values
// are failures. Codes at or below CodeUserBase are reserved for data
// models; the engine never produces them and propagates them verbatim.
type Code int

const (
	CodeOK              Code = 0
	CodeSystem          Code = -1
	CodeUnexpectedEnd   Code = -2
	CodeEmptyTag        Code = -3
	CodeTagTooLong      Code = -4
	CodeBadSeparators   Code = -5
	CodeTooDeep         Code = -6
	CodeClosing         Code = -7
	CodeBadUnescapeTag  Code = -8
	CodeInvalidItf      Code = -9
	CodeItemNotFound    Code = -10
	CodePartialNotFound Code = -11

	// CodeUserBase is the first code available for data-model specific
	// errors, see UserCode.
	CodeUserBase Code = -100
)

// UserCode returns the nth data-model specific code, counting down
// from CodeUserBase.
func UserCode(n int) Code {
	return CodeUserBase - Code(n)
}

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeSystem:
		return "system error"
	case CodeUnexpectedEnd:
		return "unexpected end"
	case CodeEmptyTag:
		return "empty tag"
	case CodeTagTooLong:
		return "tag too long"
	case CodeBadSeparators:
		return "bad separators"
	case CodeTooDeep:
		return "too deep"
	case CodeClosing:
		return "bad closing"
	case CodeBadUnescapeTag:
		return "bad unescape tag"
	case CodeInvalidItf:
		return "invalid interface"
	case CodeItemNotFound:
		return "item not found"
	case CodePartialNotFound:
		return "partial not found"
	default:
		return fmt.Sprintf("error %d", int(c))
	}
}

// RenderError represents a rendering failure with a stable code and,
// when the failure was detected while scanning template text, the
// position of the offending tag.
type RenderError struct {
	Code    Code
	Message string
	Line    int
	Column  int
	cause   error
}

func (e *RenderError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("render error at line %d, column %d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a RenderError with the same code, so
// sentinel values such as ErrItemNotFound work with errors.Is.
func (e *RenderError) Is(target error) bool {
	var re *RenderError
	if !errors.As(target, &re) {
		return false
	}
	return e.Code == re.Code
}

// NewRenderError creates a new render error with the given code.
func NewRenderError(code Code, message string) error {
	return &RenderError{
		Code:    code,
		Message: message,
	}
}

// newRenderErrorAt creates a render error carrying template position
// information.
func newRenderErrorAt(code Code, message string, line, column int) error {
	return &RenderError{
		Code:    code,
		Message: message,
		Line:    line,
		Column:  column,
	}
}

// newSystemError wraps an underlying I/O or environment failure so
// callers can distinguish "bad template" from "bad I/O".
func newSystemError(cause error) error {
	return &RenderError{
		Code:    CodeSystem,
		Message: cause.Error(),
		cause:   cause,
	}
}

// Sentinel errors a data model can return from its callbacks.
var (
	ErrItemNotFound    = NewRenderError(CodeItemNotFound, "item not found")
	ErrPartialNotFound = NewRenderError(CodePartialNotFound, "partial not found")
)

// CodeOf returns the status code carried by err. A nil error maps to
// CodeOK; errors that carry no code map to CodeSystem.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var re *RenderError
	if errors.As(err, &re) {
		return re.Code
	}
	return CodeSystem
}

// IsRenderError checks if an error is a render error.
func IsRenderError(err error) bool {
	var re *RenderError
	return errors.As(err, &re)
}

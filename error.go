package litua

import (
	"github.com/juju/errors"
)

// UnbalancedParenthesesError is raised when a `}` finds no open scope to
// close. A raw string whose closing delimiter never appears is reported as
// an UnexpectedEOFError instead.
type UnbalancedParenthesesError struct {
	errors.Err
	// Offset is the byte offset of the offending `}`.
	Offset int
}

// NewUnbalancedParenthesesError builds an UnbalancedParenthesesError at the
// given offset, annotated with reason (e.g. "unmatched closing brace").
func NewUnbalancedParenthesesError(offset int, reason string) error {
	err := errors.NewErr("unbalanced parentheses at byte %d: %s", offset, reason)
	err.SetLocation(1)
	return &UnbalancedParenthesesError{Err: err, Offset: offset}
}

// IsUnbalancedParentheses reports whether err is (or wraps) an
// UnbalancedParenthesesError.
func IsUnbalancedParentheses(err error) bool {
	_, ok := errors.Cause(err).(*UnbalancedParenthesesError)
	return ok
}

// InvalidSyntaxError covers the lexer's remaining rejection rules: an
// immediate `{}`, an empty argument key, an unexpected character after an
// argument-close or a raw-string end run, and an over-length raw delimiter.
type InvalidSyntaxError struct {
	errors.Err
	Offset int
}

// NewInvalidSyntaxError builds an InvalidSyntaxError at the given offset.
func NewInvalidSyntaxError(offset int, reason string) error {
	err := errors.NewErr("invalid syntax at byte %d: %s", offset, reason)
	err.SetLocation(1)
	return &InvalidSyntaxError{Err: err, Offset: offset}
}

// IsInvalidSyntax reports whether err is (or wraps) an InvalidSyntaxError.
func IsInvalidSyntax(err error) bool {
	_, ok := errors.Cause(err).(*InvalidSyntaxError)
	return ok
}

// UnexpectedTokenError is raised by the parser when it sees a token its
// current production forbids.
type UnexpectedTokenError struct {
	errors.Err
	Got      Token
	Expected string
}

// NewUnexpectedTokenError builds an UnexpectedTokenError.
func NewUnexpectedTokenError(got Token, expected string) error {
	err := errors.NewErr("unexpected token %s, expected %s", got, expected)
	err.SetLocation(1)
	return &UnexpectedTokenError{Err: err, Got: got, Expected: expected}
}

// IsUnexpectedToken reports whether err is (or wraps) an UnexpectedTokenError.
func IsUnexpectedToken(err error) bool {
	_, ok := errors.Cause(err).(*UnexpectedTokenError)
	return ok
}

// UnexpectedEOFError is raised when the lexer or parser stream ends
// mid-production.
type UnexpectedEOFError struct {
	errors.Err
	Offset int
}

// NewUnexpectedEOFError builds an UnexpectedEOFError at the given offset.
func NewUnexpectedEOFError(offset int) error {
	err := errors.NewErr("unexpected end of file at byte %d", offset)
	err.SetLocation(1)
	return &UnexpectedEOFError{Err: err, Offset: offset}
}

// IsUnexpectedEOF reports whether err is (or wraps) an UnexpectedEOFError.
func IsUnexpectedEOF(err error) bool {
	_, ok := errors.Cause(err).(*UnexpectedEOFError)
	return ok
}

// offsetOf extracts the single byte offset carried by a core error kind, or
// -1 if err carries a range instead (see Diagnostic in diag.go).
func offsetOf(err error) (offset int, ok bool) {
	switch e := errors.Cause(err).(type) {
	case *UnbalancedParenthesesError:
		return e.Offset, true
	case *InvalidSyntaxError:
		return e.Offset, true
	case *UnexpectedEOFError:
		return e.Offset, true
	}
	return -1, false
}

// rangeOf extracts the (start, end) byte range carried by an
// UnexpectedTokenError whose offending token has a range payload.
func rangeOf(err error) (start, end int, ok bool) {
	e, isTok := errors.Cause(err).(*UnexpectedTokenError)
	if !isTok || !e.Got.Range() {
		return 0, 0, false
	}
	return e.Got.Start, e.Got.End, true
}

package litua

import (
	"fmt"

	"github.com/juju/errors"
)

// Diagnostic is the presentation form of an error: a core lexer/parser
// error resolved against a Source's line index into something fit for
// display. It carries either a single point location or a (start, end)
// range, mirroring whichever payload the originating error had.
type Diagnostic struct {
	Filepath string
	Message  string

	HasPoint bool
	Line     int // 1-based for display
	Col      int // 1-based, in chars, for display
	ByteCol  int // 1-based, in bytes, for display

	HasRange  bool
	RangeLine int
	RangeCol  int
	Start     int
	End       int

	cause error
}

// Unwrap exposes the original core error so callers can still use
// IsUnbalancedParentheses and friends against a Diagnostic.
func (d *Diagnostic) Unwrap() error { return d.cause }

// Cause returns the original core error; errors.Cause, which those
// predicates use, resolves a Diagnostic through it.
func (d *Diagnostic) Cause() error { return errors.Cause(d.cause) }

func (d *Diagnostic) Error() string {
	if d.HasRange {
		return fmt.Sprintf("%s:%d:%d: %s", d.Filepath, d.RangeLine, d.RangeCol, d.Message)
	}
	if d.HasPoint {
		return fmt.Sprintf("%s:%d:%d: %s", d.Filepath, d.Line, d.Col, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Filepath, d.Message)
}

// Format resolves a core lexer/parser error against src into a presentation
// form carrying filepath, line and column. It is the only place in this
// package that touches a lineIndex.
func Format(src *Source, err error) *Diagnostic {
	d := &Diagnostic{Filepath: src.Filepath, Message: errors.Cause(err).Error(), cause: err}

	li := newLineIndex(src.Text)

	if start, end, ok := rangeOf(err); ok {
		line, col, _ := li.Locate(start)
		d.HasRange = true
		d.RangeLine = line + 1
		d.RangeCol = col + 1
		d.Start = start
		d.End = end
		return d
	}

	if offset, ok := offsetOf(err); ok {
		line, col, byteCol := li.Locate(offset)
		d.HasPoint = true
		d.Line = line + 1
		d.Col = col + 1
		d.ByteCol = byteCol + 1
		return d
	}

	return d
}

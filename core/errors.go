package core

import (
	"fmt"

	"github.com/vuuvv/errors"
)

// SyntaxError indicates malformed schema text. Compilation never returns a
// partial tree: the first syntax error aborts the whole compile.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error on line %d: %s", e.Line, e.Message)
}

func NewSyntaxError(line int, format string, args ...any) error {
	return errors.WithStack(&SyntaxError{Line: line, Message: fmt.Sprintf(format, args...)})
}

// LayoutError indicates a structurally valid schema whose placement cannot
// be resolved (misaligned bitfields, seeks that break array strides).
type LayoutError struct {
	Node    string
	Message string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("layout error at %s: %s", e.Node, e.Message)
}

func NewLayoutError(node string, format string, args ...any) error {
	return errors.WithStack(&LayoutError{Node: node, Message: fmt.Sprintf(format, args...)})
}

// OutOfBoundsError covers both array index overruns and byte ranges past the
// end of a memory map.
type OutOfBoundsError struct {
	Offset int
	Length int
	Limit  int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("range [%d, %d) out of bounds, limit %d", e.Offset, e.Offset+e.Length, e.Limit)
}

func NewOutOfBoundsError(offset, length, limit int) error {
	return errors.WithStack(&OutOfBoundsError{Offset: offset, Length: length, Limit: limit})
}

// TypeMismatchError indicates navigation to a name a record does not declare,
// or a value of the wrong shape for the addressed element.
type TypeMismatchError struct {
	Name    string
	Message string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch on %s: %s", e.Name, e.Message)
}

func NewTypeMismatchError(name string, format string, args ...any) error {
	return errors.WithStack(&TypeMismatchError{Name: name, Message: fmt.Sprintf(format, args...)})
}

// EncodingError indicates a value that cannot be represented by the target
// field. The backing store is never touched on this path.
type EncodingError struct {
	Name    string
	Message string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode %s: %s", e.Name, e.Message)
}

func NewEncodingError(name string, format string, args ...any) error {
	return errors.WithStack(&EncodingError{Name: name, Message: fmt.Sprintf(format, args...)})
}

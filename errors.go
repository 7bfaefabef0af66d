package ini

import (
	"fmt"
	"reflect"
)

// ParseError represents a single error raised while reading a document.
// Line is the physical line the offending logical line started on.
type ParseError struct {
	Message string
	Line    int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ini: parse error at line %d: %s", e.Line, e.Message)
}

// An IOError wraps a failure of the underlying stream. Unlike parse errors
// it is always fatal to the read or write operation.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("ini: %s: %s", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// A MarshalerError represents an error while marshaling a Go value.
type MarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *MarshalerError) Error() string {
	return "ini: error marshaling type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *MarshalerError) Unwrap() error { return e.Err }

// An UnmarshalerError represents an error while unmarshaling into a Go
// value.
type UnmarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *UnmarshalerError) Error() string {
	return "ini: error unmarshaling into type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }

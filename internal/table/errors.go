package table

import (
	"errors"
	"fmt"
)

var (
	ErrNoColumns       = errors.New("at least one column name is required")
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrColumnCount     = errors.New("field count does not match column count")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrTextColumn      = errors.New("column holds text, not numbers")
)

// ParseError reports where a load failed.
type ParseError struct {
	Line   int    // 1-based line number
	Column string // column name, empty for count mismatches
	Token  string // offending token, empty for count mismatches
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d, column %q: invalid number %q: %v", e.Line, e.Column, e.Token, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

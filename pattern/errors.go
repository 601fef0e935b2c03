package pattern

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPattern is returned when the input holds no characters.
	ErrEmptyPattern = errors.New("empty pattern")

	// ErrUnrecognizedPosition is wrapped by UnrecognizedPositionError.
	ErrUnrecognizedPosition = errors.New("no pattern element matches")

	// ErrSplitLiteral is wrapped by SplitLiteralError.
	ErrSplitLiteral = errors.New("special token split across text runs")
)

// PositionError is an error that refers to a location in the pattern
// source. Unwrap returns the error without the location.
type PositionError interface {
	error
	GetPosition() Position
	Unwrap() error
}

var (
	_ PositionError = (*UnrecognizedPositionError)(nil)
	_ PositionError = (*SplitLiteralError)(nil)
)

// UnrecognizedPositionError reports a position at which no rule, including
// text, can produce an element.
type UnrecognizedPositionError struct {
	Pos Position
}

func (e *UnrecognizedPositionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Pos, ErrUnrecognizedPosition)
}

func (e *UnrecognizedPositionError) GetPosition() Position { return e.Pos }
func (e *UnrecognizedPositionError) Unwrap() error         { return ErrUnrecognizedPosition }

// SplitLiteralError reports a special token that straddles the boundary
// between two runs delivered by a Producer.
type SplitLiteralError struct {
	Pos      Position // start of the special token
	Kind     Kind
	Boundary int // byte offset of the offending run boundary
}

func (e *SplitLiteralError) Error() string {
	return fmt.Sprintf("%s: %v: %s broken at offset %d", e.Pos, ErrSplitLiteral, e.Kind, e.Boundary)
}

func (e *SplitLiteralError) GetPosition() Position { return e.Pos }
func (e *SplitLiteralError) Unwrap() error         { return ErrSplitLiteral }

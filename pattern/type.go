package pattern

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant of a pattern element.
type Kind int

const (
	KindText         Kind = iota // literal text
	KindEllipsis                 // ...
	KindMetavariable             // $_
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindEllipsis:
		return "Ellipsis"
	case KindMetavariable:
		return "Metavariable"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the kind by name, for JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	if k < KindText || k > KindMetavariable {
		return nil, fmt.Errorf("unknown element kind %d", int(k))
	}
	return []byte(strings.ToLower(k.String())), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "text":
		*k = KindText
	case "ellipsis":
		*k = KindEllipsis
	case "metavariable":
		*k = KindMetavariable
	default:
		return fmt.Errorf("unknown element kind %q", b)
	}
	return nil
}

// Position is a location in the pattern source. Line and Column are
// 1-based; Column counts grapheme clusters.
type Position struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Element is a single token of a pattern.
type Element struct {
	Kind  Kind     `json:"kind" yaml:"kind"`
	Value string   `json:"value" yaml:"value"` // literal source of the element
	Pos   Position `json:"pos" yaml:"pos"`
}

// End returns the byte offset just after the element.
func (e Element) End() int { return e.Pos.Offset + len(e.Value) }

func (e Element) String() string {
	if e.Kind != KindText {
		return e.Kind.String()
	}
	escaped := strconv.Quote(e.Value)
	return fmt.Sprintf("Text(%s)", escaped)
}

// Pattern is the parsed, read-only form of a pattern string.
type Pattern struct {
	elements []Element
}

// Len returns the number of elements. It is always at least one.
func (p *Pattern) Len() int { return len(p.elements) }

// At returns the i-th element.
func (p *Pattern) At(i int) Element { return p.elements[i] }

// Elements returns a copy of the element sequence.
func (p *Pattern) Elements() []Element {
	out := make([]Element, len(p.elements))
	copy(out, p.elements)
	return out
}

// Kinds returns the kind of every element, in order.
func (p *Pattern) Kinds() []Kind {
	kinds := make([]Kind, len(p.elements))
	for i, e := range p.elements {
		kinds[i] = e.Kind
	}
	return kinds
}

// Source reassembles the original input from the element values.
func (p *Pattern) Source() string {
	var sb strings.Builder
	for _, e := range p.elements {
		sb.WriteString(e.Value)
	}
	return sb.String()
}

func (p *Pattern) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Pattern(%d elements):", len(p.elements))
	for i, e := range p.elements {
		fmt.Fprintf(&sb, "\n  %d: %s", i, e)
	}
	return sb.String()
}

/*
Package pattern provides the tokenizer/parser for the stsearch pattern
language: code fragments with wildcards, used as search queries.

# Pattern Syntax

A pattern is ordinary source text containing two special tokens:

 1. Ellipsis: ...
    Matches an arbitrary, unbounded span.

 2. Metavariable: $_
    Matches a single opaque unit. The metavariable is anonymous and
    captures nothing.

Everything else is literal text. There is no escape mechanism, so a
literal "..." or "$_" cannot be written as text.

# Element Kinds

Parsing produces a Pattern, an ordered and non-empty sequence of elements:

  - KindEllipsis: the literal "..."
  - KindMetavariable: the literal "$_"
  - KindText: a maximal run of characters that does not start an
    ellipsis or a metavariable

Every input character belongs to exactly one element, so joining the
element values reproduces the input (see Pattern.Source). Two Text elements
are never adjacent.

# Usage Example

	p, err := pattern.Parse("foo(...$_)")
	if err != nil {
		return err
	}
	for _, e := range p.Elements() {
		fmt.Println(e)
	}
	// Output:
	// Text("foo(")
	// Ellipsis
	// Metavariable
	// Text(")")

# Host Text Producers

Patterns usually come from a host lexer that hands over text in runs. A
Producer delivers those runs in document order and ParseProducer joins them.
A run boundary must never fall inside "..." or "$_"; ParseProducer reports
a SplitLiteralError when it does.

# Dialects

A Dialect describes how the special tokens are lowered back into host
source before a host parser sees them. The javascript dialect turns "..."
into an empty block comment so the host grammar parses it as an extra node.
*/
package pattern

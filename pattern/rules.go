package pattern

import "strings"

// rule recognizes one special token by its literal.
type rule struct {
	kind    Kind
	literal string
}

// rules lists the special tokens in priority order. Anything that does not
// start one of them is text. New token kinds (named metavariables, nested
// patterns) get their own slot here.
var rules = []rule{
	{kind: KindEllipsis, literal: "..."},
	{kind: KindMetavariable, literal: "$_"},
}

// matchRule reports the special rule whose literal starts at offset.
func matchRule(input string, offset int) (rule, bool) {
	rest := input[offset:]
	for _, r := range rules {
		if strings.HasPrefix(rest, r.literal) {
			return r, true
		}
	}
	return rule{}, false
}

// Literal returns the source literal of a special kind, or "" for text.
func Literal(k Kind) string {
	for _, r := range rules {
		if r.kind == k {
			return r.literal
		}
	}
	return ""
}

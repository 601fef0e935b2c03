package pattern

import (
	"strings"
)

// Dialect describes how special tokens are written back into the source
// of a host language before a host parser reads the pattern. An empty
// placeholder keeps the token literal.
type Dialect struct {
	Name                    string
	Aliases                 []string
	EllipsisPlaceholder     string
	MetavariablePlaceholder string
}

// JavaScript lowers "..." to an empty block comment, which a JavaScript
// parser keeps as an extra node. "$_" is already a valid identifier.
var JavaScript = Dialect{
	Name:                "javascript",
	Aliases:             []string{"js"},
	EllipsisPlaceholder: "/**/",
}

var dialects = []Dialect{JavaScript}

// LookupDialect finds a built-in dialect by name or alias, ignoring case.
func LookupDialect(name string) (Dialect, bool) {
	for _, d := range dialects {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
		for _, alias := range d.Aliases {
			if strings.EqualFold(alias, name) {
				return d, true
			}
		}
	}
	return Dialect{}, false
}

// Dialects returns the names of the built-in dialects.
func Dialects() []string {
	names := make([]string, len(dialects))
	for i, d := range dialects {
		names[i] = d.Name
	}
	return names
}

func (d Dialect) placeholder(k Kind) string {
	switch k {
	case KindEllipsis:
		return d.EllipsisPlaceholder
	case KindMetavariable:
		return d.MetavariablePlaceholder
	}
	return ""
}

// Lower renders the pattern as host source, replacing each special token
// with the dialect placeholder.
func (p *Pattern) Lower(d Dialect) string {
	var sb strings.Builder
	for _, e := range p.elements {
		if ph := d.placeholder(e.Kind); ph != "" {
			sb.WriteString(ph)
			continue
		}
		sb.WriteString(e.Value)
	}
	return sb.String()
}

package pattern

import "io"

// Parse tokenizes input into a Pattern. It fails with ErrEmptyPattern when
// input is empty.
func Parse(input string) (*Pattern, error) {
	if input == "" {
		return nil, ErrEmptyPattern
	}
	elements, err := newLexer(input).tokenize()
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, ErrEmptyPattern
	}
	return &Pattern{elements: elements}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(input string) *Pattern {
	p, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseReader parses the whole content of r, read line by line.
func ParseReader(r io.Reader) (*Pattern, error) {
	return ParseProducer(NewReaderProducer(r))
}

package pattern

import "unicode/utf8"

// state is a state of the lexer.
type state int8

const (
	stateScanning state = iota // looking for a special token
	stateText                  // accumulating a text span
	stateDone                  // input exhausted
)

// lexer splits a pattern string into elements in a single left-to-right
// pass without backtracking.
type lexer struct {
	input string
	start int // start of the pending element
	pos   int // current reading position
	state state
	track tracker

	elements []Element
}

func newLexer(input string) *lexer {
	return &lexer{
		input: input,
		state: stateScanning,
		track: newTracker(),
	}
}

// tokenize runs the state machine until the input is exhausted.
func (l *lexer) tokenize() ([]Element, error) {
	for l.state != stateDone {
		var err error
		switch l.state {
		case stateScanning:
			err = l.scanSpecial()
		case stateText:
			err = l.scanText()
		}
		if err != nil {
			return nil, err
		}
	}
	return l.elements, nil
}

// scanSpecial emits a special token at the current position if one starts
// there, and otherwise switches to text.
func (l *lexer) scanSpecial() error {
	if l.pos >= len(l.input) {
		l.state = stateDone
		return nil
	}
	if r, ok := matchRule(l.input, l.pos); ok {
		l.emit(r.kind, l.pos+len(r.literal))
		return nil
	}
	l.state = stateText
	return nil
}

// scanText consumes one character and closes the text span if the input
// ends or a special token starts right after it.
func (l *lexer) scanText() error {
	_, width := utf8.DecodeRuneInString(l.input[l.pos:])
	if width == 0 {
		return &UnrecognizedPositionError{Pos: l.track.position()}
	}
	l.pos += width

	if l.pos >= len(l.input) {
		l.emit(KindText, l.pos)
		l.state = stateDone
		return nil
	}
	if _, ok := matchRule(l.input, l.pos); ok {
		l.emit(KindText, l.pos)
		l.state = stateScanning
	}
	return nil
}

// emit closes the pending element at end.
func (l *lexer) emit(kind Kind, end int) {
	value := l.input[l.start:end]
	l.elements = append(l.elements, Element{
		Kind:  kind,
		Value: value,
		Pos:   l.track.position(),
	})
	l.track.advance(value)
	l.start = end
	l.pos = end
}

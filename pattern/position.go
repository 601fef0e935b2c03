package pattern

import (
	"strings"

	"github.com/rivo/uniseg"
)

// tracker follows line and column while the lexer emits elements.
type tracker struct {
	offset int
	line   int
	column int
}

func newTracker() tracker {
	return tracker{line: 1, column: 1}
}

func (t *tracker) position() Position {
	return Position{Offset: t.offset, Line: t.line, Column: t.column}
}

// advance moves past s, which must be the text right after the current
// position.
func (t *tracker) advance(s string) {
	t.offset += len(s)
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			break
		}
		t.line++
		t.column = 1
		s = s[i+1:]
	}
	t.column += uniseg.GraphemeClusterCount(s)
}

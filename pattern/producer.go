package pattern

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Producer supplies the raw text of a pattern as a sequence of runs, in
// document order and without loss. Next returns io.EOF once the input is
// exhausted; a non-empty run may accompany io.EOF.
//
// A run boundary must not fall inside a special token.
type Producer interface {
	Next() (string, error)
}

// Runs is a Producer over a fixed list of runs.
type Runs []string

func (r *Runs) Next() (string, error) {
	if len(*r) == 0 {
		return "", io.EOF
	}
	run := (*r)[0]
	*r = (*r)[1:]
	return run, nil
}

// ReaderProducer delivers the content of a reader one line at a time. Line
// runs never split a special token since none contains a newline.
type ReaderProducer struct {
	r *bufio.Reader
}

func NewReaderProducer(r io.Reader) *ReaderProducer {
	return &ReaderProducer{r: bufio.NewReader(r)}
}

func (p *ReaderProducer) Next() (string, error) {
	return p.r.ReadString('\n')
}

// ParseProducer parses the runs delivered by p as a single pattern. It
// fails with a SplitLiteralError when a run boundary cuts through an
// ellipsis or a metavariable.
func ParseProducer(p Producer) (*Pattern, error) {
	var (
		sb         strings.Builder
		boundaries []int
	)
	for {
		run, err := p.Next()
		if run != "" {
			sb.WriteString(run)
			boundaries = append(boundaries, sb.Len())
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading text run: %w", err)
		}
	}

	pat, err := Parse(sb.String())
	if err != nil {
		return nil, err
	}
	if err := checkBoundaries(pat, boundaries); err != nil {
		return nil, err
	}
	return pat, nil
}

// checkBoundaries verifies that no special element straddles one of the
// sorted run boundaries.
func checkBoundaries(p *Pattern, boundaries []int) error {
	for _, e := range p.elements {
		if e.Kind == KindText {
			continue
		}
		i := sort.SearchInts(boundaries, e.Pos.Offset+1)
		if i < len(boundaries) && boundaries[i] < e.End() {
			return &SplitLiteralError{Pos: e.Pos, Kind: e.Kind, Boundary: boundaries[i]}
		}
	}
	return nil
}

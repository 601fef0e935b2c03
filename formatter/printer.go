package formatter

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/gnoswap-labs/stsearch/pattern"
)

// Printer writes human-readable pattern listings and diagnostics.
type Printer struct {
	w io.Writer
	styles
}

func NewPrinter(w io.Writer, colored bool) *Printer {
	return &Printer{w: w, styles: newStyles(colored)}
}

// WriteElements lists the elements of p, one per line, with positions.
//
//	call.pat (3 elements)
//	  1:1    Text          "foo("
//	  1:5    Metavariable  $_
//	  1:7    Text          ")"
func (p *Printer) WriteElements(name string, pat *pattern.Pattern) {
	noun := "elements"
	if pat.Len() == 1 {
		noun = "element"
	}
	fmt.Fprintf(p.w, "%s %s\n", p.fileStyle.Sprint(name), p.noStyle.Sprintf("(%d %s)", pat.Len(), noun))

	for _, e := range pat.Elements() {
		pos := p.lineStyle.Sprintf("%-6s", e.Pos)
		switch e.Kind {
		case pattern.KindEllipsis:
			fmt.Fprintf(p.w, "  %s %s %s\n", pos, p.ellipsisStyle.Sprintf("%-13s", e.Kind), e.Value)
		case pattern.KindMetavariable:
			fmt.Fprintf(p.w, "  %s %s %s\n", pos, p.metavarStyle.Sprintf("%-13s", e.Kind), e.Value)
		default:
			fmt.Fprintf(p.w, "  %s %s %s\n", pos, p.textStyle.Sprintf("%-13s", e.Kind), strconv.Quote(e.Value))
		}
	}
}

// WriteLowered prints the host source of a pattern.
func (p *Printer) WriteLowered(name, lowered string) {
	fmt.Fprintf(p.w, "%s\n%s\n", p.fileStyle.Sprint(name), lowered)
}

// WriteError prints err as a diagnostic for the pattern called name. When
// err carries a position, the offending source line is shown with a caret.
//
//	error: special token split across text runs: Ellipsis broken at offset 4
//	 --> split.pat:2:1
//	  |
//	2 | ...
//	  | ^
func (p *Printer) WriteError(name, source string, err error) {
	var posErr pattern.PositionError
	if !errors.As(err, &posErr) {
		fmt.Fprintf(p.w, "%s%s\n", p.errorStyle.Sprint("error: "), p.messageStyle.Sprint(err.Error()))
		fmt.Fprintf(p.w, "%s%s\n\n", p.lineStyle.Sprint(" --> "), p.fileStyle.Sprint(name))
		return
	}

	pos := posErr.GetPosition()
	message := strings.TrimPrefix(err.Error(), pos.String()+": ")
	width := len(strconv.Itoa(pos.Line))
	padding := strings.Repeat(" ", width+1)

	fmt.Fprintf(p.w, "%s%s\n", p.errorStyle.Sprint("error: "), p.messageStyle.Sprint(message))
	fmt.Fprintf(p.w, "%s%s\n", p.lineStyle.Sprintf("%s--> ", strings.Repeat(" ", width)), p.fileStyle.Sprintf("%s:%s", name, pos))

	line, prefix, ok := sourceLine(source, pos.Offset)
	if !ok {
		fmt.Fprintln(p.w)
		return
	}
	fmt.Fprint(p.w, p.lineStyle.Sprintf("%s|\n", padding))
	fmt.Fprintf(p.w, "%s%s\n", p.lineStyle.Sprintf("%*d | ", width, pos.Line), expandTabs(line))
	fmt.Fprintf(p.w, "%s%s%s\n\n", p.lineStyle.Sprintf("%s| ", padding), strings.Repeat(" ", visualWidth(prefix)), p.messageStyle.Sprint("^"))
}

// sourceLine returns the line of source holding offset and the part of
// that line before offset.
func sourceLine(source string, offset int) (line, prefix string, ok bool) {
	if offset < 0 || offset > len(source) {
		return "", "", false
	}
	start := strings.LastIndexByte(source[:offset], '\n') + 1
	end := strings.IndexByte(source[offset:], '\n')
	if end < 0 {
		end = len(source)
	} else {
		end += offset
	}
	line = strings.TrimSuffix(source[start:end], "\r")
	return line, source[start:offset], true
}

// visualWidth returns the number of terminal cells s occupies, expanding
// tabs to the next multiple of tabWidth.
func visualWidth(s string) int {
	width := 0
	for i, chunk := range strings.Split(s, "\t") {
		if i > 0 {
			width += tabWidth - width%tabWidth
		}
		width += uniseg.StringWidth(chunk)
	}
	return width
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	for i, chunk := range strings.Split(s, "\t") {
		if i > 0 {
			sb.WriteString(strings.Repeat(" ", tabWidth-visualWidth(sb.String())%tabWidth))
		}
		sb.WriteString(chunk)
	}
	return sb.String()
}

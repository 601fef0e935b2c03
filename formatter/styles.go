package formatter

import "github.com/fatih/color"

const tabWidth = 8

// styles holds the colors of one Printer. Colors are set per instance so
// that printers writing to pipes and terminals can coexist.
type styles struct {
	errorStyle    *color.Color
	fileStyle     *color.Color
	lineStyle     *color.Color
	messageStyle  *color.Color
	ellipsisStyle *color.Color
	metavarStyle  *color.Color
	textStyle     *color.Color
	noStyle       *color.Color
}

func newStyles(colored bool) styles {
	s := styles{
		errorStyle:    color.New(color.FgRed, color.Bold),
		fileStyle:     color.New(color.FgCyan, color.Bold),
		lineStyle:     color.New(color.FgHiBlue, color.Bold),
		messageStyle:  color.New(color.FgRed, color.Bold),
		ellipsisStyle: color.New(color.FgYellow, color.Bold),
		metavarStyle:  color.New(color.FgGreen, color.Bold),
		textStyle:     color.New(color.FgWhite),
		noStyle:       color.New(color.Reset),
	}
	for _, c := range []*color.Color{
		s.errorStyle, s.fileStyle, s.lineStyle, s.messageStyle,
		s.ellipsisStyle, s.metavarStyle, s.textStyle, s.noStyle,
	} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

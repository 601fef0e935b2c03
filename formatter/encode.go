package formatter

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/stsearch/internal/batch"
	"github.com/gnoswap-labs/stsearch/internal/config"
	"github.com/gnoswap-labs/stsearch/pattern"
)

// Report is the machine-readable form of one parsed pattern.
type Report struct {
	Name     string            `json:"name" yaml:"name"`
	Source   string            `json:"source" yaml:"source"`
	Elements []pattern.Element `json:"elements,omitempty" yaml:"elements,omitempty"`
	Lowered  string            `json:"lowered,omitempty" yaml:"lowered,omitempty"`
	Error    string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewReport converts a batch result. When d is non-nil the lowered host
// source is included.
func NewReport(r batch.Result, d *pattern.Dialect) Report {
	report := Report{Name: r.Name, Source: r.Source}
	if r.Err != nil {
		report.Error = r.Err.Error()
		return report
	}
	report.Elements = r.Pattern.Elements()
	if d != nil {
		report.Lowered = r.Pattern.Lower(*d)
	}
	return report
}

// Encode writes reports to w as JSON or YAML.
func Encode(w io.Writer, format string, reports []Report) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not machine-readable", format)
	}
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/gnoswap-labs/stsearch/formatter"
	"github.com/gnoswap-labs/stsearch/internal/batch"
	"github.com/gnoswap-labs/stsearch/internal/config"
	"github.com/gnoswap-labs/stsearch/pattern"
)

// inputs are the patterns named on a command line.
type inputs struct {
	inline []string
	files  []string
	stdin  io.Reader // read when inline and files are both empty
}

func (o *options) collect(ctx context.Context, in inputs, bopts batch.Options) ([]batch.Result, error) {
	if len(in.inline) == 0 && len(in.files) == 0 {
		return o.collectStdin(in.stdin)
	}

	sources := make([]batch.Source, len(in.inline))
	for i, text := range in.inline {
		sources[i] = batch.Source{Name: fmt.Sprintf("<arg %d>", i+1), Text: text}
	}
	results, err := batch.ProcessSources(ctx, o.logger, sources, bopts)
	if err != nil {
		return nil, err
	}

	if len(in.files) > 0 {
		paths, err := batch.ExpandPaths(in.files)
		if err != nil {
			return nil, err
		}
		o.logger.Debug("Expanded pattern files", zap.Strings("args", in.files), zap.Int("files", len(paths)))

		fileResults, err := batch.ProcessFiles(ctx, o.logger, paths, bopts)
		if err != nil {
			return nil, err
		}
		results = append(results, fileResults...)
	}
	return results, nil
}

func (o *options) collectStdin(r io.Reader) ([]batch.Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading standard input: %w", err)
	}
	text := batch.TrimLineBreak(string(data))

	result := batch.Result{Name: "<stdin>", Source: text}
	result.Pattern, result.Err = pattern.ParseReader(strings.NewReader(text))
	return []batch.Result{result}, nil
}

// report writes results in the requested format. Failed results are always
// shown as diagnostics in text mode. The returned error wraps
// errPatternsFailed when any result failed.
func (o *options) report(
	w io.Writer,
	conf config.Config,
	format string,
	results []batch.Result,
	dialect *pattern.Dialect,
	writeText func(*formatter.Printer, batch.Result),
) error {
	if format == config.FormatText {
		printer := formatter.NewPrinter(w, o.colored(conf))
		for _, r := range results {
			if r.Failed() {
				printer.WriteError(r.Name, r.Source, r.Err)
				continue
			}
			if writeText != nil {
				writeText(printer, r)
			}
		}
	} else {
		reports := make([]formatter.Report, len(results))
		for i, r := range results {
			reports[i] = formatter.NewReport(r, dialect)
		}
		if err := formatter.Encode(w, format, reports); err != nil {
			return err
		}
	}

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errPatternsFailed, failed, len(results))
	}
	return nil
}

// resolveFormat picks the flag value over the configured one.
func resolveFormat(flag string, conf config.Config) (string, error) {
	if flag == "" {
		return conf.Format, nil
	}
	switch flag {
	case config.FormatText, config.FormatJSON, config.FormatYAML:
		return flag, nil
	}
	return "", fmt.Errorf("unknown format %q (want %s, %s or %s)", flag, config.FormatText, config.FormatJSON, config.FormatYAML)
}

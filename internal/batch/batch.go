// Package batch parses many patterns at once, from files or from inline
// sources, and collects one result per pattern.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gnoswap-labs/stsearch/pattern"
)

// Ext is the extension of pattern files found when a directory is given.
const Ext = ".pat"

// Source is a pattern given inline rather than through a file.
type Source struct {
	Name string
	Text string
}

// Result is the outcome of parsing one pattern.
type Result struct {
	Name    string // file path or source name
	Source  string
	Pattern *pattern.Pattern // nil when Err is set
	Err     error
}

// Failed reports whether the pattern could not be read or parsed.
func (r Result) Failed() bool { return r.Err != nil }

// Options controls a batch run.
type Options struct {
	// Workers bounds the number of concurrent parses; 0 means one per CPU.
	Workers int
	// Progress receives a progress bar when non-nil.
	Progress io.Writer
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// ErrNoMatch is returned by ExpandPaths when an argument resolves to no
// pattern file.
var ErrNoMatch = errors.New("no pattern files match")

// ExpandPaths resolves each argument to pattern files. An argument naming an
// existing file is taken as is, even if it looks like a glob; directories are
// searched recursively for *.pat files; anything else must be a doublestar
// glob. Every argument must yield at least one file. The result is sorted and
// free of duplicates.
func ExpandPaths(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		matches, err := expandPath(arg)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w %q", ErrNoMatch, arg)
		}
		for _, m := range matches {
			add(m)
		}
	}

	sort.Strings(files)
	return files, nil
}

func expandPath(arg string) ([]string, error) {
	info, err := os.Stat(arg)
	switch {
	case err == nil && !info.IsDir():
		return []string{arg}, nil
	case err == nil:
		// The directory name is not part of the glob, so brackets or stars
		// in it are taken literally.
		rel, err := doublestar.Glob(os.DirFS(arg), "**/*"+Ext, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", arg, err)
		}
		matches := make([]string, len(rel))
		for i, r := range rel {
			matches[i] = filepath.Join(arg, filepath.FromSlash(r))
		}
		return matches, nil
	case !strings.ContainsAny(arg, "*?[{"):
		return nil, err
	}

	if !doublestar.ValidatePathPattern(arg) {
		return nil, fmt.Errorf("invalid glob %q", arg)
	}
	matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expanding %q: %w", arg, err)
	}
	return matches, nil
}

// ReadPattern reads a pattern file. A single trailing line break is not
// part of the pattern.
func ReadPattern(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return TrimLineBreak(string(data)), nil
}

// TrimLineBreak removes one trailing "\r\n" or "\n" from text. A lone "\r"
// is kept.
func TrimLineBreak(text string) string {
	if strings.HasSuffix(text, "\r\n") {
		return text[:len(text)-2]
	}
	return strings.TrimSuffix(text, "\n")
}

// ProcessFiles parses every file in paths concurrently. Read and parse
// failures are reported in the results; the returned error is only set when
// ctx is done before all files are processed.
func ProcessFiles(ctx context.Context, logger *zap.Logger, paths []string, opts Options) ([]Result, error) {
	return process(ctx, logger, len(paths), opts, func(i int) Result {
		r := Result{Name: paths[i]}
		r.Source, r.Err = ReadPattern(paths[i])
		if r.Err != nil {
			r.Err = fmt.Errorf("reading %s: %w", paths[i], r.Err)
			return r
		}
		r.Pattern, r.Err = pattern.Parse(r.Source)
		return r
	})
}

// ProcessSources parses inline sources concurrently, with the same error
// semantics as ProcessFiles.
func ProcessSources(ctx context.Context, logger *zap.Logger, sources []Source, opts Options) ([]Result, error) {
	return process(ctx, logger, len(sources), opts, func(i int) Result {
		r := Result{Name: sources[i].Name, Source: sources[i].Text}
		r.Pattern, r.Err = pattern.Parse(r.Source)
		return r
	})
}

func process(ctx context.Context, logger *zap.Logger, n int, opts Options, parse func(int) Result) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(n,
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("parsing patterns"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
		)
	}

	results := make([]Result, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())

	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r := parse(i)
			if r.Err != nil {
				logger.Warn("Failed to parse pattern", zap.String("name", r.Name), zap.Error(r.Err))
			} else {
				logger.Debug("Parsed pattern", zap.String("name", r.Name), zap.Int("elements", r.Pattern.Len()))
			}
			results[i] = r

			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return results, nil
}

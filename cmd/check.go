package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/stsearch/internal/batch"
	"github.com/gnoswap-labs/stsearch/internal/config"
)

func newCheckCmd(opts *options) *cobra.Command {
	var (
		format   string
		progress bool
	)

	checkCmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Verify that pattern files and configured patterns parse",
		Long: `Parses every pattern file under the given paths (files, directories or globs) and
every pattern listed in the configuration. Without paths, the configured include globs are used.
Exits with status 1 when a pattern fails to parse.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := opts.loadConfig()
			if err != nil {
				return err
			}
			outFormat, err := resolveFormat(format, conf)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			bopts := batch.Options{Workers: conf.Workers}
			if progress {
				bopts.Progress = cmd.ErrOrStderr()
			}

			results, err := runCheck(ctx, opts.logger, conf, args, bopts)
			if err != nil {
				return err
			}

			err = opts.report(cmd.OutOrStdout(), conf, outFormat, results, nil, nil)
			if outFormat == config.FormatText {
				writeSummary(cmd.OutOrStdout(), results)
			}
			return err
		},
	}

	checkCmd.Flags().StringVar(&format, "format", "", "Output format: text, json or yaml (default from config)")
	checkCmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar on standard error")
	return checkCmd
}

func runCheck(ctx context.Context, logger *zap.Logger, conf config.Config, paths []string, bopts batch.Options) ([]batch.Result, error) {
	sources := make([]batch.Source, len(conf.Patterns))
	for i, np := range conf.Patterns {
		sources[i] = batch.Source{Name: np.Name, Text: np.Pattern}
	}
	results, err := batch.ProcessSources(ctx, logger, sources, bopts)
	if err != nil {
		return nil, err
	}

	files, err := expandCheckPaths(logger, conf, paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Checking patterns", zap.Int("configured", len(sources)), zap.Int("files", len(files)))

	fileResults, err := batch.ProcessFiles(ctx, logger, files, bopts)
	if err != nil {
		return nil, err
	}
	return append(results, fileResults...), nil
}

// expandCheckPaths resolves the paths given on the command line, or the
// configured include globs when there are none. An include glob matching
// nothing is only logged, since the configuration may list patterns inline.
func expandCheckPaths(logger *zap.Logger, conf config.Config, paths []string) ([]string, error) {
	if len(paths) > 0 {
		return batch.ExpandPaths(paths)
	}

	var files []string
	for _, include := range conf.Include {
		matches, err := batch.ExpandPaths([]string{include})
		if errors.Is(err, batch.ErrNoMatch) {
			logger.Warn("Include glob matches no pattern file", zap.String("glob", include))
			continue
		}
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return slices.Compact(files), nil
}

func writeSummary(w io.Writer, results []batch.Result) {
	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	noun := "patterns"
	if len(results) == 1 {
		noun = "pattern"
	}
	fmt.Fprintf(w, "%d %s checked, %d failed\n", len(results), noun, failed)
}

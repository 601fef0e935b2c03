package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gnoswap-labs/stsearch/formatter"
	"github.com/gnoswap-labs/stsearch/internal/batch"
)

func newParseCmd(opts *options) *cobra.Command {
	var (
		files  []string
		format string
	)

	parseCmd := &cobra.Command{
		Use:   "parse [patterns...]",
		Short: "Show the elements of patterns",
		Long: `Splits each pattern into text, ellipsis (...) and metavariable ($_) elements.
Patterns come from the arguments, from --file, or from standard input when neither is given.
Example) stsearch parse 'foo($_, ...)'`,
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

			results, err := opts.collect(ctx, inputs{inline: args, files: files, stdin: cmd.InOrStdin()}, batch.Options{Workers: conf.Workers})
			if err != nil {
				return err
			}

			return opts.report(cmd.OutOrStdout(), conf, outFormat, results, nil, func(p *formatter.Printer, r batch.Result) {
				p.WriteElements(r.Name, r.Pattern)
			})
		},
	}

	parseCmd.Flags().StringArrayVarP(&files, "file", "f", nil, "Pattern file, directory or glob (repeatable)")
	parseCmd.Flags().StringVar(&format, "format", "", "Output format: text, json or yaml (default from config)")
	return parseCmd
}

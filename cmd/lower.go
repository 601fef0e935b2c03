package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnoswap-labs/stsearch/formatter"
	"github.com/gnoswap-labs/stsearch/internal/batch"
	"github.com/gnoswap-labs/stsearch/pattern"
)

func newLowerCmd(opts *options) *cobra.Command {
	var (
		files       []string
		format      string
		dialectName string
	)

	lowerCmd := &cobra.Command{
		Use:   "lower [patterns...]",
		Short: "Rewrite patterns as host-language source",
		Long: `Replaces the special tokens of each pattern with the placeholders of a host dialect,
so that the result can be handed to the host parser.
Example) stsearch lower --dialect js 'foo($_, ...)'  =>  foo($_, /**/)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := opts.loadConfig()
			if err != nil {
				return err
			}
			outFormat, err := resolveFormat(format, conf)
			if err != nil {
				return err
			}

			if dialectName == "" {
				dialectName = conf.Dialect
			}
			dialect, ok := pattern.LookupDialect(dialectName)
			if !ok {
				return fmt.Errorf("unknown dialect %q (available: %s)", dialectName, strings.Join(pattern.Dialects(), ", "))
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			results, err := opts.collect(ctx, inputs{inline: args, files: files, stdin: cmd.InOrStdin()}, batch.Options{Workers: conf.Workers})
			if err != nil {
				return err
			}

			return opts.report(cmd.OutOrStdout(), conf, outFormat, results, &dialect, func(p *formatter.Printer, r batch.Result) {
				p.WriteLowered(r.Name, r.Pattern.Lower(dialect))
			})
		},
	}

	lowerCmd.Flags().StringArrayVarP(&files, "file", "f", nil, "Pattern file, directory or glob (repeatable)")
	lowerCmd.Flags().StringVar(&format, "format", "", "Output format: text, json or yaml (default from config)")
	lowerCmd.Flags().StringVarP(&dialectName, "dialect", "d", "", "Host dialect (default from config)")
	return lowerCmd
}

package cmd

import (
	"errors"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/stsearch/internal/config"
)

const defaultTimeout = 5 * time.Minute

// errPatternsFailed is returned when at least one pattern did not parse.
// The diagnostics have already been printed.
var errPatternsFailed = errors.New("some patterns failed to parse")

// options holds the persistent flags and the state shared by subcommands.
type options struct {
	cfgFile string
	timeout time.Duration
	verbose bool
	noColor bool

	logger *zap.Logger
}

// Execute runs the stsearch command line.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "stsearch",
		Short:         "stsearch - parse and inspect structural search patterns",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.cfgFile, "config", "c", "", "Path to the configuration file (default "+config.DefaultPath+")")
	flags.DurationVar(&opts.timeout, "timeout", defaultTimeout, "Abort after this duration")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newLowerCmd(opts))
	rootCmd.AddCommand(newInitCmd(opts))
	return rootCmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	return cfg.Build()
}

func (o *options) loadConfig() (config.Config, error) {
	conf, err := config.Load(o.cfgFile)
	if err != nil {
		o.logger.Error("Failed to load configuration", zap.String("path", o.cfgFile), zap.Error(err))
		return conf, err
	}
	return conf, nil
}

// colored reports whether text output should use colors. color.NoColor is
// set by the color package when stdout is not a terminal.
func (o *options) colored(conf config.Config) bool {
	return conf.Color && !o.noColor && !color.NoColor
}

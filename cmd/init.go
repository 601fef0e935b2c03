package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/stsearch/internal/config"
)

func newInitCmd(opts *options) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.cfgFile
			if path == "" {
				path = config.DefaultPath
			}
			if err := initConfigurationFile(path, force); err != nil {
				opts.logger.Error("Error initializing config file", zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", path)
			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return initCmd
}

func initConfigurationFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
	}

	conf := config.Default()
	conf.Patterns = []config.NamedPattern{
		{Name: "any-call", Pattern: "$_(...)"},
	}
	return config.Write(path, conf)
}

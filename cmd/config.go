package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newhook/loggy/internal/config"
)

func newConfigCmd(flags *scanFlags) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the loggy config file",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write a documented config file with default values",
		Long: `Write a documented config file with default values.

The file is written to ./` + config.DefaultFileName + ` unless a path is given.
An existing file is never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultFileName
			if len(args) > 0 {
				path = args[0]
			}
			if err := (&config.Config{}).SaveDocumentedConfig(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Find(flags.config)
			if err != nil {
				return err
			}
			content, err := cfg.GenerateDocumentedConfig()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	})

	return configCmd
}

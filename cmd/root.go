package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newhook/loggy/internal/cases"
	"github.com/newhook/loggy/internal/config"
	"github.com/newhook/loggy/internal/logging"
	"github.com/newhook/loggy/internal/logparser"
	"github.com/newhook/loggy/internal/render"
	losignal "github.com/newhook/loggy/internal/signal"
	"github.com/newhook/loggy/internal/watch"
)

// scanFlags holds the root command flags.
type scanFlags struct {
	path     string
	config   string
	output   string
	logLevel string
	all      bool
	clean    bool
	watch    bool
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:   "loggy",
		Short: "Find known failure causes in an RPM build log",
		Long: `loggy scans a build.log for known failure signatures, such as a missing
build dependency or files left out of %files, and prints the relevant part
of the log for every case it recognizes.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, &flags)
		},
	}

	cmd.Flags().StringVarP(&flags.path, "path", "p", "", "path to build.log")
	cmd.Flags().StringVarP(&flags.output, "output", "o", config.FormatText, "output format: text, styled, json, yaml")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "warn", "diagnostic level: debug, info, warn, error")
	cmd.Flags().BoolVar(&flags.all, "all", false, "also print cases that did not match")
	cmd.Flags().BoolVar(&flags.clean, "clean", false, "strip ANSI codes, CI timestamps and CRLF line endings before scanning")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "rescan the log whenever it changes")
	_ = cmd.MarkFlagRequired("path")

	cmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "config file (default: ./"+config.DefaultFileName+" if present)")

	cmd.AddCommand(newCasesCmd())
	cmd.AddCommand(newConfigCmd(&flags))

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config file and applies flags that were set
// explicitly on the command line.
func loadConfig(cmd *cobra.Command, flags *scanFlags) (*config.Config, error) {
	cfg, err := config.Find(flags.config)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("output") {
		cfg.Output.Format = flags.output
	}
	if cmd.Flags().Changed("all") {
		cfg.Output.All = flags.all
	}
	if cmd.Flags().Changed("clean") {
		cfg.Scan.Clean = flags.clean
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newScanner(cfg *config.Config) *cases.Scanner {
	opts := []cases.Option{
		cases.WithPrefilter(cfg.Scan.ShouldPrefilter()),
		cases.WithLogger(logging.Logger()),
	}
	if cfg.Scan.Clean {
		opts = append(opts, cases.WithCleaner(logparser.CleanLog))
	}
	return cases.NewScanner(opts...)
}

func runScan(cmd *cobra.Command, flags *scanFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	if err := logging.Init(logging.Options{
		Level:  cfg.Logging.GetLevel(),
		File:   cfg.Logging.File,
		Stderr: cmd.ErrOrStderr(),
	}); err != nil {
		return err
	}
	defer logging.Close()

	renderer, err := render.New(cfg.Output.GetFormat(), cmd.OutOrStdout(), render.Options{
		All:      cfg.Output.All,
		Width:    cfg.Output.Width,
		MaxLines: cfg.Output.MaxLines,
	})
	if err != nil {
		return err
	}

	scanner := newScanner(cfg)

	if flags.watch {
		ctx, cancel := losignal.WithSignalCancel(cmd.Context())
		defer cancel()

		w, err := watch.New(flags.path, scanner, renderer, cfg.Watch.DedupTTL(), logging.Logger())
		if err != nil {
			return err
		}
		logging.Info("watching build log", "path", flags.path)
		return w.Run(ctx)
	}

	result := scanner.ParseBuildLog(flags.path)
	logging.Debug("scanned build log", "path", flags.path, "cases", result.Len(), "matched", len(result.Matched()))
	if err := renderer.Render(result); err != nil {
		return fmt.Errorf("failed to print result: %w", err)
	}
	return nil
}

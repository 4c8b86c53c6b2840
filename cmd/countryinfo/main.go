package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MakerMaker19/countryinfo/pkg/config"
	"github.com/MakerMaker19/countryinfo/pkg/logging"
	"github.com/MakerMaker19/countryinfo/pkg/lookup"
	"github.com/MakerMaker19/countryinfo/pkg/restcountries"
	"github.com/MakerMaker19/countryinfo/pkg/tui"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	configPath string
	baseURL    string
	timeout    time.Duration
	theme      string
	logFile    string
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "countryinfo",
		Short: "Look up country facts as you type",
		Long: `countryinfo queries the REST Countries API by (translated) country
name and shows the first match as a grid of fields.

Run without arguments to start the interactive terminal UI.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultPath(), "config file")
	flags.StringVar(&opts.baseURL, "base-url", "", "REST Countries API base URL")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout")
	flags.StringVar(&opts.theme, "theme", "", "TUI theme (light|dark)")
	flags.StringVar(&opts.logFile, "log-file", "", `log file ("-" disables logging)`)
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Start the interactive terminal UI",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTUI(cmd, opts)
			},
		},
		newLookupCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

// loadConfig layers flags that were set explicitly over file and env.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = opts.baseURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if flags.Changed("theme") {
		cfg.Theme = opts.theme
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes to the log file; the terminal belongs to the command's
// output. --verbose sends debug output to stderr instead.
func newLogger(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	if verbose {
		return logging.New(cfg.LogLevel, true)
	}
	return logging.NewFile(cfg.LogFile, cfg.LogLevel, false)
}

func newLoader(cfg *config.Config, logger *zap.Logger) *lookup.Loader {
	client := restcountries.NewClient(
		restcountries.WithBaseURL(cfg.BaseURL),
		restcountries.WithTimeout(cfg.Timeout),
	)
	return lookup.NewLoader(client, lookup.WithLogger(logger))
}

func runTUI(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so never log to stderr here.
	logger, err := logging.NewFile(cfg.LogFile, cfg.LogLevel, opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting tui", zap.String("base_url", cfg.BaseURL), zap.Duration("timeout", cfg.Timeout))

	m := tui.New(newLoader(cfg, logger),
		tui.WithLogger(logger),
		tui.WithStyles(tui.NewStyles(tui.ThemeByName(cfg.Theme))),
	)
	if err := tui.Run(m); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

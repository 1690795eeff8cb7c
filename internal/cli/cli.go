// Package cli wires the footcheck command line to the application.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raysh454/footcheck/internal/app"
	"github.com/raysh454/footcheck/internal/logging"
	"github.com/raysh454/footcheck/internal/report"
	"github.com/raysh454/footcheck/internal/webclient"
)

// ErrChecksFailed is returned when at least one page failed its footer
// checks or repeated runs disagreed.
var ErrChecksFailed = errors.New("footer checks failed")

// Options holds the hooks tests replace.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer

	// NewPage defaults to webclient.NewPage.
	NewPage app.PageFactory
}

// NewRootCmd creates the footcheck command.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cmd := &cobra.Command{
		Use:   "footcheck [url...]",
		Short: "Check that site pages have a complete footer",
		Long: `footcheck opens each page in a headless browser and verifies that its
footer is visible and contains the logo, the contact link, a mailto email,
social network icons and a copyright notice.

Without arguments it checks https://only.digital/, /about and /services.

Examples:
  # Check the default pages with headless Chrome
  footcheck

  # Check a local site without a browser
  footcheck --backend nethttp http://localhost:9999/

  # Run twice on the same browser and fail if the outcome changed
  footcheck --repeat 2 --format markdown --output report.md

Configuration file (.footcheck.yaml) example:
  urls:
    - https://only.digital/
  footer:
    brand: Only
    contact_label: Контакты
    wait_timeout: 10s
  browser:
    client: chromedp
    exec_path: /usr/bin/chromium
  log_level: info`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}
	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .footcheck.yaml in current or home directory)")
	cmd.Flags().StringP("backend", "b", string(webclient.ClientChromedp),
		"Page backend: chromedp or nethttp")
	cmd.Flags().StringP("format", "f", string(report.FormatText),
		"Report format: text, json or markdown")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to this file instead of stdout")
	cmd.Flags().DurationP("timeout", "t", 0,
		"How long to wait for a visible footer (default 10s)")
	cmd.Flags().Bool("headless", true, "Run Chrome without a window")
	cmd.Flags().String("chrome-path", "", "Chrome binary to launch (default: look up on PATH)")
	cmd.Flags().IntP("repeat", "r", 1, "Check every page this many times and compare the runs")
	cmd.Flags().BoolP("verbose", "v", false, "Enable debug logging on stderr")

	return cmd
}

// Execute runs the command with os.Args and returns the process exit code.
func Execute() int {
	cmd := NewRootCmd(Options{})
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, ErrChecksFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}

func run(cmd *cobra.Command, args []string, opts Options) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := logging.NewWriterLogger(opts.Stderr, "footcheck", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.NewApplication(cfg, logger)
	a.Out = opts.Stdout
	a.Trace = opts.Stdout
	if opts.NewPage != nil {
		a.NewPage = opts.NewPage
	}

	outcome, err := a.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("interrupted: %w", err)
		}
		return err
	}
	if outcome.Diff != "" {
		fmt.Fprintf(opts.Stderr, "repeated runs disagree:\n%s", outcome.Diff)
	}
	if !outcome.Passed() {
		return ErrChecksFailed
	}
	return nil
}

// buildConfig layers defaults, the config file and explicitly set flags.
func buildConfig(cmd *cobra.Command, args []string) (*app.Config, error) {
	cfg := app.DefaultConfig()
	flags := cmd.Flags()

	configFlag, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	if path := app.FindConfigFile(configFlag); path != "" {
		if err := app.LoadConfigFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	} else if configFlag != "" {
		return nil, fmt.Errorf("%w: %s", app.ErrConfigNotFound, configFlag)
	}

	if len(args) > 0 {
		cfg.URLs = args
	}

	if flags.Changed("backend") {
		backend, _ := flags.GetString("backend")
		cfg.WebClientCfg.Client = webclient.Client(backend)
	}
	if flags.Changed("format") {
		format, _ := flags.GetString("format")
		cfg.ReportCfg.Format = report.Format(format)
	}
	if flags.Changed("output") {
		cfg.ReportCfg.Output, _ = flags.GetString("output")
	}
	if flags.Changed("timeout") {
		cfg.FooterCfg.WaitTimeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("headless") {
		cfg.WebClientCfg.Headless, _ = flags.GetBool("headless")
	}
	if flags.Changed("chrome-path") {
		cfg.WebClientCfg.ExecPath, _ = flags.GetString("chrome-path")
	}
	if flags.Changed("repeat") {
		cfg.Repeat, _ = flags.GetInt("repeat")
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.LogLevel = logging.LevelDebug
	}

	return cfg, nil
}

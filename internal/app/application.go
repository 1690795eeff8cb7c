package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/raysh454/footcheck/internal/footer"
	"github.com/raysh454/footcheck/internal/interfaces"
	"github.com/raysh454/footcheck/internal/logging"
	"github.com/raysh454/footcheck/internal/report"
	"github.com/raysh454/footcheck/internal/runner"
	"github.com/raysh454/footcheck/internal/webclient"
)

// PageFactory opens the browser page a run is executed on.
type PageFactory func(cfg webclient.Config, logger logging.Logger) (interfaces.Page, error)

// Outcome is everything one invocation produced.
type Outcome struct {
	Runs []*runner.RunResult

	// Diff is non-empty when a repeated run disagreed with the first one.
	Diff string
}

// Passed reports whether every run passed and all runs agreed.
func (o *Outcome) Passed() bool {
	if o == nil || len(o.Runs) == 0 {
		return false
	}
	for _, r := range o.Runs {
		if !r.Passed() {
			return false
		}
	}
	return o.Diff == ""
}

// Application is the runtime state of one footcheck invocation.
type Application struct {
	Config *Config
	Logger logging.Logger

	// Out receives the report when ReportCfg.Output is empty.
	Out io.Writer

	// Trace receives the per-URL progress lines.
	Trace io.Writer

	// NewPage defaults to webclient.NewPage.
	NewPage PageFactory
}

// NewApplication constructs an Application writing to stdout.
func NewApplication(cfg *Config, logger logging.Logger) *Application {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Application{
		Config:  cfg,
		Logger:  logger,
		Out:     os.Stdout,
		Trace:   os.Stdout,
		NewPage: webclient.NewPage,
	}
}

// Run opens one page, checks every URL Config.Repeat times, writes the
// report of each run and closes the page on every path. The returned error
// is for environment problems only; failing checks are in the Outcome.
func (a *Application) Run(ctx context.Context) (*Outcome, error) {
	if a == nil || a.Config == nil {
		return nil, errors.New("application is not configured")
	}
	if err := a.Config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	out, closeOut, err := a.openOutput()
	if err != nil {
		return nil, err
	}
	defer closeOut()

	writer, err := report.NewWriter(a.Config.ReportCfg.Format, out)
	if err != nil {
		return nil, err
	}

	newPage := a.NewPage
	if newPage == nil {
		newPage = webclient.NewPage
	}
	page, err := newPage(a.Config.WebClientCfg, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("start browser: %w", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			a.Logger.Warn("closing page failed", logging.F("error", err))
		}
	}()

	validator := footer.NewValidator(a.Config.FooterCfg, a.Logger)
	r := runner.New(page, validator, a.Logger, a.Trace)

	outcome := &Outcome{}
	for i := 0; i < a.Config.Repeat; i++ {
		res, err := r.Run(ctx, a.Config.URLs)
		if res != nil {
			outcome.Runs = append(outcome.Runs, res)
			if _, werr := writer.Write(res); werr != nil {
				return outcome, fmt.Errorf("write report: %w", werr)
			}
		}
		if err != nil {
			return outcome, err
		}
		if i > 0 && outcome.Diff == "" {
			outcome.Diff = report.Compare(outcome.Runs[0], res)
			if outcome.Diff != "" {
				a.Logger.Warn("repeated run disagrees with the first one",
					logging.F("run", i+1), logging.F("run_id", res.RunID))
			}
		}
	}
	return outcome, nil
}

func (a *Application) openOutput() (io.Writer, func(), error) {
	path := a.Config.ReportCfg.Output
	if path == "" {
		w := a.Out
		if w == nil {
			w = os.Stdout
		}
		return w, func() {}, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, fmt.Errorf("create report directory: %w", err)
		}
	}
	f, err := os.Create(path) //nolint:gosec // user-provided report path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("create report file: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			a.Logger.Warn("closing report file failed", logging.F("error", err))
		}
	}, nil
}

// Package runner drives the footer checks across a list of URLs with a
// single shared page.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/raysh454/footcheck/internal/footer"
	"github.com/raysh454/footcheck/internal/interfaces"
	"github.com/raysh454/footcheck/internal/logging"
)

// PageResult is the outcome for one URL. Exactly one of Failure and Err is
// set when the page did not pass.
type PageResult struct {
	URL      string
	Report   *footer.Report
	Failure  *footer.AssertionError
	Err      error
	Duration time.Duration
}

// Passed reports whether the page had a visible footer with all checks passing.
func (p PageResult) Passed() bool {
	return p.Err == nil && p.Failure == nil
}

// Message is the human-readable reason the page failed, or "".
func (p PageResult) Message() string {
	switch {
	case p.Err != nil:
		return p.Err.Error()
	case p.Failure != nil:
		return p.Failure.Message
	default:
		return ""
	}
}

// RunResult collects the page results of one run in URL order.
type RunResult struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Pages     []PageResult
}

// Passed reports whether every page passed. An empty run passes.
func (r *RunResult) Passed() bool {
	for _, p := range r.Pages {
		if !p.Passed() {
			return false
		}
	}
	return true
}

// Failed returns the pages that did not pass.
func (r *RunResult) Failed() []PageResult {
	var out []PageResult
	for _, p := range r.Pages {
		if !p.Passed() {
			out = append(out, p)
		}
	}
	return out
}

// Runner visits URLs one at a time on a page it does not own: the caller
// opens the page before Run and closes it afterwards.
type Runner struct {
	page      interfaces.Page
	validator *footer.Validator
	logger    logging.Logger
	trace     io.Writer
}

// New creates a Runner. trace receives one "Testing page" line per URL and
// may be nil.
func New(page interfaces.Page, validator *footer.Validator, logger logging.Logger, trace io.Writer) *Runner {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	if trace == nil {
		trace = io.Discard
	}
	return &Runner{
		page:      page,
		validator: validator,
		logger:    logger.With(logging.F("component", "runner")),
		trace:     trace,
	}
}

// Run checks every URL in order. A failing URL does not stop the run; only
// cancellation of ctx does, in which case the partial result is returned
// together with the context error.
func (r *Runner) Run(ctx context.Context, urls []string) (*RunResult, error) {
	res := &RunResult{
		RunID:     uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
	r.logger.Info("run started", logging.F("run_id", res.RunID), logging.F("urls", len(urls)))

	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			res.Duration = time.Since(res.StartedAt)
			return res, err
		}
		res.Pages = append(res.Pages, r.RunURL(ctx, url))
	}
	if err := ctx.Err(); err != nil {
		res.Duration = time.Since(res.StartedAt)
		return res, err
	}

	res.Duration = time.Since(res.StartedAt)
	r.logger.Info("run finished",
		logging.F("run_id", res.RunID),
		logging.F("passed", res.Passed()),
		logging.F("failed", len(res.Failed())),
		logging.F("duration", res.Duration.String()))
	return res, nil
}

// RunURL navigates to url, locates the footer and asserts the checks.
// Navigation is not retried.
func (r *Runner) RunURL(ctx context.Context, url string) PageResult {
	start := time.Now()
	fmt.Fprintf(r.trace, "Testing page: %s\n", url)
	log := r.logger.With(logging.F("url", url))

	result := PageResult{URL: url}

	if err := r.page.Navigate(ctx, url); err != nil {
		log.Warn("navigation failed", logging.F("error", err))
		result.Err = fmt.Errorf("load %s: %w", url, err)
		result.Duration = time.Since(start)
		return result
	}

	report, err := r.validator.Inspect(ctx, r.page)
	if err != nil {
		log.Error("footer inspection failed", logging.F("error", err))
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	// Reports keyed by the requested URL even when the page redirected.
	report.URL = url
	result.Report = report

	if err := r.validator.Assert(report); err != nil {
		var ae *footer.AssertionError
		if errors.As(err, &ae) {
			result.Failure = ae
		} else {
			result.Err = err
		}
		log.Info("page failed", logging.F("reason", err.Error()))
	} else {
		log.Debug("page passed")
	}
	result.Duration = time.Since(start)
	return result
}

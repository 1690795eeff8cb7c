package footer

import (
	"context"

	"github.com/raysh454/footcheck/internal/interfaces"
	"github.com/raysh454/footcheck/internal/logging"
)

// CheckNameFooter names the presence assertion that precedes the checks.
const CheckNameFooter CheckName = "footer"

// AssertionError is the failed expectation for one URL.
type AssertionError struct {
	URL     string
	Check   CheckName
	Message string
}

func (e *AssertionError) Error() string {
	return e.Message
}

// Validator turns a loaded page into a Report.
type Validator struct {
	cfg    Config
	checks []Check
	logger logging.Logger
}

// NewValidator creates a Validator running the standard checks.
func NewValidator(cfg Config, logger logging.Logger) *Validator {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Validator{
		cfg:    cfg,
		checks: Checks(),
		logger: logger.With(logging.F("component", "footer")),
	}
}

// Config returns the expectations the validator checks against.
func (v *Validator) Config() Config {
	return v.cfg
}

// Validate runs every check against footer, in order.
func (v *Validator) Validate(url string, footer interfaces.Element) *Report {
	report := &Report{URL: url, FooterFound: true}
	for _, c := range v.checks {
		res := c.Run(v.cfg, footer)
		res.Name = c.Name
		v.logger.Debug("footer check",
			logging.F("url", url),
			logging.F("check", string(c.Name)),
			logging.F("passed", res.Passed),
			logging.F("detail", res.Detail))
		report.Checks = append(report.Checks, res)
	}
	return report
}

// Inspect locates the footer on the page's current document and validates it.
// When no visible footer appears the report has FooterFound=false and no checks.
func (v *Validator) Inspect(ctx context.Context, page interfaces.Page) (*Report, error) {
	url := page.URL()
	footer, found, err := Locate(ctx, page, v.cfg.WaitTimeout)
	if err != nil {
		return nil, err
	}
	if !found {
		detail := describeAbsence(ctx, page, v.cfg.WaitTimeout)
		v.logger.Info("footer not found", logging.F("url", url), logging.F("detail", detail))
		return &Report{URL: url, FooterFound: false, FooterDetail: detail}, nil
	}
	return v.Validate(url, footer), nil
}

// Assert converts a report into the first failed expectation, or nil.
func (v *Validator) Assert(report *Report) error {
	if !report.FooterFound {
		return &AssertionError{
			URL:     report.URL,
			Check:   CheckNameFooter,
			Message: "footer not found or not visible on " + report.URL,
		}
	}
	failed, ok := report.FirstFailure()
	if !ok {
		return nil
	}
	for _, c := range v.checks {
		if c.Name == failed.Name {
			return &AssertionError{URL: report.URL, Check: c.Name, Message: c.Message(v.cfg)}
		}
	}
	return &AssertionError{URL: report.URL, Check: failed.Name, Message: string(failed.Name) + " check failed"}
}

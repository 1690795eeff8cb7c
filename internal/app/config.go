package app

import (
	"errors"
	"fmt"

	"github.com/raysh454/footcheck/internal/footer"
	"github.com/raysh454/footcheck/internal/logging"
	"github.com/raysh454/footcheck/internal/report"
	"github.com/raysh454/footcheck/internal/utils"
	"github.com/raysh454/footcheck/internal/webclient"
)

// Configuration validation errors.
var (
	ErrNoURLs          = errors.New("no urls to check")
	ErrInvalidTimeout  = errors.New("invalid footer wait timeout: must be positive")
	ErrInvalidRepeat   = errors.New("invalid repeat count: must be at least 1")
	ErrInvalidSelector = errors.New("socials selector must not be empty")
)

// Config aggregates the configuration of every module involved in a run.
// Field names match the keys of the YAML config file.
type Config struct {
	// URLs are checked in order.
	URLs []string `yaml:"urls"`

	FooterCfg    footer.Config    `yaml:"footer"`
	WebClientCfg webclient.Config `yaml:"browser"`
	ReportCfg    report.Config    `yaml:"report"`

	// Repeat runs the whole URL list this many times on the same browser
	// and fails when the outcomes differ.
	Repeat int `yaml:"repeat"`

	// LogLevel is the minimum level written to stderr.
	LogLevel logging.Level `yaml:"log_level"`
}

// DefaultConfig returns the pages and expectations of the only.digital smoke test.
func DefaultConfig() *Config {
	return &Config{
		URLs: []string{
			"https://only.digital/",
			"https://only.digital/about",
			"https://only.digital/services",
		},
		FooterCfg:    footer.DefaultConfig(),
		WebClientCfg: webclient.DefaultConfig(),
		ReportCfg:    report.DefaultConfig(),
		Repeat:       1,
		LogLevel:     logging.LevelWarn,
	}
}

// Validate checks the config and normalizes URLs and the report format in place.
func (c *Config) Validate() error {
	if len(c.URLs) == 0 {
		return ErrNoURLs
	}
	urls, err := utils.NormalizeTargets(c.URLs, "https")
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	c.URLs = urls

	if c.FooterCfg.WaitTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.FooterCfg.SocialsSelector == "" {
		return ErrInvalidSelector
	}
	if c.Repeat < 1 {
		return ErrInvalidRepeat
	}

	format, err := report.ParseFormat(string(c.ReportCfg.Format))
	if err != nil {
		return err
	}
	c.ReportCfg.Format = format
	return nil
}

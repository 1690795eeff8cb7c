package report

import (
	"fmt"
	"strings"
)

// Format selects a report writer.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Config controls where and how the run report is written.
type Config struct {
	Format Format `yaml:"format"`

	// Output is a file path. Empty means stdout.
	Output string `yaml:"output"`
}

// DefaultConfig writes a text summary to stdout.
func DefaultConfig() Config {
	return Config{Format: FormatText}
}

// ParseFormat accepts a format name in any case. "md" is an alias for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text, json or markdown)", s)
	}
}

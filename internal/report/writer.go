// Package report renders run results for people and tools.
package report

import (
	"io"

	"github.com/raysh454/footcheck/internal/runner"
)

// Writer renders a run result to its destination.
type Writer interface {
	// Write outputs the run and returns the number of bytes written.
	Write(res *runner.RunResult) (int, error)
}

// NewWriter returns the writer for format.
func NewWriter(format Format, output io.Writer) (Writer, error) {
	f, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	default:
		return NewTextWriter(output), nil
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// status renders a page outcome as a short word.
func status(p runner.PageResult) string {
	switch {
	case p.Passed():
		return "PASS"
	case p.Err != nil:
		return "ERROR"
	default:
		return "FAIL"
	}
}

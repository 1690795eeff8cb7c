package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/raysh454/footcheck/internal/runner"
)

// TextWriter prints a compact console summary.
type TextWriter struct {
	baseWriter
}

func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

func (w *TextWriter) Write(res *runner.RunResult) (int, error) {
	var b strings.Builder
	b.WriteString("\n")
	for _, p := range res.Pages {
		fmt.Fprintf(&b, "%-5s %s (%s)\n", status(p), p.URL, p.Duration.Round(time.Millisecond))
		if p.Report != nil {
			if !p.Report.FooterFound {
				fmt.Fprintf(&b, "      footer: %s\n", p.Report.FooterDetail)
			}
			for _, c := range p.Report.Checks {
				mark := "ok"
				if !c.Passed {
					mark = "--"
				}
				fmt.Fprintf(&b, "      [%s] %s", mark, c.Name)
				if c.Detail != "" {
					fmt.Fprintf(&b, ": %s", c.Detail)
				}
				b.WriteString("\n")
			}
		}
		if msg := p.Message(); msg != "" {
			fmt.Fprintf(&b, "      => %s\n", msg)
		}
	}
	failed := len(res.Failed())
	fmt.Fprintf(&b, "\n%d passed, %d failed in %s\n",
		len(res.Pages)-failed, failed, res.Duration.Round(time.Millisecond))
	return io.WriteString(w.output, b.String())
}

package report

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/raysh454/footcheck/internal/runner"
)

// Fingerprint renders the outcome of a run without identifiers or timings,
// so two runs over an unchanged site produce the same text.
func Fingerprint(res *runner.RunResult) string {
	var b strings.Builder
	for _, p := range res.Pages {
		fmt.Fprintf(&b, "%s %s\n", status(p), p.URL)
		if p.Report != nil {
			fmt.Fprintf(&b, "  footer=%t\n", p.Report.FooterFound)
			for _, c := range p.Report.Checks {
				fmt.Fprintf(&b, "  %s=%t %s\n", c.Name, c.Passed, c.Detail)
			}
		}
		if msg := p.Message(); msg != "" {
			fmt.Fprintf(&b, "  => %s\n", msg)
		}
	}
	return b.String()
}

// Compare returns a readable diff between the outcomes of two runs, or ""
// when they agree.
func Compare(base, head *runner.RunResult) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(Fingerprint(base), Fingerprint(head))
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var out strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffEqual:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			out.WriteString(prefix + line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteString("\n")
			}
		}
	}
	return out.String()
}

package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/raysh454/footcheck/internal/runner"
)

// MarkdownWriter outputs the run as a Markdown document, e.g. for a CI summary.
type MarkdownWriter struct {
	baseWriter
}

func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

func (w *MarkdownWriter) Write(res *runner.RunResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Footer check report")
	md.PlainText("")
	failed := len(res.Failed())
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run", "`" + res.RunID + "`"},
			{"Started", res.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Pages", strconv.Itoa(len(res.Pages))},
			{"Passed", strconv.Itoa(len(res.Pages) - failed)},
			{"Failed", strconv.Itoa(failed)},
		},
	})
	md.PlainText("")

	if failed > 0 {
		md.Warningf("%d of %d page(s) failed the footer checks.", failed, len(res.Pages))
	} else {
		md.Tip("Every page has a complete footer.")
	}
	md.PlainText("")

	for _, p := range res.Pages {
		w.writePage(md, p)
	}

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writePage(md *markdown.Markdown, p runner.PageResult) {
	md.H2(fmt.Sprintf("%s %s", status(p), p.URL))
	md.PlainText("")

	if msg := p.Message(); msg != "" {
		md.PlainTextf("**%s**", msg)
		md.PlainText("")
	}

	if p.Report == nil {
		return
	}
	if !p.Report.FooterFound {
		md.PlainText(p.Report.FooterDetail)
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(p.Report.Checks))
	for _, c := range p.Report.Checks {
		result := "✅"
		if !c.Passed {
			result = "❌"
		}
		rows = append(rows, []string{string(c.Name), result, c.Detail})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Check", "Result", "Detail"},
		Rows:   rows,
	})
	md.PlainTextf("_Checked in %s._", p.Duration.Round(time.Millisecond))
	md.PlainText("")
}

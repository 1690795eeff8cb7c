package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/raysh454/footcheck/internal/footer"
	"github.com/raysh454/footcheck/internal/runner"
)

// JSONWriter outputs the run for tool integration.
type JSONWriter struct {
	baseWriter
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

type jsonRun struct {
	RunID      string     `json:"run_id"`
	StartedAt  time.Time  `json:"started_at"`
	DurationMS int64      `json:"duration_ms"`
	Passed     bool       `json:"passed"`
	Pages      []jsonPage `json:"pages"`
}

type jsonPage struct {
	URL        string         `json:"url"`
	Status     string         `json:"status"`
	Message    string         `json:"message,omitempty"`
	FailedAt   string         `json:"failed_check,omitempty"`
	DurationMS int64          `json:"duration_ms"`
	Report     *footer.Report `json:"report,omitempty"`
}

func toJSON(res *runner.RunResult) jsonRun {
	out := jsonRun{
		RunID:      res.RunID,
		StartedAt:  res.StartedAt,
		DurationMS: res.Duration.Milliseconds(),
		Passed:     res.Passed(),
		Pages:      make([]jsonPage, 0, len(res.Pages)),
	}
	for _, p := range res.Pages {
		jp := jsonPage{
			URL:        p.URL,
			Status:     status(p),
			Message:    p.Message(),
			DurationMS: p.Duration.Milliseconds(),
			Report:     p.Report,
		}
		if p.Failure != nil {
			jp.FailedAt = string(p.Failure.Check)
		}
		out.Pages = append(out.Pages, jp)
	}
	return out
}

func (w *JSONWriter) Write(res *runner.RunResult) (int, error) {
	var data []byte
	var err error
	if w.indentString != "" {
		data, err = json.MarshalIndent(toJSON(res), w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(toJSON(res))
	}
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	return w.output.Write(data)
}

package webclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/raysh454/footcheck/internal/dom"
	"github.com/raysh454/footcheck/internal/interfaces"
	"github.com/raysh454/footcheck/internal/logging"
)

// maxBodySize caps how much of a response is parsed.
const maxBodySize = 10 << 20

// NetHTTPPage loads documents with net/http and never runs scripts or
// stylesheets. Visibility only reflects the hidden attribute and inline
// styles, so it suits server-rendered pages and local fixtures.
type NetHTTPPage struct {
	client *http.Client
	cfg    Config
	logger logging.Logger

	mu  sync.Mutex
	doc *dom.Document
	url string
}

var _ interfaces.Page = (*NetHTTPPage)(nil)

// NewNetHTTPPage creates a static page loader. A nil httpClient gets one with
// the configured navigation timeout.
func NewNetHTTPPage(cfg Config, logger logging.Logger, httpClient *http.Client) (*NetHTTPPage, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	componentLogger := logger.With(logging.F("backend", string(ClientNetHTTP)))

	if httpClient == nil {
		timeout := cfg.NavigateTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	componentLogger.Debug("created nethttp page",
		logging.F("timeout", httpClient.Timeout.String()))

	return &NetHTTPPage{
		client: httpClient,
		cfg:    cfg,
		logger: componentLogger,
	}, nil
}

// Navigate fetches url and parses the response. Like a browser it does not
// treat an error status as a failure; only transport errors are returned.
func (p *NetHTTPPage) Navigate(ctx context.Context, url string) error {
	p.logger.Debug("sending http request", logging.F("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if p.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", p.cfg.UserAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("http request failed",
			logging.F("url", url),
			logging.F("error", err))
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		p.logger.Warn("page returned error status",
			logging.F("url", url),
			logging.F("status", resp.StatusCode))
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	doc, err := dom.Parse(io.LimitReader(resp.Body, maxBodySize), finalURL)
	if err != nil {
		return fmt.Errorf("read %s: %w", url, err)
	}

	p.mu.Lock()
	p.doc = doc
	p.url = finalURL
	p.mu.Unlock()
	return nil
}

func (p *NetHTTPPage) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *NetHTTPPage) Find(_ context.Context, selector string) ([]interfaces.Element, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		return nil, fmt.Errorf("find %s: no document loaded", selector)
	}
	return p.doc.Find(selector), nil
}

// WaitVisible does not block: a static document cannot change, so an element
// that is not visible now never will be.
func (p *NetHTTPPage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) (interfaces.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		return nil, fmt.Errorf("wait for %s: no document loaded", selector)
	}
	el, ok := p.doc.First(selector)
	if !ok || !el.Visible() {
		p.logger.Debug("element not visible in static document",
			logging.F("selector", selector),
			logging.F("url", p.url),
			logging.F("timeout", timeout.String()))
		return nil, interfaces.ErrNotVisible
	}
	return el, nil
}

func (p *NetHTTPPage) Close() error {
	p.logger.Debug("closing nethttp page")
	p.client.CloseIdleConnections()
	return nil
}

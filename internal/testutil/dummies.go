// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without a browser or network.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/raysh454/footcheck/internal/dom"
	"github.com/raysh454/footcheck/internal/interfaces"
	"github.com/raysh454/footcheck/internal/logging"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// ─── Page ──────────────────────────────────────────────────────────────

// FakePage implements interfaces.Page over static HTML keyed by URL.
// It never sleeps: a wait that would time out returns ErrNotVisible at once
// and records the timeout it was given.
type FakePage struct {
	// Pages maps URL to HTML. Navigating anywhere else fails.
	Pages map[string]string

	// NavigateErrs forces an error for a specific URL.
	NavigateErrs map[string]error

	// WaitErr, when set, is returned by every WaitVisible call.
	WaitErr error

	mu          sync.Mutex
	doc         *dom.Document
	url         string
	Navigations []string
	Waits       []time.Duration
	Closed      int
}

var _ interfaces.Page = (*FakePage)(nil)

func (p *FakePage) Navigate(ctx context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Navigations = append(p.Navigations, url)
	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := p.NavigateErrs[url]; ok {
		return err
	}
	html, ok := p.Pages[url]
	if !ok {
		return fmt.Errorf("fake page: no content for %s", url)
	}
	doc, err := dom.Parse(strings.NewReader(html), url)
	if err != nil {
		return err
	}
	p.doc = doc
	p.url = url
	return nil
}

func (p *FakePage) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *FakePage) Find(_ context.Context, selector string) ([]interfaces.Element, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		return nil, nil
	}
	return p.doc.Find(selector), nil
}

func (p *FakePage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) (interfaces.Element, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Waits = append(p.Waits, timeout)
	if p.WaitErr != nil {
		return nil, p.WaitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.doc != nil {
		if el, ok := p.doc.First(selector); ok && el.Visible() {
			return el, nil
		}
	}
	return nil, interfaces.ErrNotVisible
}

func (p *FakePage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed++
	return nil
}

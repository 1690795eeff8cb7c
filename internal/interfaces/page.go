package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrNotVisible is returned by Page.WaitVisible when no element matching the
// selector became visible before the timeout. It is an expected outcome, not
// a browser failure.
var ErrNotVisible = errors.New("element not visible")

// Page is a handle to a loaded document in some browser backend.
// Implementations are not safe for concurrent use: one navigation at a time.
type Page interface {
	// Navigate loads url and blocks until the document has loaded.
	Navigate(ctx context.Context, url string) error

	// URL returns the address of the current document.
	URL() string

	// Find returns every element matching the CSS selector in the current
	// document. No match is an empty slice, not an error.
	Find(ctx context.Context, selector string) ([]Element, error)

	// WaitVisible blocks until the first element matching selector is visible
	// and returns it. It returns ErrNotVisible once timeout elapses.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) (Element, error)

	// Close releases the browser resources held by the page.
	Close() error
}

// Element is a read-only handle to a DOM node captured from a Page.
type Element interface {
	// Tag is the lower-case tag name.
	Tag() string

	// Visible reports whether the node was rendered when it was captured.
	Visible() bool

	// Attr returns the named attribute. For href and src the value is
	// resolved against the document URL.
	Attr(name string) (string, bool)

	// Text is the whitespace-trimmed text content of the node and its descendants.
	Text() string

	// OwnText is the trimmed text of the node's direct text children only.
	OwnText() string

	// TextNodes returns each direct text child, trimmed, skipping blank ones.
	TextNodes() []string

	// Find returns descendants matching the CSS selector in document order.
	Find(selector string) []Element
}

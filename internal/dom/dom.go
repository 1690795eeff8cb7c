// Package dom holds goquery-backed snapshots of rendered documents.
//
// A snapshot is plain HTML in which every element carries its rendered
// visibility and, for links and images, its resolved URL as data attributes.
// The chromedp backend produces those attributes in the browser; Parse
// derives them for static HTML. Either way an Element can answer visibility
// and attribute questions without going back to the browser.
package dom

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/raysh454/footcheck/internal/interfaces"
)

// Attributes written into snapshots.
const (
	VisibleAttr = "data-footcheck-visible"
	HrefAttr    = "data-footcheck-href"
	SrcAttr     = "data-footcheck-src"
)

// Document is a parsed snapshot.
type Document struct {
	doc  *goquery.Document
	base *url.URL
}

// Parse reads static HTML (no scripts, no stylesheets) and annotates it with
// visibility and resolved URLs. baseURL may be empty.
func Parse(r io.Reader, baseURL string) (*Document, error) {
	d, err := newDocument(r, baseURL)
	if err != nil {
		return nil, err
	}
	markVisibility(d.doc)
	resolveURLs(d.doc, d.base)
	return d, nil
}

// ParseSnapshot reads HTML that was already annotated by a browser.
func ParseSnapshot(r io.Reader, baseURL string) (*Document, error) {
	return newDocument(r, baseURL)
}

func newDocument(r io.Reader, baseURL string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	d := &Document{doc: doc}
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
		}
		d.base = u
		doc.Url = u
	}
	return d, nil
}

// BaseURL returns the document URL, or "" when unknown.
func (d *Document) BaseURL() string {
	if d.base == nil {
		return ""
	}
	return d.base.String()
}

// Find returns every element matching selector in document order.
func (d *Document) Find(selector string) []interfaces.Element {
	return wrap(d.doc.Find(selector))
}

// First returns the first element matching selector.
func (d *Document) First(selector string) (*Element, bool) {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return &Element{sel: sel}, true
}

// Element is a single node of a Document. It implements interfaces.Element.
type Element struct {
	sel *goquery.Selection
}

var _ interfaces.Element = (*Element)(nil)

func (e *Element) Tag() string {
	return goquery.NodeName(e.sel)
}

func (e *Element) Visible() bool {
	v, _ := e.sel.Attr(VisibleAttr)
	return v == "1"
}

func (e *Element) Attr(name string) (string, bool) {
	switch strings.ToLower(name) {
	case "href":
		if v, ok := e.sel.Attr(HrefAttr); ok {
			return v, true
		}
	case "src":
		if v, ok := e.sel.Attr(SrcAttr); ok {
			return v, true
		}
	}
	return e.sel.Attr(name)
}

func (e *Element) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

func (e *Element) OwnText() string {
	var b strings.Builder
	for _, n := range e.sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func (e *Element) TextNodes() []string {
	var out []string
	for _, n := range e.sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.TextNode {
				continue
			}
			if t := strings.TrimSpace(c.Data); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

func (e *Element) Find(selector string) []interfaces.Element {
	return wrap(e.sel.Find(selector))
}

// HTML returns the outer HTML of the element including snapshot attributes.
func (e *Element) HTML() (string, error) {
	return goquery.OuterHtml(e.sel)
}

func wrap(sel *goquery.Selection) []interfaces.Element {
	out := make([]interfaces.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &Element{sel: s})
	})
	return out
}

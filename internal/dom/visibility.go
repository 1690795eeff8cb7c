package dom

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Tags that never produce a box.
var nonRendered = map[string]bool{
	"head":     true,
	"title":    true,
	"meta":     true,
	"link":     true,
	"script":   true,
	"style":    true,
	"template": true,
	"noscript": true,
}

// markVisibility approximates rendered visibility for HTML that was never laid
// out: only the hidden attribute and inline display/visibility styles are
// known. Stylesheet rules are invisible to it.
//
// goquery's Find walks the tree in document order, so a parent is always
// marked before its children.
func markVisibility(doc *goquery.Document) {
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		visible := !hiddenSelf(s)
		if visible {
			if parent := s.Parent(); parent.Length() > 0 {
				if v, ok := parent.Attr(VisibleAttr); ok && v == "0" {
					visible = false
				}
			}
		}
		if visible {
			s.SetAttr(VisibleAttr, "1")
		} else {
			s.SetAttr(VisibleAttr, "0")
		}
	})
}

func hiddenSelf(s *goquery.Selection) bool {
	tag := goquery.NodeName(s)
	if nonRendered[tag] {
		return true
	}
	if _, ok := s.Attr("hidden"); ok {
		return true
	}
	if tag == "input" && strings.EqualFold(s.AttrOr("type", ""), "hidden") {
		return true
	}
	style := strings.ToLower(strings.Join(strings.Fields(s.AttrOr("style", "")), ""))
	return strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden")
}

func resolveURLs(doc *goquery.Document, base *url.URL) {
	resolve := func(attr, target string) {
		doc.Find("[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
			raw := strings.TrimSpace(s.AttrOr(attr, ""))
			ref, err := url.Parse(raw)
			if err != nil {
				return
			}
			if base != nil {
				ref = base.ResolveReference(ref)
			}
			s.SetAttr(target, ref.String())
		})
	}
	resolve("href", HrefAttr)
	resolve("src", SrcAttr)
}

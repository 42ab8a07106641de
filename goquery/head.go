package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/linkpreview"
)

// Ensure Head implements linkpreview.Head at compile time.
var _ linkpreview.Head = (*Head)(nil)

// Head is a read-only view over the head element of a parsed document.
type Head struct {
	doc *goquery.Document
	sel *goquery.Selection
}

// Content returns the content attribute of the first meta element in
// document order whose property attribute equals property. A matching
// element without a content attribute yields an empty value.
func (h *Head) Content(property string) (string, bool, error) {
	selector := `meta[property="` + escapeCSSString(property) + `"]`
	m, err := cascadia.Compile(selector)
	if err != nil {
		return "", false, linkpreview.Errorf(linkpreview.EPARSE, "invalid selector %s: %v", selector, err)
	}

	match := h.sel.FindMatcher(m).First()
	if match.Length() == 0 {
		return "", false, nil
	}
	content, _ := match.Attr("content")
	return content, true, nil
}

// DocumentTitle returns the whitespace-normalized text of the owning
// document's first <title> element.
func (h *Head) DocumentTitle() (string, bool) {
	title := h.doc.Find("title").First()
	if title.Length() == 0 {
		return "", false
	}
	return strings.Join(strings.Fields(title.Text()), " "), true
}

// escapeCSSString escapes s for use inside a double-quoted CSS string.
func escapeCSSString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

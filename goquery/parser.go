// Package goquery implements linkpreview.Parser and linkpreview.Head on top
// of golang.org/x/net/html and github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkpreview"
	"golang.org/x/net/html"
)

// Ensure Parser implements linkpreview.Parser at compile time.
var _ linkpreview.Parser = (*Parser)(nil)

// Parser builds navigable document trees from decoded HTML.
// Parser holds no state and is safe for concurrent use.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses text as HTML and returns its <head> element, or the
// document root if the tree has no head.
func (p *Parser) Parse(text string) (linkpreview.Head, error) {
	root, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, linkpreview.Errorf(linkpreview.EPARSE, "failed to parse HTML: %v", err)
	}
	return HeadOf(goquery.NewDocumentFromNode(root)), nil
}

// HeadOf returns the head of doc, falling back to the document root.
func HeadOf(doc *goquery.Document) *Head {
	sel := doc.Find("head").First()
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	return &Head{doc: doc, sel: sel}
}

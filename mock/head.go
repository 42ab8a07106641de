package mock

import "github.com/fwojciec/linkpreview"

var _ linkpreview.Head = (*Head)(nil)

// Head is a mock implementation of linkpreview.Head.
type Head struct {
	ContentFn       func(property string) (string, bool, error)
	DocumentTitleFn func() (string, bool)
}

func (h *Head) Content(property string) (string, bool, error) {
	return h.ContentFn(property)
}

func (h *Head) DocumentTitle() (string, bool) {
	return h.DocumentTitleFn()
}

var _ linkpreview.Parser = (*Parser)(nil)

// Parser is a mock implementation of linkpreview.Parser.
type Parser struct {
	ParseFn func(text string) (linkpreview.Head, error)
}

func (p *Parser) Parse(text string) (linkpreview.Head, error) {
	return p.ParseFn(text)
}

var _ linkpreview.Decoder = (*Decoder)(nil)

// Decoder is a mock implementation of linkpreview.Decoder.
type Decoder struct {
	DecodeFn func(b []byte) (string, error)
}

func (d *Decoder) Decode(b []byte) (string, error) {
	return d.DecodeFn(b)
}

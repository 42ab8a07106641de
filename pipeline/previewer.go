// Package pipeline composes fetching, decoding, parsing and extraction into
// link previews, for single URLs and for batches.
package pipeline

import (
	"context"
	"errors"

	"github.com/fwojciec/linkpreview"
)

// Ensure Previewer implements linkpreview.Previewer at compile time.
var _ linkpreview.Previewer = (*Previewer)(nil)

// Previewer runs fetch, decode, parse and extract for one URL at a time.
// It holds no per-request state and is safe for concurrent use if its
// collaborators are.
type Previewer struct {
	Fetcher linkpreview.Fetcher
	Decoder linkpreview.Decoder
	Parser  linkpreview.Parser
}

// NewPreviewer creates a Previewer from its collaborators.
func NewPreviewer(fetcher linkpreview.Fetcher, decoder linkpreview.Decoder, parser linkpreview.Parser) *Previewer {
	return &Previewer{Fetcher: fetcher, Decoder: decoder, Parser: parser}
}

// Preview returns the metadata for the page at rawURL. A relative image URL
// is resolved against the page URL.
func (p *Previewer) Preview(ctx context.Context, rawURL string) (*linkpreview.Metadata, error) {
	u, err := linkpreview.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	body, err := p.Fetcher.Fetch(ctx, u.String())
	if err != nil {
		return nil, stageError(ctx, linkpreview.EFETCH, err)
	}

	text, err := p.Decoder.Decode(body)
	if err != nil {
		return nil, stageError(ctx, linkpreview.EDECODE, err)
	}

	head, err := p.Parser.Parse(text)
	if err != nil {
		return nil, stageError(ctx, linkpreview.EPARSE, err)
	}

	m, err := linkpreview.NewMetadata(head)
	if err != nil {
		return nil, err
	}
	if m.ImageURL != nil && !m.ImageURL.IsAbs() {
		m.ImageURL = u.ResolveReference(m.ImageURL)
	}
	return m, nil
}

// stageError tags errors from collaborators that carry no application code
// with the code of the stage that produced them. Context errors pass
// through untouched.
func stageError(ctx context.Context, code string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return err
	}
	if linkpreview.ErrorCode(err) != linkpreview.EINTERNAL {
		return err
	}
	return linkpreview.Errorf(code, "%v", err)
}

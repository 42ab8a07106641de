package mock

import (
	"context"

	"github.com/fwojciec/linkpreview"
)

var _ linkpreview.Previewer = (*Previewer)(nil)

// Previewer is a mock implementation of linkpreview.Previewer.
type Previewer struct {
	PreviewFn func(ctx context.Context, rawURL string) (*linkpreview.Metadata, error)
}

func (p *Previewer) Preview(ctx context.Context, rawURL string) (*linkpreview.Metadata, error) {
	return p.PreviewFn(ctx, rawURL)
}

var _ linkpreview.PreviewService = (*PreviewService)(nil)

// PreviewService is a mock implementation of linkpreview.PreviewService.
type PreviewService struct {
	CreatePreviewFn   func(ctx context.Context, preview *linkpreview.Preview) error
	FindPreviewByIDFn func(ctx context.Context, id string) (*linkpreview.Preview, error)
	FindPreviewsFn    func(ctx context.Context, filter linkpreview.PreviewFilter) ([]*linkpreview.Preview, error)
	DeletePreviewFn   func(ctx context.Context, id string) error
}

func (s *PreviewService) CreatePreview(ctx context.Context, preview *linkpreview.Preview) error {
	return s.CreatePreviewFn(ctx, preview)
}

func (s *PreviewService) FindPreviewByID(ctx context.Context, id string) (*linkpreview.Preview, error) {
	return s.FindPreviewByIDFn(ctx, id)
}

func (s *PreviewService) FindPreviews(ctx context.Context, filter linkpreview.PreviewFilter) ([]*linkpreview.Preview, error) {
	return s.FindPreviewsFn(ctx, filter)
}

func (s *PreviewService) DeletePreview(ctx context.Context, id string) error {
	return s.DeletePreviewFn(ctx, id)
}

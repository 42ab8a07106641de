package linkpreview

import (
	"context"
	"net/url"
	"time"
)

// Previewer runs the fetch, decode, parse and extract pipeline for a URL.
type Previewer interface {
	// Preview returns the metadata for the page at rawURL.
	// Malformed URLs are rejected with EINVALID before any I/O; otherwise
	// the first failing stage's error is returned and no metadata is.
	Preview(ctx context.Context, rawURL string) (*Metadata, error)
}

// ParseURL validates a pipeline input URL. Only absolute http and https
// URLs are accepted.
func ParseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(EINVALID, "invalid URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, Errorf(EINVALID, "invalid URL %q: missing host", raw)
	}
	return u, nil
}

// Preview is a stored extraction result.
type Preview struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Metadata    *Metadata `json:"metadata"`
	Fingerprint string    `json:"fingerprint"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the preview contains invalid fields.
func (p *Preview) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "preview URL required")
	}
	if _, err := ParseURL(p.URL); err != nil {
		return err
	}
	if p.Metadata == nil {
		return Errorf(EINVALID, "preview metadata required")
	}
	if !p.Metadata.Type.Valid() {
		return Errorf(EINVALID, "preview content type %q is not valid", p.Metadata.Type)
	}
	return nil
}

// PreviewService represents a service for managing stored previews.
type PreviewService interface {
	// CreatePreview stores a preview, assigning its ID, timestamp and
	// fingerprint.
	CreatePreview(ctx context.Context, preview *Preview) error

	// FindPreviewByID retrieves a preview by ID.
	// Returns ENOTFOUND if the preview does not exist.
	FindPreviewByID(ctx context.Context, id string) (*Preview, error)

	// FindPreviews retrieves previews matching the filter, newest first.
	FindPreviews(ctx context.Context, filter PreviewFilter) ([]*Preview, error)

	// DeletePreview permanently removes a preview.
	// Returns ENOTFOUND if the preview does not exist.
	DeletePreview(ctx context.Context, id string) error
}

// PreviewFilter represents a filter for FindPreviews.
type PreviewFilter struct {
	ID   *string      `json:"id"`
	URL  *string      `json:"url"`
	Type *ContentType `json:"type"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

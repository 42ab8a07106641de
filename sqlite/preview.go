package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/linkpreview"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ linkpreview.PreviewService = (*PreviewService)(nil)

// PreviewService implements linkpreview.PreviewService using SQLite.
type PreviewService struct {
	db *DB
}

// NewPreviewService creates a new PreviewService.
func NewPreviewService(db *DB) *PreviewService {
	return &PreviewService{db: db}
}

// Fingerprint computes an xxHash over the metadata fields so that two
// previews of a page can be compared without field-by-field checks.
// Absent and empty fields hash differently.
func Fingerprint(m *linkpreview.Metadata) string {
	d := xxhash.New()
	writeField := func(present bool, v string) {
		if !present {
			_, _ = d.WriteString("\x00-")
			return
		}
		_, _ = d.WriteString("\x00+" + v)
	}

	writeField(m.Title != nil, deref(m.Title))
	writeField(true, string(m.Type))
	writeField(m.Description != nil, deref(m.Description))
	writeField(m.ImageURL != nil, urlString(m.ImageURL))
	if m.ImageSize != nil {
		writeField(true, strconv.FormatFloat(m.ImageSize.Width, 'g', -1, 64)+"x"+strconv.FormatFloat(m.ImageSize.Height, 'g', -1, 64))
	} else {
		writeField(false, "")
	}

	return fmt.Sprintf("%016x", d.Sum64())
}

// CreatePreview stores a new preview. The preview's ID, FetchedAt and
// Fingerprint are filled in only once the row is stored.
func (s *PreviewService) CreatePreview(ctx context.Context, p *linkpreview.Preview) error {
	if err := p.Validate(); err != nil {
		return err
	}

	id := uuid.New().String()
	fetchedAt := p.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}
	fetchedAt = fetchedAt.UTC()
	fingerprint := Fingerprint(p.Metadata)

	m := p.Metadata
	var width, height sql.NullFloat64
	if m.ImageSize != nil {
		width = sql.NullFloat64{Float64: m.ImageSize.Width, Valid: true}
		height = sql.NullFloat64{Float64: m.ImageSize.Height, Valid: true}
	}
	var imageURL sql.NullString
	if m.ImageURL != nil {
		imageURL = sql.NullString{String: m.ImageURL.String(), Valid: true}
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO previews (id, url, title, type, description, image_url, image_width, image_height, fingerprint, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, p.URL, nullString(m.Title), string(m.Type), nullString(m.Description), imageURL,
		width, height, fingerprint, formatTime(fetchedAt)); err != nil {
		return err
	}

	p.ID = id
	p.FetchedAt = fetchedAt
	p.Fingerprint = fingerprint
	return nil
}

// FindPreviewByID retrieves a preview by ID.
func (s *PreviewService) FindPreviewByID(ctx context.Context, id string) (*linkpreview.Preview, error) {
	previews, err := s.FindPreviews(ctx, linkpreview.PreviewFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(previews) == 0 {
		return nil, linkpreview.Errorf(linkpreview.ENOTFOUND, "preview %q not found", id)
	}
	return previews[0], nil
}

// FindPreviews retrieves previews matching the filter, newest first.
func (s *PreviewService) FindPreviews(ctx context.Context, filter linkpreview.PreviewFilter) ([]*linkpreview.Preview, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, url, title, type, description, image_url, image_width, image_height, fingerprint, fetched_at
		FROM previews WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Type != nil {
		query.WriteString(" AND type = ?")
		args = append(args, string(*filter.Type))
	}

	query.WriteString(" ORDER BY fetched_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var previews []*linkpreview.Preview
	for rows.Next() {
		p, err := scanPreview(rows)
		if err != nil {
			return nil, err
		}
		previews = append(previews, p)
	}

	return previews, rows.Err()
}

// DeletePreview permanently removes a preview.
func (s *PreviewService) DeletePreview(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM previews WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return linkpreview.Errorf(linkpreview.ENOTFOUND, "preview %q not found", id)
	}
	return nil
}

func scanPreview(rows *sql.Rows) (*linkpreview.Preview, error) {
	var (
		p                  linkpreview.Preview
		m                  linkpreview.Metadata
		title, description sql.NullString
		imageURL           sql.NullString
		contentType        string
		width, height      sql.NullFloat64
		fetchedAt          string
	)

	if err := rows.Scan(&p.ID, &p.URL, &title, &contentType, &description, &imageURL,
		&width, &height, &p.Fingerprint, &fetchedAt); err != nil {
		return nil, err
	}

	m.Title = stringPtr(title)
	m.Type = linkpreview.ParseContentType(contentType)
	m.Description = stringPtr(description)
	if imageURL.Valid {
		u, err := url.Parse(imageURL.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse image_url: %w", err)
		}
		m.ImageURL = u
	}
	if width.Valid && height.Valid {
		m.ImageSize = &linkpreview.ImageSize{Width: width.Float64, Height: height.Float64}
	}
	p.Metadata = &m

	var err error
	p.FetchedAt, err = parseTime(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linkpreview"
)

// Ensure LoggingPreviewer implements linkpreview.Previewer.
var _ linkpreview.Previewer = (*LoggingPreviewer)(nil)

// LoggingPreviewer wraps a Previewer with logging of each extraction.
type LoggingPreviewer struct {
	next   linkpreview.Previewer
	logger *slog.Logger
}

// NewLoggingPreviewer creates a new LoggingPreviewer.
func NewLoggingPreviewer(next linkpreview.Previewer, logger *slog.Logger) *LoggingPreviewer {
	return &LoggingPreviewer{next: next, logger: logger}
}

// Preview delegates to the wrapped previewer and logs the outcome.
// Invalid input URLs are logged at debug level since they are no-ops.
func (p *LoggingPreviewer) Preview(ctx context.Context, rawURL string) (m *linkpreview.Metadata, err error) {
	defer func(begin time.Time) {
		if linkpreview.ErrorCode(err) == linkpreview.EINVALID {
			p.logger.Debug("preview skipped", "url", rawURL, "err", err)
			return
		}
		attrs := []any{"url", rawURL, "duration", time.Since(begin)}
		if m != nil {
			attrs = append(attrs,
				"type", string(m.Type),
				"title", m.Title != nil,
				"image", m.ImageURL != nil,
			)
		}
		if err != nil {
			attrs = append(attrs, "code", linkpreview.ErrorCode(err), "err", err)
		}
		p.logger.Info("preview", attrs...)
	}(time.Now())
	return p.next.Preview(ctx, rawURL)
}

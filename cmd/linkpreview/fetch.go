package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/linkpreview"
	"github.com/fwojciec/linkpreview/pipeline"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	progress := func(e pipeline.ProgressEvent) {
		if e.Error != nil {
			deps.Logger.Debug("progress", "completed", e.Completed, "total", e.Total, "url", e.URL, "err", e.Error)
			return
		}
		deps.Logger.Debug("progress", "completed", e.Completed, "total", e.Total, "url", e.URL)
	}

	results, err := deps.Batch.PreviewAll(deps.Ctx, c.URLs, progress)
	if err != nil {
		return err
	}

	var views []previewView
	attempted, failed := 0, 0
	for _, r := range results {
		switch {
		case r.Duplicate:
			fmt.Fprintf(deps.Stderr, "skip: %s: duplicate URL\n", r.URL)
			continue
		case linkpreview.ErrorCode(r.Err) == linkpreview.EINVALID:
			fmt.Fprintf(deps.Stderr, "skip: %s\n", linkpreview.ErrorMessage(r.Err))
			continue
		}

		attempted++
		if r.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.URL, linkpreview.ErrorMessage(r.Err))
			continue
		}

		view := newPreviewView(r.URL, r.Metadata)
		if c.Save {
			p := &linkpreview.Preview{URL: r.URL, Metadata: r.Metadata, FetchedAt: time.Now()}
			if err := deps.Previews.CreatePreview(deps.Ctx, p); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.URL, linkpreview.ErrorMessage(err))
			} else {
				view = newStoredPreviewView(p)
			}
		}
		views = append(views, view)
	}

	if err := writePreviews(deps.Stdout, c.Format, views); err != nil {
		return err
	}

	if attempted > 0 && failed == attempted {
		return linkpreview.Errorf(linkpreview.EFETCH, "all %d URLs failed", attempted)
	}
	return nil
}

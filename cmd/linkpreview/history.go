package main

import (
	"fmt"

	"github.com/fwojciec/linkpreview"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := linkpreview.PreviewFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.URL = &c.URL
	}
	if c.Type != "" {
		ct := linkpreview.ContentType(c.Type)
		if !ct.Valid() {
			err := linkpreview.Errorf(linkpreview.EINVALID, "unknown type %q (see 'linkpreview types')", c.Type)
			fmt.Fprintf(deps.Stderr, "error: %s\n", linkpreview.ErrorMessage(err))
			return err
		}
		filter.Type = &ct
	}

	previews, err := deps.Previews.FindPreviews(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkpreview.ErrorMessage(err))
		return err
	}

	if len(previews) == 0 && c.Format == "text" {
		fmt.Fprintln(deps.Stdout, "No previews saved")
		return nil
	}

	views := make([]previewView, 0, len(previews))
	for _, p := range previews {
		views = append(views, newStoredPreviewView(p))
	}
	return writePreviews(deps.Stdout, c.Format, views)
}

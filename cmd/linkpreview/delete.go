package main

import (
	"fmt"

	"github.com/fwojciec/linkpreview"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Previews.DeletePreview(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkpreview.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted preview %q\n", c.ID)
	return nil
}

package main

import (
	"fmt"

	"github.com/fwojciec/linkpreview"
)

// Run executes the types command.
func (c *TypesCmd) Run(deps *Dependencies) error {
	for _, ct := range linkpreview.ContentTypes() {
		fmt.Fprintln(deps.Stdout, ct)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/fwojciec/markdownizer"
)

// Run executes the whoami command.
func (c *WhoamiCmd) Run(deps *Dependencies) error {
	id, err := deps.Identity.Resolve(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", markdownizer.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, id)
	return nil
}

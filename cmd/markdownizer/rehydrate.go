package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/markdownizer"
)

// Run executes the rehydrate command.
func (c *RehydrateCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.Tokens)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	var sk skeletonFile
	if err := json.Unmarshal(data, &sk); err != nil {
		err = markdownizer.Errorf(markdownizer.EINVALID, "malformed token file %s: %v", c.Tokens, err)
		fmt.Fprintf(deps.Stderr, "error: %s\n", markdownizer.ErrorMessage(err))
		return err
	}

	input, err := readInput(c.File, deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	markdown, stats := markdownizer.RehydrateReport(input, sk.Tokens)
	warnRehydration(deps.Stderr, stats.Missed, stats.Dropped)

	fmt.Fprint(deps.Stdout, markdown)
	return nil
}

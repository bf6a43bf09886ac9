package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/markdownizer"
)

// skeletonFile is the JSON document printed by skeleton and read by rehydrate.
type skeletonFile struct {
	HTML   string                  `json:"html"`
	Tokens markdownizer.TokenTable `json:"tokens"`
}

// Run executes the skeleton command.
func (c *SkeletonCmd) Run(deps *Dependencies) error {
	input, err := readInput(c.File, deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	sk, err := deps.Skeletonizer.Skeletonize(input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", markdownizer.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(skeletonFile{HTML: sk.HTML, Tokens: sk.Tokens})
}

// readInput returns the contents of path, or of stdin when path is empty.
func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

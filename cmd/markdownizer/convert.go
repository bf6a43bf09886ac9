package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/markdownizer"
	"github.com/fwojciec/markdownizer/fs"
	"github.com/fwojciec/markdownizer/pipeline"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	if len(c.URLs) > 1 && deps.Writer == nil {
		err := markdownizer.Errorf(markdownizer.EINVALID, "converting several URLs requires --output")
		fmt.Fprintf(deps.Stderr, "error: %s\n", markdownizer.ErrorMessage(err))
		return err
	}

	var userID string
	if deps.Identity != nil {
		id, err := deps.Identity.Resolve(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", markdownizer.ErrorMessage(err))
			return err
		}
		userID = id
	}

	if deps.Writer == nil {
		return c.convertToStdout(deps, userID)
	}

	batch := &pipeline.Batch{
		Pipeline:    deps.Pipeline,
		Writer:      deps.Writer,
		Concurrency: c.Concurrency,
	}
	if c.RateLimit > 0 {
		batch.RateLimiter = pipeline.NewDomainLimiter(c.RateLimit)
	}

	progress := func(event pipeline.ProgressEvent) {
		switch event.Type {
		case pipeline.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", pipeline.TruncateURL(event.URL, 60), event.Error)
		case pipeline.ProgressSaved:
			fmt.Fprintf(deps.Stdout, "  %s\n", event.Path)
		}
	}

	result, err := batch.Run(deps.Ctx, c.URLs, userID, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error converting: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages (%s)\n", result.Saved, pipeline.FormatBytes(result.Bytes))
	warnRehydration(deps.Stderr, result.Missed, result.Dropped)
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d pages failed", result.Failed, len(c.URLs))
	}
	return nil
}

func (c *ConvertCmd) convertToStdout(deps *Dependencies, userID string) error {
	page, err := deps.Pipeline.ConvertURL(deps.Ctx, c.URLs[0], userID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", markdownizer.ErrorMessage(err))
		return err
	}

	warnRehydration(deps.Stderr, page.Missed, page.Dropped)

	if c.FrontMatter {
		page.ContentHash = fs.ContentHash(page.Markdown)
		fmt.Fprintln(deps.Stdout, fs.FormatPage(page))
		return nil
	}
	fmt.Fprintln(deps.Stdout, page.Markdown)
	return nil
}

// warnRehydration reports tokens left in the Markdown and text the converter
// discarded.
func warnRehydration(w io.Writer, missed, dropped int) {
	if missed > 0 {
		fmt.Fprintf(w, "warning: %d tokens could not be restored\n", missed)
	}
	if dropped > 0 {
		fmt.Fprintf(w, "warning: %d text fragments were dropped by the converter\n", dropped)
	}
}

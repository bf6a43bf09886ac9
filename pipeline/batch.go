package pipeline

import (
	"context"
	"sync/atomic"

	"github.com/fwojciec/markdownizer"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages converted at once.
const DefaultConcurrency = 4

// Batch converts many URLs concurrently and writes the resulting pages.
type Batch struct {
	Pipeline    *Pipeline
	Writer      markdownizer.PageWriter
	RateLimiter *DomainLimiter
	Concurrency int
}

// Result holds the outcome of a batch.
type Result struct {
	Saved   int
	Failed  int
	Bytes   int
	Missed  int
	Dropped int
	Paths   []string
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSaved
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

type pageResult struct {
	position int
	url      string
	page     *markdownizer.Page
	err      error
}

// Run converts urls and writes each page. Pages are written in input order
// once every conversion has finished, so file name collisions resolve the
// same way on every run. A failed page does not stop the batch.
func (b *Batch) Run(ctx context.Context, urls []string, userID string, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan pageResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			g.Go(func() error {
				resultCh <- b.convert(gctx, i, url, userID)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	results := make([]pageResult, total)
	for r := range resultCh {
		results[r.position] = r
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Add(1)),
			Total:     total,
			URL:       r.url,
		}
		if r.err != nil {
			event.Type = ProgressFailed
			event.Error = r.err
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result Result
	for _, r := range results {
		if r.err != nil {
			result.Failed++
			continue
		}

		path, err := b.Writer.WritePage(ctx, r.page)
		if err != nil {
			result.Failed++
			progress(ProgressEvent{Type: ProgressFailed, Total: total, URL: r.url, Error: err})
			continue
		}

		result.Saved++
		result.Bytes += len(r.page.Markdown)
		result.Missed += r.page.Missed
		result.Dropped += r.page.Dropped
		result.Paths = append(result.Paths, path)
		progress(ProgressEvent{Type: ProgressSaved, Total: total, URL: r.url, Path: path})
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return &result, nil
}

// convert runs the pipeline for a single URL.
func (b *Batch) convert(ctx context.Context, position int, url, userID string) pageResult {
	result := pageResult{position: position, url: url}

	if b.RateLimiter != nil {
		if err := b.RateLimiter.Wait(ctx, url); err != nil {
			result.err = err
			return result
		}
	}

	result.page, result.err = b.Pipeline.ConvertURL(ctx, url, userID)
	return result
}

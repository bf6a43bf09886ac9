package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/markdownizer"
	main "github.com/fwojciec/markdownizer/cmd/markdownizer"
	"github.com/fwojciec/markdownizer/mock"
	"github.com/fwojciec/markdownizer/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPipeline returns a pipeline that turns every page into "# <title>".
func testPipeline(fetchErr error) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if fetchErr != nil {
					return "", fetchErr
				}
				return "<html>" + url + "</html>", nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(string) (*markdownizer.ExtractResult, error) {
				return &markdownizer.ExtractResult{
					Title:       "Hello",
					ContentHTML: "<h1>Hello</h1>",
					Strategy:    markdownizer.StrategySemantic,
				}, nil
			},
		},
		Skeletonizer: &mock.Skeletonizer{
			SkeletonizeFn: func(string) (*markdownizer.Skeleton, error) {
				return &markdownizer.Skeleton{
					HTML:   "<h1>{{MDZ0}}</h1>",
					Tokens: markdownizer.TokenTable{"{{MDZ0}}": "Hello"},
				}, nil
			},
		},
		Converter: &mock.ConversionService{
			ConvertSkeletonFn: func(_ context.Context, req *markdownizer.ConversionRequest) (*markdownizer.ConversionResponse, error) {
				if req.UserID != "user-1" {
					return nil, markdownizer.Errorf(markdownizer.EUNAUTHORIZED, "unexpected user %q", req.UserID)
				}
				return &markdownizer.ConversionResponse{MarkdownSkeleton: "# {{MDZ0}}"}, nil
			},
		},
	}
}

func testIdentity() *markdownizer.IdentityResolver {
	return &markdownizer.IdentityResolver{
		Sync:  &mock.MemoryIdentityStore{ID: "user-1"},
		Local: &mock.MemoryIdentityStore{},
	}
}

func TestConvertCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints a single page to stdout", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Identity: testIdentity(),
			Pipeline: testPipeline(nil),
		}

		cmd := &main.ConvertCmd{URLs: []string{"https://example.com"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "# Hello\n", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("adds front matter when requested", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Identity: testIdentity(),
			Pipeline: testPipeline(nil),
		}

		cmd := &main.ConvertCmd{URLs: []string{"https://example.com"}, FrontMatter: true}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "source: https://example.com\n")
		assert.Contains(t, stdout.String(), "strategy: semantic-html\n")
		assert.Contains(t, stdout.String(), "# Hello")
	})

	t.Run("requires output directory for several URLs", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Pipeline: testPipeline(nil),
		}

		cmd := &main.ConvertCmd{URLs: []string{"https://a.example.com", "https://b.example.com"}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, markdownizer.EINVALID, markdownizer.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--output")
	})

	t.Run("writes several pages through the writer", func(t *testing.T) {
		t.Parallel()

		var written []string
		writer := &mock.PageWriter{
			WritePageFn: func(_ context.Context, page *markdownizer.Page) (string, error) {
				written = append(written, page.URL)
				return "/out/hello.md", nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Identity: testIdentity(),
			Pipeline: testPipeline(nil),
			Writer:   writer,
		}

		cmd := &main.ConvertCmd{
			URLs:        []string{"https://a.example.com", "https://b.example.com"},
			Concurrency: 2,
		}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, written)
		assert.Contains(t, stdout.String(), "Saved 2 pages")
	})

	t.Run("reports the user-facing message on failure", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Identity: testIdentity(),
			Pipeline: testPipeline(markdownizer.Errorf(markdownizer.ERATELIMIT, "Too many requests. Please wait a moment.")),
		}

		cmd := &main.ConvertCmd{URLs: []string{"https://example.com"}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, "error: Too many requests. Please wait a moment.\n", stderr.String())
	})

	t.Run("fails when some pages fail", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Identity: testIdentity(),
			Pipeline: testPipeline(errors.New("connection refused")),
			Writer:   &mock.PageWriter{},
		}

		cmd := &main.ConvertCmd{URLs: []string{"https://a.example.com", "https://b.example.com"}}
		err := cmd.Run(deps)

		require.EqualError(t, err, "2 of 2 pages failed")
		assert.Contains(t, stderr.String(), "skip https://a.example.com: connection refused")
	})
}

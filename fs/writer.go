// Package fs stores markdownizer output and shared state on the file system.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/markdownizer"
)

// DefaultTitle names pages that have no title.
const DefaultTitle = "markdown-page"

// SanitizeTitle turns a page title into a file name stem: every character
// other than an ASCII letter or digit becomes "_" and the result is
// lowercased.
func SanitizeTitle(title string) string {
	if title == "" {
		title = DefaultTitle
	}
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// ContentHash returns the hex xxhash of the Markdown content.
func ContentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// FormatPage formats a page with YAML front matter.
func FormatPage(page *markdownizer.Page) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(strconv.Quote(page.Title))
	if page.Strategy != "" {
		b.WriteString("\nstrategy: ")
		b.WriteString(page.Strategy)
	}
	b.WriteString("\nconverted: ")
	b.WriteString(page.ConvertedAt.Format("2006-01-02"))
	b.WriteString("\nhash: ")
	b.WriteString(page.ContentHash)
	b.WriteString("\n---\n\n")
	b.WriteString(page.Markdown)
	return b.String()
}

// Ensure Writer implements markdownizer.PageWriter at compile time.
var _ markdownizer.PageWriter = (*Writer)(nil)

// Writer writes pages as Markdown files into a directory.
type Writer struct {
	baseDir     string
	frontMatter bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithFrontMatter prefixes each file with YAML front matter.
func WithFrontMatter(enabled bool) WriterOption {
	return func(w *Writer) {
		w.frontMatter = enabled
	}
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string, opts ...WriterOption) *Writer {
	w := &Writer{baseDir: baseDir}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WritePage writes the page to <sanitized title>.md and returns the path.
// When a different page already occupies that name a numeric suffix is
// added; rewriting identical content reuses the existing file.
func (w *Writer) WritePage(ctx context.Context, page *markdownizer.Page) (string, error) {
	if err := page.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if page.ContentHash == "" {
		page.ContentHash = ContentHash(page.Markdown)
	}

	content := page.Markdown
	if w.frontMatter {
		content = FormatPage(page)
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	stem := SanitizeTitle(page.Title)
	for i := 0; ; i++ {
		name := stem + ".md"
		if i > 0 {
			name = fmt.Sprintf("%s-%d.md", stem, i)
		}
		path := filepath.Join(w.baseDir, name)

		existing, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return path, writeFileAtomic(path, []byte(content))
		} else if err != nil {
			return "", err
		}
		if string(existing) == content {
			return path, nil
		}
	}
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place so readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

package markdownizer

import "context"

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input is usually a skeleton, so the converter only ever sees
	// tokens where the text used to be.
	Convert(html string) (string, error)
}

// ConversionRequest is the payload sent to a conversion service.
type ConversionRequest struct {
	HTMLSkeleton string `json:"html_skeleton"`
	URL          string `json:"url"`

	// UserID identifies the caller. It travels in a header, not the body.
	UserID string `json:"-"`
}

// Validate returns an error if the request contains invalid fields.
func (r *ConversionRequest) Validate() error {
	if r.HTMLSkeleton == "" {
		return Errorf(EINVALID, "html_skeleton required")
	}
	return nil
}

// ConversionResponse is returned by a conversion service.
type ConversionResponse struct {
	MarkdownSkeleton string `json:"markdown_skeleton"`
}

// ConversionService turns an HTML skeleton into a Markdown skeleton.
// Implementations may run the conversion in-process or call a remote backend.
type ConversionService interface {
	ConvertSkeleton(ctx context.Context, req *ConversionRequest) (*ConversionResponse, error)
}

package markdownizer

// Skeleton is markup whose text has been replaced by tokens, together with
// the table needed to put the text back.
type Skeleton struct {
	// HTML is the serialized tree. Elements, attributes and comments are
	// unchanged; text nodes hold token identifiers.
	HTML string `json:"html"`

	// Tokens maps every identifier in HTML to its original text.
	Tokens TokenTable `json:"tokens"`
}

// Skeletonizer replaces the text of an HTML fragment with tokens.
type Skeletonizer interface {
	// Skeletonize parses contentHTML and returns its skeleton.
	// The returned table is fresh for every call.
	Skeletonize(contentHTML string) (*Skeleton, error)
}

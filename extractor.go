package markdownizer

// Extraction strategies reported in ExtractResult.Strategy.
const (
	StrategySemantic    = "semantic-html"
	StrategyReadability = "readability"
	StrategyTrafilatura = "trafilatura"
)

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the article subtree as HTML.
	ContentHTML string

	// Strategy names the extractor that produced the content.
	Strategy string
}

// Extractor selects the article content of an HTML page.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// Returns ENOTFOUND if the page has no recognisable content.
	Extract(html string) (*ExtractResult, error)
}

// ExtractorChain tries each extractor in order and returns the first
// non-empty result.
type ExtractorChain []Extractor

// Ensure ExtractorChain implements Extractor at compile time.
var _ Extractor = ExtractorChain(nil)

// Extract returns the result of the first extractor that finds content.
// Extractor failures are not fatal; the next extractor is tried.
func (c ExtractorChain) Extract(html string) (*ExtractResult, error) {
	if html == "" {
		return nil, Errorf(EINVALID, "empty HTML input")
	}

	for _, e := range c {
		result, err := e.Extract(html)
		if err != nil || result == nil || result.ContentHTML == "" {
			continue
		}
		return result, nil
	}

	return nil, Errorf(ENOTFOUND, "Could not find article content on this page.")
}

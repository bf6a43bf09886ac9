// Package html builds skeletons from golang.org/x/net/html trees.
//
// A skeleton is the tree with the content of every text node replaced by
// tokens. Prose is trimmed, whitespace-collapsed and Markdown-escaped before
// it is stored in the token table; code is stored line by line, untouched.
package html

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/JohannesKaufmann/dom"
	"github.com/fwojciec/markdownizer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Skeletonizer implements markdownizer.Skeletonizer at compile time.
var _ markdownizer.Skeletonizer = (*Skeletonizer)(nil)

// nonRendered holds containers whose text never reaches the reader.
var nonRendered = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// droppedTags holds non-rendered containers removed from the skeleton. Their
// content is markup or fallback text that converters would otherwise copy
// into the Markdown verbatim. Script and style stay in place; converters
// discard them on their own.
var droppedTags = map[string]bool{
	"noscript": true,
	"template": true,
}

// codeTags holds elements whose text is code.
var codeTags = map[string]bool{
	"pre":  true,
	"code": true,
	"samp": true,
	"kbd":  true,
	"var":  true,
	"tt":   true,
}

// fenceRun matches Markdown fences already present at the edges of a code block.
var fenceRun = regexp.MustCompile("^\\s*`{3,}|`{3,}\\s*$")

// verdict is the traversal decision for a single node.
type verdict int

const (
	// skip leaves the node alone but visits its children.
	skip verdict = iota
	// accept tokenizes the node.
	accept
	// reject excludes the node and everything below it.
	reject
)

// classify decides how the walk treats n.
func classify(n *html.Node) verdict {
	switch n.Type {
	case html.ElementNode:
		if nonRendered[dom.NodeName(n)] {
			return reject
		}
	case html.TextNode:
		if n.Parent != nil && nonRendered[dom.NodeName(n.Parent)] {
			return reject
		}
		if strings.TrimSpace(n.Data) == "" {
			return skip
		}
		return accept
	}
	return skip
}

// textKind is the classification of an accepted text node.
type textKind int

const (
	prose textKind = iota
	inlineCode
	fencedCode
)

// kindOf derives the kind of a text node from its ancestors.
func kindOf(n *html.Node) textKind {
	kind := prose
	for p := n.Parent; p != nil; p = p.Parent {
		name := dom.NodeName(p)
		if name == "pre" {
			return fencedCode
		}
		if codeTags[name] {
			kind = inlineCode
		}
	}
	return kind
}

// Skeletonize returns the skeleton of root. The caller's tree is not
// modified; a deep copy is tokenized and rendered.
func Skeletonize(root *html.Node) (*markdownizer.Skeleton, error) {
	return skeletonize([]*html.Node{root})
}

// Skeletonizer parses HTML fragments and returns their skeletons.
type Skeletonizer struct{}

// NewSkeletonizer creates a new Skeletonizer.
func NewSkeletonizer() *Skeletonizer {
	return &Skeletonizer{}
}

// Skeletonize parses contentHTML as the content of a <body> element and
// returns the skeleton of all its top-level nodes.
func (s *Skeletonizer) Skeletonize(contentHTML string) (*markdownizer.Skeleton, error) {
	if strings.TrimSpace(contentHTML) == "" {
		return nil, markdownizer.Errorf(markdownizer.EINVALID, "empty HTML input")
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(contentHTML), body)
	if err != nil {
		return nil, markdownizer.Errorf(markdownizer.EINVALID, "failed to parse HTML: %v", err)
	}

	return skeletonize(nodes)
}

// skeletonize tokenizes copies of roots with one shared builder and renders
// them in order.
func skeletonize(roots []*html.Node) (*markdownizer.Skeleton, error) {
	b := markdownizer.NewTokenBuilder()

	var buf bytes.Buffer
	for _, root := range roots {
		if dropped(root) {
			continue
		}
		clone := deepCopy(root)
		walk(clone, b)
		if err := html.Render(&buf, clone); err != nil {
			return nil, err
		}
	}

	return &markdownizer.Skeleton{
		HTML:   buf.String(),
		Tokens: b.Table(),
	}, nil
}

// walk visits n and its descendants in document order.
func walk(n *html.Node, b *markdownizer.TokenBuilder) {
	switch classify(n) {
	case reject:
		return
	case accept:
		tokenize(n, b)
		return
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if dropped(c) {
			n.RemoveChild(c)
		} else {
			walk(c, b)
		}
		c = next
	}
}

func dropped(n *html.Node) bool {
	return n.Type == html.ElementNode && droppedTags[dom.NodeName(n)]
}

// tokenize replaces the content of text node n with tokens.
func tokenize(n *html.Node, b *markdownizer.TokenBuilder) {
	kind := kindOf(n)
	if kind == prose {
		n.Data = tokenizeProse(n.Data, b)
		return
	}
	n.Data = tokenizeCode(n.Data, kind == fencedCode, b)
}

// tokenizeProse emits one token for the cleaned text and keeps the
// surrounding whitespace outside of it.
func tokenizeProse(text string, b *markdownizer.TokenBuilder) string {
	trimmedLeft := strings.TrimLeftFunc(text, unicode.IsSpace)
	leading := text[:len(text)-len(trimmedLeft)]
	trimmed := strings.TrimRightFunc(trimmedLeft, unicode.IsSpace)
	trailing := trimmedLeft[len(trimmed):]

	clean := markdownizer.EscapeMarkdown(strings.Join(strings.Fields(trimmed), " "))
	return leading + b.Emit(clean) + trailing
}

// tokenizeCode emits one token per line so the converter keeps the line
// structure while never seeing the code itself.
func tokenizeCode(text string, fenced bool, b *markdownizer.TokenBuilder) string {
	if fenced {
		text = fenceRun.ReplaceAllString(text, "")
	}

	lines := strings.Split(text, "\n")
	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = b.Emit(line)
	}
	return strings.Join(ids, "\n")
}

// deepCopy returns a detached copy of n and its descendants.
func deepCopy(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(deepCopy(child))
	}
	return c
}

// Package markdownizer converts the article content of a web page into
// Markdown without letting the HTML→Markdown converter touch the text itself.
//
// Before the markup is handed to a converter, every text fragment is replaced
// by an opaque token (the "skeleton"). The converter restructures the layout
// freely; afterwards the tokens in its output are rehydrated with the original,
// Markdown-escaped text.
//
// This package contains domain types, interfaces and the pure token logic,
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., html/, goquery/,
// htmltomarkdown/, sqlite/).
package markdownizer

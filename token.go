package markdownizer

import (
	"sort"
	"strconv"
	"strings"
)

// Token delimiters. A token is TokenPrefix, a decimal index, TokenSuffix.
// The braces are chosen because converters rarely produce them from prose and
// because their escaped and percent-encoded forms are easy to recognise.
const (
	TokenPrefix = "{{MDZ"
	TokenSuffix = "}}"
)

// TokenID returns the identifier of the n-th token of a run.
func TokenID(n int) string {
	return TokenPrefix + strconv.Itoa(n) + TokenSuffix
}

// tokenIndex parses the index out of a token identifier.
func tokenIndex(id string) (int, bool) {
	if !strings.HasPrefix(id, TokenPrefix) || !strings.HasSuffix(id, TokenSuffix) {
		return 0, false
	}
	digits := id[len(TokenPrefix) : len(id)-len(TokenSuffix)]
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// TokenTable maps token identifiers to the text they stand in for.
// A table belongs to exactly one skeletonize/rehydrate round trip and is
// treated as read-only once rehydration starts.
type TokenTable map[string]string

// IDs returns the identifiers in emission order.
func (t TokenTable) IDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, aok := tokenIndex(ids[i])
		b, bok := tokenIndex(ids[j])
		if aok && bok {
			return a < b
		}
		if aok != bok {
			return aok
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Values returns the token values in emission order.
func (t TokenTable) Values() []string {
	ids := t.IDs()
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = t[id]
	}
	return values
}

// TokenBuilder allocates tokens for a single tokenization run.
// Create one per run; builders must not be shared between documents.
type TokenBuilder struct {
	next  int
	table TokenTable
}

// NewTokenBuilder returns a builder with an empty table and a zero counter.
func NewTokenBuilder() *TokenBuilder {
	return &TokenBuilder{table: make(TokenTable)}
}

// Emit records text under a fresh token and returns the token identifier.
func (b *TokenBuilder) Emit(text string) string {
	id := TokenID(b.next)
	b.next++
	b.table[id] = text
	return id
}

// Len returns the number of tokens emitted so far.
func (b *TokenBuilder) Len() int {
	return b.next
}

// Table returns the accumulated table. The builder should not be used to
// emit further tokens once the table has been handed to a rehydrator.
func (b *TokenBuilder) Table() TokenTable {
	return b.table
}

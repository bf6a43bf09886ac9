package markdownizer

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// tokenPattern matches a token in any of the forms a converter is known to
// produce: plain, with each delimiter character preceded by up to two
// backslashes, or with delimiter characters percent-encoded.
var tokenPattern = regexp.MustCompile(delimiterPattern(TokenPrefix) + `\d+` + delimiterPattern(TokenSuffix))

// delimiterPattern builds the expression for one delimiter. Punctuation is
// the part converters mangle; letters are matched literally.
func delimiterPattern(delim string) string {
	var sb strings.Builder
	for _, r := range delim {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteString(regexp.QuoteMeta(string(r)))
			continue
		}
		fmt.Fprintf(&sb, `(?:\\{0,2}%s|(?i:%%%02X))`, regexp.QuoteMeta(string(r)), r)
	}
	return sb.String()
}

// A normalizer maps one mangled spelling of a token back towards its
// canonical form. It reports false when the text cannot be a token.
type normalizer func(string) (string, bool)

// normalizers run in order on every match. Adding a mangling dialect means
// adding a function here; the matching loop stays untouched.
var normalizers = []normalizer{
	stripBackslashes,
	percentDecode,
}

func stripBackslashes(s string) (string, bool) {
	return strings.ReplaceAll(s, `\`, ""), true
}

func percentDecode(s string) (string, bool) {
	if !strings.Contains(s, "%") {
		return s, true
	}
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s, false
	}
	return decoded, true
}

// normalizeToken returns the canonical identifier for a matched token.
func normalizeToken(match string) (string, bool) {
	key := match
	for _, fn := range normalizers {
		var ok bool
		if key, ok = fn(key); !ok {
			return "", false
		}
	}
	return key, true
}

// RehydrationStats describes the outcome of a rehydration pass.
type RehydrationStats struct {
	// Matched counts token occurrences replaced with their table value.
	Matched int
	// Missed counts token-shaped text left as-is because it could not be
	// decoded or was not in the table.
	Missed int
	// Dropped counts table entries no token in the text referred to: text the
	// converter discarded along with its markup.
	Dropped int
}

// Rehydrate replaces every recognised token in text with its value from
// tokens. Values are inserted verbatim and never scanned again, so a value
// that looks like a token stays literal. Unknown or undecodable tokens are
// left unchanged.
func Rehydrate(text string, tokens TokenTable) string {
	result, _ := RehydrateReport(text, tokens)
	return result
}

// RehydrateReport is like Rehydrate but also reports how many tokens were
// substituted, how many were passed through and how many table entries never
// appeared.
//
// Token-shaped text anywhere in text is rewritten, including inside link
// destinations and HTML attributes the converter passed through. Skeleton
// attributes are never tokenized, so such a match is page text that happens
// to spell a token.
func RehydrateReport(text string, tokens TokenTable) (string, RehydrationStats) {
	var stats RehydrationStats
	seen := make(map[string]bool)
	result := tokenPattern.ReplaceAllStringFunc(text, func(match string) string {
		key, ok := normalizeToken(match)
		if !ok {
			stats.Missed++
			return match
		}
		value, ok := tokens[key]
		if !ok {
			stats.Missed++
			return match
		}
		stats.Matched++
		seen[key] = true
		return value
	})
	stats.Dropped = len(tokens) - len(seen)
	return result, stats
}

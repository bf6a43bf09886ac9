package markdownizer

import "strings"

// markdownChars lists the characters with meaning in Markdown.
const markdownChars = "\\*_{}[]()#+-.!|>~`"

// EscapeMarkdown prefixes every Markdown-significant character with a
// backslash. Other characters are left alone.
//
// EscapeMarkdown is not idempotent: escaping already escaped text doubles
// the backslashes.
func EscapeMarkdown(text string) string {
	if !strings.ContainsAny(text, markdownChars) {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text) + len(text)/4)
	for _, r := range text {
		if strings.ContainsRune(markdownChars, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

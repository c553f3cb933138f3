package security

import "regexp"

var (
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>?`)
	angleBracketPattern = regexp.MustCompile(`[<>]`)
)

// SanitizeText strips HTML tags and bare angle brackets from display text.
// Menu names, descriptions, categories, and the store message all pass
// through here before being persisted; downstream readers still treat the
// stored value as an opaque string since legacy rows may predate this filter.
func SanitizeText(text string) string {
	if text == "" {
		return text
	}
	cleaned := htmlTagPattern.ReplaceAllString(text, "")
	return angleBracketPattern.ReplaceAllString(cleaned, "")
}

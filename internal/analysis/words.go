// Package analysis implements the link and length analyzer: word
// counting that ignores markdown link syntax and raw URLs, URL
// extraction, and concurrent reachability probing.
package analysis

import (
	"regexp"
	"strings"
)

// urlPattern matches bare URLs. The same pattern is used for stripping
// (word count) and extraction (link checking) so the two stay in
// agreement; extraction always runs against the original text.
var urlPattern = regexp.MustCompile(`http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\(\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)

var (
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\([^\)]+\)`)
	nonWordPattern      = regexp.MustCompile(`[^\w\s]`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
)

// CountWords counts the words of an article: markdown links collapse to
// their display text, bare URLs are removed, remaining punctuation is
// treated as whitespace, and the result is a whitespace-token count.
func CountWords(text string) int {
	cleaned := markdownLinkPattern.ReplaceAllString(text, "$1")
	cleaned = urlPattern.ReplaceAllString(cleaned, "")
	cleaned = nonWordPattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(whitespacePattern.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		return 0
	}
	return len(strings.Split(cleaned, " "))
}

// ExtractURLs returns every URL in the original (unmodified) text, in
// order of appearance.
func ExtractURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

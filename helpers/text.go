package helpers

import (
	"html"
	"regexp"
	"strings"
)

var (
	htmlTagRegex     = regexp.MustCompile(`<[^>]*>`)
	htmlCommentRegex = regexp.MustCompile(`<!--[\s\S]*?-->`)
	multiSpaceRegex  = regexp.MustCompile(`\s+`)
	brTagRegex       = regexp.MustCompile(`<br\s*/?>`)
)

// CleanText strips HTML markup, decodes entities and collapses whitespace.
// Legacy spreadsheet cells were often pasted from web pages.
func CleanText(s string) string {
	if s == "" {
		return ""
	}

	s = htmlCommentRegex.ReplaceAllString(s, "")
	s = brTagRegex.ReplaceAllString(s, " ")
	s = htmlTagRegex.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	return NormalizeWhitespace(s)
}

// NormalizeWhitespace normalizes all whitespace to single spaces and trims.
func NormalizeWhitespace(s string) string {
	s = multiSpaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

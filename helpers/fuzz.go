package helpers

import (
	"math"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TokenSortRatio scores two strings from 0 to 100 regardless of word order.
// Both strings are lower-cased, punctuation becomes whitespace, the tokens
// are sorted and rejoined, and the results are compared with Ratio.
// It returns 0 when either side has no tokens.
func TokenSortRatio(a, b string) int {
	sa := sortTokens(processString(a))
	sb := sortTokens(processString(b))
	if sa == "" || sb == "" {
		return 0
	}
	return Ratio(sa, sb)
}

// Ratio scores the similarity of two strings from 0 to 100 as
// 100 * (1 - d / (len(a) + len(b))), where d is the insert/delete edit
// distance between them. Lengths are counted in runes.
func Ratio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	matched := 2 * lcsLength(ra, rb)
	return int(math.Round(100 * float64(matched) / float64(total)))
}

// processString lower-cases s and replaces every rune that is not a letter,
// digit or underscore with a space.
func processString(s string) string {
	s = cases.Lower(language.Und).String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return ' '
	}, s)
	return strings.TrimSpace(s)
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	slices.Sort(tokens)
	return strings.Join(tokens, " ")
}

// lcsLength returns the length of the longest common subsequence.
func lcsLength(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

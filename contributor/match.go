package contributor

import (
	"iter"
	"regexp"
	"slices"

	"github.com/lehigh-university-libraries/reconcile/helpers"
)

// DefaultThreshold is the lowest token sort ratio counted as a match.
const DefaultThreshold = 92

var authorSeparator = regexp.MustCompile(`\s+and\s+`)

// Matcher links author fields to registry contributors by fuzzy name
// comparison. Every author is compared with every contributor; there is no
// early exit and no deduplication of the ids it yields.
type Matcher struct {
	Threshold int
}

// NewMatcher creates a Matcher using DefaultThreshold.
func NewMatcher() *Matcher {
	return &Matcher{Threshold: DefaultThreshold}
}

// SplitAuthors unescapes an author field and splits it on " and ".
func SplitAuthors(authorField string) []string {
	return authorSeparator.Split(helpers.UnescapeLaTeX(authorField), -1)
}

// Match yields the ids of contributors whose display name scores at least
// the threshold against an author of authorField. Ids come out in author
// order, then registry order. The sequence is lazy and can be iterated
// again with the same result.
func (m *Matcher) Match(authorField string, reg *Registry) iter.Seq[string] {
	return func(yield func(string) bool) {
		if reg == nil {
			return
		}
		for _, author := range SplitAuthors(authorField) {
			for c := range reg.All() {
				if helpers.TokenSortRatio(author, c.DisplayName()) < m.Threshold {
					continue
				}
				if !yield(c.ID) {
					return
				}
			}
		}
	}
}

// MatchAll collects Match into a slice.
func (m *Matcher) MatchAll(authorField string, reg *Registry) []string {
	return slices.Collect(m.Match(authorField, reg))
}

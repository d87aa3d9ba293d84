package mapping

import "strings"

// minHeaderScore is the share of header columns a field map must know.
const minHeaderScore = 0.5

// MatchHeader returns the field map knowing the largest share of the given
// column headers, compared case-insensitively. Nothing is returned unless
// more than half the columns are known.
func (r *FieldMapRegistry) MatchHeader(columns []string) (*FieldMap, float64) {
	var (
		best      *FieldMap
		bestScore float64
	)

	for _, name := range r.List() {
		fm := r.maps[name]
		score := scoreHeader(fm, columns)
		if score > bestScore && score > minHeaderScore {
			best, bestScore = fm, score
		}
	}

	return best, bestScore
}

func scoreHeader(fm *FieldMap, columns []string) float64 {
	if len(columns) == 0 || len(fm.Fields) == 0 {
		return 0
	}

	known := make(map[string]bool, len(fm.Fields))
	for _, f := range fm.Fields {
		known[strings.ToLower(f.Source)] = true
	}

	matches := 0
	for _, c := range columns {
		if known[strings.ToLower(strings.TrimSpace(c))] {
			matches++
		}
	}

	return float64(matches) / float64(len(columns))
}

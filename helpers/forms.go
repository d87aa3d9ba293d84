package helpers

import "strings"

// Form is one lexical form from a legacy lexicon cell, e.g.
// `dàgá (pl. dàgá-ŋ)` or `jɛ́mɛ́ ("to sit")`.
type Form struct {
	Name        string `json:"name"`
	Comment     string `json:"comment,omitempty"`
	Description string `json:"description,omitempty"`
}

// SplitWords splits s at "," or ";" unless the separator is inside round or
// square brackets. Whitespace runs are collapsed first; empty chunks are
// dropped.
func SplitWords(s string) []string {
	s = multiSpaceRegex.ReplaceAllString(s, " ")

	var (
		words     []string
		chunk     strings.Builder
		inBracket bool
	)
	emit := func() {
		if w := strings.TrimSpace(chunk.String()); w != "" {
			words = append(words, w)
		}
		chunk.Reset()
	}

	for _, c := range s {
		switch c {
		case '(', '[':
			inBracket = true
		case ')', ']':
			inBracket = false
		}
		if (c == ',' || c == ';') && !inBracket {
			emit()
			continue
		}
		chunk.WriteRune(c)
	}
	emit()

	return words
}

// ParseForm splits `name (comment)` into its parts. A bracketed part wrapped
// in double quotes is a description rather than a comment. When the bracket
// is never closed the whole input is returned as the name, except that a
// missing ")" after a closing quote is tolerated.
func ParseForm(form string) Form {
	name, rest, ok := strings.Cut(form, "(")
	if !ok {
		return Form{Name: form}
	}

	if !strings.HasSuffix(rest, ")") {
		if !strings.HasSuffix(rest, `"`) {
			return Form{Name: form}
		}
		rest += ")"
	}

	f := Form{Name: strings.TrimSpace(name)}
	comment := strings.TrimSpace(strings.TrimSuffix(rest, ")"))
	if len(comment) >= 2 && strings.HasPrefix(comment, `"`) && strings.HasSuffix(comment, `"`) {
		f.Description = strings.TrimSpace(comment[1 : len(comment)-1])
	} else {
		f.Comment = comment
	}
	return f
}

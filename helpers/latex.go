package helpers

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Combining marks for LaTeX accent commands.
var (
	symbolAccents = map[rune]rune{
		'`':  '\u0300',
		'\'': '\u0301',
		'^':  '\u0302',
		'~':  '\u0303',
		'=':  '\u0304',
		'.':  '\u0307',
		'"':  '\u0308',
	}

	letterAccents = map[string]rune{
		"u": '\u0306',
		"r": '\u030a',
		"H": '\u030b',
		"v": '\u030c',
		"d": '\u0323',
		"c": '\u0327',
		"k": '\u0328',
		"b": '\u0331',
	}

	namedSymbols = map[string]string{
		"ss": "ß",
		"o":  "ø",
		"O":  "Ø",
		"ae": "æ",
		"AE": "Æ",
		"oe": "œ",
		"OE": "Œ",
		"aa": "å",
		"AA": "Å",
		"l":  "ł",
		"L":  "Ł",
		"i":  "ı",
		"j":  "ȷ",
		"ng": "ŋ",
		"NG": "Ŋ",
	}
)

// UnescapeLaTeX decodes the LaTeX escaping used in BibTeX field values:
// accent commands ({\"o}, \'e, \c{c}), named letters (\ss, \o), escaped
// specials (\&, \%), dashes and grouping braces. The result is NFC-composed.
// Unknown commands such as \emph are dropped and their argument kept.
func UnescapeLaTeX(s string) string {
	if !strings.ContainsAny(s, "\\{}~") && !strings.Contains(s, "--") {
		return s
	}

	rs := []rune(s)
	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(rs); i++ {
		switch c := rs[i]; c {
		case '{', '}':
		case '~':
			sb.WriteRune(' ')
		case '-':
			switch {
			case i+2 < len(rs) && rs[i+1] == '-' && rs[i+2] == '-':
				sb.WriteRune('—')
				i += 2
			case i+1 < len(rs) && rs[i+1] == '-':
				sb.WriteRune('–')
				i++
			default:
				sb.WriteRune('-')
			}
		case '\\':
			i = unescapeCommand(rs, i+1, &sb)
		default:
			sb.WriteRune(c)
		}
	}

	return norm.NFC.String(sb.String())
}

// unescapeCommand decodes the command starting at rs[j] (just past the
// backslash) and returns the index of the last rune consumed.
func unescapeCommand(rs []rune, j int, sb *strings.Builder) int {
	if j >= len(rs) {
		sb.WriteRune('\\')
		return j - 1
	}

	if mark, ok := symbolAccents[rs[j]]; ok {
		return writeAccent(rs, j+1, mark, false, sb)
	}

	if !isASCIILetter(rs[j]) {
		// \&, \%, \{, "\ " and friends
		sb.WriteRune(rs[j])
		return j
	}

	end := j
	for end < len(rs) && isASCIILetter(rs[end]) {
		end++
	}
	name := string(rs[j:end])

	if mark, ok := letterAccents[name]; ok {
		return writeAccent(rs, end, mark, true, sb)
	}
	if sym, ok := namedSymbols[name]; ok {
		sb.WriteString(sym)
	}

	// a space after a named command only terminates it
	if end < len(rs) && rs[end] == ' ' {
		return end
	}
	return end - 1
}

// writeAccent writes the accent argument starting at rs[k] followed by mark.
func writeAccent(rs []rune, k int, mark rune, skipSpace bool, sb *strings.Builder) int {
	if skipSpace {
		for k < len(rs) && rs[k] == ' ' {
			k++
		}
	}

	braced := k < len(rs) && rs[k] == '{'
	if braced {
		k++
	}

	var base rune
	switch {
	case k+1 < len(rs) && rs[k] == '\\' && (rs[k+1] == 'i' || rs[k+1] == 'j'):
		// accented dotless i/j compose as the dotted letter
		base = rs[k+1]
		k += 2
	case k < len(rs) && rs[k] != '}':
		base = rs[k]
		k++
	}

	if braced && k < len(rs) && rs[k] == '}' {
		k++
	}

	if base != 0 {
		sb.WriteRune(base)
		sb.WriteRune(mark)
	}
	return k - 1
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

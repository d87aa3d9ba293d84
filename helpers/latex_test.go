package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnescapeLaTeX(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text unchanged", input: "Heath, Jeffrey", want: "Heath, Jeffrey"},
		{name: "braced umlauts", input: `{\"O}zt{\"u}rk`, want: "Öztürk"},
		{name: "unbraced acute", input: `Dja\'e`, want: "Djaé"},
		{name: "cedilla with argument", input: `Fran\c{c}ois`, want: "François"},
		{name: "caron", input: `\v{S}koda`, want: "Škoda"},
		{name: "dotless i", input: `Mar\'{\i}a`, want: "María"},
		{name: "named letter ends at space", input: `Stra\ss e`, want: "Straße"},
		{name: "named letter in braces", input: `Pr{\o}khorov`, want: "Prøkhorov"},
		{name: "escaped specials", input: `Smith \& Sons, 50\%`, want: "Smith & Sons, 50%"},
		{name: "dashes", input: "pp. 1--10 --- draft", want: "pp. 1–10 — draft"},
		{name: "grouping braces", input: "{Heath}, {Jeffrey}", want: "Heath, Jeffrey"},
		{name: "tie", input: "J.~Heath", want: "J. Heath"},
		{name: "unknown command dropped", input: `\emph{Tommo So}`, want: "Tommo So"},
		{name: "trailing backslash", input: `odd\`, want: `odd\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnescapeLaTeX(tt.input))
		})
	}
}

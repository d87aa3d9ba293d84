package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"abc", "abc", 100},
		{"abcd", "abce", 75},
		{"kitten", "sitting", 62},
		{"", "", 100},
		{"abc", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Ratio(tt.a, tt.b))
			assert.Equal(t, tt.want, Ratio(tt.b, tt.a))
		})
	}
}

func TestTokenSortRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "inverted name", a: "Heath, Jeffrey", b: "Jeffrey Heath", want: 100},
		{name: "case and spacing", a: "JEFFREY   HEATH", b: "Jeffrey Heath", want: 100},
		{name: "transposed letters at threshold", a: "Jeffery Heath", b: "Jeffrey Heath", want: 92},
		{name: "dropped letter", a: "Moran, Steve", b: "Steven Moran", want: 96},
		{name: "no tokens", a: "!!!", b: "Jeffrey Heath", want: 0},
		{name: "empty", a: "", b: "", want: 0},
		{name: "accented letters kept", a: "Morán, Steven", b: "Steven Morán", want: 100},
		{name: "accent is a distinct letter", a: "Morán", b: "Moran", want: 80},
		{name: "cyrillic letters kept", a: "Дьячков, Вадим", b: "Вадим Дьячков", want: 100},
		{name: "upper-case accented letters folded", a: "MORÁN", b: "morán", want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TokenSortRatio(tt.a, tt.b))
			assert.Equal(t, tt.want, TokenSortRatio(tt.b, tt.a))
		})
	}
}

func TestTokenSortRatio_DifferentPeople(t *testing.T) {
	assert.Less(t, TokenSortRatio("Heath, Jeffrey", "Steven Moran"), 92)
	assert.Less(t, TokenSortRatio("Prokhorov, Kirill", "Laura McPherson"), 92)
	assert.Less(t, TokenSortRatio("Heath", "Jeffrey Heath"), 92)
}

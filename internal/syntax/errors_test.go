package syntax

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSnippet(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "short", in: "fn (", want: "fn ("},
		{name: "exact", in: strings.Repeat("a", maxErrorSnippet), want: strings.Repeat("a", maxErrorSnippet)},
		{name: "ascii", in: strings.Repeat("a", maxErrorSnippet+5), want: strings.Repeat("a", maxErrorSnippet) + "..."},
		{name: "multibyte", in: strings.Repeat("é", maxErrorSnippet+1), want: strings.Repeat("é", maxErrorSnippet) + "..."},
		{name: "boundary", in: strings.Repeat("a", maxErrorSnippet-1) + "日本", want: strings.Repeat("a", maxErrorSnippet-1) + "日..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snippet(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestParseError_MultibyteMessageStaysValid(t *testing.T) {
	_, err := parseRust(t, "fn main() { let s = 1 2 \"ééééééééééééééééééééééééééééé\" }\n")
	var pe *ParseError
	if !assert.ErrorAs(t, err, &pe) {
		return
	}
	assert.True(t, utf8.ValidString(pe.Message))
	for _, loc := range pe.Errors {
		assert.True(t, utf8.ValidString(loc.Message))
	}
}

package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"src/main.rs", "rust"},
		{"MAIN.RS", "rust"},
		{"cmd/main.go", "go"},
		{"app.py", "python"},
		{"index.tsx", "typescript"},
		{"lib.hpp", "cpp"},
		{"main.tf", "hcl"},
		{"conf.yml", "yaml"},
		{"new_before", "rust"},
		{"notes.txt", "rust"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectLanguage(tc.path).Name)
		})
	}
}

func TestLookupLanguage(t *testing.T) {
	l, ok := LookupLanguage(" Rust ")
	assert.True(t, ok)
	assert.Equal(t, "rust", l.Name)
	assert.NotNil(t, l.Grammar())

	_, ok = LookupLanguage("cobol")
	assert.False(t, ok)
}

func TestLanguageNames_Sorted(t *testing.T) {
	names := LanguageNames()
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "rust")
}

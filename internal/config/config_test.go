package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.Strict)
	assert.Empty(t, cfg.Language)
}

func TestParse_FullFile(t *testing.T) {
	src := []byte(`
language  = "go"
format    = "json"
anonymous = true
positions = true
strict    = true
catalog   = "runs.db"
select    = "$.root.children[*]"

log {
  level  = "debug"
  format = "json"
}
`)
	cfg, err := Parse("astdump.hcl", src)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Language:  "go",
		Format:    "json",
		Anonymous: true,
		Positions: true,
		Strict:    true,
		Catalog:   "runs.db",
		Select:    "$.root.children[*]",
		LogLevel:  "debug",
		LogFormat: "json",
	}, cfg)
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse("astdump.hcl", []byte(`strict = true`))
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"syntax":         `language = `,
		"unknown attr":   `colour = "red"`,
		"wrong type":     `strict = "yes please"`,
		"bad language":   `language = "cobol"`,
		"bad format":     `format = "xml"`,
		"bad log level":  "log {\n  level = \"loud\"\n}\n",
		"two log blocks": "log {\n}\nlog {\n}\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("astdump.hcl", []byte(src))
			assert.Error(t, err)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "astdump.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`format = "sexp"`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sexp", cfg.Format)

	_, err = Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}

// Package config holds run settings and loads them from an optional HCL file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/agentic-research/astdump/internal/logging"
	"github.com/agentic-research/astdump/internal/render"
	"github.com/agentic-research/astdump/internal/syntax"
)

// Config holds the settings of one conversion run.
type Config struct {
	// Language forces a grammar; empty means detect from the input extension.
	Language  string
	Format    string
	Anonymous bool
	Positions bool
	// Strict makes a failed conversion exit non-zero.
	Strict bool
	// Catalog is an optional SQLite database recording each conversion.
	Catalog string
	// Select is an optional JSONPath choosing sub-trees to render.
	Select    string
	LogLevel  string
	LogFormat string
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	return &Config{
		Format:    string(render.FormatText),
		LogLevel:  "info",
		LogFormat: "text",
	}
}

type fileConfig struct {
	Language  *string    `hcl:"language,optional"`
	Format    *string    `hcl:"format,optional"`
	Anonymous *bool      `hcl:"anonymous,optional"`
	Positions *bool      `hcl:"positions,optional"`
	Strict    *bool      `hcl:"strict,optional"`
	Catalog   *string    `hcl:"catalog,optional"`
	Select    *string    `hcl:"select,optional"`
	Log       []logBlock `hcl:"log,block"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// Load reads the HCL file at path over the defaults. An empty path returns
// the defaults; there is no implicit lookup.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(path, src)
}

// Parse decodes HCL source over the defaults and validates the result.
func Parse(filename string, src []byte) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config %s: %w", filename, diags)
	}
	if len(fc.Log) > 1 {
		return nil, fmt.Errorf("config %s: only one log block is allowed", filename)
	}

	cfg := Default()
	setString(&cfg.Language, fc.Language)
	setString(&cfg.Format, fc.Format)
	setBool(&cfg.Anonymous, fc.Anonymous)
	setBool(&cfg.Positions, fc.Positions)
	setBool(&cfg.Strict, fc.Strict)
	setString(&cfg.Catalog, fc.Catalog)
	setString(&cfg.Select, fc.Select)
	if len(fc.Log) == 1 {
		setString(&cfg.LogLevel, fc.Log[0].Level)
		setString(&cfg.LogFormat, fc.Log[0].Format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if c.Language != "" {
		if _, ok := syntax.LookupLanguage(c.Language); !ok {
			return fmt.Errorf("unknown language %q (known: %v)", c.Language, syntax.LanguageNames())
		}
	}
	if _, err := render.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	_, err := logging.ParseFormat(c.LogFormat)
	return err
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

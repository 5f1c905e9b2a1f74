// Package render turns syntax trees into deterministic text artifacts.
package render

import (
	"fmt"
	"strings"

	"github.com/agentic-research/astdump/internal/syntax"
)

// Format selects the artifact layout.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatSexp Format = "sexp"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatSexp}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want text, json or sexp)", s)
}

// Options tune what each node line shows.
type Options struct {
	// Anonymous includes anonymous tokens such as punctuation and keywords.
	Anonymous bool
	// Positions appends the 0-based start/end row:column of each node.
	Positions bool
}

// Renderer renders trees in one format.
type Renderer struct {
	format Format
	opts   Options
}

// New returns a Renderer for format.
func New(format Format, opts Options) (*Renderer, error) {
	f, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	return &Renderer{format: f, opts: opts}, nil
}

// Format returns the renderer's output format.
func (r *Renderer) Format() Format {
	return r.format
}

// Render renders tree. The same tree always yields the same string.
func (r *Renderer) Render(tree *syntax.Tree) (string, error) {
	switch r.format {
	case FormatJSON:
		return JSON(tree, r.opts), nil
	case FormatSexp:
		return Sexp(tree.Root, r.opts), nil
	default:
		return Text(tree.Root, r.opts), nil
	}
}

func (o Options) visible(n *syntax.Node) []*syntax.Node {
	if o.Anonymous {
		return n.Children
	}
	out := make([]*syntax.Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Named {
			out = append(out, c)
		}
	}
	return out
}

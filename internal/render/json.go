package render

import (
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"

	"github.com/agentic-research/astdump/api"
	"github.com/agentic-research/astdump/internal/syntax"
)

var jsonOptions = ojg.Options{Indent: 2, Sort: true}

// JSON renders tree as an indented api.Document with sorted keys.
func JSON(tree *syntax.Tree, opts Options) string {
	return oj.JSON(Document(tree, opts).Value(), &jsonOptions) + "\n"
}

// Document converts tree to its api form. Anonymous tokens are dropped
// unless opts.Anonymous is set.
func Document(tree *syntax.Tree, opts Options) *api.Document {
	return &api.Document{
		Version:  api.DocumentVersion,
		Path:     tree.Path,
		Language: tree.Language,
		Root:     ToAPI(tree.Root, opts),
	}
}

// ToAPI converts n and its visible descendants.
func ToAPI(n *syntax.Node, opts Options) *api.Node {
	if n == nil {
		return nil
	}
	out := &api.Node{
		Kind:      n.Kind,
		Field:     n.Field,
		Named:     n.Named,
		Symbol:    n.Symbol,
		StartByte: n.StartByte,
		EndByte:   n.EndByte,
		Start:     api.Position{Row: n.Start.Row, Column: n.Start.Column},
		End:       api.Position{Row: n.End.Row, Column: n.End.Column},
		Text:      n.Text,
	}
	for _, c := range opts.visible(n) {
		out.Children = append(out.Children, ToAPI(c, opts))
	}
	return out
}

// FromAPI converts an api node back into a syntax node.
func FromAPI(n *api.Node) *syntax.Node {
	if n == nil {
		return nil
	}
	out := &syntax.Node{
		Kind:      n.Kind,
		Field:     n.Field,
		Named:     n.Named,
		Symbol:    n.Symbol,
		StartByte: n.StartByte,
		EndByte:   n.EndByte,
		Start:     syntax.Point{Row: n.Start.Row, Column: n.Start.Column},
		End:       syntax.Point{Row: n.End.Row, Column: n.End.Column},
		Text:      n.Text,
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, FromAPI(c))
	}
	return out
}

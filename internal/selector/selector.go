// Package selector narrows a syntax tree to the sub-trees matched by a
// JSONPath expression evaluated over the tree's document form.
package selector

import (
	"fmt"

	"github.com/ohler55/ojg/jp"

	"github.com/agentic-research/astdump/api"
	"github.com/agentic-research/astdump/internal/render"
	"github.com/agentic-research/astdump/internal/syntax"
)

// SelectionKind is the kind of the synthetic root holding selected nodes.
// The root keeps symbol 0, so it never counts as a grammar kind.
const SelectionKind = "selection"

// Selector evaluates one compiled JSONPath expression.
type Selector struct {
	expr jp.Expr
	src  string
}

// New compiles expr, e.g. `$..[?(@.kind == 'function_item')]`.
func New(expr string) (*Selector, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", expr, err)
	}
	return &Selector{expr: x, src: expr}, nil
}

// String returns the source expression.
func (s *Selector) String() string {
	return s.src
}

// Select evaluates the expression against the document form of tree and
// returns a new tree whose root is a synthetic "selection" node holding the
// matched nodes in match order. Matches that are not nodes are ignored. The
// input tree is not modified.
func (s *Selector) Select(tree *syntax.Tree) (*syntax.Tree, error) {
	doc := render.Document(tree, render.Options{Anonymous: true})
	results := s.expr.Get(doc.Value())

	root := &syntax.Node{Kind: SelectionKind, Named: true}
	for _, r := range results {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := m["kind"]; !ok {
			continue
		}
		n, err := api.NodeFromValue(m)
		if err != nil {
			return nil, fmt.Errorf("selector %s: %w", s.src, err)
		}
		root.Children = append(root.Children, render.FromAPI(n))
	}
	if len(root.Children) > 0 {
		first, last := root.Children[0], root.Children[len(root.Children)-1]
		root.StartByte, root.Start = first.StartByte, first.Start
		root.EndByte, root.End = last.EndByte, last.End
	}

	return &syntax.Tree{Path: tree.Path, Language: tree.Language, Root: root}, nil
}

// Package syntax turns source documents into owned syntax trees using
// tree-sitter grammars.
package syntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/agentic-research/astdump/internal/source"
)

// Parser builds a syntax tree from a document.
type Parser interface {
	Parse(ctx context.Context, doc *source.Document) (*Tree, error)
}

// SitterParser implements Parser with a tree-sitter grammar.
type SitterParser struct {
	lang *Language
}

// NewSitterParser returns a parser for lang.
func NewSitterParser(lang *Language) *SitterParser {
	return &SitterParser{lang: lang}
}

// Language returns the grammar this parser binds to.
func (p *SitterParser) Language() *Language {
	return p.lang
}

// Parse parses doc. Any ERROR or MISSING node in the result is reported as a
// *ParseError; no partial tree is returned.
func (p *SitterParser) Parse(ctx context.Context, doc *source.Document) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.lang.Grammar())

	content := doc.Content
	if content == nil {
		content = []byte{}
	}

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, &ParseError{Path: doc.Path, Language: p.lang.Name, Err: err}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, &ParseError{Path: doc.Path, Language: p.lang.Name, Err: fmt.Errorf("tree-sitter returned nil root")}
	}
	if root.HasError() {
		return nil, newParseError(doc.Path, p.lang.Name, root, content)
	}

	return &Tree{
		Path:     doc.Path,
		Language: p.lang.Name,
		Root:     copyNode(root, "", content),
	}, nil
}

// copyNode detaches n and its descendants from the native tree.
func copyNode(n *sitter.Node, field string, content []byte) *Node {
	count := int(n.ChildCount())
	out := &Node{
		Kind:      n.Type(),
		Field:     field,
		Named:     n.IsNamed(),
		Symbol:    uint16(n.Symbol()),
		StartByte: n.StartByte(),
		EndByte:   n.EndByte(),
		Start:     Point{Row: n.StartPoint().Row, Column: n.StartPoint().Column},
		End:       Point{Row: n.EndPoint().Row, Column: n.EndPoint().Column},
	}
	if count == 0 {
		out.Text = n.Content(content)
		return out
	}

	out.Children = make([]*Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		out.Children = append(out.Children, copyNode(child, n.FieldNameForChild(i), content))
	}
	return out
}

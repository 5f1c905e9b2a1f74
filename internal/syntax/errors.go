package syntax

import (
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// Location is one syntax error site, 1-based.
type Location struct {
	Line    uint32
	Column  uint32
	Message string
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d: %s", l.Line, l.Column, l.Message)
}

// ParseError reports that a document does not conform to its grammar.
// Line, Column and Message describe the first error in pre-order; Errors
// lists every error site.
type ParseError struct {
	Path     string
	Language string
	Line     uint32
	Column   uint32
	Message  string
	Errors   []Location
	Err      error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s parse failed: %v", e.Path, e.Language, e.Err)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

const maxErrorSnippet = 24

// newParseError collects every ERROR/MISSING node under root.
func newParseError(path, lang string, root *sitter.Node, content []byte) *ParseError {
	var locs []Location
	collectErrors(root, content, &locs)

	pe := &ParseError{Path: path, Language: lang, Errors: locs}
	if len(locs) > 0 {
		pe.Line, pe.Column, pe.Message = locs[0].Line, locs[0].Column, locs[0].Message
	} else {
		pe.Line, pe.Column, pe.Message = 1, 1, "syntax tree contains errors"
	}
	return pe
}

// collectErrors gathers ERROR and MISSING nodes in pre-order without
// descending into an error node.
func collectErrors(n *sitter.Node, content []byte, locs *[]Location) {
	if n.IsError() || n.IsMissing() {
		p := n.StartPoint()
		*locs = append(*locs, Location{
			Line:    p.Row + 1,
			Column:  p.Column + 1,
			Message: describeError(n, content),
		})
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if child.HasError() || child.IsError() || child.IsMissing() {
			collectErrors(child, content, locs)
		}
	}
}

func describeError(n *sitter.Node, content []byte) string {
	if n.IsMissing() {
		return fmt.Sprintf("missing %q", n.Type())
	}
	text := strings.TrimSpace(n.Content(content))
	if text == "" {
		return "syntax error"
	}
	return fmt.Sprintf("unexpected %q", snippet(text))
}

// snippet shortens text to maxErrorSnippet runes.
func snippet(text string) string {
	end, runes := 0, 0
	for end < len(text) {
		if runes == maxErrorSnippet {
			return text[:end] + "..."
		}
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
		runes++
	}
	return text
}

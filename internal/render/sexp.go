package render

import (
	"strconv"
	"strings"

	"github.com/agentic-research/astdump/internal/syntax"
)

// Sexp renders root as a single-line S-expression in the style of
// tree-sitter's Node.String. Anonymous tokens, when enabled, appear as
// quoted strings.
func Sexp(root *syntax.Node, opts Options) string {
	var sb strings.Builder
	if root != nil {
		writeSexp(&sb, root, opts)
	}
	sb.WriteByte('\n')
	return sb.String()
}

func writeSexp(sb *strings.Builder, n *syntax.Node, opts Options) {
	if n.Field != "" {
		sb.WriteString(n.Field)
		sb.WriteString(": ")
	}
	if !n.Named {
		sb.WriteString(strconv.Quote(n.Kind))
		return
	}
	sb.WriteByte('(')
	sb.WriteString(n.Kind)
	for _, c := range opts.visible(n) {
		sb.WriteByte(' ')
		writeSexp(sb, c, opts)
	}
	sb.WriteByte(')')
}

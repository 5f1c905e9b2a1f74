package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentic-research/astdump/internal/syntax"
)

const indentUnit = "  "

// numericKinds are the number literal productions of the registered
// grammars. Their text is written bare; every other leaf is quoted.
var numericKinds = map[string]bool{
	"integer_literal":                true, // rust
	"float_literal":                  true, // rust, go
	"int_literal":                    true, // go
	"imaginary_literal":              true, // go
	"integer":                        true, // python
	"float":                          true, // python
	"number":                         true, // javascript, typescript
	"number_literal":                 true, // c, cpp
	"decimal_integer_literal":        true, // java
	"hex_integer_literal":            true,
	"octal_integer_literal":          true,
	"binary_integer_literal":         true,
	"decimal_floating_point_literal": true,
	"hex_floating_point_literal":     true,
	"numeric_lit":                    true, // hcl
	"integer_scalar":                 true, // yaml
	"float_scalar":                   true,
}

func leafText(n *syntax.Node) string {
	quoted := strconv.Quote(n.Text)
	if numericKinds[n.Kind] && quoted[1:len(quoted)-1] == n.Text && !strings.ContainsAny(n.Text, " \t{}") {
		return n.Text
	}
	return quoted
}

// Text renders root as an indented pre-order listing, one node per line:
//
//	source_file {
//	  function_item {
//	    name: identifier "main"
//	    parameters: parameters
//	    body: block
//	  }
//	}
func Text(root *syntax.Node, opts Options) string {
	var sb strings.Builder
	if root != nil {
		writeText(&sb, root, 0, opts)
	}
	return sb.String()
}

func writeText(sb *strings.Builder, n *syntax.Node, depth int, opts Options) {
	indent := strings.Repeat(indentUnit, depth)
	sb.WriteString(indent)
	if n.Field != "" {
		sb.WriteString(n.Field)
		sb.WriteString(": ")
	}
	sb.WriteString(n.Kind)
	if n.IsLeaf() && n.Text != "" {
		sb.WriteByte(' ')
		sb.WriteString(leafText(n))
	}
	if opts.Positions {
		fmt.Fprintf(sb, " @%d:%d-%d:%d", n.Start.Row, n.Start.Column, n.End.Row, n.End.Column)
	}

	children := opts.visible(n)
	if len(children) == 0 {
		sb.WriteByte('\n')
		return
	}
	sb.WriteString(" {\n")
	for _, c := range children {
		writeText(sb, c, depth+1, opts)
	}
	sb.WriteString(indent)
	sb.WriteString("}\n")
}

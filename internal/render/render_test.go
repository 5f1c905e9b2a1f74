package render

import (
	"context"
	"strings"
	"testing"

	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/astdump/api"
	"github.com/agentic-research/astdump/internal/source"
	"github.com/agentic-research/astdump/internal/syntax"
)

// mainTree mirrors the rust parse of "fn main() {}".
func mainTree() *syntax.Tree {
	tok := func(kind string, col uint32) *syntax.Node {
		return &syntax.Node{Kind: kind, Text: kind, StartByte: col, EndByte: col + uint32(len(kind)),
			Start: syntax.Point{Column: col}, End: syntax.Point{Column: col + uint32(len(kind))}}
	}
	fn := &syntax.Node{
		Kind: "function_item", Named: true, EndByte: 12,
		End: syntax.Point{Column: 12},
		Children: []*syntax.Node{
			tok("fn", 0),
			{Kind: "identifier", Field: "name", Named: true, Text: "main", StartByte: 3, EndByte: 7,
				Start: syntax.Point{Column: 3}, End: syntax.Point{Column: 7}},
			{Kind: "parameters", Field: "parameters", Named: true, StartByte: 7, EndByte: 9,
				Start: syntax.Point{Column: 7}, End: syntax.Point{Column: 9},
				Children: []*syntax.Node{tok("(", 7), tok(")", 8)}},
			{Kind: "block", Field: "body", Named: true, StartByte: 10, EndByte: 12,
				Start: syntax.Point{Column: 10}, End: syntax.Point{Column: 12},
				Children: []*syntax.Node{tok("{", 10), tok("}", 11)}},
		},
	}
	return &syntax.Tree{
		Path:     "main.rs",
		Language: "rust",
		Root: &syntax.Node{Kind: "source_file", Named: true, EndByte: 13,
			End: syntax.Point{Row: 1}, Children: []*syntax.Node{fn}},
	}
}

func TestText_NamedOnly(t *testing.T) {
	want := `source_file {
  function_item {
    name: identifier "main"
    parameters: parameters
    body: block
  }
}
`
	assert.Equal(t, want, Text(mainTree().Root, Options{}))
}

func TestText_Anonymous(t *testing.T) {
	want := `source_file {
  function_item {
    fn "fn"
    name: identifier "main"
    parameters: parameters {
      ( "("
      ) ")"
    }
    body: block {
      { "{"
      } "}"
    }
  }
}
`
	assert.Equal(t, want, Text(mainTree().Root, Options{Anonymous: true}))
}

func TestText_Positions(t *testing.T) {
	out := Text(mainTree().Root, Options{Positions: true})
	assert.Contains(t, out, "source_file @0:0-1:0 {\n")
	assert.Contains(t, out, `    name: identifier "main" @0:3-0:7`+"\n")
}

func TestText_EmptyRootIsSingleLine(t *testing.T) {
	out := Text(&syntax.Node{Kind: "source_file", Named: true}, Options{})
	assert.Equal(t, "source_file\n", out)
}

func TestText_QuotesLeafText(t *testing.T) {
	leaf := &syntax.Node{Kind: "string_content", Named: true, Text: "say \"hi\"\n"}
	assert.Equal(t, `string_content "say \"hi\"\n"`+"\n", Text(leaf, Options{}))
}

func TestText_NumberLiteralsAreBare(t *testing.T) {
	tests := []struct {
		kind, text, want string
	}{
		{"integer_literal", "42", "integer_literal 42\n"},
		{"float_literal", "3.5f32", "float_literal 3.5f32\n"},
		{"int_literal", "0x1F", "int_literal 0x1F\n"},
		{"string_content", "42", "string_content \"42\"\n"},
		{"identifier", "x1", "identifier \"x1\"\n"},
	}
	for _, tt := range tests {
		leaf := &syntax.Node{Kind: tt.kind, Named: true, Text: tt.text}
		assert.Equal(t, tt.want, Text(leaf, Options{}), tt.kind)
	}
}

func TestText_ParsedNumberLiteral(t *testing.T) {
	out := Text(parse(t, "const N: u32 = 42;\n").Root, Options{})
	assert.Contains(t, out, "value: integer_literal 42\n")
	assert.NotContains(t, out, `"42"`)
}

func TestSexp(t *testing.T) {
	tree := mainTree()
	assert.Equal(t,
		"(source_file (function_item name: (identifier) parameters: (parameters) body: (block)))\n",
		Sexp(tree.Root, Options{}))
	assert.Equal(t,
		`(source_file (function_item "fn" name: (identifier) parameters: (parameters "(" ")") body: (block "{" "}")))`+"\n",
		Sexp(tree.Root, Options{Anonymous: true}))
}

func TestJSON_Document(t *testing.T) {
	out := JSON(mainTree(), Options{})
	require.True(t, strings.HasSuffix(out, "\n"))

	v, err := oj.ParseString(out)
	require.NoError(t, err)
	doc, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, api.DocumentVersion, doc["version"])
	assert.Equal(t, "rust", doc["language"])

	root, err := api.NodeFromValue(doc["root"])
	require.NoError(t, err)
	assert.Equal(t, "source_file", root.Kind)
	require.Len(t, root.Children, 1)
	assert.Len(t, root.Children[0].Children, 3, "anonymous tokens are dropped")
}

func TestFromAPI_RoundTrip(t *testing.T) {
	tree := mainTree()
	back := FromAPI(ToAPI(tree.Root, Options{Anonymous: true}))
	assert.Equal(t, tree.Root, back)
}

func TestRenderer_Formats(t *testing.T) {
	tree := mainTree()
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			r, err := New(f, Options{})
			require.NoError(t, err)
			assert.Equal(t, f, r.Format())

			first, err := r.Render(tree)
			require.NoError(t, err)
			second, err := r.Render(tree)
			require.NoError(t, err)
			assert.NotEmpty(t, first)
			assert.Equal(t, first, second)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)

	_, err = New(Format("xml"), Options{})
	assert.Error(t, err)
}

func parse(t *testing.T, src string) *syntax.Tree {
	t.Helper()
	lang, _ := syntax.LookupLanguage("rust")
	tree, err := syntax.NewSitterParser(lang).Parse(context.Background(), &source.Document{Path: "lib.rs", Content: []byte(src)})
	require.NoError(t, err)
	return tree
}

func TestText_ParsedDeterminism(t *testing.T) {
	src := "use std::io;\n\nfn main() {\n    let x = 1 + 2;\n    println!(\"{}\", x);\n}\n"
	a := Text(parse(t, src).Root, Options{Positions: true})
	b := Text(parse(t, src).Root, Options{Positions: true})
	assert.Equal(t, a, b)
}

func TestText_ParsedNestingDepth(t *testing.T) {
	out := Text(parse(t, "fn main() {}\n").Root, Options{})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "source_file {", lines[0])
	assert.Equal(t, "  function_item {", lines[1])
	assert.Contains(t, lines, "    body: block")
}

func TestText_ParsedEmptyFile(t *testing.T) {
	assert.Equal(t, "source_file\n", Text(parse(t, "").Root, Options{}))
}

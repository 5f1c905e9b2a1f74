package render

import (
	"context"
	"testing"

	"github.com/agentic-research/astdump/internal/source"
	"github.com/agentic-research/astdump/internal/syntax"
)

func FuzzRenderDeterministic(f *testing.F) {
	f.Add("fn main() {}")
	f.Add("struct P { x: i32 }\nimpl P { fn x(&self) -> i32 { self.x } }")
	f.Add("")
	f.Add("fn main( {")

	lang, _ := syntax.LookupLanguage("rust")
	parser := syntax.NewSitterParser(lang)

	f.Fuzz(func(t *testing.T, src string) {
		if len(src) > 4096 {
			return
		}
		doc := &source.Document{Path: "fuzz.rs", Content: []byte(src)}
		tree, err := parser.Parse(context.Background(), doc)
		if err != nil {
			return // invalid source never yields a tree
		}

		again, err := parser.Parse(context.Background(), doc)
		if err != nil {
			t.Fatalf("second parse failed: %v", err)
		}

		for _, opts := range []Options{{}, {Anonymous: true, Positions: true}} {
			a, b := Text(tree.Root, opts), Text(again.Root, opts)
			if a != b {
				t.Fatalf("text output differs between parses:\n%s\n---\n%s", a, b)
			}
			if a == "" {
				t.Fatal("empty artifact for a valid tree")
			}
		}
	})
}

func BenchmarkText(b *testing.B) {
	lang, _ := syntax.LookupLanguage("rust")
	doc := &source.Document{Path: "bench.rs", Content: []byte(`
use std::collections::HashMap;

pub struct Cache { entries: HashMap<String, Vec<u8>> }

impl Cache {
    pub fn get(&self, key: &str) -> Option<&Vec<u8>> {
        self.entries.get(key)
    }
}
`)}
	tree, err := syntax.NewSitterParser(lang).Parse(context.Background(), doc)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Text(tree.Root, Options{Anonymous: true})
	}
}

package syntax

import (
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/hcl"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/sql"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/smacker/go-tree-sitter/yaml"
)

// DefaultLanguage is used when the input extension is not recognised.
const DefaultLanguage = "rust"

// Language binds a name and its file extensions to a tree-sitter grammar.
type Language struct {
	Name       string
	Extensions []string
	grammar    func() *sitter.Language
}

// Grammar returns the tree-sitter grammar for l.
func (l *Language) Grammar() *sitter.Language {
	return l.grammar()
}

var languages = []*Language{
	{Name: "rust", Extensions: []string{".rs"}, grammar: rust.GetLanguage},
	{Name: "go", Extensions: []string{".go"}, grammar: golang.GetLanguage},
	{Name: "python", Extensions: []string{".py"}, grammar: python.GetLanguage},
	{Name: "javascript", Extensions: []string{".js", ".mjs", ".cjs"}, grammar: javascript.GetLanguage},
	{Name: "typescript", Extensions: []string{".ts", ".tsx"}, grammar: typescript.GetLanguage},
	{Name: "c", Extensions: []string{".c", ".h"}, grammar: c.GetLanguage},
	{Name: "cpp", Extensions: []string{".cc", ".cpp", ".cxx", ".hpp", ".hh"}, grammar: cpp.GetLanguage},
	{Name: "java", Extensions: []string{".java"}, grammar: java.GetLanguage},
	{Name: "hcl", Extensions: []string{".hcl", ".tf"}, grammar: hcl.GetLanguage},
	{Name: "sql", Extensions: []string{".sql"}, grammar: sql.GetLanguage},
	{Name: "yaml", Extensions: []string{".yaml", ".yml"}, grammar: yaml.GetLanguage},
}

// LookupLanguage returns the registered language called name.
func LookupLanguage(name string) (*Language, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, l := range languages {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// DetectLanguage picks a grammar from the file extension of path, falling
// back to DefaultLanguage.
func DetectLanguage(path string) *Language {
	ext := strings.ToLower(filepath.Ext(path))
	for _, l := range languages {
		for _, e := range l.Extensions {
			if e == ext {
				return l
			}
		}
	}
	l, _ := LookupLanguage(DefaultLanguage)
	return l
}

// LanguageNames lists the registered language names in sorted order.
func LanguageNames() []string {
	names := make([]string, 0, len(languages))
	for _, l := range languages {
		names = append(names, l.Name)
	}
	sort.Strings(names)
	return names
}

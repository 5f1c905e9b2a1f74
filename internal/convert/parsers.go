package convert

import (
	"fmt"

	"github.com/agentic-research/astdump/internal/syntax"
)

// Parsers returns a ParserFor that uses the named language, or detects the
// language from the input extension when name is empty.
func Parsers(name string) (ParserFor, error) {
	if name == "" {
		return func(path string) syntax.Parser {
			return syntax.NewSitterParser(syntax.DetectLanguage(path))
		}, nil
	}
	lang, ok := syntax.LookupLanguage(name)
	if !ok {
		return nil, fmt.Errorf("unknown language %q (known: %v)", name, syntax.LanguageNames())
	}
	parser := syntax.NewSitterParser(lang)
	return func(string) syntax.Parser { return parser }, nil
}

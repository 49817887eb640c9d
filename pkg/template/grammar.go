package template

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	// templateLexer splits text into placeholders, includes and literal runs.
	// A '$' or '@' that does not start a placeholder or include is a literal.
	templateLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Var", Pattern: `\$\{[A-Za-z_][A-Za-z0-9_]*\}`},
		{Name: "Include", Pattern: `@include\([^)]*\)`},
		{Name: "Text", Pattern: `[^$@]+`},
		{Name: "Char", Pattern: `[$@]`},
	})

	templateParser = participle.MustBuild[document](
		participle.Lexer(templateLexer),
		participle.Map(trim("${", "}"), "Var"),
		participle.Map(trim("@include(", ")"), "Include"),
	)
)

type (
	// document is a parsed piece of template text
	document struct {
		Segments []*segment `parser:"@@*"`
	}

	// segment is a single piece of a document; exactly one field is set
	segment struct {
		Var     *string `parser:"  @Var"`
		Include *string `parser:"| @Include"`
		Text    *string `parser:"| @(Text | Char)"`
	}
)

func trim(prefix, suffix string) participle.Mapper {
	return func(token lexer.Token) (lexer.Token, error) {
		token.Value = strings.TrimSuffix(strings.TrimPrefix(token.Value, prefix), suffix)
		return token, nil
	}
}

// parse splits text into segments. Text without any '$' or '@' is returned as
// a single literal segment.
func parse(text string) ([]*segment, error) {
	if !strings.ContainsAny(text, "$@") {
		return []*segment{{Text: &text}}, nil
	}

	doc, err := templateParser.ParseString("", text)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse template text")
	}

	return doc.Segments, nil
}

// String renders the segment back to its source form.
func (s *segment) String() string {
	switch {
	case s.Var != nil:
		return "${" + *s.Var + "}"
	case s.Include != nil:
		return "@include(" + *s.Include + ")"
	case s.Text != nil:
		return *s.Text
	default:
		return ""
	}
}

package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

type syntaxClass int

const (
	syntaxClassNone syntaxClass = iota
	syntaxClassKeyword
	syntaxClassString
	syntaxClassNumber
	syntaxClassComment
)

type syntaxRange struct {
	text  string
	class syntaxClass
}

// lexerForPath returns nil when no lexer claims the file name.
func lexerForPath(path string) chroma.Lexer {
	if path == "" {
		return nil
	}
	lexer := lexers.Match(path)
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}

// syntaxRanges tokenises a single line. It returns nil when the lexer fails or
// the tokens do not add up to the line.
func syntaxRanges(lexer chroma.Lexer, line string) []syntaxRange {
	if lexer == nil || line == "" {
		return nil
	}
	it, err := lexer.Tokenise(nil, line)
	if err != nil {
		return nil
	}

	var out []syntaxRange
	var total strings.Builder
	for _, tok := range it.Tokens() {
		text := strings.ReplaceAll(tok.Value, "\n", "")
		if text == "" {
			continue
		}
		total.WriteString(text)
		out = append(out, syntaxRange{text: text, class: classify(tok.Type)})
	}
	if total.String() != line {
		return nil
	}
	return out
}

func classify(t chroma.TokenType) syntaxClass {
	switch {
	case t.InCategory(chroma.Keyword):
		return syntaxClassKeyword
	case t.InSubCategory(chroma.LiteralString):
		return syntaxClassString
	case t.InSubCategory(chroma.LiteralNumber):
		return syntaxClassNumber
	case t.InCategory(chroma.Comment):
		return syntaxClassComment
	}
	return syntaxClassNone
}

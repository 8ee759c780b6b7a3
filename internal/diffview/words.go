package diffview

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Span is a piece of one side of a row. Emphasis marks words that exist only
// on that side.
type Span struct {
	Text     string `json:"text"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

// WordHighlight holds the spans for both sides of a row. Concatenating the
// spans of a side gives back that side's unit exactly: words that only exist
// on the other side are left out instead of being shown struck through.
type WordHighlight struct {
	Left  []Span
	Right []Span
}

// HighlightWords computes word-level emphasis for a modified row. Other rows
// get one plain span per present side.
func HighlightWords(row Row) WordHighlight {
	if row.Kind != RowModified {
		var wh WordHighlight
		if row.HasLeft() && row.Left != "" {
			wh.Left = []Span{{Text: row.Left}}
		}
		if row.HasRight() && row.Right != "" {
			wh.Right = []Span{{Text: row.Right}}
		}
		return wh
	}

	enc := newTokenEncoder()
	a := enc.encode(tokenize(row.Left))
	b := enc.encode(tokenize(row.Right))

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	diffs := dmp.DiffCleanupMerge(dmp.DiffMainRunes(a, b, false))

	var wh WordHighlight
	for _, d := range diffs {
		text := enc.decode(d.Text)
		if text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			wh.Left = appendSpan(wh.Left, text, false)
			wh.Right = appendSpan(wh.Right, text, false)
		case diffmatchpatch.DiffDelete:
			wh.Left = appendSpan(wh.Left, text, true)
		case diffmatchpatch.DiffInsert:
			wh.Right = appendSpan(wh.Right, text, true)
		}
	}
	return wh
}

func appendSpan(spans []Span, text string, emphasis bool) []Span {
	if n := len(spans); n > 0 && spans[n-1].Emphasis == emphasis {
		spans[n-1].Text += text
		return spans
	}
	return append(spans, Span{Text: text, Emphasis: emphasis})
}

// tokenize splits s on Unicode word boundaries. Whitespace and punctuation
// come out as their own tokens, so the tokens always join back to s.
func tokenize(s string) []string {
	var out []string
	tokens := words.FromString(s)
	for tokens.Next() {
		out = append(out, tokens.Value())
	}
	return out
}

// tokenEncoder maps each distinct token to one rune so the character-level
// diff works on whole words, the same trick diffmatchpatch uses for lines.
type tokenEncoder struct {
	index  map[string]rune
	tokens []string
}

func newTokenEncoder() *tokenEncoder {
	return &tokenEncoder{index: make(map[string]rune)}
}

func (e *tokenEncoder) encode(tokens []string) []rune {
	out := make([]rune, 0, len(tokens))
	for _, tok := range tokens {
		r, ok := e.index[tok]
		if !ok {
			r = tokenRune(len(e.tokens))
			e.index[tok] = r
			e.tokens = append(e.tokens, tok)
		}
		out = append(out, r)
	}
	return out
}

func (e *tokenEncoder) decode(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if i := runeToken(r); i >= 0 && i < len(e.tokens) {
			sb.WriteString(e.tokens[i])
		}
	}
	return sb.String()
}

const (
	surrogateMin = 0xD800
	surrogateLen = 0x800
)

// tokenRune skips the surrogate range, which does not survive a round trip
// through a Go string.
func tokenRune(i int) rune {
	r := rune(i + 1)
	if r >= surrogateMin {
		r += surrogateLen
	}
	return r
}

func runeToken(r rune) int {
	if r >= surrogateMin+surrogateLen {
		r -= surrogateLen
	}
	return int(r) - 1
}

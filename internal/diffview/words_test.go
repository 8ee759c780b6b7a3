package diffview

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHighlightWordsChangedWord(t *testing.T) {
	got := HighlightWords(Row{Kind: RowModified, Left: "alpha beta gamma", Right: "alpha zeta gamma"})

	want := WordHighlight{
		Left:  []Span{{Text: "alpha "}, {Text: "beta", Emphasis: true}, {Text: " gamma"}},
		Right: []Span{{Text: "alpha "}, {Text: "zeta", Emphasis: true}, {Text: " gamma"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("HighlightWords() mismatch (-want, +got):\n%s", diff)
	}
}

func TestHighlightWordsInsertionOmittedOnLeft(t *testing.T) {
	got := HighlightWords(Row{Kind: RowModified, Left: "the fox", Right: "the quick fox"})

	if joined := joinSpans(got.Left); joined != "the fox" {
		t.Fatalf("left spans join to %q", joined)
	}
	for _, s := range got.Left {
		if s.Emphasis {
			t.Fatalf("left side should have no emphasis, got %+v", got.Left)
		}
	}
	if !hasEmphasis(got.Right, "quick") {
		t.Fatalf("expected %q emphasized on the right, got %+v", "quick", got.Right)
	}
}

func TestHighlightWordsSpansRebuildEachSide(t *testing.T) {
	pairs := [][2]string{
		{"line2", "line2-X"},
		{"return a + b;", "return a - b * c;"},
		{"  indented\ttabs ", "indented tabs"},
		{"héllo wörld", "hello world"},
		{"", "something"},
		{"日本語のテキスト", "日本語テキスト"},
		{"a, b, c", "c, b, a"},
	}
	for _, p := range pairs {
		got := HighlightWords(Row{Kind: RowModified, Left: p[0], Right: p[1]})
		if joined := joinSpans(got.Left); joined != p[0] {
			t.Errorf("HighlightWords(%q, %q) left joins to %q", p[0], p[1], joined)
		}
		if joined := joinSpans(got.Right); joined != p[1] {
			t.Errorf("HighlightWords(%q, %q) right joins to %q", p[0], p[1], joined)
		}
	}
}

func TestHighlightWordsNonModifiedRows(t *testing.T) {
	got := HighlightWords(Row{Kind: RowAdded, Right: "new line"})
	if got.Left != nil {
		t.Fatalf("added row left spans = %+v, want nil", got.Left)
	}
	if diff := cmp.Diff([]Span{{Text: "new line"}}, got.Right); diff != "" {
		t.Errorf("added row right spans (-want, +got):\n%s", diff)
	}

	got = HighlightWords(Row{Kind: RowUnchanged, Left: "same", Right: "same"})
	if joinSpans(got.Left) != "same" || joinSpans(got.Right) != "same" {
		t.Fatalf("unchanged row spans = %+v", got)
	}
}

func TestTokenRuneSkipsSurrogates(t *testing.T) {
	for _, i := range []int{0, 1, surrogateMin - 2, surrogateMin - 1, surrogateMin, surrogateMin + 10} {
		r := tokenRune(i)
		if r >= surrogateMin && r < surrogateMin+surrogateLen {
			t.Fatalf("tokenRune(%d)=%U falls in the surrogate range", i, r)
		}
		if back := runeToken(r); back != i {
			t.Fatalf("runeToken(tokenRune(%d))=%d", i, back)
		}
	}
}

func joinSpans(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func hasEmphasis(spans []Span, word string) bool {
	for _, s := range spans {
		if s.Emphasis && strings.Contains(s.Text, word) {
			return true
		}
	}
	return false
}

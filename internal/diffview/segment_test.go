package diffview

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSelectMode(t *testing.T) {
	if got := SelectMode("hello.", "hello!"); got != ModeSentence {
		t.Fatalf("SelectMode(no newlines)=%v want %v", got, ModeSentence)
	}
	if got := SelectMode("a\nb", "a\nc"); got != ModeLine {
		t.Fatalf("SelectMode(newlines)=%v want %v", got, ModeLine)
	}
	if got := SelectMode("single", "two\nlines"); got != ModeLine {
		t.Fatalf("SelectMode(one side newline)=%v want %v", got, ModeLine)
	}
}

func TestNormalizeLineEndings(t *testing.T) {
	if got, want := NormalizeLineEndings("a\r\nb\rc\nd"), "a\nb\nc\nd"; got != want {
		t.Fatalf("NormalizeLineEndings()=%q want %q", got, want)
	}
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		text string
		mode Mode
		want []string
	}{
		{name: "lines-empty", text: "", mode: ModeLine},
		{name: "lines-keep-blank", text: "a\n\nb\n", mode: ModeLine, want: []string{"a", "", "b", ""}},
		{name: "lines-single", text: "abc", mode: ModeLine, want: []string{"abc"}},
		{name: "sentences-empty", text: "", mode: ModeSentence},
		{name: "sentences-whitespace", text: "  \t ", mode: ModeSentence},
		{name: "sentences-no-terminator", text: "  no terminator here ", mode: ModeSentence, want: []string{"no terminator here"}},
		{name: "sentences-single", text: "hello.", mode: ModeSentence, want: []string{"hello."}},
		{
			name: "sentences-three",
			text: "Hi there. How are you?  Fine!",
			mode: ModeSentence,
			want: []string{"Hi there.", "How are you?", "Fine!"},
		},
		{name: "sentences-ellipsis", text: "Wait... what?", mode: ModeSentence, want: []string{"Wait...", "what?"}},
		{name: "sentences-decimal", text: "Pi is 3.14 roughly", mode: ModeSentence, want: []string{"Pi is 3.14 roughly"}},
		{name: "sentences-no-space", text: "Stop!Go", mode: ModeSentence, want: []string{"Stop!Go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.text, tt.mode)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Segment() mismatch (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestSegmentLinesJoinsBack(t *testing.T) {
	for _, text := range []string{"a", "a\nb", "\n", "a\n\n\nb\n", "x\ny\n"} {
		if got := strings.Join(Segment(text, ModeLine), "\n"); got != text {
			t.Fatalf("Join(Segment(%q))=%q", text, got)
		}
	}
}

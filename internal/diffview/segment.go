package diffview

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mode is the granularity texts are split into before diffing.
type Mode int

const (
	ModeLine Mode = iota
	ModeSentence
)

func (m Mode) String() string {
	if m == ModeSentence {
		return "sentence"
	}
	return "line"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Separator is the string units of this mode are joined with to rebuild a text.
func (m Mode) Separator() string {
	if m == ModeSentence {
		return " "
	}
	return "\n"
}

// NormalizeLineEndings rewrites "\r\n" and lone "\r" to "\n".
func NormalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// SelectMode picks line mode when either normalized text spans more than one
// line and sentence mode otherwise.
func SelectMode(left, right string) Mode {
	if strings.ContainsRune(left, '\n') || strings.ContainsRune(right, '\n') {
		return ModeLine
	}
	return ModeSentence
}

// Segment splits text into units for mode. An empty text has no units.
func Segment(text string, mode Mode) []string {
	if mode == ModeSentence {
		return splitSentences(text)
	}
	return splitLines(text)
}

// splitLines keeps empty lines, so strings.Join(units, "\n") == text.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// splitSentences cuts after '.', '!' or '?' when followed by whitespace or the
// end of the text, then trims every piece and drops the empty ones.
func splitSentences(text string) []string {
	var units []string
	emit := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			units = append(units, s)
		}
	}

	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i == len(text) {
			break
		}
		next, _ := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(next) {
			continue
		}
		emit(text[start:i])
		for i < len(text) {
			r, size := utf8.DecodeRuneInString(text[i:])
			if !unicode.IsSpace(r) {
				break
			}
			i += size
		}
		start = i
	}
	emit(text[start:])
	return units
}

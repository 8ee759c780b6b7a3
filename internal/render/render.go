// Package render draws a diffview result as two terminal columns.
package render

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"sbsdiff/internal/diffview"
)

const defaultTabWidth = 4

type Options struct {
	Width    int
	Color    bool
	Path     string // picks the syntax lexer for unchanged rows
	TabWidth int
	Cursor   int // display line index, -1 for none
}

var (
	removedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	addedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	emphasisStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	numberStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	gapStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	sepStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	syntaxStyles = map[syntaxClass]lipgloss.Style{
		syntaxClassKeyword: lipgloss.NewStyle().Foreground(lipgloss.Color("176")),
		syntaxClassString:  lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
		syntaxClassNumber:  lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
		syntaxClassComment: lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
	}
)

// piece is a run of text with the style it is drawn in. A nil style is plain.
type piece struct {
	text  string
	style *lipgloss.Style
}

type renderer struct {
	opts   Options
	res    diffview.Result
	lexer  chroma.Lexer
	leftW  int
	rightW int
	leftN  int
	rightN int
}

// Split renders every display line of res into one terminal line of exactly
// opts.Width cells.
func Split(res diffview.Result, lines []diffview.DisplayLine, opts Options) []string {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = defaultTabWidth
	}
	leftW, rightW := columnWidths(opts.Width)

	maxLeft, maxRight := 0, 0
	for _, n := range res.Numbers {
		if n.Left != nil {
			maxLeft = max(maxLeft, *n.Left)
		}
		if n.Right != nil {
			maxRight = max(maxRight, *n.Right)
		}
	}

	r := renderer{
		opts:   opts,
		res:    res,
		leftW:  leftW,
		rightW: rightW,
		leftN:  numberWidth(maxLeft),
		rightN: numberWidth(maxRight),
	}
	if opts.Color {
		r.lexer = lexerForPath(opts.Path)
	}

	out := make([]string, 0, len(lines))
	for i, line := range lines {
		out = append(out, r.line(line, i == opts.Cursor))
	}
	return out
}

func (r *renderer) line(line diffview.DisplayLine, isCursor bool) string {
	cursorMark := piece{text: "  "}
	if isCursor {
		cursorMark = piece{text: "▸ ", style: &cursorStyle}
	}

	switch line.Kind {
	case diffview.DisplayExpand:
		label := fmt.Sprintf("⋯ %d unchanged %s — expand", line.Hidden, plural(line.Hidden, "line", "lines"))
		return r.draw(cursorMark) + r.fit([]piece{{text: label, style: &gapStyle}}, r.opts.Width-2)
	case diffview.DisplayCollapse:
		label := fmt.Sprintf("⋯ %d unchanged %s — collapse", line.Gap.Len(), plural(line.Gap.Len(), "line", "lines"))
		return r.draw(cursorMark) + r.fit([]piece{{text: label, style: &gapStyle}}, r.opts.Width-2)
	}

	row := r.res.Rows[line.Row]
	nums := r.res.Numbers[line.Row]
	var wh diffview.WordHighlight
	if row.Kind == diffview.RowModified {
		wh = diffview.HighlightWords(row)
	}

	left := r.column(row, diffview.SideLeft, nums.Left, wh.Left, r.leftW-2, r.leftN)
	right := r.column(row, diffview.SideRight, nums.Right, wh.Right, r.rightW, r.rightN)
	return r.draw(cursorMark) + left + r.draw(piece{text: separator, style: &sepStyle}) + right
}

func (r *renderer) column(row diffview.Row, side diffview.Side, num *int, words []diffview.Span, width, numW int) string {
	text, ok := row.Text(side)
	if !ok || num == nil {
		return strings.Repeat(" ", max(0, width))
	}

	marker, lineStyle := sideMarker(row.Kind, side)
	meta := fmt.Sprintf("%c %*d ", marker, numW, *num)
	pieces := []piece{{text: meta, style: &numberStyle}}

	switch {
	case row.Kind == diffview.RowModified:
		for _, w := range words {
			p := piece{text: w.Text, style: lineStyle}
			if w.Emphasis {
				s := emphasisStyle.Inherit(*lineStyle)
				p.style = &s
			}
			pieces = append(pieces, p)
		}
	case row.Kind == diffview.RowUnchanged && r.lexer != nil:
		ranges := syntaxRanges(r.lexer, text)
		if ranges == nil {
			pieces = append(pieces, piece{text: text})
			break
		}
		for _, sr := range ranges {
			p := piece{text: sr.text}
			if s, ok := syntaxStyles[sr.class]; ok {
				p.style = &s
			}
			pieces = append(pieces, p)
		}
	default:
		pieces = append(pieces, piece{text: text, style: lineStyle})
	}
	return r.fit(pieces, width)
}

func sideMarker(kind diffview.RowKind, side diffview.Side) (rune, *lipgloss.Style) {
	switch {
	case side == diffview.SideLeft && (kind == diffview.RowRemoved || kind == diffview.RowModified):
		return '-', &removedStyle
	case side == diffview.SideRight && (kind == diffview.RowAdded || kind == diffview.RowModified):
		return '+', &addedStyle
	}
	return ' ', nil
}

// fit expands tabs, truncates the pieces to width display cells and pads the
// remainder with spaces.
func (r *renderer) fit(pieces []piece, width int) string {
	if width <= 0 {
		return ""
	}
	var sb strings.Builder
	used := 0
	for _, p := range pieces {
		if used >= width {
			break
		}
		text := expandTabs(p.text, r.opts.TabWidth, used)
		if w := runewidth.StringWidth(text); used+w > width {
			text = runewidth.Truncate(text, width-used, "")
		}
		used += runewidth.StringWidth(text)
		sb.WriteString(r.draw(piece{text: text, style: p.style}))
	}
	if used < width {
		sb.WriteString(strings.Repeat(" ", width-used))
	}
	return sb.String()
}

func (r *renderer) draw(p piece) string {
	if !r.opts.Color || p.style == nil || p.text == "" {
		return p.text
	}
	return p.style.Render(p.text)
}

// expandTabs replaces tabs with spaces up to the next tab stop, counting
// from column col.
func expandTabs(s string, tabWidth, col int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var sb strings.Builder
	for _, ch := range s {
		if ch == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(ch)
		col += runewidth.RuneWidth(ch)
	}
	return sb.String()
}

// FormatStats renders stats as a one-line summary.
func FormatStats(s diffview.Stats) string {
	return fmt.Sprintf("+%d -%d ~%d =%d (total %d, delta %+d)", s.Added, s.Removed, s.Modified, s.Unchanged, s.Total, s.Delta)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Package patch exports aligned rows as a unified diff.
//
// Units are written one per line, so a text ending in a newline shows up with
// a final empty line. The output is meant for review and sharing, not for
// byte-exact application with patch(1).
package patch

import (
	"bytes"

	sgdiff "github.com/sourcegraph/go-diff/diff"

	"sbsdiff/internal/diffview"
)

const DefaultContext = 3

// Unified renders rows as a unified diff between oldName and newName with
// context unchanged rows around every change. Rows without changes produce no
// output.
func Unified(oldName, newName string, rows []diffview.Row, context int) ([]byte, error) {
	hunks := Hunks(rows, context)
	if len(hunks) == 0 {
		return nil, nil
	}
	return sgdiff.PrintFileDiff(&sgdiff.FileDiff{
		OrigName: oldName,
		NewName:  newName,
		Hunks:    hunks,
	})
}

// Hunks groups rows into unified diff hunks. Changes closer than twice the
// context share a hunk.
func Hunks(rows []diffview.Row, context int) []*sgdiff.Hunk {
	context = max(0, context)

	// Units consumed on each side before row i.
	leftBefore := make([]int, len(rows)+1)
	rightBefore := make([]int, len(rows)+1)
	for i, row := range rows {
		leftBefore[i+1] = leftBefore[i]
		rightBefore[i+1] = rightBefore[i]
		if row.HasLeft() {
			leftBefore[i+1]++
		}
		if row.HasRight() {
			rightBefore[i+1]++
		}
	}

	var hunks []*sgdiff.Hunk
	for i := 0; i < len(rows); {
		if rows[i].Kind == diffview.RowUnchanged {
			i++
			continue
		}
		start := max(0, i-context)
		end := i
		for end < len(rows) {
			if rows[end].Kind != diffview.RowUnchanged {
				end++
				continue
			}
			next := end
			for next < len(rows) && rows[next].Kind == diffview.RowUnchanged {
				next++
			}
			if next == len(rows) || next-end > 2*context {
				break
			}
			end = next
		}
		stop := min(len(rows), end+context)

		h := &sgdiff.Hunk{
			OrigStartLine: startLine(leftBefore[start], leftBefore[stop]-leftBefore[start]),
			OrigLines:     int32(leftBefore[stop] - leftBefore[start]),
			NewStartLine:  startLine(rightBefore[start], rightBefore[stop]-rightBefore[start]),
			NewLines:      int32(rightBefore[stop] - rightBefore[start]),
			Body:          body(rows[start:stop]),
		}
		hunks = append(hunks, h)
		i = stop
	}
	return hunks
}

// startLine follows the diff convention of pointing at the line before an
// empty range.
func startLine(before, count int) int32 {
	if count == 0 {
		return int32(before)
	}
	return int32(before + 1)
}

func body(rows []diffview.Row) []byte {
	var buf bytes.Buffer
	for i := 0; i < len(rows); {
		if rows[i].Kind == diffview.RowUnchanged {
			writeLine(&buf, ' ', rows[i].Left)
			i++
			continue
		}
		j := i
		for j < len(rows) && rows[j].Kind != diffview.RowUnchanged {
			j++
		}
		for _, row := range rows[i:j] {
			if row.HasLeft() {
				writeLine(&buf, '-', row.Left)
			}
		}
		for _, row := range rows[i:j] {
			if row.HasRight() {
				writeLine(&buf, '+', row.Right)
			}
		}
		i = j
	}
	return buf.Bytes()
}

func writeLine(buf *bytes.Buffer, prefix byte, text string) {
	buf.WriteByte(prefix)
	buf.WriteString(text)
	buf.WriteByte('\n')
}

package diffview

import "encoding/json"

type Side int

const (
	SideLeft Side = iota
	SideRight
)

type RowKind int

const (
	RowUnchanged RowKind = iota
	RowAdded
	RowRemoved
	RowModified
)

func (k RowKind) String() string {
	switch k {
	case RowUnchanged:
		return "unchanged"
	case RowAdded:
		return "added"
	case RowRemoved:
		return "removed"
	case RowModified:
		return "modified"
	}
	return "unknown"
}

func (k RowKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Row pairs one left unit with one right unit. Which sides carry a unit is
// implied by Kind: added rows have no left unit, removed rows no right unit.
type Row struct {
	Kind  RowKind `json:"kind"`
	Left  string  `json:"left"`
	Right string  `json:"right"`
}

func (r Row) HasLeft() bool {
	return r.Kind != RowAdded
}

func (r Row) HasRight() bool {
	return r.Kind != RowRemoved
}

// MarshalJSON writes the absent side as null, so it cannot be mistaken for a
// blank line.
func (r Row) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind  RowKind `json:"kind"`
		Left  *string `json:"left"`
		Right *string `json:"right"`
	}{Kind: r.Kind}
	if r.HasLeft() {
		out.Left = &r.Left
	}
	if r.HasRight() {
		out.Right = &r.Right
	}
	return json.Marshal(out)
}

// Text returns the unit on side and whether that side is present.
func (r Row) Text(side Side) (string, bool) {
	if side == SideLeft {
		return r.Left, r.HasLeft()
	}
	return r.Right, r.HasRight()
}

// LineNumbers holds the 1-based column numbers of a row. A nil pointer means
// the side has no content on that row.
type LineNumbers struct {
	Left  *int `json:"left,omitempty"`
	Right *int `json:"right,omitempty"`
}

func linePtr(n int) *int {
	v := n
	return &v
}

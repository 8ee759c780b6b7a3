package diffview

const (
	DefaultCollapseThreshold = 8
	DefaultContextLines      = 2
)

// GapKey identifies a run of unchanged rows by its row range [Start, End).
type GapKey struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (k GapKey) Len() int {
	return k.End - k.Start
}

// GapState remembers which gaps the user expanded. Gaps not in the map are
// collapsed. The zero value is ready to use.
type GapState struct {
	expanded map[GapKey]bool
}

func NewGapState() *GapState {
	return &GapState{}
}

func (g *GapState) Collapsed(key GapKey) bool {
	return !g.expanded[key]
}

func (g *GapState) SetExpanded(key GapKey, expanded bool) {
	if !expanded {
		delete(g.expanded, key)
		return
	}
	if g.expanded == nil {
		g.expanded = make(map[GapKey]bool)
	}
	g.expanded[key] = true
}

// Toggle flips the gap and reports whether it is now collapsed.
func (g *GapState) Toggle(key GapKey) bool {
	g.SetExpanded(key, g.Collapsed(key))
	return g.Collapsed(key)
}

// ExpandAll expands every gap in plan.
func (g *GapState) ExpandAll(plan []Section) {
	for _, s := range plan {
		if s.Kind == SectionGap {
			g.SetExpanded(s.Key(), true)
		}
	}
}

// Reset collapses every gap.
func (g *GapState) Reset() {
	g.expanded = nil
}

type SectionKind int

const (
	SectionShow SectionKind = iota
	SectionGap
)

func (k SectionKind) String() string {
	if k == SectionGap {
		return "gap"
	}
	return "show"
}

func (k SectionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Section is one piece of a render plan covering rows [Start, End).
type Section struct {
	Kind      SectionKind `json:"type"`
	Start     int         `json:"start"`
	End       int         `json:"end"`
	Collapsed bool        `json:"collapsed,omitempty"`
}

func (s Section) Key() GapKey {
	return GapKey{Start: s.Start, End: s.End}
}

// Compact builds a render plan: maximal runs of at least threshold unchanged
// rows become gaps, everything else is shown inline. With compact off the
// plan is a single show section. A nil state reports every gap collapsed.
func Compact(rows []Row, threshold int, compact bool, state *GapState) []Section {
	if len(rows) == 0 {
		return nil
	}
	if !compact {
		return []Section{{Kind: SectionShow, Start: 0, End: len(rows)}}
	}
	threshold = max(1, threshold)

	var plan []Section
	show := func(start, end int) {
		if start >= end {
			return
		}
		if n := len(plan); n > 0 && plan[n-1].Kind == SectionShow && plan[n-1].End == start {
			plan[n-1].End = end
			return
		}
		plan = append(plan, Section{Kind: SectionShow, Start: start, End: end})
	}

	shown := 0
	for i := 0; i < len(rows); {
		if rows[i].Kind != RowUnchanged {
			i++
			continue
		}
		start := i
		for i < len(rows) && rows[i].Kind == RowUnchanged {
			i++
		}
		if i-start < threshold {
			continue
		}
		show(shown, start)
		key := GapKey{Start: start, End: i}
		collapsed := true
		if state != nil {
			collapsed = state.Collapsed(key)
		}
		plan = append(plan, Section{Kind: SectionGap, Start: start, End: i, Collapsed: collapsed})
		shown = i
	}
	show(shown, len(rows))
	return plan
}

type DisplayKind int

const (
	DisplayRow DisplayKind = iota
	DisplayExpand
	DisplayCollapse
)

// DisplayLine is one line of a flattened plan: either a row, or the control
// line of a gap. Hidden is the number of rows an expand control stands in for.
type DisplayLine struct {
	Kind   DisplayKind
	Row    int
	Gap    GapKey
	Hidden int
}

// Expand flattens plan into display lines. A collapsed gap shows its first
// and last contextLines rows around an expand control; when the run is short
// enough for the context to meet, no row is repeated. An expanded gap shows
// every row followed by a collapse control.
func Expand(plan []Section, contextLines int) []DisplayLine {
	contextLines = max(0, contextLines)

	var out []DisplayLine
	rowsIn := func(start, end int, gap GapKey) {
		for r := start; r < end; r++ {
			out = append(out, DisplayLine{Kind: DisplayRow, Row: r, Gap: gap})
		}
	}

	for _, s := range plan {
		if s.Kind == SectionShow {
			rowsIn(s.Start, s.End, GapKey{})
			continue
		}
		key := s.Key()
		if !s.Collapsed {
			rowsIn(s.Start, s.End, key)
			out = append(out, DisplayLine{Kind: DisplayCollapse, Row: s.End - 1, Gap: key})
			continue
		}
		headEnd := min(s.End, s.Start+contextLines)
		tailStart := max(headEnd, s.End-contextLines)
		rowsIn(s.Start, headEnd, key)
		out = append(out, DisplayLine{Kind: DisplayExpand, Row: headEnd, Gap: key, Hidden: tailStart - headEnd})
		rowsIn(tailStart, s.End, key)
	}
	return out
}

// Package diffview aligns two texts into side-by-side rows.
//
// The pipeline is: normalize line endings, pick a mode (lines when either text
// has a newline, sentences otherwise), segment both texts into units, diff the
// unit sequences into blocks, zip the blocks into rows, then count, number and
// compact the rows into a render plan. Everything here is pure; the only state
// that survives a recomputation is a GapState owned by the caller or a Session.
//
// The unit diff is znkr.io/diff in minimal mode: a Myers diff with common
// prefix/suffix trimming, without the anchoring heuristics the library
// applies by default. Its cost is O((N+M)·D) for D differing units, which is
// quadratic only when the texts share almost nothing. The heuristics
// would bound that at O(N^1.5 log N) but can return longer edit scripts.
package diffview

type options struct {
	threshold int
	context   int
	compact   bool
	gaps      *GapState
}

type Option func(*options)

// WithCollapseThreshold sets the minimum length of an unchanged run that gets
// folded into a gap. Values below 1 are treated as 1.
func WithCollapseThreshold(n int) Option {
	return func(o *options) {
		o.threshold = n
	}
}

// WithContextLines sets how many rows stay visible at each end of a collapsed gap.
func WithContextLines(n int) Option {
	return func(o *options) {
		o.context = n
	}
}

func WithCompact(on bool) Option {
	return func(o *options) {
		o.compact = on
	}
}

// WithGapState makes the plan reflect the expand/collapse state in g.
func WithGapState(g *GapState) Option {
	return func(o *options) {
		o.gaps = g
	}
}

func fromOptions(opts []Option) options {
	o := options{
		threshold: DefaultCollapseThreshold,
		context:   DefaultContextLines,
		compact:   true,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}
	o.threshold = max(1, o.threshold)
	o.context = max(0, o.context)
	return o
}

type Result struct {
	Mode         Mode          `json:"mode"`
	Rows         []Row         `json:"rows"`
	Stats        Stats         `json:"stats"`
	Numbers      []LineNumbers `json:"line_numbers"`
	Plan         []Section     `json:"plan"`
	ContextLines int           `json:"context_lines"`
}

// Lines flattens the plan into display lines.
func (r Result) Lines() []DisplayLine {
	return Expand(r.Plan, r.ContextLines)
}

// Compute diffs left against right.
func Compute(left, right string, opts ...Option) Result {
	o := fromOptions(opts)

	left = NormalizeLineEndings(left)
	right = NormalizeLineEndings(right)
	mode := SelectMode(left, right)

	rows := AlignRows(Blocks(Segment(left, mode), Segment(right, mode)))
	return Result{
		Mode:         mode,
		Rows:         rows,
		Stats:        CountRows(rows),
		Numbers:      NumberLines(rows),
		Plan:         Compact(rows, o.threshold, o.compact, o.gaps),
		ContextLines: o.context,
	}
}

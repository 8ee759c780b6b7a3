package diffview

import "log/slog"

// Session keeps a pair of texts and the gap state that belongs to them.
// Gap state is dropped whenever either text changes or compact mode is
// switched back on.
type Session struct {
	left, right string
	threshold   int
	context     int
	compact     bool
	gaps        GapState

	cached *Result
}

func NewSession(threshold, contextLines int, compact bool) *Session {
	return &Session{
		threshold: threshold,
		context:   contextLines,
		compact:   compact,
	}
}

// SetTexts replaces both texts and reports whether anything changed.
func (s *Session) SetTexts(left, right string) bool {
	if left == s.left && right == s.right {
		return false
	}
	s.left, s.right = left, right
	s.gaps.Reset()
	s.cached = nil
	slog.Debug("texts changed, gaps reset", "left_bytes", len(left), "right_bytes", len(right))
	return true
}

func (s *Session) Compact() bool {
	return s.compact
}

func (s *Session) SetCompact(on bool) {
	if on == s.compact {
		return
	}
	s.compact = on
	if on {
		s.gaps.Reset()
		slog.Debug("compact mode on, gaps reset")
	}
	s.cached = nil
}

// ToggleGap flips one gap and reports whether it is now collapsed.
func (s *Session) ToggleGap(key GapKey) bool {
	s.cached = nil
	return s.gaps.Toggle(key)
}

func (s *Session) ExpandAll() {
	s.gaps.ExpandAll(s.Result().Plan)
	s.cached = nil
}

func (s *Session) CollapseAll() {
	s.gaps.Reset()
	s.cached = nil
}

// Result returns the diff of the current texts, recomputing it only after a
// change.
func (s *Session) Result() Result {
	if s.cached != nil {
		return *s.cached
	}
	res := Compute(s.left, s.right,
		WithCollapseThreshold(s.threshold),
		WithContextLines(s.context),
		WithCompact(s.compact),
		WithGapState(&s.gaps),
	)
	s.cached = &res
	return res
}

package diffview

type Stats struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Modified  int `json:"modified"`
	Unchanged int `json:"unchanged"`
	Total     int `json:"total"`
	Delta     int `json:"delta"`
}

// Identical reports whether every row is unchanged.
func (s Stats) Identical() bool {
	return s.Unchanged == s.Total
}

func CountRows(rows []Row) Stats {
	var s Stats
	for _, row := range rows {
		switch row.Kind {
		case RowUnchanged:
			s.Unchanged++
		case RowAdded:
			s.Added++
		case RowRemoved:
			s.Removed++
		case RowModified:
			s.Modified++
		}
	}
	s.Total = len(rows)
	s.Delta = s.Added - s.Removed
	return s
}

// NumberLines assigns independent 1-based counters to both columns. A counter
// only advances on rows where its side has content.
func NumberLines(rows []Row) []LineNumbers {
	out := make([]LineNumbers, len(rows))
	left, right := 1, 1
	for i, row := range rows {
		if row.HasLeft() {
			out[i].Left = linePtr(left)
			left++
		}
		if row.HasRight() {
			out[i].Right = linePtr(right)
			right++
		}
	}
	return out
}

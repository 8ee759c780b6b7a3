package diffview

// AlignRows flattens blocks into rows. A deleted block immediately followed by
// an inserted block is zipped position by position; the pairing does not look
// at content, so the i-th deleted unit always meets the i-th inserted unit.
func AlignRows(blocks []Block) []Row {
	rows := make([]Row, 0, 64)
	for i := 0; i < len(blocks); i++ {
		b := blocks[i]
		switch b.Kind {
		case BlockEqual:
			for _, u := range b.Units {
				rows = append(rows, Row{Kind: RowUnchanged, Left: u, Right: u})
			}

		case BlockDeleted:
			var adds []string
			if i+1 < len(blocks) && blocks[i+1].Kind == BlockInserted {
				adds = blocks[i+1].Units
				i++
			}
			rows = append(rows, pairEditRuns(b.Units, adds)...)

		case BlockInserted:
			rows = append(rows, pairEditRuns(nil, b.Units)...)
		}
	}
	return rows
}

func pairEditRuns(dels, adds []string) []Row {
	count := max(len(dels), len(adds))
	out := make([]Row, 0, count)
	for i := 0; i < count; i++ {
		hasDel := i < len(dels)
		hasAdd := i < len(adds)

		var row Row
		switch {
		case hasDel && hasAdd && dels[i] == adds[i]:
			row = Row{Kind: RowUnchanged, Left: dels[i], Right: adds[i]}
		case hasDel && hasAdd:
			row = Row{Kind: RowModified, Left: dels[i], Right: adds[i]}
		case hasDel:
			row = Row{Kind: RowRemoved, Left: dels[i]}
		default:
			row = Row{Kind: RowAdded, Right: adds[i]}
		}
		out = append(out, row)
	}
	return out
}

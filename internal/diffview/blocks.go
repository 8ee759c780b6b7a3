package diffview

import (
	"znkr.io/diff"
)

type BlockKind int

const (
	BlockEqual BlockKind = iota
	BlockInserted
	BlockDeleted
)

func (k BlockKind) String() string {
	switch k {
	case BlockEqual:
		return "equal"
	case BlockInserted:
		return "inserted"
	case BlockDeleted:
		return "deleted"
	}
	return "unknown"
}

// Block is a maximal run of units sharing one classification.
type Block struct {
	Kind  BlockKind
	Units []string
}

// Blocks diffs two unit sequences into blocks in document order. Within one
// changed region all deletions come before all insertions, so a change always
// shows up as a deleted block directly followed by an inserted block.
//
// Concatenating the equal and deleted blocks yields left; concatenating the
// equal and inserted blocks yields right. The edit script is minimal: no other
// script turns left into right with fewer deleted plus inserted units.
func Blocks(left, right []string) []Block {
	edits := diff.Edits(left, right, diff.Minimal())

	var blocks []Block
	var dels, ins []string
	flush := func() {
		if len(dels) > 0 {
			blocks = append(blocks, Block{Kind: BlockDeleted, Units: dels})
		}
		if len(ins) > 0 {
			blocks = append(blocks, Block{Kind: BlockInserted, Units: ins})
		}
		dels, ins = nil, nil
	}

	for _, e := range edits {
		switch e.Op {
		case diff.Match:
			flush()
			if n := len(blocks); n > 0 && blocks[n-1].Kind == BlockEqual {
				blocks[n-1].Units = append(blocks[n-1].Units, e.X)
				continue
			}
			blocks = append(blocks, Block{Kind: BlockEqual, Units: []string{e.X}})
		case diff.Delete:
			dels = append(dels, e.X)
		case diff.Insert:
			ins = append(ins, e.Y)
		}
	}
	flush()
	return blocks
}

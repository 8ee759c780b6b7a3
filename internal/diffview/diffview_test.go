package diffview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompute_ModifiedLine(t *testing.T) {
	res := Compute(
		"line1\nline2\nline3\nline4\nline5",
		"line1\nline2-X\nline3\nline4\nline5",
	)

	require.Equal(t, ModeLine, res.Mode)
	require.Equal(t, []Row{
		{Kind: RowUnchanged, Left: "line1", Right: "line1"},
		{Kind: RowModified, Left: "line2", Right: "line2-X"},
		{Kind: RowUnchanged, Left: "line3", Right: "line3"},
		{Kind: RowUnchanged, Left: "line4", Right: "line4"},
		{Kind: RowUnchanged, Left: "line5", Right: "line5"},
	}, res.Rows)
	require.Equal(t, Stats{Added: 0, Removed: 0, Modified: 1, Unchanged: 4, Total: 5, Delta: 0}, res.Stats)
}

func TestCompute_TrailingInsertIsNotPaired(t *testing.T) {
	res := Compute("A\nB", "A\nB\nC")

	require.Equal(t, []Row{
		{Kind: RowUnchanged, Left: "A", Right: "A"},
		{Kind: RowUnchanged, Left: "B", Right: "B"},
		{Kind: RowAdded, Right: "C"},
	}, res.Rows)
	require.Equal(t, 1, res.Stats.Delta)
}

func TestCompute_SentenceMode(t *testing.T) {
	res := Compute("hello.", "hello!")
	require.Equal(t, ModeSentence, res.Mode)
	require.Equal(t, []Row{{Kind: RowModified, Left: "hello.", Right: "hello!"}}, res.Rows)

	res = Compute("First one. Second one.", "First one. Second two. Third!")
	require.Equal(t, ModeSentence, res.Mode)
	require.Equal(t, []Row{
		{Kind: RowUnchanged, Left: "First one.", Right: "First one."},
		{Kind: RowModified, Left: "Second one.", Right: "Second two."},
		{Kind: RowAdded, Right: "Third!"},
	}, res.Rows)
}

func TestCompute_CRLFMatchesLF(t *testing.T) {
	res := Compute("a\r\nb\r\nc", "a\nb\nc")
	require.True(t, res.Stats.Identical())
	require.Equal(t, 3, res.Stats.Total)
}

func TestCompute_DegenerateInputs(t *testing.T) {
	res := Compute("", "")
	require.Empty(t, res.Rows)
	require.Empty(t, res.Plan)
	require.Equal(t, Stats{}, res.Stats)

	res = Compute("", "a\nb")
	require.Equal(t, []Row{
		{Kind: RowAdded, Right: "a"},
		{Kind: RowAdded, Right: "b"},
	}, res.Rows)
	require.Equal(t, 2, res.Stats.Delta)

	res = Compute("only left", "")
	require.Equal(t, ModeSentence, res.Mode)
	require.Equal(t, []Row{{Kind: RowRemoved, Left: "only left"}}, res.Rows)
	require.Equal(t, -1, res.Stats.Delta)
}

func TestCompute_IdenticalTextsAreUnchanged(t *testing.T) {
	for _, text := range []string{"", "x", "a\nb\nc\n", "One. Two! Three?", strings.Repeat("same\n", 40)} {
		res := Compute(text, text)
		for i, row := range res.Rows {
			require.Equal(t, RowUnchanged, row.Kind, "row %d of %q", i, text)
		}
		require.Equal(t, 0, res.Stats.Delta)
		require.True(t, res.Stats.Identical())
	}
}

var propertyInputs = [][2]string{
	{"", ""},
	{"a", ""},
	{"", "b"},
	{"a\nb\nc", "a\nc"},
	{"a\nb\nc", "c\nb\na"},
	{"one\ntwo\nthree\nfour", "zero\none\nthree\nfive\nsix"},
	{"x\n\n\ny\n", "x\n\ny\n\n"},
	{"Hello there. General Kenobi!", "Hello there! General Kenobi."},
	{"p\nq\nr\ns\nt\nu\nv\nw\nx\ny\nz", "p\nq\nR\ns\nt\nu\nv\nw\nx\ny\nZ"},
	{"func f() {\n\treturn 1\n}\n", "func f() {\n\tx := 2\n\treturn x\n}\n"},
}

func TestCompute_RowInvariants(t *testing.T) {
	for _, in := range propertyInputs {
		res := Compute(in[0], in[1])
		for i, row := range res.Rows {
			switch row.Kind {
			case RowUnchanged:
				require.Equal(t, row.Left, row.Right, "row %d of %q", i, in)
			case RowAdded:
				require.Empty(t, row.Left, "row %d of %q", i, in)
			case RowRemoved:
				require.Empty(t, row.Right, "row %d of %q", i, in)
			case RowModified:
				require.NotEqual(t, row.Left, row.Right, "row %d of %q", i, in)
			default:
				t.Fatalf("row %d of %q has kind %v", i, in, row.Kind)
			}
		}
	}
}

func TestCompute_RowsReconstructSegmentation(t *testing.T) {
	for _, in := range propertyInputs {
		res := Compute(in[0], in[1])

		var left, right []string
		for _, row := range res.Rows {
			if text, ok := row.Text(SideLeft); ok {
				left = append(left, text)
			}
			if text, ok := row.Text(SideRight); ok {
				right = append(right, text)
			}
		}
		require.Equal(t, Segment(in[0], res.Mode), left, "left of %q", in)
		require.Equal(t, Segment(in[1], res.Mode), right, "right of %q", in)
		if res.Mode == ModeLine {
			require.Equal(t, in[0], strings.Join(left, res.Mode.Separator()))
			require.Equal(t, in[1], strings.Join(right, res.Mode.Separator()))
		}
	}
}

func TestCompute_StatsAndPlanCoverRows(t *testing.T) {
	for _, in := range propertyInputs {
		res := Compute(in[0], in[1], WithCollapseThreshold(2))

		s := res.Stats
		require.Equal(t, s.Total, s.Added+s.Removed+s.Modified+s.Unchanged, "stats of %q", in)
		require.Equal(t, len(res.Rows), s.Total)
		require.Equal(t, s.Added-s.Removed, s.Delta)
		require.Len(t, res.Numbers, len(res.Rows))

		next := 0
		for _, sec := range res.Plan {
			require.Equal(t, next, sec.Start, "plan of %q", in)
			require.Greater(t, sec.End, sec.Start)
			next = sec.End
		}
		require.Equal(t, len(res.Rows), next, "plan of %q", in)
	}
}

func TestCompute_OptionsClamp(t *testing.T) {
	rows := strings.Repeat("same\n", 3) + "end"
	res := Compute(rows, strings.Repeat("same\n", 3)+"END", WithCollapseThreshold(-5), WithContextLines(-1))

	require.Equal(t, 0, res.ContextLines)
	require.Equal(t, []Section{
		{Kind: SectionGap, Start: 0, End: 3, Collapsed: true},
		{Kind: SectionShow, Start: 3, End: 4},
	}, res.Plan)
}

func TestCompute_CompactOff(t *testing.T) {
	text := strings.Repeat("x\n", 20)
	res := Compute(text, text, WithCompact(false))
	require.Equal(t, []Section{{Kind: SectionShow, Start: 0, End: 21}}, res.Plan)
}

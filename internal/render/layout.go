package render

const separator = " │ "

// columnWidths splits totalWidth into the two column content widths, leaving
// room for the separator. The left column never ends up wider than the right.
func columnWidths(totalWidth int) (int, int) {
	available := totalWidth - len([]rune(separator))
	if available < 2 {
		return 1, 1
	}
	left := available / 2
	right := available - left
	if left < 1 {
		left = 1
	}
	if right < 1 {
		right = 1
	}
	return left, right
}

// numberWidth is the width of the line number gutter for a column whose
// largest number is maxLine.
func numberWidth(maxLine int) int {
	return max(3, digits(maxLine))
}

func digits(n int) int {
	if n <= 0 {
		return 1
	}
	d := 0
	for n > 0 {
		d++
		n /= 10
	}
	return d
}

package npuzzle

// Manhattan sums, over every non-blank tile, the row and column distance
// between the tile's position and its goal position. The goal cell of value v
// is ((v-1) div width, (v-1) mod width). The estimate never exceeds the true
// remaining move count, and differs by at most 1 between adjacent boards,
// which is what lets the solver discard a configuration the first time it is
// generated.
func Manhattan(b Board) int {
	distance := 0
	for i, v := range b.Tiles {
		if v == 0 {
			continue
		}
		var (
			row, col = i / b.Width, i % b.Width
			goalRow  = (v - 1) / b.Width
			goalCol  = (v - 1) % b.Width
		)
		distance += absDiff(row, goalRow) + absDiff(col, goalCol)
	}
	return distance
}

func absDiff(x, y int) int {
	if x > y {
		return x - y
	}
	return y - x
}

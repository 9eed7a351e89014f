package t2048

import "github.com/vovakirdan/arcade-portal/internal/core"

// Size is the board dimension.
const Size = 4

// WinTile is the tile that wins the game.
const WinTile = 2048

// Board is a Size×Size grid of tile values, 0 meaning empty.
// Board[y][x] addresses row y, column x.
type Board [Size][Size]int

// Cell is a board coordinate.
type Cell struct{ X, Y int }

// line returns the board coordinates of line i in the order tiles travel
// when sliding towards dir: the first coordinate is the wall they pile
// against.
func line(dir core.Direction, i int) [Size]Cell {
	var cells [Size]Cell
	for j := range Size {
		switch dir {
		case core.DirLeft:
			cells[j] = Cell{X: j, Y: i}
		case core.DirRight:
			cells[j] = Cell{X: Size - 1 - j, Y: i}
		case core.DirUp:
			cells[j] = Cell{X: i, Y: j}
		default:
			cells[j] = Cell{X: i, Y: Size - 1 - j}
		}
	}
	return cells
}

// compact slides the values towards index 0 and merges equal neighbours.
// A tile produced by a merge does not merge again in the same move.
func compact(in [Size]int) (out [Size]int, gained int) {
	n := 0
	merged := false
	for _, v := range in {
		if v == 0 {
			continue
		}
		if n > 0 && !merged && out[n-1] == v {
			out[n-1] *= 2
			gained += out[n-1]
			merged = true
			continue
		}
		out[n] = v
		n++
		merged = false
	}
	return out, gained
}

// Slide moves every tile towards dir. It returns the new board, the score
// gained from merges, and whether anything moved.
func Slide(b Board, dir core.Direction) (Board, int, bool) {
	if dir == core.DirNone {
		return b, 0, false
	}
	out := b
	total := 0
	for i := range Size {
		cells := line(dir, i)
		var vals [Size]int
		for j, c := range cells {
			vals[j] = b[c.Y][c.X]
		}
		res, gained := compact(vals)
		total += gained
		for j, c := range cells {
			out[c.Y][c.X] = res[j]
		}
	}
	return out, total, out != b
}

// EmptyCells returns the coordinates of all empty cells in row order.
func EmptyCells(b Board) []Cell {
	var cells []Cell
	for y := range Size {
		for x := range Size {
			if b[y][x] == 0 {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// CanMove reports whether any slide would change the board.
func CanMove(b Board) bool {
	for y := range Size {
		for x := range Size {
			v := b[y][x]
			if v == 0 {
				return true
			}
			if x < Size-1 && b[y][x+1] == v {
				return true
			}
			if y < Size-1 && b[y+1][x] == v {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the highest tile on the board.
func MaxTile(b Board) int {
	m := 0
	for _, row := range b {
		for _, v := range row {
			m = core.Max(m, v)
		}
	}
	return m
}

// Empty reports whether the board has no tiles.
func (b Board) Empty() bool {
	return MaxTile(b) == 0
}

// Package breakout implements a brick breaker: bounce the ball off the
// paddle and clear every breakable brick to reach the next wall.
package breakout

import "github.com/vovakirdan/arcade-portal/internal/core"

// BrickType distinguishes how many hits a brick takes.
type BrickType int

const (
	BrickEmpty  BrickType = iota
	BrickNormal           // One hit
	BrickHard             // Two hits
	BrickSolid            // Indestructible
)

// Brick is one cell of a wall.
type Brick struct {
	Type   BrickType
	Points int
	HP     int
}

// Alive reports whether the brick is still standing.
func (b Brick) Alive() bool {
	return b.Type != BrickEmpty && b.HP > 0
}

// Wall is a grid of bricks, [row][col].
type Wall [][]Brick

// ParseWall builds a wall from an ASCII map:
//
//	'#'     normal brick, 10 points
//	'1'-'9' normal brick worth 10 * digit
//	'H'     hard brick, 2 hits, 20 points
//	'X'     solid brick
//
// Anything else is empty. Short rows are padded with empty cells.
func ParseWall(lines []string) Wall {
	cols := 0
	for _, l := range lines {
		cols = core.Max(cols, len(l))
	}
	w := make(Wall, len(lines))
	for r, l := range lines {
		w[r] = make([]Brick, cols)
		for c := 0; c < len(l); c++ {
			switch ch := l[c]; {
			case ch == '#':
				w[r][c] = Brick{Type: BrickNormal, Points: 10, HP: 1}
			case ch >= '1' && ch <= '9':
				w[r][c] = Brick{Type: BrickNormal, Points: int(ch-'0') * 10, HP: 1}
			case ch == 'H':
				w[r][c] = Brick{Type: BrickHard, Points: 20, HP: 2}
			case ch == 'X':
				w[r][c] = Brick{Type: BrickSolid, HP: 1}
			}
		}
	}
	return w
}

// Cols is the width of the widest row.
func (w Wall) Cols() int {
	if len(w) == 0 {
		return 0
	}
	return len(w[0])
}

// Breakable counts the bricks still standing that can be destroyed.
func (w Wall) Breakable() int {
	n := 0
	for _, row := range w {
		for _, b := range row {
			if b.Alive() && b.Type != BrickSolid {
				n++
			}
		}
	}
	return n
}

// walls are played in order, then repeat faster.
var walls = [][]string{
	{
		"####################",
		"####################",
		"####################",
		"####################",
		"####################",
	},
	{
		"55555555555555555555",
		"HHHHHHHHHHHHHHHHHHHH",
		"####################",
		"####################",
		"11111111111111111111",
	},
	{
		"H##H##H##HH##H##H##H",
		"#X#######XX#######X#",
		"##HH##HH####HH##HH##",
		"#######X####X#######",
		"33333333333333333333",
		"22222222222222222222",
	},
}

// wallAt returns a fresh copy of wall i, cycling through the built-ins.
func wallAt(i int) Wall {
	return ParseWall(walls[i%len(walls)])
}

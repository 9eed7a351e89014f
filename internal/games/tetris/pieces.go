package tetris

import (
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Kind identifies a tetromino.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
	kindCount
)

// shapes holds the spawn orientation of each tetromino as cell offsets
// inside its bounding box.
var shapes = [kindCount][]core.Point{
	KindI: {{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}},
	KindO: {{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}},
	KindT: {{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
	KindS: {{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	KindZ: {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}},
	KindJ: {{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
	KindL: {{X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
}

// boxSize is the rotation box edge for each kind.
func (k Kind) boxSize() int {
	switch k {
	case KindI, KindO:
		return 4
	default:
		return 3
	}
}

// Color returns the display color for a kind.
func (k Kind) Color() core.Color {
	switch k {
	case KindI:
		return core.ColorBrightCyan
	case KindO:
		return core.ColorBrightYellow
	case KindT:
		return core.ColorBrightMagenta
	case KindS:
		return core.ColorBrightGreen
	case KindZ:
		return core.ColorBrightRed
	case KindJ:
		return core.ColorBrightBlue
	default:
		return core.ColorOrange
	}
}

// Piece is a tetromino placed on the board.
type Piece struct {
	Kind     Kind
	X, Y     int // Top-left of the rotation box
	Rotation int // 0-3, clockwise quarter turns
}

// Cells returns the board cells the piece covers.
func (p Piece) Cells() [4]core.Point {
	var out [4]core.Point
	n := p.Kind.boxSize() - 1
	for i, c := range shapes[p.Kind] {
		x, y := c.X, c.Y
		for range p.Rotation % 4 {
			x, y = n-y, x
		}
		out[i] = core.Point{X: p.X + x, Y: p.Y + y}
	}
	return out
}

// Rotated returns the piece turned clockwise (dir=1) or counter-clockwise
// (dir=-1).
func (p Piece) Rotated(dir int) Piece {
	p.Rotation = ((p.Rotation+dir)%4 + 4) % 4
	return p
}

// Moved returns the piece shifted by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Bag deals tetrominoes in shuffled sets of seven so droughts stay short.
type Bag struct {
	rng  *rand.Rand
	next []Kind
}

// NewBag creates a bag driven by rng.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{rng: rng}
}

// Peek returns the upcoming kind without taking it.
func (b *Bag) Peek() Kind {
	b.fill()
	return b.next[0]
}

// Take removes and returns the next kind.
func (b *Bag) Take() Kind {
	b.fill()
	k := b.next[0]
	b.next = b.next[1:]
	return k
}

func (b *Bag) fill() {
	if len(b.next) > 0 {
		return
	}
	set := make([]Kind, kindCount)
	for i := range set {
		set[i] = Kind(i)
	}
	b.rng.Shuffle(len(set), func(i, j int) { set[i], set[j] = set[j], set[i] })
	b.next = set
}

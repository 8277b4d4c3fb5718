package geometry

import (
	"fmt"
	"math"
)

// Tolerance is the per-axis distance under which two positions compare Equal.
const Tolerance = 1.0

const epsilon = 1e-9

// Position is a real coordinate in tile space.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Tile identifies a map tile by its floor-rounded coordinates.
type Tile struct {
	X, Y int
}

func Pos(x, y float64) Position { return Position{X: x, Y: y} }

func (p Position) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Equal is the loose comparison used when matching game-reported coordinates:
// both axes must differ by less than Tolerance.
func (p Position) Equal(o Position) bool {
	return math.Abs(p.X-o.X) < Tolerance && math.Abs(p.Y-o.Y) < Tolerance
}

// Exact compares with floating point slack only.
func (p Position) Exact(o Position) bool {
	return math.Abs(p.X-o.X) < epsilon && math.Abs(p.Y-o.Y) < epsilon
}

func (p Position) Tile() Tile {
	return Tile{X: int(math.Floor(p.X + epsilon)), Y: int(math.Floor(p.Y + epsilon))}
}

func (p Position) SameTile(o Position) bool {
	return p.Tile() == o.Tile()
}

func (p Position) Offset(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Translate moves the position by distance tiles in direction d.
func (p Position) Translate(d Direction, distance float64) Position {
	dx, dy := d.Delta()
	return p.Offset(dx*distance, dy*distance)
}

func (p Position) Above() Position {
	return p.Translate(Up, 1)
}

func (p Position) Below() Position {
	return p.Translate(Down, 1)
}

func (p Position) LeftOf() Position {
	return p.Translate(Left, 1)
}

func (p Position) RightOf() Position {
	return p.Translate(Right, 1)
}

// Neighbors returns the four edge-adjacent positions, clockwise from Up.
func (p Position) Neighbors() [4]Position {
	var out [4]Position
	for i, d := range Cardinals {
		out[i] = p.Translate(d, 1)
	}
	return out
}

func (p Position) Distance(o Position) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

func (p Position) Manhattan(o Position) float64 {
	return math.Abs(o.X-p.X) + math.Abs(o.Y-p.Y)
}

// BoundingBox spans both positions regardless of their order.
func (p Position) BoundingBox(o Position) BoundingBox {
	return BoundingBox{
		LeftTop:     Position{X: math.Min(p.X, o.X), Y: math.Min(p.Y, o.Y)},
		RightBottom: Position{X: math.Max(p.X, o.X), Y: math.Max(p.Y, o.Y)},
	}
}

// RoundToHalf snaps each axis to the nearest multiple of 0.5.
func (p Position) RoundToHalf() Position {
	return Position{X: math.Round(p.X*2) / 2, Y: math.Round(p.Y*2) / 2}
}

// TileCenter snaps the position to the centre of the tile that contains it.
func (p Position) TileCenter() Position {
	t := p.Tile()
	return Position{X: float64(t.X) + 0.5, Y: float64(t.Y) + 0.5}
}

// Center of a tile.
func (t Tile) Center() Position {
	return Position{X: float64(t.X) + 0.5, Y: float64(t.Y) + 0.5}
}

func (t Tile) String() string {
	return fmt.Sprintf("[%d, %d]", t.X, t.Y)
}

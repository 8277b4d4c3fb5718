package geometry

import "math"

type BoundingBox struct {
	LeftTop     Position `json:"left_top" yaml:"left_top"`
	RightBottom Position `json:"right_bottom" yaml:"right_bottom"`
}

// BoxAround builds the footprint of a width x height entity centred on c.
func BoxAround(c Position, width, height float64) BoundingBox {
	return BoundingBox{
		LeftTop:     Position{X: c.X - width/2, Y: c.Y - height/2},
		RightBottom: Position{X: c.X + width/2, Y: c.Y + height/2},
	}
}

func (b BoundingBox) Width() float64  { return b.RightBottom.X - b.LeftTop.X }
func (b BoundingBox) Height() float64 { return b.RightBottom.Y - b.LeftTop.Y }

func (b BoundingBox) Center() Position {
	return Position{
		X: (b.LeftTop.X + b.RightBottom.X) / 2,
		Y: (b.LeftTop.Y + b.RightBottom.Y) / 2,
	}
}

// Contains reports whether p lies strictly inside the box.
func (b BoundingBox) Contains(p Position) bool {
	return p.X > b.LeftTop.X+epsilon && p.X < b.RightBottom.X-epsilon &&
		p.Y > b.LeftTop.Y+epsilon && p.Y < b.RightBottom.Y-epsilon
}

// Shrink pulls every edge inwards by d.
func (b BoundingBox) Shrink(d float64) BoundingBox {
	return BoundingBox{
		LeftTop:     b.LeftTop.Offset(d, d),
		RightBottom: b.RightBottom.Offset(-d, -d),
	}
}

// DistanceTo is the distance from p to the closest point of the box; zero inside.
func (b BoundingBox) DistanceTo(p Position) float64 {
	cx := math.Max(b.LeftTop.X, math.Min(p.X, b.RightBottom.X))
	cy := math.Max(b.LeftTop.Y, math.Min(p.Y, b.RightBottom.Y))
	return math.Hypot(p.X-cx, p.Y-cy)
}

// Corners are returned left-top, right-top, right-bottom, left-bottom.
func (b BoundingBox) Corners() [4]Position {
	return [4]Position{
		b.LeftTop,
		{X: b.RightBottom.X, Y: b.LeftTop.Y},
		b.RightBottom,
		{X: b.LeftTop.X, Y: b.RightBottom.Y},
	}
}

// EdgeTiles lists the centres of the tiles just outside one side of the box,
// ordered along the side.
func (b BoundingBox) EdgeTiles(side Direction) []Position {
	var out []Position
	switch side {
	case Up, Down:
		y := b.LeftTop.Y - 0.5
		if side == Down {
			y = b.RightBottom.Y + 0.5
		}
		for x := math.Floor(b.LeftTop.X+epsilon) + 0.5; x < b.RightBottom.X; x++ {
			out = append(out, Position{X: x, Y: y})
		}
	case Left, Right:
		x := b.LeftTop.X - 0.5
		if side == Right {
			x = b.RightBottom.X + 0.5
		}
		for y := math.Floor(b.LeftTop.Y+epsilon) + 0.5; y < b.RightBottom.Y; y++ {
			out = append(out, Position{X: x, Y: y})
		}
	}
	return out
}

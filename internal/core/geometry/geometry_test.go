package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	p := Pos(1.5, 1.5)
	assert.Equal(t, Pos(1.5, 0.5), p.Translate(Up, 1))
	assert.Equal(t, Pos(4.5, 1.5), p.Translate(Right, 3))
	assert.Equal(t, Pos(1.5, 2.5), p.Below())
	assert.Equal(t, Pos(0.5, 1.5), p.LeftOf())
}

func TestDistances(t *testing.T) {
	a, b := Pos(0, 0), Pos(3, 4)
	assert.InDelta(t, 5.0, a.Distance(b), 1e-9)
	assert.InDelta(t, 7.0, a.Manhattan(b), 1e-9)
	assert.InDelta(t, 7.0, b.Manhattan(a), 1e-9)
}

func TestEqualityIsTolerant(t *testing.T) {
	assert.True(t, Pos(1, 1).Equal(Pos(1.9, 0.1)))
	assert.False(t, Pos(1, 1).Equal(Pos(2, 1)))
	assert.False(t, Pos(1, 1).Exact(Pos(1.2, 1)))
}

func TestSameTile(t *testing.T) {
	assert.True(t, Pos(0.1, 0.9).SameTile(Pos(0.5, 0.5)))
	assert.False(t, Pos(-0.5, 0.5).SameTile(Pos(0.5, 0.5)))
	assert.Equal(t, Tile{X: -1, Y: 0}, Pos(-0.5, 0.5).Tile())
}

func TestRounding(t *testing.T) {
	assert.Equal(t, Pos(1.5, 2), Pos(1.4, 2.2).RoundToHalf())
	assert.Equal(t, Pos(1.5, 2.5), Pos(1.1, 2.9).TileCenter())
}

func TestBoundingBox(t *testing.T) {
	b := Pos(3, 4).BoundingBox(Pos(1, 0))
	assert.Equal(t, Pos(1, 0), b.LeftTop)
	assert.Equal(t, Pos(3, 4), b.RightBottom)
	assert.Equal(t, 2.0, b.Width())
	assert.Equal(t, 4.0, b.Height())
	assert.Equal(t, Pos(2, 2), b.Center())
	assert.True(t, b.Contains(Pos(2, 2)))
	assert.False(t, b.Contains(Pos(1, 2)))
}

func TestBoxDistance(t *testing.T) {
	b := BoxAround(Pos(0.5, 0.5), 1, 1)
	assert.Equal(t, 0.0, b.DistanceTo(Pos(0.5, 0.5)))
	assert.InDelta(t, 0.5, b.DistanceTo(Pos(1.5, 0.5)), 1e-9)
}

func TestEdgeTiles(t *testing.T) {
	b := BoxAround(Pos(1.5, 1.5), 3, 3)
	up := b.EdgeTiles(Up)
	require.Len(t, up, 3)
	assert.Equal(t, Pos(0.5, -0.5), up[0])
	assert.Equal(t, Pos(2.5, -0.5), up[2])

	right := b.EdgeTiles(Right)
	require.Len(t, right, 3)
	assert.Equal(t, Pos(3.5, 0.5), right[0])
}

func TestDirection(t *testing.T) {
	assert.Equal(t, Down, Up.Opposite())
	assert.Equal(t, Right, Up.Clockwise())
	assert.Equal(t, Left, Up.CounterClockwise())
	d, err := ParseDirection("east")
	require.NoError(t, err)
	assert.Equal(t, Right, d)
	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestIndexedWildcard(t *testing.T) {
	assert.True(t, Indexed(Pos(0, 0), RoleAny).IsWildcard())
	assert.True(t, Indexed(Pos(0, 0), RoleAll).IsWildcard())
	assert.False(t, Indexed(Pos(0, 0), RoleWater).IsWildcard())
	tagged := TagAll([]Position{Pos(0, 0), Pos(1, 0)}, RoleSteam)
	assert.Equal(t, RoleSteam, tagged[1].Role)
}

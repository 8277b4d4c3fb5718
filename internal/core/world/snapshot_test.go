package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"
)

func chest(x, y float64) *models.Machine {
	return &models.Machine{Base: models.Base{Name: "wooden-chest", Position: geometry.Pos(x, y), Category: models.CategoryChest}}
}

func TestBlockingIsStrictlyInsideRadius(t *testing.T) {
	s := NewSnapshot(chest(0.5, 0.5))

	assert.True(t, IsBlocked(s, geometry.Pos(0.5, 0.5)))
	assert.True(t, IsBlocked(s, geometry.Pos(1.2, 0.5)))
	// the neighbouring tile centre touches the footprint edge only
	assert.False(t, IsBlocked(s, geometry.Pos(1.5, 0.5)))
	assert.False(t, IsBlocked(s, geometry.Pos(-0.5, -0.5)))
}

func TestLargeFootprint(t *testing.T) {
	plant := &models.MultiFluidHandler{Base: models.Base{Name: "chemical-plant", Position: geometry.Pos(1.5, 1.5), TileWidth: 3, TileHeight: 3}}
	s := NewSnapshot(plant)

	assert.True(t, IsBlocked(s, geometry.Pos(2.5, 2.5)))
	assert.True(t, IsBlocked(s, geometry.Pos(0.5, 2.5)))
	assert.False(t, IsBlocked(s, geometry.Pos(3.5, 1.5)))
}

func TestKindFilter(t *testing.T) {
	pipe := &models.Pipe{Base: models.Base{Name: "pipe", Position: geometry.Pos(0.5, 0.5)}}
	s := NewSnapshot(pipe, chest(0.5, 1.5))

	found := s.GetEntities(models.Kinds(models.KindPipe), geometry.Pos(0.5, 1), 2)
	require.Len(t, found, 1)
	assert.Same(t, pipe, found[0])
	assert.Len(t, s.GetEntities(nil, geometry.Pos(0.5, 1), 2), 2)
}

func TestInsertionOrderIsStable(t *testing.T) {
	a, b, c := chest(2.5, 0.5), chest(0.5, 0.5), chest(1.5, 0.5)
	s := NewSnapshot(a, b, c)

	got := s.GetEntities(nil, geometry.Pos(1.5, 0.5), 3)
	assert.Equal(t, []models.Entity{a, b, c}, got)
	assert.Equal(t, []models.Entity{a, b, c}, s.Entities())
}

func TestRemove(t *testing.T) {
	a := chest(0.5, 0.5)
	s := NewSnapshot(a)
	s.Remove(a)
	assert.Equal(t, 0, s.Len())
	assert.False(t, IsBlocked(s, geometry.Pos(0.5, 0.5)))
}

func TestGroupsAreAddedMemberwise(t *testing.T) {
	g := &models.PipeGroup{Pipes: []*models.Pipe{
		{Base: models.Base{Name: "pipe", Position: geometry.Pos(0.5, 0.5)}},
		{Base: models.Base{Name: "pipe", Position: geometry.Pos(1.5, 0.5)}},
	}}
	s := NewSnapshot(g)
	assert.Equal(t, 2, s.Len())
}

func TestRefresh(t *testing.T) {
	live := &models.Boiler{Base: models.Base{Name: "boiler", Position: geometry.Pos(2, 2.5), Status: models.StatusWorking}}
	s := NewSnapshot(live)

	stale := &models.Boiler{Base: models.Base{Name: "boiler", Position: geometry.Pos(2, 2.5)}}
	assert.Same(t, live, s.Refresh(stale))

	elsewhere := &models.Boiler{Base: models.Base{Name: "boiler", Position: geometry.Pos(9, 9)}}
	assert.Same(t, elsewhere, s.Refresh(elsewhere))
}

func TestBlockingEntitiesIgnoresOwnTiles(t *testing.T) {
	pipe := &models.Pipe{Base: models.Base{Name: "pipe", Position: geometry.Pos(0.5, 0.5)}}
	s := NewSnapshot(pipe)

	assert.True(t, IsBlocked(s, geometry.Pos(0.5, 0.5)))
	assert.False(t, IsBlockedExcept(s, geometry.Pos(0.5, 0.5), geometry.Pos(0.5, 0.5)))
	assert.Equal(t, []string{"pipe"}, Names(BlockingEntities(s, geometry.Pos(0.5, 0.5))))
	assert.False(t, IsBlocked(Empty, geometry.Pos(0, 0)))
}

func TestSnapshotIDsDiffer(t *testing.T) {
	assert.NotEqual(t, NewSnapshot().ID(), NewSnapshot().ID())
}

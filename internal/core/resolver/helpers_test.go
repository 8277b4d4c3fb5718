package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/world"
)

var p = geometry.Pos

func chestAt(x, y float64) *models.Machine {
	return &models.Machine{Base: models.Base{Name: "wooden-chest", Position: p(x, y), Category: models.CategoryChest}}
}

func assemblerAt(x, y float64) *models.Machine {
	return &models.Machine{Base: models.Base{
		Name: "assembling-machine-1", Position: p(x, y), TileWidth: 3, TileHeight: 3, Category: models.CategoryAssembler,
	}}
}

// boilerAt builds a 3x2 boiler facing up with water inlets on the short sides.
func boilerAt(x, y float64) *models.Boiler {
	return &models.Boiler{
		Base:             models.Base{Name: "boiler", Position: p(x, y), TileWidth: 3, TileHeight: 2},
		ConnectionPoints: []geometry.Position{p(x-1.5, y+0.5), p(x+1.5, y+0.5)},
		SteamOutputPoint: p(x, y-1),
	}
}

func assertOrdered(t *testing.T, candidates []Candidate) {
	t.Helper()
	for i := 1; i < len(candidates); i++ {
		assert.LessOrEqual(t, candidates[i-1].Manhattan(), candidates[i].Manhattan(), "candidate %d out of order", i)
	}
}

func assertUnblocked(t *testing.T, q world.Querier, positions ...geometry.Position) {
	t.Helper()
	for _, pos := range positions {
		assert.False(t, world.IsBlocked(q, pos), "position %s is occupied", pos)
	}
}

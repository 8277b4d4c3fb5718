package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/world"
)

func TestFluidOffshorePumpToBoiler(t *testing.T) {
	pump := &models.OffshorePump{
		Base:             models.Base{Name: "offshore-pump", Position: p(0, 0), Direction: geometry.Right},
		ConnectionPoints: []geometry.Position{p(0.5, 0)},
	}
	boiler := boilerAt(5, 0)
	snapshot := world.NewSnapshot(pump, boiler)

	got, err := NewFluidResolver(snapshot, nil, DefaultOptions()).Resolve(Of(pump), Of(boiler))
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, geometry.RoleWater, first.SourceRole)
	assert.Equal(t, geometry.RoleWater, first.TargetRole)
	assert.Equal(t, p(1, 0), first.Source)
	assert.Equal(t, p(3, 0.5), first.Target)
	assert.Equal(t, p(7, 0.5), got[1].Target)
	assertOrdered(t, got)
}

func TestFluidBoilerToBoilerOnlyWater(t *testing.T) {
	a, b := boilerAt(0, 0), boilerAt(6, 0)
	snapshot := world.NewSnapshot(a, b)

	got, err := NewFluidResolver(snapshot, nil, DefaultOptions()).Resolve(Of(a), Of(b))
	require.NoError(t, err)
	require.Len(t, got, 4)
	for _, c := range got {
		assert.Equal(t, geometry.RoleWater, c.SourceRole)
		assert.Equal(t, geometry.RoleWater, c.TargetRole)
	}
	assert.Equal(t, Candidate{Source: p(2, 0.5), Target: p(4, 0.5), SourceRole: "water", TargetRole: "water"}, got[0])
}

func TestFluidBoilerToPumpUsesWaterSide(t *testing.T) {
	boiler := boilerAt(0, 0)
	pump := &models.OffshorePump{
		Base:             models.Base{Name: "offshore-pump", Position: p(-6, 0.5)},
		ConnectionPoints: []geometry.Position{p(-5.5, 0.5)},
	}
	got, err := NewFluidResolver(world.NewSnapshot(boiler, pump), nil, DefaultOptions()).Resolve(Of(boiler), Of(pump))
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, c := range got {
		assert.Equal(t, geometry.RoleWater, c.SourceRole)
		assert.Equal(t, geometry.RoleAny, c.TargetRole)
	}
}

func chemicalPlant(recipe string) *models.MultiFluidHandler {
	return &models.MultiFluidHandler{
		Base:   models.Base{Name: "chemical-plant", Position: p(10.5, 0.5), TileWidth: 3, TileHeight: 3},
		Recipe: recipe,
		InputConnectionPoints: []geometry.IndexedPosition{
			geometry.Indexed(p(9.5, -1), "water"),
			geometry.Indexed(p(11.5, -1), "petroleum-gas"),
		},
		OutputConnectionPoints: []geometry.IndexedPosition{
			geometry.Indexed(p(10.5, 2), "sulfuric-acid"),
		},
	}
}

func TestFluidMultiFluidTargetNeedsRecipe(t *testing.T) {
	jack := &models.PumpJack{Base: models.Base{Name: "pumpjack", Position: p(0.5, 0.5)}, ConnectionPoints: []geometry.Position{p(1, 0.5)}}

	_, err := NewFluidResolver(nil, nil, DefaultOptions()).Resolve(Of(jack), Of(chemicalPlant("")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRecipe))
	assert.Equal(t, ErrorCodeMissingRecipe, GetErrorCode(err))
	assert.Contains(t, err.Error(), "no recipe")
}

func TestFluidMultiFluidTargetRejectsUnneededFluid(t *testing.T) {
	jack := &models.PumpJack{Base: models.Base{Name: "pumpjack", Position: p(0.5, 0.5)}, ConnectionPoints: []geometry.Position{p(1, 0.5)}}

	_, err := NewFluidResolver(nil, nil, DefaultOptions()).Resolve(Of(jack), Of(chemicalPlant("sulfur")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompatibleFluid)
	assert.Contains(t, err.Error(), "crude-oil")
	assert.Contains(t, err.Error(), "petroleum-gas")
}

func TestFluidMultiFluidTargetMatchesRole(t *testing.T) {
	tank := &models.FluidHandler{
		Base:             models.Base{Name: "storage-tank", Position: p(0.5, 0.5)},
		ConnectionPoints: []geometry.Position{p(1, 0.5)},
		FluidBox:         models.NewFluidBox(models.Fluid{Name: "petroleum-gas", Amount: 100}),
	}
	plant := chemicalPlant("sulfur")

	got, err := NewFluidResolver(world.NewSnapshot(tank, plant), nil, DefaultOptions()).Resolve(Of(tank), Of(plant))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "petroleum-gas", got[0].TargetRole)
	assert.Equal(t, p(11.5, -1.5), got[0].Target)
	assert.Equal(t, p(1.5, 0.5), got[0].Source)
}

func TestFluidRoleMismatchListsBothSets(t *testing.T) {
	engine := &models.Generator{Base: models.Base{Name: "steam-engine", Position: p(0.5, 0.5)}, ConnectionPoints: []geometry.Position{p(1, 0.5)}}
	jack := &models.PumpJack{Base: models.Base{Name: "pumpjack", Position: p(8.5, 0.5)}, ConnectionPoints: []geometry.Position{p(8, 0.5)}}

	_, err := NewFluidResolver(nil, nil, DefaultOptions()).Resolve(Of(engine), Of(jack))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoValidConnection)
	assert.Contains(t, err.Error(), "no fluid in common")

	var resolveErr *Error
	require.True(t, errors.As(err, &resolveErr))
	assert.Equal(t, []string{"steam"}, resolveErr.Context["source_roles"])
	assert.Equal(t, []string{"crude-oil"}, resolveErr.Context["target_roles"])
}

func TestFluidSkipsBlockedPoints(t *testing.T) {
	tank := &models.FluidHandler{
		Base:             models.Base{Name: "storage-tank", Position: p(5.5, 0.5)},
		ConnectionPoints: []geometry.Position{p(5, 0.5), p(6, 0.5)},
		FluidBox:         models.NewFluidBox(models.Fluid{Name: "water", Amount: 10}),
	}
	snapshot := world.NewSnapshot(tank, chestAt(4.5, 0.5))

	got, err := NewFluidResolver(snapshot, nil, DefaultOptions()).Resolve(At(p(0.5, 0.5)), Of(tank))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, p(6.5, 0.5), got[0].Target)
	assert.Equal(t, geometry.RoleAll, got[0].SourceRole)
	for _, c := range got {
		assertUnblocked(t, snapshot, c.Source, c.Target)
	}
}

func TestFluidEverythingBlocked(t *testing.T) {
	tank := &models.FluidHandler{
		Base:             models.Base{Name: "storage-tank", Position: p(5.5, 0.5)},
		ConnectionPoints: []geometry.Position{p(5, 0.5)},
	}
	snapshot := world.NewSnapshot(tank, chestAt(4.5, 0.5))

	_, err := NewFluidResolver(snapshot, nil, DefaultOptions()).Resolve(At(p(0.5, 0.5)), Of(tank))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoValidConnection)
	assert.Contains(t, err.Error(), "blocking")
}

func TestFluidFromPipe(t *testing.T) {
	pipe := &models.Pipe{Base: models.Base{Name: "pipe", Position: p(0.5, 0.5)}, Fluid: models.Fluid{Name: "water", Amount: 50}}
	snapshot := world.NewSnapshot(pipe)

	got, err := NewFluidResolver(snapshot, nil, DefaultOptions()).Resolve(Of(pipe), At(p(3.5, 0.5)))
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, p(1.5, 0.5), got[0].Source)
	assert.Equal(t, p(0.5, 0.5), got[1].Source)
	assert.Equal(t, []geometry.Position{p(0.5, -0.5), p(0.5, 1.5), p(-0.5, 0.5)},
		[]geometry.Position{got[2].Source, got[3].Source, got[4].Source})
	for _, c := range got {
		assert.Equal(t, "water", c.SourceRole)
	}
	assertOrdered(t, got)
}

func TestFluidPipeGroupSkipsUndergroundLinks(t *testing.T) {
	group := &models.PipeGroup{
		Base: models.Base{Name: "pipe-group", Position: p(0.5, 0.5)},
		ID:   3,
		Pipes: []*models.Pipe{
			{Base: models.Base{Name: "pipe", Position: p(0.5, 0.5)}},
			{Base: models.Base{Name: models.UndergroundPipeName, Position: p(1.5, 0.5)}},
			{Base: models.Base{Name: models.UndergroundPipeName, Position: p(4.5, 0.5)}},
			{Base: models.Base{Name: "pipe", Position: p(5.5, 0.5)}},
		},
	}
	snapshot := world.NewSnapshot(group)

	got, err := NewFluidResolver(snapshot, nil, DefaultOptions()).Resolve(Of(group), At(p(3, 10.5)))
	require.NoError(t, err)
	assert.Len(t, got, 8)
	for _, c := range got {
		assert.NotEqual(t, p(1.5, 0.5), c.Source)
		assert.NotEqual(t, p(4.5, 0.5), c.Source)
	}
	assertOrdered(t, got)
}

func TestFluidCompatibilityProperty(t *testing.T) {
	pump := &models.OffshorePump{Base: models.Base{Name: "offshore-pump", Position: p(0, 0)}, ConnectionPoints: []geometry.Position{p(0.5, 0), p(0, 0.5)}}
	boiler := boilerAt(5, 4)
	engine := &models.Generator{
		Base:             models.Base{Name: "steam-engine", Position: p(5, 10), TileWidth: 3, TileHeight: 5},
		ConnectionPoints: []geometry.Position{p(5, 7.5), p(5, 12.5)},
	}
	snapshot := world.NewSnapshot(pump, boiler, engine)
	r := NewFluidResolver(snapshot, nil, DefaultOptions())

	pairs := [][2]models.Entity{{pump, boiler}, {boiler, engine}, {pump, engine}}
	for _, pair := range pairs {
		got, err := r.Resolve(Of(pair[0]), Of(pair[1]))
		if err != nil {
			assert.ErrorIs(t, err, ErrNoValidConnection)
			continue
		}
		assertOrdered(t, got)
		for _, c := range got {
			if c.TargetRole != geometry.RoleAny && c.TargetRole != geometry.RoleAll {
				assert.Equal(t, c.SourceRole, c.TargetRole)
			}
		}
	}
}

func TestAdjustConnectionPoint(t *testing.T) {
	e := &models.Generic{Base: models.Base{Position: p(1.5, 1.5), TileWidth: 3, TileHeight: 3}}

	tests := []struct {
		name string
		in   geometry.Position
		want geometry.Position
	}{
		{"left edge", p(0, 1.5), p(-0.5, 1.5)},
		{"right edge", p(3, 0.5), p(3.5, 0.5)},
		{"top edge", p(2.5, 0), p(2.5, -0.5)},
		{"bottom edge", p(0.5, 3), p(0.5, 3.5)},
		{"inside near bottom", p(1.5, 2.5), p(1.5, 3.5)},
		{"already outside", p(4.5, 1.5), p(4.5, 1.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adjustConnectionPoint(e, tt.in))
		})
	}
}

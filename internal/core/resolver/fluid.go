package resolver

import (
	"math"
	"slices"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/observability/log"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/world"
	"github.com/spikerwork/factorio-learning-environment-sub001/pkg/sequence"
)

var _ Resolver = (*FluidResolver)(nil)

// FluidResolver finds pipe endpoints between fluid-bearing entities and
// only pairs connection points whose fluids agree.
type FluidResolver struct {
	base
}

func NewFluidResolver(q world.Querier, logger log.Log, opts Options) *FluidResolver {
	return &FluidResolver{base: newBase(q, logger, opts, "fluid_resolver")}
}

func (r *FluidResolver) Resolve(source, target Endpoint) ([]Candidate, error) {
	source, target = r.refresh(source), r.refresh(target)

	sourcePoints := fluidSourcePositions(source)
	targetPoints := fluidTargetPositions(target)
	sourcePoints, targetPoints = dealWithEdgeCases(source, target, sourcePoints, targetPoints)

	r.logger.Debug("fluid connection points",
		log.String("source", source.String()),
		log.String("target", target.String()),
		logPositions("source_points", sourcePoints),
		logPositions("target_points", targetPoints),
	)

	if plant, ok := target.entity.(*models.MultiFluidHandler); ok {
		if err := checkRecipeInputs(plant, sourcePoints); err != nil {
			return nil, err
		}
	}

	sourceSelf, targetSelf := selfTiles(source), selfTiles(target)
	sourceBlocked := make(map[geometry.Position]bool, len(sourcePoints))
	isSourceBlocked := func(p geometry.Position) bool {
		b, seen := sourceBlocked[p]
		if !seen {
			b = r.blocked(p, sourceSelf...)
			sourceBlocked[p] = b
		}
		return b
	}

	var out []Candidate
	for _, tp := range targetPoints {
		if r.blocked(tp.Position, targetSelf...) {
			r.logger.Debug("target point blocked", log.Stringer("position", tp.Position))
			continue
		}
		for _, sp := range sourcePoints {
			if !rolesCompatible(sp.Role, tp.Role) || isSourceBlocked(sp.Position) {
				continue
			}
			out = append(out, Candidate{
				Source:     sp.Position,
				Target:     tp.Position,
				SourceRole: sp.Role,
				TargetRole: tp.Role,
			})
		}
	}

	if len(out) == 0 {
		return nil, noFluidConnection(source, target, sourcePoints, targetPoints)
	}
	return sortCandidates(out), nil
}

// rolesCompatible: a wildcard target accepts anything, a typed target needs
// the same fluid or a source that connects to anything.
func rolesCompatible(sourceRole, targetRole string) bool {
	if targetRole == geometry.RoleAny || targetRole == geometry.RoleAll {
		return true
	}
	return sourceRole == targetRole || sourceRole == geometry.RoleAll
}

func fluidSourcePositions(ep Endpoint) []geometry.IndexedPosition {
	switch e := ep.entity.(type) {
	case nil:
		return []geometry.IndexedPosition{geometry.Indexed(ep.position, geometry.RoleAll)}
	case *models.OffshorePump:
		return tagAdjusted(e, e.ConnectionPoints, geometry.RoleWater)
	case *models.Boiler:
		out := tagAdjusted(e, []geometry.Position{e.SteamOutputPoint}, geometry.RoleSteam)
		return append(out, tagAdjusted(e, e.ConnectionPoints, geometry.RoleWater)...)
	case *models.Generator:
		return tagAdjusted(e, e.ConnectionPoints, geometry.RoleSteam)
	case *models.MultiFluidHandler:
		return adjustIndexed(e, e.OutputConnectionPoints)
	case *models.PumpJack:
		return tagAdjusted(e, e.ConnectionPoints, geometry.RoleCrudeOil)
	case *models.FluidHandler:
		return tagAdjusted(e, e.ConnectionPoints, e.FluidBox.PrimaryName())
	case *models.Pipe:
		return pipePositions(e, nil)
	case *models.PipeGroup:
		return pipeGroupPositions(e)
	case *models.Generic, *models.Machine, *models.TransportBelt, *models.BeltGroup,
		*models.Inserter, *models.MiningDrill, *models.ElectricityPole, *models.ElectricityGroup:
		return []geometry.IndexedPosition{geometry.Indexed(e.Core().Position, geometry.RoleAny)}
	default:
		return []geometry.IndexedPosition{geometry.Indexed(ep.Position(), geometry.RoleAny)}
	}
}

func fluidTargetPositions(ep Endpoint) []geometry.IndexedPosition {
	switch e := ep.entity.(type) {
	case nil:
		return []geometry.IndexedPosition{geometry.Indexed(ep.position, geometry.RoleAll)}
	case *models.OffshorePump:
		// pumps only emit; any pipe may attach to them
		return tagAdjusted(e, e.ConnectionPoints, geometry.RoleAny)
	case *models.Boiler:
		out := tagAdjusted(e, e.ConnectionPoints, geometry.RoleWater)
		return append(out, tagAdjusted(e, []geometry.Position{e.SteamOutputPoint}, geometry.RoleSteam)...)
	case *models.Generator:
		return tagAdjusted(e, e.ConnectionPoints, geometry.RoleSteam)
	case *models.MultiFluidHandler:
		return adjustIndexed(e, e.InputConnectionPoints)
	case *models.PumpJack:
		return tagAdjusted(e, e.ConnectionPoints, geometry.RoleCrudeOil)
	case *models.FluidHandler:
		return tagAdjusted(e, e.ConnectionPoints, e.FluidBox.PrimaryName())
	case *models.Pipe:
		return pipePositions(e, nil)
	case *models.PipeGroup:
		return pipeGroupPositions(e)
	case *models.Generic, *models.Machine, *models.TransportBelt, *models.BeltGroup,
		*models.Inserter, *models.MiningDrill, *models.ElectricityPole, *models.ElectricityGroup:
		return []geometry.IndexedPosition{geometry.Indexed(e.Core().Position, geometry.RoleAny)}
	default:
		return []geometry.IndexedPosition{geometry.Indexed(ep.Position(), geometry.RoleAny)}
	}
}

// pipePositions offers the pipe tile and its four neighbours, skipping
// neighbours already linked through an underground pair.
func pipePositions(p *models.Pipe, underground []geometry.Position) []geometry.IndexedPosition {
	role := p.Fluid.Name
	out := make([]geometry.IndexedPosition, 0, 5)
	out = append(out, geometry.Indexed(p.Position, role))
	for _, n := range p.Position.Neighbors() {
		if slices.ContainsFunc(underground, n.SameTile) {
			continue
		}
		out = append(out, geometry.Indexed(n, role))
	}
	return out
}

func pipeGroupPositions(g *models.PipeGroup) []geometry.IndexedPosition {
	underground := g.UndergroundPositions()
	surface := sequence.From(g.Pipes).Filter(func(p *models.Pipe) bool { return !p.Underground() })
	points := sequence.FlatMap(surface, func(p *models.Pipe) []geometry.IndexedPosition {
		return pipePositions(p, underground)
	})
	return sequence.DistinctBy(points, func(ip geometry.IndexedPosition) geometry.IndexedPosition { return ip }).Collect()
}

// dealWithEdgeCases keeps steam from looping boiler to boiler and stops a
// boiler offering its steam output to a pump.
func dealWithEdgeCases(source, target Endpoint, sourcePoints, targetPoints []geometry.IndexedPosition) ([]geometry.IndexedPosition, []geometry.IndexedPosition) {
	if _, sourceIsBoiler := source.entity.(*models.Boiler); !sourceIsBoiler {
		return sourcePoints, targetPoints
	}
	switch target.entity.(type) {
	case *models.Boiler:
		return onlyRole(sourcePoints, geometry.RoleWater), onlyRole(targetPoints, geometry.RoleWater)
	case *models.OffshorePump:
		return onlyRole(sourcePoints, geometry.RoleWater), targetPoints
	}
	return sourcePoints, targetPoints
}

func onlyRole(points []geometry.IndexedPosition, role string) []geometry.IndexedPosition {
	return sequence.From(points).Filter(func(p geometry.IndexedPosition) bool { return p.Role == role }).Collect()
}

// checkRecipeInputs fails fast when a multi-fluid target cannot accept anything the source offers.
func checkRecipeInputs(plant *models.MultiFluidHandler, sourcePoints []geometry.IndexedPosition) error {
	if plant.Recipe == "" {
		return NewError(ErrorCodeMissingRecipe,
			"%s at %s has no recipe set; set a recipe before connecting fluids to it",
			plant.Name, plant.Position).
			WithContext("target", plant.Name)
	}

	required := plant.InputRoles()
	offered := roles(sourcePoints)
	if slices.Contains(offered, geometry.RoleAll) || slices.Contains(required, geometry.RoleAny) {
		return nil
	}
	for _, role := range offered {
		if slices.Contains(required, role) {
			return nil
		}
	}
	return NewError(ErrorCodeIncompatibleFluid,
		"%s with recipe %s does not take %v; it requires %v",
		plant.Name, plant.Recipe, offered, required).
		WithContext("recipe", plant.Recipe).
		WithContext("source_roles", offered).
		WithContext("target_roles", required)
}

func noFluidConnection(source, target Endpoint, sourcePoints, targetPoints []geometry.IndexedPosition) error {
	sourceRoles, targetRoles := roles(sourcePoints), roles(targetPoints)

	anyCompatible := false
	for _, sp := range sourcePoints {
		for _, tp := range targetPoints {
			if rolesCompatible(sp.Role, tp.Role) {
				anyCompatible = true
				break
			}
		}
	}

	if !anyCompatible && len(sourcePoints) > 0 && len(targetPoints) > 0 {
		return NewError(ErrorCodeNoValidConnection,
			"no fluid in common: %s holds %v but %s expects %v",
			source, sourceRoles, target, targetRoles).
			WithContext("source_roles", sourceRoles).
			WithContext("target_roles", targetRoles)
	}
	return NewError(ErrorCodeNoValidConnection,
		"no valid connection between %s and %s, check for entities blocking the connection points",
		source, target).
		WithContext("source_roles", sourceRoles).
		WithContext("target_roles", targetRoles)
}

func roles(points []geometry.IndexedPosition) []string {
	return sequence.DistinctBy(
		sequence.Map(sequence.From(points), func(p geometry.IndexedPosition) string { return p.Role }),
		func(s string) string { return s },
	).Collect()
}

func tagAdjusted(e models.Entity, points []geometry.Position, role string) []geometry.IndexedPosition {
	out := make([]geometry.IndexedPosition, len(points))
	for i, p := range points {
		out[i] = geometry.Indexed(adjustConnectionPoint(e, p), role)
	}
	return out
}

func adjustIndexed(e models.Entity, points []geometry.IndexedPosition) []geometry.IndexedPosition {
	out := make([]geometry.IndexedPosition, len(points))
	for i, p := range points {
		out[i] = geometry.Indexed(adjustConnectionPoint(e, p.Position), p.Role)
	}
	return out
}

// adjustConnectionPoint moves a point reported on the footprint boundary half
// a tile outwards, and a point reported inside the footprint onto the nearest
// tile just outside it, so the connector never lands on the entity itself.
func adjustConnectionPoint(e models.Entity, p geometry.Position) geometry.Position {
	box := e.Core().Footprint()
	const eps = 1e-6

	x, y := p.X, p.Y
	switch {
	case math.Abs(x-box.LeftTop.X) < eps:
		x -= 0.5
	case math.Abs(x-box.RightBottom.X) < eps:
		x += 0.5
	}
	switch {
	case math.Abs(y-box.LeftTop.Y) < eps:
		y -= 0.5
	case math.Abs(y-box.RightBottom.Y) < eps:
		y += 0.5
	}

	q := geometry.Pos(x, y)
	if !box.Contains(q) {
		return q
	}

	toLeft, toRight := q.X-box.LeftTop.X, box.RightBottom.X-q.X
	toTop, toBottom := q.Y-box.LeftTop.Y, box.RightBottom.Y-q.Y
	nearest := math.Min(math.Min(toLeft, toRight), math.Min(toTop, toBottom))
	switch nearest {
	case toLeft:
		q.X = box.LeftTop.X - 0.5
	case toRight:
		q.X = box.RightBottom.X + 0.5
	case toTop:
		q.Y = box.LeftTop.Y - 0.5
	default:
		q.Y = box.RightBottom.Y + 0.5
	}
	return q
}

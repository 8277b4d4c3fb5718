package resolver

import (
	"slices"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/observability/log"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/world"
)

var _ Resolver = (*PowerResolver)(nil)

// PowerResolver pairs poles (or a whole electric network) with the electrical
// terminal of a target.
type PowerResolver struct {
	base
}

func NewPowerResolver(q world.Querier, logger log.Log, opts Options) *PowerResolver {
	return &PowerResolver{base: newBase(q, logger, opts, "power_resolver")}
}

func (r *PowerResolver) Resolve(source, target Endpoint) ([]Candidate, error) {
	source, target = r.refresh(source), r.refresh(target)

	if r.opts.PowerSameNetworkShortCircuit {
		if id, same := sameNetwork(source, target); same {
			return nil, NewError(ErrorCodeAlreadyConnected,
				"%s and %s are already on electric network %d", source, target, id).
				WithContext("electrical_id", id)
		}
	}

	var out []Candidate
	if group, ok := source.entity.(*models.ElectricityGroup); ok {
		if terminalEntity(target) {
			points := r.edgePoints(target.entity)
			if len(points) == 0 {
				return nil, r.noEdgePoints(source, target)
			}
			for _, pole := range group.Poles {
				from := pole.Position.RoundToHalf()
				out = append(out, Candidate{Source: from, Target: nearest(from, points)})
			}
		} else {
			for _, pole := range group.Poles {
				from := pole.Position.RoundToHalf()
				out = append(out, Candidate{Source: from, Target: targetAnchor(target, from)})
			}
		}
	} else {
		from := source.Position().RoundToHalf()
		if terminalEntity(target) {
			points := r.edgePoints(target.entity)
			if len(points) == 0 {
				return nil, r.noEdgePoints(source, target)
			}
			out = append(out, Candidate{Source: from, Target: nearest(from, points)})
		} else {
			out = append(out, Candidate{Source: from, Target: targetAnchor(target, from)})
		}
	}

	if len(out) == 0 {
		return nil, NewError(ErrorCodeNoValidConnection, "no poles to connect from %s to %s", source, target)
	}

	r.logger.Debug("power candidates",
		log.String("source", source.String()),
		log.String("target", target.String()),
		log.Int("count", len(out)),
	)
	return sortCandidates(out), nil
}

// terminalEntity reports whether the target is an entity that needs a pole
// beside its footprint rather than one on a point.
func terminalEntity(ep Endpoint) bool {
	switch ep.entity.(type) {
	case nil, *models.ElectricityPole, *models.ElectricityGroup:
		return false
	}
	return true
}

// targetAnchor is the rounded point to connect to when the target is a
// position, a pole, or the pole of a network closest to from.
func targetAnchor(ep Endpoint, from geometry.Position) geometry.Position {
	if group, ok := ep.entity.(*models.ElectricityGroup); ok && len(group.Poles) > 0 {
		points := make([]geometry.Position, len(group.Poles))
		for i, p := range group.Poles {
			points[i] = p.Position
		}
		return nearest(from, points).RoundToHalf()
	}
	return ep.Position().RoundToHalf()
}

// edgePoints lists free tiles along each side of the footprint, at most
// MaxEdgePointsPerSide per side, minus tiles reserved for fluid connections.
func (r *PowerResolver) edgePoints(e models.Entity) []geometry.Position {
	box := e.Core().Footprint()
	reserved := reservedFluidTiles(e)

	var out []geometry.Position
	for _, side := range geometry.Cardinals {
		for _, p := range spread(box.EdgeTiles(side), r.opts.MaxEdgePointsPerSide) {
			if slices.ContainsFunc(reserved, p.SameTile) {
				continue
			}
			if r.blocked(p) {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

func reservedFluidTiles(e models.Entity) []geometry.Position {
	ported, ok := e.(models.FluidPorted)
	if !ok {
		return nil
	}
	points := ported.FluidConnectionPoints()
	out := make([]geometry.Position, len(points))
	for i, p := range points {
		out[i] = adjustConnectionPoint(e, p)
	}
	return out
}

// spread picks at most n evenly spaced elements, always keeping both ends.
func spread(points []geometry.Position, n int) []geometry.Position {
	if len(points) <= n {
		return points
	}
	if n == 1 {
		return points[len(points)/2 : len(points)/2+1]
	}
	out := make([]geometry.Position, 0, n)
	last := len(points) - 1
	for i := 0; i < n; i++ {
		idx := (i*last + (n-1)/2) / (n - 1)
		out = append(out, points[idx])
	}
	return out
}

func nearest(from geometry.Position, points []geometry.Position) geometry.Position {
	best := points[0]
	bestDistance := from.Distance(best)
	for _, p := range points[1:] {
		if d := from.Distance(p); d < bestDistance {
			best, bestDistance = p, d
		}
	}
	return best
}

func sameNetwork(source, target Endpoint) (int, bool) {
	a, b := networkID(source), networkID(target)
	return a, a != 0 && a == b
}

func networkID(ep Endpoint) int {
	switch e := ep.entity.(type) {
	case *models.ElectricityGroup:
		return e.ID
	case nil:
		return 0
	default:
		return e.Core().ElectricalID
	}
}

func (r *PowerResolver) noEdgePoints(source, target Endpoint) error {
	r.logger.Debug("no free edge points", log.String("target", target.String()))
	return NewError(ErrorCodeNoValidConnection,
		"no free tile beside %s to place a pole for %s; clear the area around it", target, source)
}

package resolver

import (
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/observability/log"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/world"
)

// Resolver computes where a connector may attach between two endpoints.
// Results are ordered by ascending Manhattan distance; ties keep discovery order.
type Resolver interface {
	Resolve(source, target Endpoint) ([]Candidate, error)
}

// Options tune all resolvers.
type Options struct {
	// BlockingRadius is the occupancy search radius around a candidate point.
	BlockingRadius float64
	// MaxEdgePointsPerSide caps the power attachment points offered per side of a footprint.
	MaxEdgePointsPerSide int
	// PowerSameNetworkShortCircuit makes the power resolver refuse endpoints that
	// already share an electric network.
	PowerSameNetworkShortCircuit bool
}

func DefaultOptions() Options {
	return Options{
		BlockingRadius:       world.BlockingRadius,
		MaxEdgePointsPerSide: 4,
	}
}

func (o Options) normalized() Options {
	if o.BlockingRadius <= 0 {
		o.BlockingRadius = world.BlockingRadius
	}
	if o.MaxEdgePointsPerSide <= 0 {
		o.MaxEdgePointsPerSide = 4
	}
	return o
}

type base struct {
	world  world.Querier
	logger log.Log
	opts   Options
}

func newBase(q world.Querier, logger log.Log, opts Options, name string) base {
	if q == nil {
		q = world.Empty
	}
	return base{
		world:  q,
		logger: log.OrNop(logger).Named(name),
		opts:   opts.normalized(),
	}
}

// refresh swaps a stale entity snapshot for the live one when the querier can provide it.
func (b *base) refresh(ep Endpoint) Endpoint {
	e, ok := ep.Entity()
	if !ok {
		return ep
	}
	if _, isGroup := e.(models.Group); isGroup {
		return ep
	}
	if r, can := b.world.(world.Refresher); can {
		return Of(r.Refresh(e))
	}
	return ep
}

func (b *base) occupants(p geometry.Position, self ...geometry.Position) []models.Entity {
	return world.OccupantsWithin(b.world, p, b.opts.BlockingRadius, self...)
}

func (b *base) blocked(p geometry.Position, self ...geometry.Position) bool {
	return len(b.occupants(p, self...)) > 0
}

// selfTiles are the tiles an endpoint itself covers when its connection points
// may legitimately sit on top of it (pipes and pipe groups).
func selfTiles(ep Endpoint) []geometry.Position {
	switch e := ep.entity.(type) {
	case *models.Pipe:
		return []geometry.Position{e.Position}
	case *models.PipeGroup:
		out := make([]geometry.Position, len(e.Pipes))
		for i, p := range e.Pipes {
			out[i] = p.Position
		}
		return out
	case *models.TransportBelt:
		return []geometry.Position{e.Position}
	case *models.BeltGroup:
		out := make([]geometry.Position, len(e.Belts))
		for i, b := range e.Belts {
			out[i] = b.Position
		}
		return out
	}
	return nil
}

func logPositions(key string, points []geometry.IndexedPosition) log.Field {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.Position.String() + "/" + p.Role
	}
	return log.Strings(key, out)
}

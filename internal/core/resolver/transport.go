package resolver

import (
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/observability/log"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/world"
	"github.com/spikerwork/factorio-learning-environment-sub001/pkg/sequence"
)

var _ Resolver = (*TransportResolver)(nil)

// TransportResolver connects belts through the pickup, drop, input and output
// positions of inserters, drills and other belts.
type TransportResolver struct {
	base
}

func NewTransportResolver(q world.Querier, logger log.Log, opts Options) *TransportResolver {
	return &TransportResolver{base: newBase(q, logger, opts, "transport_resolver")}
}

func (r *TransportResolver) Resolve(source, target Endpoint) ([]Candidate, error) {
	source, target = r.refresh(source), r.refresh(target)

	if e, ok := source.Entity(); ok && e.Capabilities().Has(models.CapItemSink) {
		return nil, NewError(ErrorCodeUnsupportedSourceRole,
			"cannot connect a belt directly from %s; place an inserter to take items out of it and connect from the inserter",
			source).
			WithContext("intermediary", "inserter")
	}
	if e, ok := target.Entity(); ok && e.Capabilities().Has(models.CapItemSink) {
		return nil, NewError(ErrorCodeUnsupportedTargetRole,
			"cannot connect a belt directly to %s; place an inserter next to it and connect the belt to the inserter",
			target).
			WithContext("intermediary", "inserter")
	}

	sourcePoints, err := r.sourcePositions(source)
	if err != nil {
		return nil, err
	}
	targetPoints, err := r.targetPositions(target)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(sourcePoints)*len(targetPoints))
	for _, sp := range sourcePoints {
		for _, tp := range targetPoints {
			out = append(out, Candidate{Source: sp, Target: tp})
		}
	}
	if len(out) == 0 {
		return nil, NewError(ErrorCodeNoValidConnection,
			"no free belt positions between %s and %s, check for entities blocking the path", source, target)
	}

	r.logger.Debug("belt candidates",
		log.String("source", source.String()),
		log.String("target", target.String()),
		log.Int("count", len(out)),
	)
	return sortCandidates(out), nil
}

func (r *TransportResolver) sourcePositions(ep Endpoint) ([]geometry.Position, error) {
	switch e := ep.entity.(type) {
	case *models.Inserter:
		drop := e.DropPosition
		if occupants := r.occupants(drop); len(occupants) > 0 {
			return nil, NewError(ErrorCodeOccupiedEndpoint,
				"drop position %s of %s is occupied by %v", drop, ep, world.Names(occupants)).
				WithContext("occupants", world.Names(occupants))
		}
		return []geometry.Position{drop.TileCenter()}, nil
	case *models.MiningDrill:
		return r.freeTile(ep, "drop position", e.DropPosition, true)
	case *models.TransportBelt:
		return r.freeBeltExits([]*models.TransportBelt{e}, selfTiles(ep)), nil
	case *models.BeltGroup:
		exits := e.Outputs
		if len(exits) == 0 && len(e.Belts) > 0 {
			exits = e.Belts[len(e.Belts)-1:]
		}
		return r.freeBeltExits(exits, selfTiles(ep)), nil
	default:
		return r.freeTile(ep, "position", ep.Position(), false)
	}
}

func (r *TransportResolver) targetPositions(ep Endpoint) ([]geometry.Position, error) {
	switch e := ep.entity.(type) {
	case *models.Inserter:
		pickup := e.PickupPosition
		occupants := sequence.From(r.occupants(pickup)).Filter(func(o models.Entity) bool {
			return o.Kind() != models.KindTransportBelt
		}).Collect()
		if len(occupants) > 0 {
			return nil, NewError(ErrorCodeOccupiedEndpoint,
				"pickup position %s of %s is occupied by %v", pickup, ep, world.Names(occupants)).
				WithContext("occupants", world.Names(occupants))
		}
		return []geometry.Position{pickup.TileCenter()}, nil
	case *models.MiningDrill:
		return r.freeTile(ep, "drop position", e.DropPosition, true)
	case *models.TransportBelt:
		return beltCorners([]*models.TransportBelt{e}), nil
	case *models.BeltGroup:
		entries := e.Inputs
		if len(entries) == 0 {
			entries = e.Belts
		}
		return beltCorners(entries), nil
	default:
		return r.freeTile(ep, "position", ep.Position(), false)
	}
}

// freeTile snaps p to its tile centre and fails with OccupiedEndpoint when
// anything other than the endpoint itself sits there. Belts on the tile are
// accepted when beltsAllowed is set.
func (r *TransportResolver) freeTile(ep Endpoint, what string, p geometry.Position, beltsAllowed bool) ([]geometry.Position, error) {
	tile := p.TileCenter()
	var self []geometry.Position
	if e, ok := ep.Entity(); ok {
		self = []geometry.Position{e.Core().Position}
	}
	occupants := sequence.From(r.occupants(tile, self...)).Filter(func(o models.Entity) bool {
		return !beltsAllowed || o.Kind() != models.KindTransportBelt
	}).Collect()
	if len(occupants) > 0 {
		return nil, NewError(ErrorCodeOccupiedEndpoint,
			"%s %s of %s is occupied by %v", what, tile, ep, world.Names(occupants)).
			WithContext("occupants", world.Names(occupants))
	}
	return []geometry.Position{tile}, nil
}

// freeBeltExits offers each belt's output tile and the two tiles beside it,
// skipping any that something other than the belts themselves occupies.
func (r *TransportResolver) freeBeltExits(belts []*models.TransportBelt, self []geometry.Position) []geometry.Position {
	var out []geometry.Position
	for _, b := range belts {
		exit := b.OutputPosition.TileCenter()
		points := []geometry.Position{
			exit,
			exit.Translate(b.Direction.CounterClockwise(), 1),
			exit.Translate(b.Direction.Clockwise(), 1),
		}
		for _, p := range points {
			if r.blocked(p, self...) {
				r.logger.Debug("belt exit blocked", log.Stringer("position", p))
				continue
			}
			out = append(out, p)
		}
	}
	return sequence.DistinctBy(sequence.From(out), func(p geometry.Position) geometry.Position { return p }).Collect()
}

// beltCorners returns the four corners of each belt's footprint.
func beltCorners(belts []*models.TransportBelt) []geometry.Position {
	points := sequence.FlatMap(sequence.From(belts), func(b *models.TransportBelt) []geometry.Position {
		corners := b.Footprint().Corners()
		return corners[:]
	})
	return sequence.DistinctBy(points, func(p geometry.Position) geometry.Position { return p }).Collect()
}

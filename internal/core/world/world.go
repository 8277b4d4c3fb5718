package world

import (
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"
)

// BlockingRadius is the search radius used for occupancy checks.
const BlockingRadius = 0.5

// Querier reads live world state. Implementations are supplied by the host:
// the game bridge in production, Snapshot in tests and offline tools.
type Querier interface {
	// GetEntities returns entities of the given kinds (nil = any) whose
	// collision area lies within radius of position, in a stable order.
	GetEntities(kinds models.KindSet, position geometry.Position, radius float64) []models.Entity
}

// QuerierFunc adapts a function to Querier.
type QuerierFunc func(kinds models.KindSet, position geometry.Position, radius float64) []models.Entity

func (f QuerierFunc) GetEntities(kinds models.KindSet, position geometry.Position, radius float64) []models.Entity {
	return f(kinds, position, radius)
}

// Empty is a Querier over an empty map.
var Empty Querier = QuerierFunc(func(models.KindSet, geometry.Position, float64) []models.Entity { return nil })

// IsBlocked reports whether any entity occupies position.
func IsBlocked(q Querier, position geometry.Position) bool {
	return len(q.GetEntities(nil, position, BlockingRadius)) > 0
}

// BlockingEntities returns the entities occupying position, skipping those
// that sit on one of the ignore tiles (the caller's own footprint).
func BlockingEntities(q Querier, position geometry.Position, ignore ...geometry.Position) []models.Entity {
	return OccupantsWithin(q, position, BlockingRadius, ignore...)
}

// OccupantsWithin is BlockingEntities with an explicit search radius.
func OccupantsWithin(q Querier, position geometry.Position, radius float64, ignore ...geometry.Position) []models.Entity {
	found := q.GetEntities(nil, position, radius)
	if len(ignore) == 0 || len(found) == 0 {
		return found
	}
	out := found[:0:0]
	for _, e := range found {
		if onAny(e.Core().Position, ignore) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// IsBlockedExcept is IsBlocked with the ignore rule of BlockingEntities.
func IsBlockedExcept(q Querier, position geometry.Position, ignore ...geometry.Position) bool {
	return len(BlockingEntities(q, position, ignore...)) > 0
}

func onAny(p geometry.Position, tiles []geometry.Position) bool {
	for _, t := range tiles {
		if p.SameTile(t) {
			return true
		}
	}
	return false
}

// Refresher is implemented by queriers that can re-read an entity's live state.
type Refresher interface {
	Refresh(e models.Entity) models.Entity
}

// Names lists entity names, for error messages.
func Names(entities []models.Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.Core().Name
	}
	return out
}

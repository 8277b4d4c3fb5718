package resolver

import (
	"cmp"
	"fmt"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"
	"github.com/spikerwork/factorio-learning-environment-sub001/pkg/sequence"
)

// Endpoint is one side of a requested connection: a raw position or a placed entity.
type Endpoint struct {
	position geometry.Position
	entity   models.Entity
}

// At is an endpoint on a bare map position.
func At(p geometry.Position) Endpoint {
	return Endpoint{position: p}
}

// Of is an endpoint on an entity or group.
func Of(e models.Entity) Endpoint {
	if e == nil {
		return Endpoint{}
	}
	return Endpoint{position: e.Core().Position, entity: e}
}

func (ep Endpoint) Entity() (models.Entity, bool) {
	return ep.entity, ep.entity != nil
}

func (ep Endpoint) Position() geometry.Position {
	if ep.entity != nil {
		return ep.entity.Core().Position
	}
	return ep.position
}

func (ep Endpoint) String() string {
	if ep.entity != nil {
		return fmt.Sprintf("%s at %s", ep.entity.Core().Name, ep.entity.Core().Position)
	}
	return ep.position.String()
}

// Candidate is one way to link source and target.
type Candidate struct {
	Source     geometry.Position `json:"source"`
	Target     geometry.Position `json:"target"`
	SourceRole string            `json:"source_role,omitempty"`
	TargetRole string            `json:"target_role,omitempty"`
}

func (c Candidate) Manhattan() float64 {
	return c.Source.Manhattan(c.Target)
}

// sortCandidates drops exact duplicates and orders by Manhattan distance,
// keeping input order among equals.
func sortCandidates(in []Candidate) []Candidate {
	return sequence.DistinctBy(sequence.From(in), func(c Candidate) Candidate { return c }).
		SortStable(func(a, b Candidate) int { return cmp.Compare(a.Manhattan(), b.Manhattan()) }).
		Collect()
}

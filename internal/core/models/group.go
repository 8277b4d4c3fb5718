package models

import "github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"

// Group aggregates contiguous connectors of one kind.
type Group interface {
	Entity
	Members() []Entity
}

type BeltGroup struct {
	Base
	ID        uint64           `json:"id"`
	Belts     []*TransportBelt `json:"belts"`
	Inputs    []*TransportBelt `json:"inputs"`
	Outputs   []*TransportBelt `json:"outputs"`
	Inventory Inventory        `json:"inventory"`
}

func (*BeltGroup) Kind() Kind {
	return KindBeltGroup
}

func (*BeltGroup) Capabilities() Capability {
	return CapBeltLike | CapGroup
}

func (g *BeltGroup) Members() []Entity {
	out := make([]Entity, len(g.Belts))
	for i, b := range g.Belts {
		out[i] = b
	}
	return out
}

type PipeGroup struct {
	Base
	ID    int     `json:"id"`
	Pipes []*Pipe `json:"pipes"`
}

func (*PipeGroup) Kind() Kind {
	return KindPipeGroup
}

func (*PipeGroup) Capabilities() Capability {
	return CapGroup
}

func (g *PipeGroup) Members() []Entity {
	out := make([]Entity, len(g.Pipes))
	for i, p := range g.Pipes {
		out[i] = p
	}
	return out
}

// UndergroundPositions lists members that link below the surface.
func (g *PipeGroup) UndergroundPositions() []geometry.Position {
	var out []geometry.Position
	for _, p := range g.Pipes {
		if p.Underground() {
			out = append(out, p.Position)
		}
	}
	return out
}

type ElectricityGroup struct {
	Base
	ID    int                `json:"id"`
	Poles []*ElectricityPole `json:"poles"`
}

func (*ElectricityGroup) Kind() Kind {
	return KindElectricityGroup
}

func (*ElectricityGroup) Capabilities() Capability {
	return CapElectricalID | CapGroup
}

func (g *ElectricityGroup) Members() []Entity {
	out := make([]Entity, len(g.Poles))
	for i, p := range g.Poles {
		out[i] = p
	}
	return out
}

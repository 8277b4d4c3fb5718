package models

// Kind names the concrete entity variant.
type Kind string

const (
	KindGeneric           Kind = "entity"
	KindMachine           Kind = "machine"
	KindFluidHandler      Kind = "fluid-handler"
	KindMultiFluidHandler Kind = "multi-fluid-handler"
	KindOffshorePump      Kind = "offshore-pump"
	KindBoiler            Kind = "boiler"
	KindGenerator         Kind = "generator"
	KindPumpJack          Kind = "pump-jack"
	KindPipe              Kind = "pipe"
	KindPipeGroup         Kind = "pipe-group"
	KindTransportBelt     Kind = "transport-belt"
	KindBeltGroup         Kind = "belt-group"
	KindInserter          Kind = "inserter"
	KindMiningDrill       Kind = "mining-drill"
	KindElectricityPole   Kind = "electricity-pole"
	KindElectricityGroup  Kind = "electricity-group"
)

// KindSet filters world queries. A nil set matches every kind.
type KindSet []Kind

func Kinds(kinds ...Kind) KindSet { return KindSet(kinds) }

func (s KindSet) Has(k Kind) bool {
	if s == nil {
		return true
	}
	for _, c := range s {
		if c == k {
			return true
		}
	}
	return false
}

// Capability is a bit set describing what an entity can take part in.
type Capability uint16

const (
	CapFluidPorts Capability = 1 << iota
	CapRecipe
	CapBeltLike
	CapElectricalID
	CapDropPosition
	CapPickupPosition
	CapItemSink
	CapGroup
)

func (c Capability) Has(o Capability) bool { return c&o == o }

// Category is the prototype family for entities that matter as item sinks.
type Category string

const (
	CategoryNone        Category = ""
	CategoryAssembler   Category = "assembling-machine"
	CategoryFurnace     Category = "furnace"
	CategoryLab         Category = "lab"
	CategoryChest       Category = "container"
	CategoryTurret      Category = "turret"
	CategoryAccumulator Category = "accumulator"
)

// IsSink reports whether items can only enter or leave the entity through an inserter.
func (c Category) IsSink() bool {
	switch c {
	case CategoryAssembler, CategoryFurnace, CategoryLab, CategoryChest, CategoryTurret, CategoryAccumulator:
		return true
	}
	return false
}

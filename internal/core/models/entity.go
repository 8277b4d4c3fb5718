package models

import "github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"

// Entity is a snapshot of a placed game entity. The set of implementations is
// closed: every variant lives in this package.
type Entity interface {
	Core() *Base
	Kind() Kind
	Capabilities() Capability
	sealed()
}

// FluidPorted is implemented by every variant with fluid connection points.
type FluidPorted interface {
	Entity
	FluidConnectionPoints() []geometry.Position
}

// Base carries the fields every variant shares.
type Base struct {
	Name         string             `json:"name"`
	Position     geometry.Position  `json:"position"`
	Direction    geometry.Direction `json:"direction"`
	TileWidth    float64            `json:"tile_width,omitempty"`
	TileHeight   float64            `json:"tile_height,omitempty"`
	Category     Category           `json:"category,omitempty"`
	Status       Status             `json:"status,omitempty"`
	Warnings     []string           `json:"warnings,omitempty"`
	ElectricalID int                `json:"electrical_id,omitempty"`
}

func (b *Base) Core() *Base { return b }

func (*Base) sealed() {}

// Footprint is the tile area the entity covers; size defaults to one tile.
func (b *Base) Footprint() geometry.BoundingBox {
	w, h := b.TileWidth, b.TileHeight
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return geometry.BoxAround(b.Position, w, h)
}

func (b *Base) HasWarning(w string) bool {
	for _, have := range b.Warnings {
		if have == w {
			return true
		}
	}
	return false
}

func sinkCap(c Category) Capability {
	if c.IsSink() {
		return CapItemSink
	}
	return 0
}

// Generic is any entity without connection semantics of its own.
type Generic struct {
	Base
}

func (*Generic) Kind() Kind {
	return KindGeneric
}

func (e *Generic) Capabilities() Capability {
	return sinkCap(e.Category)
}

// Machine is an item-processing or storage entity: assembler, furnace, lab, chest,
// turret or accumulator.
type Machine struct {
	Base
	Recipe string `json:"recipe,omitempty"`
}

func (*Machine) Kind() Kind {
	return KindMachine
}

func (e *Machine) Capabilities() Capability {
	c := sinkCap(e.Category)
	if e.Category == CategoryAssembler || e.Category == CategoryFurnace {
		c |= CapRecipe
	}
	return c
}

// FluidHandler holds a single fluid and exposes untyped connection points.
type FluidHandler struct {
	Base
	ConnectionPoints []geometry.Position `json:"connection_points"`
	FluidBox         FluidBox            `json:"fluid_box"`
}

func (*FluidHandler) Kind() Kind {
	return KindFluidHandler
}

func (e *FluidHandler) Capabilities() Capability {
	return CapFluidPorts | sinkCap(e.Category)
}

func (e *FluidHandler) FluidConnectionPoints() []geometry.Position {
	return e.ConnectionPoints
}

// MultiFluidHandler has separate typed input and output connection points,
// e.g. chemical plants and oil refineries.
type MultiFluidHandler struct {
	Base
	Recipe                 string                     `json:"recipe,omitempty"`
	ConnectionPoints       []geometry.Position        `json:"connection_points,omitempty"`
	InputConnectionPoints  []geometry.IndexedPosition `json:"input_connection_points"`
	OutputConnectionPoints []geometry.IndexedPosition `json:"output_connection_points"`
	FluidBox               FluidBox                   `json:"fluid_box"`
}

func (*MultiFluidHandler) Kind() Kind {
	return KindMultiFluidHandler
}

func (e *MultiFluidHandler) Capabilities() Capability {
	return CapFluidPorts | CapRecipe | sinkCap(e.Category)
}

func (e *MultiFluidHandler) FluidConnectionPoints() []geometry.Position {
	out := make([]geometry.Position, 0, len(e.ConnectionPoints)+len(e.InputConnectionPoints)+len(e.OutputConnectionPoints))
	out = append(out, e.ConnectionPoints...)
	for _, p := range e.InputConnectionPoints {
		out = append(out, p.Position)
	}
	for _, p := range e.OutputConnectionPoints {
		out = append(out, p.Position)
	}
	return out
}

// InputRoles lists the distinct fluids the current recipe expects.
func (e *MultiFluidHandler) InputRoles() []string {
	return distinctRoles(e.InputConnectionPoints)
}

// OffshorePump only ever emits water.
type OffshorePump struct {
	Base
	ConnectionPoints []geometry.Position `json:"connection_points"`
}

func (*OffshorePump) Kind() Kind {
	return KindOffshorePump
}

func (*OffshorePump) Capabilities() Capability {
	return CapFluidPorts
}

func (e *OffshorePump) FluidConnectionPoints() []geometry.Position {
	return e.ConnectionPoints
}

// Boiler takes water through ConnectionPoints and emits steam at SteamOutputPoint.
type Boiler struct {
	Base
	ConnectionPoints []geometry.Position `json:"connection_points"`
	SteamOutputPoint geometry.Position   `json:"steam_output_point"`
	FluidBox         FluidBox            `json:"fluid_box"`
}

func (*Boiler) Kind() Kind {
	return KindBoiler
}

func (*Boiler) Capabilities() Capability {
	return CapFluidPorts
}

func (e *Boiler) FluidConnectionPoints() []geometry.Position {
	return append(append([]geometry.Position{}, e.ConnectionPoints...), e.SteamOutputPoint)
}

// Generator is a steam engine or turbine.
type Generator struct {
	Base
	ConnectionPoints []geometry.Position `json:"connection_points"`
	FluidBox         FluidBox            `json:"fluid_box"`
}

func (*Generator) Kind() Kind {
	return KindGenerator
}

func (*Generator) Capabilities() Capability {
	return CapFluidPorts
}

func (e *Generator) FluidConnectionPoints() []geometry.Position {
	return e.ConnectionPoints
}

// PumpJack emits crude oil.
type PumpJack struct {
	Base
	ConnectionPoints []geometry.Position `json:"connection_points"`
}

func (*PumpJack) Kind() Kind {
	return KindPumpJack
}

func (*PumpJack) Capabilities() Capability {
	return CapFluidPorts
}

func (e *PumpJack) FluidConnectionPoints() []geometry.Position {
	return e.ConnectionPoints
}

// UndergroundPipeName is the prototype of pipes that link below the surface.
const UndergroundPipeName = "pipe-to-ground"

type Pipe struct {
	Base
	FluidboxID int   `json:"fluidbox_id"`
	Fluid      Fluid `json:"fluid"`
}

func (*Pipe) Kind() Kind {
	return KindPipe
}

func (*Pipe) Capabilities() Capability {
	return 0
}

func (e *Pipe) Underground() bool { return e.Name == UndergroundPipeName }

type TransportBelt struct {
	Base
	InputPosition  geometry.Position `json:"input_position"`
	OutputPosition geometry.Position `json:"output_position"`
	Inventory      Inventory         `json:"inventory,omitempty"`
	IsSource       bool              `json:"is_source,omitempty"`
	IsTerminus     bool              `json:"is_terminus,omitempty"`
}

// NewTransportBelt derives input and output tiles from the travel direction.
func NewTransportBelt(name string, position geometry.Position, direction geometry.Direction) *TransportBelt {
	return &TransportBelt{
		Base:           Base{Name: name, Position: position, Direction: direction},
		InputPosition:  position.Translate(direction.Opposite(), 1),
		OutputPosition: position.Translate(direction, 1),
	}
}

func (*TransportBelt) Kind() Kind {
	return KindTransportBelt
}

func (*TransportBelt) Capabilities() Capability {
	return CapBeltLike
}

type Inserter struct {
	Base
	PickupPosition geometry.Position `json:"pickup_position"`
	DropPosition   geometry.Position `json:"drop_position"`
}

func (*Inserter) Kind() Kind {
	return KindInserter
}

func (*Inserter) Capabilities() Capability {
	return CapDropPosition | CapPickupPosition | CapElectricalID
}

type MiningDrill struct {
	Base
	DropPosition geometry.Position `json:"drop_position"`
}

func (*MiningDrill) Kind() Kind {
	return KindMiningDrill
}

func (*MiningDrill) Capabilities() Capability {
	return CapDropPosition | CapElectricalID
}

type ElectricityPole struct {
	Base
	FlowRate float64 `json:"flow_rate"`
}

func (*ElectricityPole) Kind() Kind {
	return KindElectricityPole
}

func (*ElectricityPole) Capabilities() Capability {
	return CapElectricalID
}

func distinctRoles(points []geometry.IndexedPosition) []string {
	seen := make(map[string]struct{}, len(points))
	out := make([]string, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p.Role]; ok {
			continue
		}
		seen[p.Role] = struct{}{}
		out = append(out, p.Role)
	}
	return out
}

package scenario

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"
)

// layout is a built document: entities in document order plus their refs.
type layout struct {
	entities []models.Entity
	byRef    map[string]models.Entity
}

func (d *Document) build() (*layout, error) {
	w := &layout{
		entities: make([]models.Entity, 0, len(d.Entities)),
		byRef:    make(map[string]models.Entity, len(d.Entities)),
	}
	for i, spec := range d.Entities {
		e, err := spec.Entity()
		if err != nil {
			return nil, errors.Wrapf(err, "entity %d", i)
		}
		ref := spec.Ref
		if ref == "" {
			ref = fmt.Sprintf("#%d", i)
		}
		if _, dup := w.byRef[ref]; dup {
			return nil, errors.Errorf("entity %d: duplicate ref %q", i, ref)
		}
		w.byRef[ref] = e
		w.entities = append(w.entities, e)
	}
	return w, nil
}

func (w *layout) lookup(refs []string) ([]models.Entity, error) {
	out := make([]models.Entity, 0, len(refs))
	for _, ref := range refs {
		e, ok := w.byRef[ref]
		if !ok {
			return nil, errors.Errorf("unknown entity ref %q", ref)
		}
		out = append(out, e)
	}
	return out, nil
}

// Entity builds the model variant Kind names.
func (s EntitySpec) Entity() (models.Entity, error) {
	base := models.Base{
		Name:         s.Name,
		Position:     s.Position,
		TileWidth:    s.TileWidth,
		TileHeight:   s.TileHeight,
		Category:     s.Category,
		Status:       s.Status,
		Warnings:     s.Warnings,
		ElectricalID: s.ElectricalID,
	}
	if s.Direction != "" {
		d, err := geometry.ParseDirection(s.Direction)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		base.Direction = d
	}
	if base.Name == "" {
		base.Name = string(s.Kind)
	}

	switch s.Kind {
	case models.KindGeneric, "":
		return &models.Generic{Base: base}, nil
	case models.KindMachine:
		return &models.Machine{Base: base, Recipe: s.Recipe}, nil
	case models.KindFluidHandler:
		return &models.FluidHandler{Base: base, ConnectionPoints: s.ConnectionPoints, FluidBox: models.NewFluidBox(s.Fluids...)}, nil
	case models.KindMultiFluidHandler:
		return &models.MultiFluidHandler{
			Base:                   base,
			Recipe:                 s.Recipe,
			ConnectionPoints:       s.ConnectionPoints,
			InputConnectionPoints:  s.InputConnectionPoints,
			OutputConnectionPoints: s.OutputConnectionPoints,
			FluidBox:               models.NewFluidBox(s.Fluids...),
		}, nil
	case models.KindOffshorePump:
		return &models.OffshorePump{Base: base, ConnectionPoints: s.ConnectionPoints}, nil
	case models.KindBoiler:
		if s.SteamOutputPoint == nil {
			return nil, errors.Errorf("%s: boiler needs steam_output_point", base.Name)
		}
		return &models.Boiler{
			Base:             base,
			ConnectionPoints: s.ConnectionPoints,
			SteamOutputPoint: *s.SteamOutputPoint,
			FluidBox:         models.NewFluidBox(s.Fluids...),
		}, nil
	case models.KindGenerator:
		return &models.Generator{Base: base, ConnectionPoints: s.ConnectionPoints, FluidBox: models.NewFluidBox(s.Fluids...)}, nil
	case models.KindPumpJack:
		return &models.PumpJack{Base: base, ConnectionPoints: s.ConnectionPoints}, nil
	case models.KindPipe:
		return &models.Pipe{Base: base, FluidboxID: s.FluidboxID, Fluid: s.Fluid}, nil
	case models.KindTransportBelt:
		b := models.NewTransportBelt(base.Name, base.Position, base.Direction)
		b.Base = base
		if s.InputPosition != nil {
			b.InputPosition = *s.InputPosition
		}
		if s.OutputPosition != nil {
			b.OutputPosition = *s.OutputPosition
		}
		b.Inventory = s.Inventory
		b.IsSource, b.IsTerminus = s.IsSource, s.IsTerminus
		return b, nil
	case models.KindInserter:
		if s.PickupPosition == nil || s.DropPosition == nil {
			return nil, errors.Errorf("%s: inserter needs pickup_position and drop_position", base.Name)
		}
		return &models.Inserter{Base: base, PickupPosition: *s.PickupPosition, DropPosition: *s.DropPosition}, nil
	case models.KindMiningDrill:
		if s.DropPosition == nil {
			return nil, errors.Errorf("%s: mining drill needs drop_position", base.Name)
		}
		return &models.MiningDrill{Base: base, DropPosition: *s.DropPosition}, nil
	case models.KindElectricityPole:
		return &models.ElectricityPole{Base: base, FlowRate: s.FlowRate}, nil
	case models.KindPipeGroup, models.KindBeltGroup, models.KindElectricityGroup:
		return nil, errors.Errorf("%s: groups are built from their members, list the members instead", s.Kind)
	}
	return nil, errors.Errorf("unknown entity kind %q", s.Kind)
}

// Package network folds placed connectors into belt, pipe and electricity groups.
package network

import (
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/observability/log"
	"github.com/spikerwork/factorio-learning-environment-sub001/pkg/sequence"
)

// Builder groups connector entities. It keeps no state between calls.
type Builder struct {
	logger log.Log
}

func NewBuilder(logger log.Log) *Builder {
	return &Builder{logger: log.OrNop(logger).Named("group_builder")}
}

// AgglomerateGroupableEntities returns belt groups, then pipe groups, then
// electricity groups. Existing groups in the input are unpacked first, and a
// later entity on an already seen tile replaces the earlier one. Anything that
// is not a belt, pipe or pole is ignored. It never fails: bad input yields
// fewer groups.
func (b *Builder) AgglomerateGroupableEntities(entities []models.Entity) []models.Group {
	var (
		belts []*models.TransportBelt
		pipes []*models.Pipe
		poles []*models.ElectricityPole
	)
	for _, e := range dedupe(flatten(entities)) {
		switch v := e.(type) {
		case *models.TransportBelt:
			belts = append(belts, v)
		case *models.Pipe:
			pipes = append(pipes, v)
		case *models.ElectricityPole:
			poles = append(poles, v)
		default:
			b.logger.Debug("skipping ungroupable entity",
				log.String("name", e.Core().Name),
				log.String("kind", string(e.Kind())),
			)
		}
	}

	groups := make([]models.Group, 0, 4)
	for _, g := range b.beltGroups(belts) {
		groups = append(groups, g)
	}
	for _, g := range pipeGroups(pipes) {
		groups = append(groups, g)
	}
	for _, g := range electricityGroups(poles) {
		groups = append(groups, g)
	}

	b.logger.Debug("grouped entities",
		log.Int("belts", len(belts)),
		log.Int("pipes", len(pipes)),
		log.Int("poles", len(poles)),
		log.Int("groups", len(groups)),
	)
	return groups
}

func flatten(entities []models.Entity) []models.Entity {
	out := make([]models.Entity, 0, len(entities))
	for _, e := range entities {
		if e == nil {
			continue
		}
		if g, ok := e.(models.Group); ok {
			out = append(out, flatten(g.Members())...)
			continue
		}
		out = append(out, e)
	}
	return out
}

// dedupe keeps one entity per tile: the last one wins but takes the slot of
// the first so the output order stays stable.
func dedupe(entities []models.Entity) []models.Entity {
	slot := make(map[geometry.Tile]int, len(entities))
	out := make([]models.Entity, 0, len(entities))
	for _, e := range entities {
		t := e.Core().Position.Tile()
		if i, seen := slot[t]; seen {
			out[i] = e
			continue
		}
		slot[t] = len(out)
		out = append(out, e)
	}
	return out
}

func pipeGroups(pipes []*models.Pipe) []*models.PipeGroup {
	ids, byID := sequence.GroupBy(sequence.From(pipes), func(p *models.Pipe) int { return p.FluidboxID })
	out := make([]*models.PipeGroup, 0, len(ids))
	for _, id := range ids {
		members := byID[id]
		out = append(out, &models.PipeGroup{
			Base: models.Base{
				Name:     string(models.KindPipeGroup),
				Position: members[0].Position,
				Status:   pipeStatus(members),
			},
			ID:    id,
			Pipes: members,
		})
	}
	return out
}

func electricityGroups(poles []*models.ElectricityPole) []*models.ElectricityGroup {
	ids, byID := sequence.GroupBy(sequence.From(poles), func(p *models.ElectricityPole) int { return p.ElectricalID })
	out := make([]*models.ElectricityGroup, 0, len(ids))
	for _, id := range ids {
		members := byID[id]
		out = append(out, &models.ElectricityGroup{
			Base: models.Base{
				Name:         string(models.KindElectricityGroup),
				Position:     meanPosition(members),
				Status:       electricityStatus(members),
				ElectricalID: id,
			},
			ID:    id,
			Poles: members,
		})
	}
	return out
}

func meanPosition(poles []*models.ElectricityPole) geometry.Position {
	var x, y float64
	for _, p := range poles {
		x += p.Position.X
		y += p.Position.Y
	}
	n := float64(len(poles))
	return geometry.Pos(x/n, y/n)
}

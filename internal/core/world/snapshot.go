package world

import (
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"
)

var _ Querier = (*Snapshot)(nil)

// Snapshot is an in-memory world: entities indexed by every tile they cover.
type Snapshot struct {
	id uuid.UUID

	mu      sync.RWMutex
	tiles   map[geometry.Tile][]models.Entity
	order   map[models.Entity]int
	nextSeq int
}

func NewSnapshot(entities ...models.Entity) *Snapshot {
	s := &Snapshot{
		id:    uuid.New(),
		tiles: make(map[geometry.Tile][]models.Entity, len(entities)),
		order: make(map[models.Entity]int, len(entities)),
	}
	for _, e := range entities {
		s.Add(e)
	}
	return s
}

func (s *Snapshot) ID() uuid.UUID { return s.id }

// Add places an entity. Groups are added member by member.
func (s *Snapshot) Add(e models.Entity) {
	if g, ok := e.(models.Group); ok {
		for _, m := range g.Members() {
			s.Add(m)
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.order[e]; exists {
		return
	}
	s.order[e] = s.nextSeq
	s.nextSeq++
	for _, t := range footprintTiles(e) {
		s.tiles[t] = append(s.tiles[t], e)
	}
}

func (s *Snapshot) Remove(e models.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.order[e]; !exists {
		return
	}
	delete(s.order, e)
	for _, t := range footprintTiles(e) {
		bucket := s.tiles[t]
		for i, have := range bucket {
			if have == e {
				bucket = append(bucket[:i], bucket[i+1:]...)
				break
			}
		}
		if len(bucket) == 0 {
			delete(s.tiles, t)
		} else {
			s.tiles[t] = bucket
		}
	}
}

func (s *Snapshot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Entities returns everything in insertion order.
func (s *Snapshot) Entities() []models.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Entity, 0, len(s.order))
	for e := range s.order {
		out = append(out, e)
	}
	s.sortBySeq(out)
	return out
}

func (s *Snapshot) GetEntities(kinds models.KindSet, position geometry.Position, radius float64) []models.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	minX := int(math.Floor(position.X-radius)) - 1
	maxX := int(math.Floor(position.X+radius)) + 1
	minY := int(math.Floor(position.Y-radius)) - 1
	maxY := int(math.Floor(position.Y+radius)) + 1

	seen := make(map[models.Entity]struct{})
	var out []models.Entity
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for _, e := range s.tiles[geometry.Tile{X: x, Y: y}] {
				if _, dup := seen[e]; dup {
					continue
				}
				seen[e] = struct{}{}
				if !kinds.Has(e.Kind()) {
					continue
				}
				if e.Core().Footprint().DistanceTo(position) < radius {
					out = append(out, e)
				}
			}
		}
	}
	s.sortBySeq(out)
	return out
}

// Refresh returns the live entity of the same kind at e's position, or e
// itself when the snapshot holds no such entity.
func (s *Snapshot) Refresh(e models.Entity) models.Entity {
	if e == nil {
		return nil
	}
	for _, live := range s.GetEntities(models.Kinds(e.Kind()), e.Core().Position, BlockingRadius) {
		if live.Core().Position.Exact(e.Core().Position) {
			return live
		}
	}
	return e
}

func (s *Snapshot) sortBySeq(entities []models.Entity) {
	sort.SliceStable(entities, func(i, j int) bool {
		return s.order[entities[i]] < s.order[entities[j]]
	})
}

func footprintTiles(e models.Entity) []geometry.Tile {
	box := e.Core().Footprint()
	x0 := int(math.Floor(box.LeftTop.X + 1e-9))
	y0 := int(math.Floor(box.LeftTop.Y + 1e-9))
	x1 := int(math.Ceil(box.RightBottom.X-1e-9)) - 1
	y1 := int(math.Ceil(box.RightBottom.Y-1e-9)) - 1
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	tiles := make([]geometry.Tile, 0, (x1-x0+1)*(y1-y0+1))
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			tiles = append(tiles, geometry.Tile{X: x, Y: y})
		}
	}
	return tiles
}

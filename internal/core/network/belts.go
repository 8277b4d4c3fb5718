package network

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/observability/log"
)

// beltWalker indexes belts by tile. Belts are addressed by their index in
// belts; the walks only ever touch copies, never the caller's entities.
type beltWalker struct {
	belts   []*models.TransportBelt
	at      map[geometry.Tile]int
	visited mapset.Set[int]
}

func newBeltWalker(in []*models.TransportBelt) *beltWalker {
	w := &beltWalker{
		belts:   make([]*models.TransportBelt, len(in)),
		at:      make(map[geometry.Tile]int, len(in)),
		visited: mapset.New[int](),
	}
	for i, b := range in {
		c := *b
		w.belts[i] = &c
		w.at[c.Position.Tile()] = i
	}
	return w
}

// next is the belt that i feeds into, including side loading.
func (w *beltWalker) next(i int) (int, bool) {
	j, ok := w.at[w.belts[i].OutputPosition.Tile()]
	return j, ok && j != i
}

// prev is the belt directly behind i that outputs onto i's tile.
func (w *beltWalker) prev(i int) (int, bool) {
	j, ok := w.at[w.belts[i].InputPosition.Tile()]
	if !ok || j == i {
		return 0, false
	}
	if w.belts[j].OutputPosition.Tile() != w.belts[i].Position.Tile() {
		return 0, false
	}
	return j, true
}

// forward follows outputs from start. Reaching a belt that an earlier walk
// already covered ends the chain with that belt included, so the merge phase
// can join both chains. A belt with nothing after it is marked terminus.
func (w *beltWalker) forward(start int) []int {
	chain := []int{start}
	if w.visited.Has(start) {
		return chain
	}
	w.visited.Put(start)
	for cur := start; ; {
		nxt, ok := w.next(cur)
		if !ok {
			w.belts[cur].IsTerminus = true
			return chain
		}
		chain = append(chain, nxt)
		if w.visited.Has(nxt) {
			return chain
		}
		w.visited.Put(nxt)
		cur = nxt
	}
}

// backward mirrors forward along input positions and marks the first belt source.
func (w *beltWalker) backward(start int) []int {
	chain := []int{start}
	if w.visited.Has(start) {
		return chain
	}
	w.visited.Put(start)
	for cur := start; ; {
		prv, ok := w.prev(cur)
		if !ok {
			w.belts[cur].IsSource = true
			return chain
		}
		chain = append(chain, prv)
		if w.visited.Has(prv) {
			return chain
		}
		w.visited.Put(prv)
		cur = prv
	}
}

// head finds where the line through i starts, stopping at the first repeat on a loop.
func (w *beltWalker) head(i int) int {
	seen := mapset.New[int]()
	seen.Put(i)
	for {
		prv, ok := w.prev(i)
		if !ok || seen.Has(prv) {
			return i
		}
		seen.Put(prv)
		i = prv
	}
}

// openEnds reports whether i has no feeding belt behind it and whether its
// output tile holds no member.
func (w *beltWalker) openEnds(i int) (input, output bool) {
	_, hasPrev := w.prev(i)
	_, hasNext := w.next(i)
	return !hasPrev, !hasNext
}

func (w *beltWalker) flags(i int) (input, output bool) {
	return w.belts[i].IsSource, w.belts[i].IsTerminus
}

func (b *Builder) beltGroups(in []*models.TransportBelt) []*models.BeltGroup {
	if len(in) == 0 {
		return nil
	}
	w := newBeltWalker(in)

	// Without source or terminus flags the caller already knows the list is one
	// line, possibly joined by undergrounds the tiles cannot show.
	flagged := slices.ContainsFunc(in, func(t *models.TransportBelt) bool { return t.IsSource || t.IsTerminus })
	if !flagged {
		all := make([]int, len(w.belts))
		for i := range all {
			all[i] = i
		}
		return []*models.BeltGroup{newBeltGroup(w, all, w.openEnds)}
	}

	var sources, termini []int
	for i, belt := range w.belts {
		if belt.IsSource {
			sources = append(sources, i)
		}
		if belt.IsTerminus {
			termini = append(termini, i)
		}
	}

	var chains [][]int
	for _, i := range sources {
		chains = append(chains, w.forward(i))
	}
	for _, i := range termini {
		chains = append(chains, w.backward(i))
	}
	for i := range w.belts {
		if w.visited.Has(i) {
			continue
		}
		b.logger.Debug("belt not reached from any source or terminus", log.Stringer("position", w.belts[i].Position))
		start := w.head(i)
		if _, hasPrev := w.prev(start); !hasPrev {
			w.belts[start].IsSource = true
		}
		chains = append(chains, w.forward(start))
	}

	components := mergeChains(chains)
	out := make([]*models.BeltGroup, 0, len(components))
	for _, members := range components {
		out = append(out, newBeltGroup(w, members, w.flags))
	}
	return out
}

// mergeChains unions chains that share a belt, rescanning from the start after
// every merge until none overlap. Components come back ordered by their first
// member, members in input order.
func mergeChains(chains [][]int) [][]int {
	sets := make([]mapset.Set[int], len(chains))
	for i, c := range chains {
		sets[i] = mapset.New[int]()
		for _, idx := range c {
			sets[i].Put(idx)
		}
	}

	for merged := true; merged; {
		merged = false
	scan:
		for i := 0; i < len(sets); i++ {
			for j := i + 1; j < len(sets); j++ {
				if !overlaps(sets[i], sets[j]) {
					continue
				}
				sets[j].Each(func(idx int) { sets[i].Put(idx) })
				sets = slices.Delete(sets, j, j+1)
				merged = true
				break scan
			}
		}
	}

	out := make([][]int, len(sets))
	for i, s := range sets {
		members := make([]int, 0, s.Size())
		s.Each(func(idx int) { members = append(members, idx) })
		slices.Sort(members)
		out[i] = members
	}
	slices.SortFunc(out, func(a, b []int) int { return a[0] - b[0] })
	return out
}

func overlaps(a, b mapset.Set[int]) bool {
	if a.Size() > b.Size() {
		a, b = b, a
	}
	found := false
	a.Each(func(idx int) {
		if !found && b.Has(idx) {
			found = true
		}
	})
	return found
}

// newBeltGroup builds the group for members; ends decides which of them are
// listed as inputs and outputs.
func newBeltGroup(w *beltWalker, members []int, ends func(int) (input, output bool)) *models.BeltGroup {
	g := &models.BeltGroup{Belts: make([]*models.TransportBelt, 0, len(members))}
	inventories := make([]models.Inventory, 0, len(members))
	for _, idx := range members {
		belt := w.belts[idx]
		g.Belts = append(g.Belts, belt)
		input, output := ends(idx)
		if input {
			g.Inputs = append(g.Inputs, belt)
		}
		if output {
			g.Outputs = append(g.Outputs, belt)
		}
		inventories = append(inventories, belt.Inventory)
	}
	g.Inventory = models.Merge(inventories...)

	first := g.Belts[0]
	g.Base = models.Base{
		Name:      string(models.KindBeltGroup),
		Position:  first.Position,
		Direction: first.Direction,
		Status:    beltStatus(g.Belts, g.Inventory),
	}
	g.ID = Fingerprint(g)
	return g
}

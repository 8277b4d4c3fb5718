package network

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/geometry"
	"github.com/spikerwork/factorio-learning-environment-sub001/internal/core/models"
	"github.com/spikerwork/factorio-learning-environment-sub001/pkg/generic"
)

var digests = generic.NewPool(xxhash.New, (*xxhash.Digest).Reset)

// Fingerprint hashes a group's kind and member tiles. Two groups with the
// same members get the same value whatever the member order.
func Fingerprint(g models.Group) uint64 {
	members := g.Members()
	tiles := make([]geometry.Tile, len(members))
	for i, m := range members {
		tiles[i] = m.Core().Position.Tile()
	}
	slices.SortFunc(tiles, func(a, b geometry.Tile) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})

	d := digests.Get()
	defer digests.Put(d)
	_, _ = d.WriteString(string(g.Kind()))
	buf := make([]byte, 0, 32)
	for _, t := range tiles {
		buf = buf[:0]
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(t.X), 10)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, int64(t.Y), 10)
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}

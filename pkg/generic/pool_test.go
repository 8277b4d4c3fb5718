package generic

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_ResetOnPut(t *testing.T) {
	p := NewPool(func() *bytes.Buffer { return new(bytes.Buffer) }, (*bytes.Buffer).Reset)

	b := p.Get()
	b.WriteString("dirty")
	p.Put(b)

	assert.Zero(t, b.Len())
	assert.Zero(t, p.Get().Len())
}

func TestPool_NilReset(t *testing.T) {
	p := NewPool(func() []int { return make([]int, 0, 4) }, nil)
	s := p.Get()
	assert.Equal(t, 4, cap(s))
	assert.NotPanics(t, func() { p.Put(s) })
}

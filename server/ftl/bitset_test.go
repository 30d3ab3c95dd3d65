package ftl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitsetSetTestReset(t *testing.T) {
	b := NewBitset(70)
	assert.False(t, b.Test(5))
	b.Set(5)
	assert.True(t, b.Test(5))
	b.Reset(5)
	assert.False(t, b.Test(5))
}

func TestBitsetSetAllRespectsTailMask(t *testing.T) {
	b := NewBitset(70)
	b.SetAll()
	assert.Equal(t, 70, b.Count())
	assert.False(t, b.Test(70)) // out of range always false
}

func TestBitsetCountAndAny(t *testing.T) {
	b := NewBitset(10)
	assert.True(t, b.None())
	b.Set(3)
	b.Set(9)
	assert.Equal(t, 2, b.Count())
	assert.True(t, b.Any())
}

func TestBitsetAndNot(t *testing.T) {
	a := NewBitset(8)
	a.SetAll()
	other := NewBitset(8)
	other.Set(0)
	other.Set(1)
	result := a.AndNot(other)
	assert.False(t, result.Test(0))
	assert.False(t, result.Test(1))
	assert.True(t, result.Test(2))
}

func TestBitsetClone(t *testing.T) {
	a := NewBitset(8)
	a.Set(4)
	b := a.Clone()
	b.Set(5)
	assert.False(t, a.Test(5))
	assert.True(t, b.Test(4))
}

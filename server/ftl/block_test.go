package ftl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlockStartsFullyErased(t *testing.T) {
	b := NewBlock(0, 8, 2, 0, BlockCold)
	assert.Equal(t, uint32(0), b.GetValidPageCount())
	assert.True(t, b.erased.Any())
	assert.False(t, b.IsFull())
}

func TestBlockWriteThenReadHits(t *testing.T) {
	b := NewBlock(0, 4, 1, 0, BlockCold)
	b.Write(0, 42, 0, 100)
	assert.True(t, b.Read(0, 0, 200))
	assert.Equal(t, uint64(200), b.LastAccessed())
}

func TestBlockWriteRequiresSequentialCursor(t *testing.T) {
	b := NewBlock(0, 4, 1, 0, BlockCold)
	b.Write(0, 1, 0, 10)
	assert.Panics(t, func() { b.Write(0, 2, 0, 20) })
}

func TestBlockWriteRequiresErased(t *testing.T) {
	b := NewBlock(0, 4, 1, 0, BlockCold)
	b.Write(0, 1, 0, 10)
	b.Erase()
	b.Write(0, 2, 0, 20) // fine, freshly erased
	assert.Equal(t, uint64(1), b.EraseCount())
}

func TestBlockInvalidateClearsValidNotErased(t *testing.T) {
	b := NewBlock(0, 4, 1, 0, BlockCold)
	b.Write(0, 1, 0, 10)
	b.Invalidate(0, 0)
	assert.False(t, b.Read(0, 0, 20))
	assert.Equal(t, uint32(1), b.GetDirtyPageCount())
}

func TestBlockIsFullRequiresAllIOUnits(t *testing.T) {
	b := NewBlock(0, 2, 2, 0, BlockCold)
	b.Write(0, 1, 0, 1)
	b.Write(0, 2, 1, 1)
	assert.False(t, b.IsFull())
	b.Write(1, 3, 0, 2)
	b.Write(1, 4, 1, 2)
	assert.True(t, b.IsFull())
}

func TestBlockGetPageInfoReturnsPerUnitMask(t *testing.T) {
	b := NewBlock(0, 2, 2, 0, BlockCold)
	b.Write(0, 7, 0, 1)
	lpns, mask := b.GetPageInfo(0)
	require.Len(t, lpns, 2)
	require.Len(t, mask, 2)
	assert.True(t, mask[0])
	assert.False(t, mask[1])
	assert.Equal(t, uint64(7), lpns[0])
	assert.Equal(t, sentinelLPN, lpns[1])
}

func TestBlockEraseResetsCursorsAndBitmaps(t *testing.T) {
	b := NewBlock(0, 2, 1, 5, BlockCold)
	b.Write(0, 1, 0, 1)
	b.Write(1, 2, 0, 1)
	b.Erase()
	assert.Equal(t, uint64(6), b.EraseCount())
	assert.Equal(t, uint32(0), b.NextWriteIndex())
	assert.Equal(t, uint32(0), b.GetValidPageCount())
}

func TestIncRefreshedPageCount(t *testing.T) {
	b := NewBlock(0, 2, 1, 0, BlockCold)
	b.IncRefreshedPageCount()
	b.IncRefreshedPageCount()
	assert.Equal(t, uint64(2), b.RefreshedPageCount())
	b.ResetRefreshedPageCount()
	assert.Equal(t, uint64(0), b.RefreshedPageCount())
}

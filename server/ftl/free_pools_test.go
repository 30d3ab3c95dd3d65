package ftl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBlocks(n int, pagesInBlock, ioUnit uint32, erases []uint64) map[uint32]*Block {
	blocks := make(map[uint32]*Block, n)
	for i := 0; i < n; i++ {
		ec := uint64(0)
		if i < len(erases) {
			ec = erases[i]
		}
		blocks[uint32(i)] = NewBlock(uint32(i), pagesInBlock, ioUnit, ec, BlockCold)
	}
	return blocks
}

func TestFreePoolMaintainsAscendingEraseOrder(t *testing.T) {
	blocks := makeBlocks(4, 4, 1, []uint64{3, 1, 2, 0})
	p := NewFreePool(4, 1000)
	for i := 0; i < 4; i++ {
		p.PushFresh(blocks, uint32(i))
	}
	require.True(t, p.EraseCountsNonDecreasing(blocks))

	var order []uint32
	for p.Len() > 0 {
		idx, err := p.Alloc(0)
		require.NoError(t, err)
		order = append(order, idx)
	}
	// Alloc(0) prefers blockIdx%4 == 0, so block 0 leaves first; the rest
	// have no channel match and leave from the low-eraseCount front.
	assert.Equal(t, []uint32{0, 3, 1, 2}, order)
}

func TestFreePoolAllocOnEmptyFails(t *testing.T) {
	p := NewFreePool(4, 1000)
	_, err := p.Alloc(0)
	assert.True(t, IsOutOfFreeBlocks(err))
}

func TestFreePoolRetiresBadBlocks(t *testing.T) {
	blocks := makeBlocks(1, 4, 1, []uint64{10})
	p := NewFreePool(4, 10)
	ok := p.PushErased(blocks, 0)
	assert.False(t, ok)
	assert.Equal(t, 0, p.Len())
}

func TestFreePoolChannelPreference(t *testing.T) {
	blocks := makeBlocks(8, 4, 1, nil)
	p := NewFreePool(4, 1000)
	for i := 0; i < 8; i++ {
		p.PushFresh(blocks, uint32(i))
	}
	idx, err := p.Alloc(2)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), idx%4)
}

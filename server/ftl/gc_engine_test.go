package ftl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopPAL struct{}

func (nopPAL) Read(req Request, tick *uint64)  { *tick += 10 }
func (nopPAL) Write(req Request, tick *uint64) { *tick += 20 }
func (nopPAL) Erase(req Request, tick *uint64) { *tick += 100 }

func TestGCReclaimsVictimAndPreservesLiveData(t *testing.T) {
	pagesInBlock, ioUnit := uint32(4), uint32(1)
	totalBlocks := uint32(4)

	blocks := map[uint32]*Block{}
	for i := uint32(0); i < totalBlocks; i++ {
		blocks[i] = NewBlock(i, pagesInBlock, ioUnit, 0, BlockCold)
	}

	mapping := NewMappingTable(ioUnit, totalBlocks, pagesInBlock)
	stats := &Stats{}
	em := NewErrorModel(testParams())
	sched := NewRefreshScheduler(4, pagesInBlock, totalBlocks, 1_000_000_000, 1.8e-4, GroupingSingleLayer, 3, 24, em)
	gc := NewGCEngine(nopPAL{}, mapping, stats, sched, ioUnit)

	victim := blocks[0]
	for p := uint32(0); p < pagesInBlock; p++ {
		victim.Write(p, uint64(100+p), 0, uint64(p))
		mapping.Set(uint64(100+p), 0, PPN{BlockIdx: 0, PageIdx: p})
	}
	victim.Invalidate(1, 0) // page 1 dead, pages 0,2,3 still live

	freePool := NewFreePool(4, 1000)
	freePool.PushFresh(blocks, 2)
	freePool.PushFresh(blocks, 3)

	dst, err := freePool.Alloc(0)
	require.NoError(t, err)

	newDst, newTick, reclaimed, err := gc.Collect([]uint32{0}, blocks, freePool, dst, 0, GCPoolUnified, false)
	require.NoError(t, err)
	assert.Contains(t, reclaimed, uint32(0))
	assert.Greater(t, newTick, uint64(0))

	for _, lpn := range []uint64{100, 102, 103} {
		ppns, ok := mapping.Get(lpn)
		require.True(t, ok)
		assert.NotEqual(t, uint32(0), ppns[0].BlockIdx, "surviving LPN %d should have moved off the reclaimed block", lpn)
	}

	assert.Equal(t, uint64(1), stats.gcCount.Load())
	assert.Equal(t, uint64(1), stats.reclaimedBlocks.Load())
	assert.Equal(t, uint64(3), stats.validPageCopies.Load())

	// victim block itself is erased and back in the free pool
	assert.Equal(t, uint64(1), blocks[0].EraseCount())
	_ = newDst
}

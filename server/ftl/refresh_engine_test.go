package ftl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTickCopiesEnrolledLayerAndClearsEnrolment(t *testing.T) {
	pagesInBlock, ioUnit := uint32(4), uint32(1)
	totalBlocks := uint32(4)

	blocks := map[uint32]*Block{}
	for i := uint32(0); i < totalBlocks; i++ {
		blocks[i] = NewBlock(i, pagesInBlock, ioUnit, 0, BlockCold)
	}

	mapping := NewMappingTable(ioUnit, totalBlocks, pagesInBlock)
	stats := &Stats{}
	em := NewErrorModel(testParams())
	sched := NewRefreshScheduler(4, pagesInBlock, totalBlocks, 1, 1.8e-4, GroupingSingleLayer, 3, 24, em)
	re := NewRefreshEngine(nopPAL{}, mapping, stats, sched, ioUnit)

	src := blocks[0]
	src.Write(0, 500, 0, 1)
	mapping.Set(500, 0, PPN{BlockIdx: 0, PageIdx: 0})

	id := sched.LayerID(0, 0)
	sched.insertToQueue(id, 1)
	queueIndex := sched.Tick() // cur becomes 1, target = (1+1)%4 = 2... whichever: promote whatever queue holds id
	// force-promote the exact queue id landed in for a deterministic test
	sched.queues[1], sched.checked[1] = sched.checked[1], sched.queues[1]
	queueIndex = 1

	freePool := NewFreePool(4, 1000)
	freePool.PushFresh(blocks, 1)
	dst, err := freePool.Alloc(0)
	require.NoError(t, err)

	newDst, newTick, err := re.RefreshTick(queueIndex, blocks, freePool, dst, 0, 10)
	require.NoError(t, err)
	assert.Greater(t, newTick, uint64(0))

	ppns, ok := mapping.Get(500)
	require.True(t, ok)
	assert.NotEqual(t, uint32(0), ppns[0].BlockIdx)
	assert.False(t, src.Read(0, 0, newTick), "source copy should be invalidated after refresh")
	assert.False(t, sched.Inserted(id))
	assert.Equal(t, uint64(1), stats.refreshCount.Load())
	_ = newDst
}

func TestRefreshTickCountsDoubleInsertion(t *testing.T) {
	pagesInBlock, ioUnit := uint32(4), uint32(1)
	totalBlocks := uint32(4)
	blocks := map[uint32]*Block{}
	for i := uint32(0); i < totalBlocks; i++ {
		blocks[i] = NewBlock(i, pagesInBlock, ioUnit, 0, BlockCold)
	}
	mapping := NewMappingTable(ioUnit, totalBlocks, pagesInBlock)
	stats := &Stats{}
	em := NewErrorModel(testParams())
	sched := NewRefreshScheduler(4, pagesInBlock, totalBlocks, 1, 1.8e-4, GroupingSingleLayer, 3, 24, em)
	re := NewRefreshEngine(nopPAL{}, mapping, stats, sched, ioUnit)

	id := sched.LayerID(0, 0)
	// enqueue the id directly into checked[0] without the matching
	// layerQueueNum bookkeeping, simulating a stale duplicate entry.
	sched.checked[0].PushBack(id)

	freePool := NewFreePool(4, 1000)
	freePool.PushFresh(blocks, 1)
	dst, err := freePool.Alloc(0)
	require.NoError(t, err)

	_, _, err = re.RefreshTick(0, blocks, freePool, dst, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.doubleInsertionCount.Load())
}

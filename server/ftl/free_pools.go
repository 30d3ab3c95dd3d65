package ftl

import "container/list"

// FreePool is an ordered list of free block indices, kept sorted ascending
// by eraseCount for wear-levelling: allocation always takes from the oldest
// (lowest eraseCount) end. Grounded on the container/list + map idiom the
// teacher uses for its buffer-pool free/flush lists, adapted here to sort on
// insertion instead of LRU recency.
//
// Iterator-invalidation note: release finds its insertion point by
// a reverse linear scan rather than holding an iterator across the erase
// that produced the block, since container/list elements remain valid once
// obtained and removal/insertion around a held *list.Element is safe.
type FreePool struct {
	order              *list.List // Value: uint32 blockIdx
	pageCountToMaxPerf uint32
	badBlockThreshold  uint64
}

func NewFreePool(pageCountToMaxPerf uint32, badBlockThreshold uint64) *FreePool {
	return &FreePool{
		order:              list.New(),
		pageCountToMaxPerf: pageCountToMaxPerf,
		badBlockThreshold:  badBlockThreshold,
	}
}

func (p *FreePool) Len() int      { return p.order.Len() }
func (p *FreePool) IsEmpty() bool { return p.order.Len() == 0 }

// PushErased inserts a freshly erased block into ascending-eraseCount
// position, scanning from the tail. A block whose eraseCount has reached
// badBlockThreshold is retired instead -- not reinserted -- and PushErased
// reports false.
func (p *FreePool) PushErased(blocks map[uint32]*Block, blockIdx uint32) bool {
	blk := blocks[blockIdx]
	if blk == nil {
		panic(NewOpError("FreePool.PushErased", ErrCorruptedMapping))
	}
	if blk.EraseCount() >= p.badBlockThreshold {
		return false
	}

	newEC := blk.EraseCount()
	e := p.order.Back()
	for e != nil {
		existingIdx := e.Value.(uint32)
		existing := blocks[existingIdx]
		if existing != nil && existing.EraseCount() <= newEC {
			break
		}
		e = e.Prev()
	}
	if e == nil {
		p.order.PushFront(blockIdx)
	} else {
		p.order.InsertAfter(blockIdx, e)
	}
	return true
}

// PushFresh inserts a block (already erased, e.g. at construction time)
// without the retirement check -- used only to seed the pool initially.
func (p *FreePool) PushFresh(blocks map[uint32]*Block, blockIdx uint32) {
	newEC := blocks[blockIdx].EraseCount()
	e := p.order.Back()
	for e != nil {
		existingIdx := e.Value.(uint32)
		if blocks[existingIdx].EraseCount() <= newEC {
			break
		}
		e = e.Prev()
	}
	if e == nil {
		p.order.PushFront(blockIdx)
	} else {
		p.order.InsertAfter(blockIdx, e)
	}
}

// Alloc removes and returns the first block whose index matches channel
// (blockIdx mod pageCountToMaxPerf == channel), falling back to the list
// front if no match exists. Fails with ErrOutOfFreeBlocks if empty.
func (p *FreePool) Alloc(channel uint32) (uint32, error) {
	if p.order.Len() == 0 {
		return 0, NewOpError("FreePool.Alloc", ErrOutOfFreeBlocks)
	}
	for e := p.order.Front(); e != nil; e = e.Next() {
		idx := e.Value.(uint32)
		if p.pageCountToMaxPerf == 0 || idx%p.pageCountToMaxPerf == channel {
			p.order.Remove(e)
			return idx, nil
		}
	}
	e := p.order.Front()
	idx := e.Value.(uint32)
	p.order.Remove(e)
	return idx, nil
}

// Front peeks the lowest-eraseCount block without removing it.
func (p *FreePool) Front() (uint32, bool) {
	e := p.order.Front()
	if e == nil {
		return 0, false
	}
	return e.Value.(uint32), true
}

// EraseCountsNonDecreasing verifies the free-pool ascending-eraseCount sort
// invariant; exported for tests.
func (p *FreePool) EraseCountsNonDecreasing(blocks map[uint32]*Block) bool {
	prev := uint64(0)
	first := true
	for e := p.order.Front(); e != nil; e = e.Next() {
		ec := blocks[e.Value.(uint32)].EraseCount()
		if !first && ec < prev {
			return false
		}
		prev = ec
		first = false
	}
	return true
}

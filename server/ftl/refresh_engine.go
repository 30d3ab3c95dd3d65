package ftl

// RefreshEngine drains the layer IDs a RefreshScheduler tick promotes into
// its checked buffer, copying any page still live at the predicted-RBER
// horizon into a fresh location before it is read back uncorrectably.
// GC-threshold checks (should this tick's copies be deferred to make room
// first) are FTLCore's responsibility, since they require coordinating with
// the GC engine and both free pools.
type RefreshEngine struct {
	pal          PAL
	mapping      *MappingTable
	stats        *Stats
	sched        *RefreshScheduler
	ioUnitInPage uint32
}

func NewRefreshEngine(pal PAL, mapping *MappingTable, stats *Stats, sched *RefreshScheduler, ioUnitInPage uint32) *RefreshEngine {
	return &RefreshEngine{
		pal:          pal,
		mapping:      mapping,
		stats:        stats,
		sched:        sched,
		ioUnitInPage: ioUnitInPage,
	}
}

// RefreshTick drains up to maxRefreshLayer entries from queueIndex's checked
// buffer, writing survivors into dstBlockIdx (rolling to a fresh free block
// via freePool when it fills). A dequeued layer whose bookkeeping no longer
// points back at queueIndex is a stale duplicate (the layer was re-enrolled
// elsewhere after this entry was promoted) and is counted, not copied,
// matching the reference's recoverable DoubleInsertion case.
func (e *RefreshEngine) RefreshTick(queueIndex int, blocks map[uint32]*Block, freePool *FreePool, dstBlockIdx uint32, tick uint64, maxRefreshLayer int) (newDstBlockIdx uint32, newTick uint64, err error) {
	e.stats.refreshCallCount.Inc()

	dst, ok := blocks[dstBlockIdx]
	if !ok {
		return dstBlockIdx, tick, NewOpError("RefreshEngine.RefreshTick", ErrCorruptedMapping)
	}

	queue := e.sched.CheckedQueue(queueIndex)
	touchedBlocks := make(map[uint32]bool)

	drained := 0
	for drained < maxRefreshLayer {
		front := queue.Front()
		if front == nil {
			break
		}
		queue.Remove(front)
		drained++

		id := front.Value.(uint32)

		q, ok := e.sched.LayerQueueNum(id)
		if !ok || q != queueIndex || !e.sched.Inserted(id) {
			e.stats.doubleInsertionCount.Inc()
			continue
		}

		blockIdx := e.sched.BlockIdxOf(id)
		layerIndex := e.sched.LayerIndexOf(id)

		src, ok := blocks[blockIdx]
		if !ok {
			e.sched.ClearInserted(id)
			continue
		}

		lpns, validMask := src.GetPageInfo(layerIndex)
		anyValid := false
		for _, live := range validMask {
			if live {
				anyValid = true
				break
			}
		}
		if !anyValid {
			e.sched.ClearInserted(id)
			continue
		}

		if dst.IsFull() {
			freshIdx, aerr := freePool.Alloc(0)
			if aerr != nil {
				return dstBlockIdx, tick, aerr
			}
			dstBlockIdx = freshIdx
			dst = blocks[dstBlockIdx]
		}
		dstPage := dst.NextWriteIndex()

		writeTick := tick
		copiedAny := false
		for u := uint32(0); u < e.ioUnitInPage; u++ {
			if !validMask[u] {
				continue
			}
			lpn := lpns[u]

			src.Invalidate(layerIndex, u)

			e.pal.Write(Request{Type: IOWrite, BlockIdx: dstBlockIdx, PageIdx: dstPage, IOUnit: u}, &writeTick)
			dst.Write(dstPage, lpn, u, writeTick)

			ppns := e.mapping.GetOrInsertDefault(lpn)
			ppns[u] = PPN{BlockIdx: dstBlockIdx, PageIdx: dstPage}

			e.sched.SetRefreshPeriod(dst.EraseCount(), dstBlockIdx, dstPage)
			src.IncRefreshedPageCount()
			copiedAny = true
		}
		if writeTick > tick {
			tick = writeTick
		}
		if copiedAny {
			e.stats.refreshSuperPageCopies.Inc()
			e.stats.refreshPageCopies.Add(uint64(countTrue(validMask)))
			e.stats.refreshCount.Inc()
			touchedBlocks[blockIdx] = true
		}

		e.sched.ClearInserted(id)
	}

	e.stats.refreshedBlocks.Add(uint64(len(touchedBlocks)))

	return dstBlockIdx, tick, nil
}

func countTrue(mask []bool) int {
	n := 0
	for _, v := range mask {
		if v {
			n++
		}
	}
	return n
}

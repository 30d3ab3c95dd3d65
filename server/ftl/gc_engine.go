package ftl

// GCPoolKind distinguishes which free-block pool a collection pass is
// reclaiming for, so the hot/cold statistic breakdowns can be kept
// alongside the unified counters.
type GCPoolKind uint8

const (
	GCPoolUnified GCPoolKind = iota
	GCPoolHot
	GCPoolCold
)

// GCEngine reclaims victim blocks: it copies every still-live superpage to
// the current GC target block, invalidates the source unit before the
// mapping table is repointed, enrols the copied layer with the refresh
// scheduler (a GC copy is a write like any other), and finally erases and
// frees the drained victim.
type GCEngine struct {
	pal          PAL
	mapping      *MappingTable
	stats        *Stats
	refreshSched *RefreshScheduler
	ioUnitInPage uint32
}

func NewGCEngine(pal PAL, mapping *MappingTable, stats *Stats, refreshSched *RefreshScheduler, ioUnitInPage uint32) *GCEngine {
	return &GCEngine{
		pal:          pal,
		mapping:      mapping,
		stats:        stats,
		refreshSched: refreshSched,
		ioUnitInPage: ioUnitInPage,
	}
}

// Collect reclaims victims in order, writing survivors into dstBlockIdx and
// rolling over to a freshly allocated free block when it fills. Returns the
// (possibly rolled-over) destination block index, the advanced tick, and the
// list of victim blocks erased -- including any retired at the bad-block
// threshold instead of being returned to freePool.
func (g *GCEngine) Collect(victims []uint32, blocks map[uint32]*Block, freePool *FreePool, dstBlockIdx uint32, tick uint64, kind GCPoolKind, isRefreshTriggered bool) (newDstBlockIdx uint32, newTick uint64, reclaimed []uint32, err error) {
	dst, ok := blocks[dstBlockIdx]
	if !ok {
		return dstBlockIdx, tick, nil, NewOpError("GCEngine.Collect", ErrCorruptedMapping)
	}

	for _, vIdx := range victims {
		src, ok := blocks[vIdx]
		if !ok {
			return dstBlockIdx, tick, reclaimed, NewOpError("GCEngine.Collect", ErrCorruptedMapping)
		}

		pages := src.PagesInBlock()
		for p := uint32(0); p < pages; p++ {
			lpns, validMask := src.GetPageInfo(p)

			anyValid := false
			for _, live := range validMask {
				if live {
					anyValid = true
					break
				}
			}
			if !anyValid {
				continue
			}

			for u := uint32(0); u < g.ioUnitInPage; u++ {
				if validMask[u] {
					g.pal.Read(Request{Type: IORead, BlockIdx: vIdx, PageIdx: p, IOUnit: u}, &tick)
				}
			}

			if dst.IsFull() {
				freshIdx, aerr := freePool.Alloc(0)
				if aerr != nil {
					return dstBlockIdx, tick, reclaimed, aerr
				}
				dstBlockIdx = freshIdx
				dst = blocks[dstBlockIdx]
			}
			dstPage := dst.NextWriteIndex()

			writeTick := tick
			copiedAny := false
			for u := uint32(0); u < g.ioUnitInPage; u++ {
				if !validMask[u] {
					continue
				}
				lpn := lpns[u]

				src.Invalidate(p, u)

				g.pal.Write(Request{Type: IOWrite, BlockIdx: dstBlockIdx, PageIdx: dstPage, IOUnit: u}, &writeTick)
				dst.Write(dstPage, lpn, u, writeTick)

				ppns := g.mapping.GetOrInsertDefault(lpn)
				ppns[u] = PPN{BlockIdx: dstBlockIdx, PageIdx: dstPage}

				g.refreshSched.SetRefreshPeriod(dst.EraseCount(), dstBlockIdx, dstPage)
				g.bumpPageCopy(kind, isRefreshTriggered)
				copiedAny = true
			}
			if writeTick > tick {
				tick = writeTick
			}
			if copiedAny {
				g.bumpSuperPageCopy(kind)
			}
		}

		eraseTick := tick
		g.pal.Erase(Request{Type: IOErase, BlockIdx: vIdx}, &eraseTick)
		if eraseTick > tick {
			tick = eraseTick
		}
		src.Erase()
		if !freePool.PushErased(blocks, vIdx) {
			// bad block threshold reached: retired silently, not returned
			// to the free pool.
		}
		reclaimed = append(reclaimed, vIdx)
		g.bumpGcCount(kind)
	}

	return dstBlockIdx, tick, reclaimed, nil
}

func (g *GCEngine) bumpGcCount(kind GCPoolKind) {
	g.stats.gcCount.Inc()
	g.stats.reclaimedBlocks.Inc()
	switch kind {
	case GCPoolHot:
		g.stats.hotGcCount.Inc()
		g.stats.reclaimedHotBlocks.Inc()
	case GCPoolCold:
		g.stats.coldGcCount.Inc()
		g.stats.reclaimedColdBlocks.Inc()
	}
}

func (g *GCEngine) bumpSuperPageCopy(kind GCPoolKind) {
	g.stats.validSuperPageCopies.Inc()
	switch kind {
	case GCPoolHot:
		g.stats.hotValidSuperPageCopies.Inc()
	case GCPoolCold:
		g.stats.coldValidSuperPageCopies.Inc()
	}
}

func (g *GCEngine) bumpPageCopy(kind GCPoolKind, isRefreshTriggered bool) {
	g.stats.validPageCopies.Inc()
	switch kind {
	case GCPoolHot:
		g.stats.hotValidPageCopies.Inc()
	case GCPoolCold:
		g.stats.coldValidPageCopies.Inc()
	}
	if isRefreshTriggered {
		g.stats.refreshGcPageCopies.Inc()
	}
}

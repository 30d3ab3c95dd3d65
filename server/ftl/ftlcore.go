package ftl

import (
	"container/list"

	"github.com/zhukovaskychina/go-ftlsim/util"
)

// FTLCore is the top-level orchestrator: it owns the mapping table, the
// physical block array, the free pool(s), and the GC/refresh/error-model
// collaborators, and exposes the host-facing operations (read, write, trim,
// format) plus the statistics surface.
//
// Host writes are routed to the hot or cold stream by a static address-range
// partition (the bottom hotBlockRatio fraction of the logical address space
// is hot); on top of that, hot blocks that fill up enter hotWindow, a FIFO
// of eviction candidates, and hot-GC always reclaims its front rather than
// running the weighted victim selector. Survivors of a hot-GC pass are
// demoted into the cool stream and tracked in coolWindow, a bounded FIFO of
// size cooldownWindowSize; pushing past capacity pops the oldest entry and
// reclassifies it BlockCold, the same way a cold-pool GC pass re-enters its
// survivors into the cool window. See DESIGN.md for the parts of the
// original hot/cold/cool state machine this simplifies.
type FTLCore struct {
	pal    PAL
	dram   DRAM
	engine Engine

	mapping *MappingTable
	blocks  map[uint32]*Block

	hotColdEnabled bool
	freePool       *FreePool // unified pool when hot/cold separation is off
	hotFreePool    *FreePool
	coldFreePool   *FreePool
	coolFreePool   *FreePool // refresh target pool, and re-entry point for demoted/reclaimed blocks

	activeUnified uint32
	activeHot     uint32
	activeCold    uint32
	activeCool    uint32

	hotWindow          *list.List // FIFO of full HOT blockIdx awaiting hot-GC
	coolWindow         *list.List // bounded FIFO of COOL blockIdx; front demotes to COLD on overflow
	cooldownWindowSize uint32

	sched    *RefreshScheduler
	selector *VictimSelector
	gc       *GCEngine
	refresh  *RefreshEngine
	errModel *ErrorModel
	stats    *Stats

	ioUnitInPage        uint32
	pagesInBlock        uint32
	totalPhysicalBlocks uint32
	totalLogicalBlocks  uint32
	pageCountToMaxPerf  uint32
	useRandomIOTweak    bool

	gcThresholdRatio   float64
	gcReclaimThreshold float64
	gcMode             GCMode
	gcReclaimBlock     int

	fillingMode      FillingMode
	fillRatio        float64
	coldRatio        float64
	invalidPageRatio float64

	hotBlockRatio   float64
	maxRefreshLayer int

	randomSeed uint32
	tick       uint64
}

// FTLParams collects the constructor-time configuration, parsed once from a
// Config by the caller (server/conf adapts an ini.v1 file into a Config and
// then into FTLParams -- FTLCore itself never touches raw config keys).
type FTLParams struct {
	IOUnitInPage        uint32
	PagesInBlock        uint32
	TotalPhysicalBlocks uint32
	TotalLogicalBlocks  uint32
	PageCountToMaxPerf  uint32
	BadBlockThreshold   uint64
	InitialEraseCount   uint64
	UseRandomIOTweak    bool

	HotColdSeparation bool
	HotBlockRatio     float64
	CoolDownWindow    uint32

	GCThresholdRatio   float64
	GCReclaimThreshold float64
	GCMode             GCMode
	GCReclaimBlock     int
	EvictPolicy        EvictPolicy
	DChoiceParam       int
	RecoParam          float64

	FillingMode      FillingMode
	FillRatio        float64
	ColdRatio        float64
	InvalidPageRatio float64

	RefreshQueueCount      int
	RefreshPeriodNs        uint64
	RefreshMaxRBER         float32
	RefreshGroupingMode    RefreshGroupingMode
	RefreshGroupingSize    uint32
	RefreshReenrolThresh   int
	RefreshMaxLayerPerTick int
	LayersPerBlock         uint32

	ErrorModel ErrorModelParams

	RandomSeed uint32
}

func NewFTLCore(p FTLParams, pal PAL, dram DRAM, engine Engine) *FTLCore {
	errModel := NewErrorModel(p.ErrorModel)
	stats := &Stats{}
	sched := NewRefreshScheduler(p.RefreshQueueCount, p.LayersPerBlock, p.TotalPhysicalBlocks, p.RefreshPeriodNs, p.RefreshMaxRBER, p.RefreshGroupingMode, p.RefreshGroupingSize, p.RefreshReenrolThresh, errModel)
	mapping := NewMappingTable(p.IOUnitInPage, p.TotalPhysicalBlocks, p.PagesInBlock)
	selector := NewVictimSelector(p.EvictPolicy, p.DChoiceParam, p.RecoParam, p.RandomSeed)

	core := &FTLCore{
		pal:                 pal,
		dram:                dram,
		engine:              engine,
		mapping:             mapping,
		blocks:              make(map[uint32]*Block, p.TotalPhysicalBlocks),
		hotColdEnabled:      p.HotColdSeparation,
		sched:               sched,
		selector:            selector,
		errModel:            errModel,
		stats:               stats,
		ioUnitInPage:        p.IOUnitInPage,
		pagesInBlock:        p.PagesInBlock,
		totalPhysicalBlocks: p.TotalPhysicalBlocks,
		totalLogicalBlocks:  p.TotalLogicalBlocks,
		pageCountToMaxPerf:  p.PageCountToMaxPerf,
		useRandomIOTweak:    p.UseRandomIOTweak,
		gcThresholdRatio:    p.GCThresholdRatio,
		gcReclaimThreshold:  p.GCReclaimThreshold,
		gcMode:              p.GCMode,
		gcReclaimBlock:      p.GCReclaimBlock,
		fillingMode:         p.FillingMode,
		fillRatio:           p.FillRatio,
		coldRatio:           p.ColdRatio,
		invalidPageRatio:    p.InvalidPageRatio,
		hotBlockRatio:       p.HotBlockRatio,
		maxRefreshLayer:     p.RefreshMaxLayerPerTick,
		randomSeed:          p.RandomSeed,
		hotWindow:           list.New(),
		coolWindow:          list.New(),
		cooldownWindowSize:  p.CoolDownWindow,
	}
	core.gc = NewGCEngine(pal, mapping, stats, sched, p.IOUnitInPage)
	core.refresh = NewRefreshEngine(pal, mapping, stats, sched, p.IOUnitInPage)

	for b := uint32(0); b < p.TotalPhysicalBlocks; b++ {
		bt := BlockCold
		core.blocks[b] = NewBlock(b, p.PagesInBlock, p.IOUnitInPage, p.InitialEraseCount, bt)
	}

	if p.HotColdSeparation {
		core.hotFreePool = NewFreePool(p.PageCountToMaxPerf, p.BadBlockThreshold)
		core.coldFreePool = NewFreePool(p.PageCountToMaxPerf, p.BadBlockThreshold)
		core.coolFreePool = NewFreePool(p.PageCountToMaxPerf, p.BadBlockThreshold)
	} else {
		core.freePool = NewFreePool(p.PageCountToMaxPerf, p.BadBlockThreshold)
	}

	return core
}

// Initialize seeds the free pool(s) with every physical block, opens the
// first active write target(s), and -- if fillRatio is configured -- runs
// the warmup fill before returning control to the caller.
func (c *FTLCore) Initialize() error {
	if c.hotColdEnabled {
		for b := uint32(0); b < c.totalPhysicalBlocks; b++ {
			c.hotFreePool.PushFresh(c.blocks, b)
		}
		first, err := c.hotFreePool.Alloc(0)
		if err != nil {
			return err
		}
		c.activeHot = first
		c.blocks[first].SetType(BlockHot)

		second, err := c.coldFreePool.Alloc(0)
		if err != nil {
			// cold pool empty until GC migrates a block cold; acceptable at
			// warmup since no writes have landed in it yet.
			c.activeCold = first
		} else {
			c.activeCold = second
		}

		coolFirst, err := c.coolFreePool.Alloc(0)
		if err != nil {
			c.activeCool = c.activeCold
		} else {
			c.activeCool = coolFirst
		}
		c.blocks[c.activeCool].SetType(BlockCool)
		c.coolWindow.PushBack(c.activeCool)

		return c.warmup()
	}

	for b := uint32(0); b < c.totalPhysicalBlocks; b++ {
		c.freePool.PushFresh(c.blocks, b)
	}
	first, err := c.freePool.Alloc(0)
	if err != nil {
		return err
	}
	c.activeUnified = first
	return c.warmup()
}

// warmup fills a fillRatio fraction of the logical address space before the
// device is handed to its caller, so scenario tests and simulations alike
// start from a realistic occupancy instead of a cold empty device. The fill
// order is sequential or shuffled per fillingMode; under hot/cold separation
// the first coldRatio fraction of the fill targets the cold address range
// and the remainder targets hot, mirroring how Write itself routes by
// address. Warmup never triggers GC -- if the next warmup write would roll
// over to a fresh block while its pool's free ratio is below
// gcThresholdRatio (so Write would run GC), that is a misconfigured
// fillRatio/pool-size pairing and warmup fails with ErrGCDuringWarmup rather
// than running GC against device state the caller hasn't observed yet.
func (c *FTLCore) warmup() error {
	if c.fillRatio <= 0 || c.totalLogicalBlocks == 0 || c.pagesInBlock == 0 {
		return nil
	}
	totalLogicalPages := uint64(c.totalLogicalBlocks) * uint64(c.pagesInBlock)
	fillCount := uint64(float64(totalLogicalPages) * c.fillRatio)
	if fillCount > totalLogicalPages {
		fillCount = totalLogicalPages
	}
	if fillCount == 0 {
		return nil
	}

	var lpns []uint64
	if c.hotColdEnabled {
		hotSpanBlocks := uint64(float64(c.totalLogicalBlocks) * c.hotBlockRatio)
		hotSpanPages := hotSpanBlocks * uint64(c.pagesInBlock)
		coldCount := uint64(float64(fillCount) * c.coldRatio)

		for lpn := hotSpanPages; lpn < totalLogicalPages && uint64(len(lpns)) < coldCount; lpn++ {
			lpns = append(lpns, lpn)
		}
		for lpn := uint64(0); lpn < hotSpanPages && uint64(len(lpns)) < fillCount; lpn++ {
			lpns = append(lpns, lpn)
		}
	} else {
		for lpn := uint64(0); lpn < fillCount; lpn++ {
			lpns = append(lpns, lpn)
		}
	}

	if c.fillingMode == FillingRandom {
		rng := util.NewRng(c.randomSeed)
		perm := rng.Perm(len(lpns))
		shuffled := make([]uint64, len(lpns))
		for i, p := range perm {
			shuffled[i] = lpns[p]
		}
		lpns = shuffled
	}

	for _, lpn := range lpns {
		kind, activeIdx := c.writeTarget(lpn)
		if c.blocks[*activeIdx].IsFull() {
			pool := c.freePool
			switch kind {
			case GCPoolHot:
				pool = c.hotFreePool
			case GCPoolCold:
				pool = c.coldFreePool
			}
			total := c.totalForKind(kind)
			if total > 0 && float64(pool.Len())/float64(total) < c.gcThresholdRatio {
				return NewOpError("FTLCore.Initialize", ErrGCDuringWarmup)
			}
		}
		if _, err := c.Write(lpn); err != nil {
			return err
		}
	}

	if c.fillingMode == FillingSequentialThenInvalidate && c.invalidPageRatio > 0 {
		invalidateCount := uint64(float64(len(lpns)) * c.invalidPageRatio)
		for i := uint64(0); i < invalidateCount && i < uint64(len(lpns)); i++ {
			if err := c.Trim(lpns[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// routeKind reports which hot/cold stream Write should target for lpn; the
// unified stream when hot/cold separation is off.
func (c *FTLCore) routeKind(lpn uint64) GCPoolKind {
	if !c.hotColdEnabled {
		return GCPoolUnified
	}
	if c.isHotLPN(lpn) {
		return GCPoolHot
	}
	return GCPoolCold
}

// writeTarget returns lpn's GC pool kind and a pointer to the active block
// index that Write would write into next, without mutating any state.
func (c *FTLCore) writeTarget(lpn uint64) (GCPoolKind, *uint32) {
	kind := c.routeKind(lpn)
	switch kind {
	case GCPoolHot:
		return kind, &c.activeHot
	case GCPoolCold:
		return kind, &c.activeCold
	default:
		return kind, &c.activeUnified
	}
}

func (c *FTLCore) isHotLPN(lpn uint64) bool {
	if !c.hotColdEnabled || c.totalLogicalBlocks == 0 {
		return false
	}
	hotSpan := uint64(float64(c.totalLogicalBlocks) * c.hotBlockRatio)
	blockSpan := lpn / uint64(c.pagesInBlock)
	return blockSpan < hotSpan
}

// Read looks up lpn's current physical location and issues a PAL read,
// advancing tick. Returns ErrCorruptedMapping if lpn was never written.
func (c *FTLCore) Read(lpn uint64) (uint64, error) {
	ppns, ok := c.mapping.Get(lpn)
	if !ok {
		return c.tick, NewOpError("FTLCore.Read", ErrCorruptedMapping)
	}
	sentinel := c.mapping.Sentinel()
	for u, ppn := range ppns {
		if ppn == sentinel {
			continue
		}
		blk := c.blocks[ppn.BlockIdx]
		blk.Read(ppn.PageIdx, uint32(u), c.tick)
		c.pal.Read(Request{Type: IORead, BlockIdx: ppn.BlockIdx, PageIdx: ppn.PageIdx, IOUnit: uint32(u)}, &c.tick)
	}
	bytes := uint32(8)
	if c.useRandomIOTweak {
		bytes = 8 * c.ioUnitInPage
	}
	c.dram.Read(lpn, bytes, &c.tick)
	return c.tick, nil
}

// Write appends lpn to the current active block for its hot/cold class,
// rolling over to a fresh free block (via GC if necessary) when full, then
// enrols the new location with the refresh scheduler.
func (c *FTLCore) Write(lpn uint64) (uint64, error) {
	kind, activeIdx := c.writeTarget(lpn)
	var pool *FreePool
	switch kind {
	case GCPoolHot:
		pool = c.hotFreePool
	case GCPoolCold:
		pool = c.coldFreePool
	default:
		pool = c.freePool
	}

	blk := c.blocks[*activeIdx]
	if blk.IsFull() {
		if kind == GCPoolHot {
			c.hotWindow.PushBack(*activeIdx)
		}
		if err := c.maybeGC(kind); err != nil {
			return c.tick, err
		}
		freshIdx, err := pool.Alloc(0)
		if err != nil {
			return c.tick, err
		}
		*activeIdx = freshIdx
		if kind == GCPoolHot {
			c.blocks[freshIdx].SetType(BlockHot)
		}
		blk = c.blocks[freshIdx]
	}

	page := blk.NextWriteIndex()
	if old, ok := c.mapping.Get(lpn); ok {
		sentinel := c.mapping.Sentinel()
		for u, ppn := range old {
			if ppn == sentinel {
				continue
			}
			c.blocks[ppn.BlockIdx].Invalidate(ppn.PageIdx, uint32(u))
		}
	}

	for u := uint32(0); u < c.ioUnitInPage; u++ {
		c.pal.Write(Request{Type: IOWrite, BlockIdx: *activeIdx, PageIdx: page, IOUnit: u}, &c.tick)
		blk.Write(page, lpn, u, c.tick)
	}
	ppns := c.mapping.GetOrInsertDefault(lpn)
	for u := range ppns {
		ppns[u] = PPN{BlockIdx: *activeIdx, PageIdx: page}
	}

	c.sched.SetRefreshPeriod(blk.EraseCount(), *activeIdx, page)

	bytes := uint32(8)
	if c.useRandomIOTweak {
		bytes = 8 * c.ioUnitInPage
	}
	c.dram.Write(lpn, bytes, &c.tick)

	return c.tick, nil
}

// Trim invalidates lpn's current mapping without writing a replacement,
// advancing the core's tick by the DRAM cost of the mapping-table update.
func (c *FTLCore) Trim(lpn uint64) error {
	ppns, ok := c.mapping.Get(lpn)
	if !ok {
		return nil
	}
	sentinel := c.mapping.Sentinel()
	for u, ppn := range ppns {
		if ppn == sentinel {
			continue
		}
		c.blocks[ppn.BlockIdx].Invalidate(ppn.PageIdx, uint32(u))
	}
	c.mapping.Remove(lpn)
	bytes := uint32(8)
	if c.useRandomIOTweak {
		bytes = 8 * c.ioUnitInPage
	}
	c.dram.Write(lpn, bytes, &c.tick)
	return nil
}

// Status is the result of GetStatus: a point-in-time summary of a logical
// range's mapping occupancy alongside the device's overall free-block count.
type Status struct {
	TotalLogicalPages  uint64
	MappedLogicalPages uint64
	FreePhysicalBlocks int
}

// GetStatus reports, for the logical range [lpnBegin, lpnEnd), how many LPNs
// currently have a live mapping, plus the device-wide free physical block
// count.
func (c *FTLCore) GetStatus(lpnBegin, lpnEnd uint64) Status {
	var mapped uint64
	c.mapping.Range(lpnBegin, lpnEnd, func(lpn uint64, ppns []PPN) bool {
		mapped++
		return true
	})
	return Status{
		TotalLogicalPages:  lpnEnd - lpnBegin,
		MappedLogicalPages: mapped,
		FreePhysicalBlocks: c.totalFreeBlocks(),
	}
}

// Format removes every mapping in [lpnBegin, lpnEnd) without a physical
// erase: the underlying blocks go dirty and are reclaimed the ordinary way
// by a subsequent GC pass. It advances and returns the core's tick by the
// DRAM cost of rewriting the affected mapping-table entries, the same
// accounting Write and Trim already apply per LPN touched -- Format has no
// separate tick-pointer parameter because, like every other FTLCore
// operation, the tick it advances is the core's own, not a value threaded
// in by the caller.
func (c *FTLCore) Format(lpnBegin, lpnEnd uint64) uint64 {
	sentinel := c.mapping.Sentinel()
	var cleared []uint64
	c.mapping.Range(lpnBegin, lpnEnd, func(lpn uint64, ppns []PPN) bool {
		for u, ppn := range ppns {
			if ppn == sentinel {
				continue
			}
			c.blocks[ppn.BlockIdx].Invalidate(ppn.PageIdx, uint32(u))
		}
		cleared = append(cleared, lpn)
		return true
	})

	bytes := uint32(8)
	if c.useRandomIOTweak {
		bytes = 8 * c.ioUnitInPage
	}
	for _, lpn := range cleared {
		c.mapping.Remove(lpn)
		c.dram.Write(lpn, bytes, &c.tick)
	}
	return c.tick
}

// totalForKind returns the physical block budget a GC trigger point checks
// its pool's free ratio against.
func (c *FTLCore) totalForKind(kind GCPoolKind) uint32 {
	if !c.hotColdEnabled {
		return c.totalPhysicalBlocks
	}
	hotBudget := uint32(float64(c.totalPhysicalBlocks) * c.hotBlockRatio)
	switch kind {
	case GCPoolHot:
		return hotBudget
	case GCPoolCold:
		return c.totalPhysicalBlocks - hotBudget
	default:
		return c.totalPhysicalBlocks
	}
}

// popHotWindow pops up to n blockIdx values off hotWindow's front -- the
// FIFO hot-victim discipline, used in place of the weighted selector.
func (c *FTLCore) popHotWindow(n int) []uint32 {
	out := make([]uint32, 0, n)
	for c.hotWindow.Len() > 0 && len(out) < n {
		e := c.hotWindow.Front()
		c.hotWindow.Remove(e)
		out = append(out, e.Value.(uint32))
	}
	return out
}

// onCoolDestinationChanged tracks a GC pass's cool-pool destination in
// coolWindow whenever it rolled over to a fresh block: the fresh block is
// tagged COOL and pushed to the back, and if that pushes coolWindow past
// cooldownWindowSize, the oldest entry is popped and relabeled COLD in
// place -- it keeps its physical location. The cold-pool GC filter excludes
// only HOT blocks, so a block is a cold-GC candidate both as COOL and as
// COLD.
func (c *FTLCore) onCoolDestinationChanged(prevDst, newDst uint32) {
	if newDst == prevDst {
		return
	}
	if blk, ok := c.blocks[newDst]; ok {
		blk.SetType(BlockCool)
	}
	c.coolWindow.PushBack(newDst)
	if c.cooldownWindowSize > 0 && uint32(c.coolWindow.Len()) > c.cooldownWindowSize {
		front := c.coolWindow.Front()
		c.coolWindow.Remove(front)
		if idx, ok := front.Value.(uint32); ok {
			if blk, ok := c.blocks[idx]; ok {
				blk.SetType(BlockCold)
			}
		}
	}
}

// runGC is the threshold/mode-aware reclaim loop shared by every GC trigger
// point: it checks triggerPool's free ratio against gcThresholdRatio, then
// reclaims victims (produced by selectVictims) into collectPool/*collectDst
// according to gcMode -- GCModeFixedCount reclaims gcReclaimBlock victims
// once, GCModeUntilThreshold repeats until the free ratio clears
// gcReclaimThreshold -- plus the bReclaimMore extra sweep of
// pageCountToMaxPerf victims when triggerPool was already fully exhausted
// on entry.
func (c *FTLCore) runGC(kind GCPoolKind, triggerPool *FreePool, total uint32, collectPool *FreePool, collectDst *uint32, selectVictims func(n int) []uint32) error {
	if total == 0 {
		return nil
	}
	ratio := func() float64 { return float64(triggerPool.Len()) / float64(total) }
	if ratio() >= c.gcThresholdRatio {
		return nil
	}
	bReclaimMore := triggerPool.Len() == 0

	n := c.gcReclaimBlock
	if n <= 0 {
		n = 1
	}

	reclaim := func(count int) error {
		victims := selectVictims(count)
		if len(victims) == 0 {
			return NewOpError("FTLCore.maybeGC", ErrOutOfFreeBlocks)
		}
		prevDst := *collectDst
		newDst, newTick, _, err := c.gc.Collect(victims, c.blocks, collectPool, *collectDst, c.tick, kind, false)
		if err != nil {
			return err
		}
		*collectDst = newDst
		c.tick = newTick
		if collectPool == c.coolFreePool {
			c.onCoolDestinationChanged(prevDst, newDst)
		}
		return nil
	}

	switch c.gcMode {
	case GCModeUntilThreshold:
		target := c.gcReclaimThreshold
		if target <= 0 {
			target = c.gcThresholdRatio
		}
		for ratio() < target {
			if err := reclaim(n); err != nil {
				return err
			}
		}
	default:
		if err := reclaim(n); err != nil {
			return err
		}
	}

	if bReclaimMore {
		if err := reclaim(int(c.pageCountToMaxPerf)); err != nil {
			return err
		}
	}
	return nil
}

// maybeGC reclaims victims for the given pool kind once its free pool runs
// below the configured threshold ratio. Hot-kind GC reclaims FIFO from
// hotWindow and demotes survivors into the cool pool; cold-kind GC excludes
// HOT blocks from victim candidacy and re-enters survivors into the cool
// pool as well, per the cool-window re-entry path.
func (c *FTLCore) maybeGC(kind GCPoolKind) error {
	if c.gcMode != GCModeFixedCount && c.gcMode != GCModeUntilThreshold {
		return NewOpError("FTLCore.maybeGC", ErrInvalidGCMode)
	}

	switch kind {
	case GCPoolHot:
		return c.runGC(kind, c.hotFreePool, c.totalForKind(GCPoolHot), c.coolFreePool, &c.activeCool, c.popHotWindow)
	case GCPoolCold:
		filter := func(b *Block) bool { return b.Type() != BlockHot }
		selectVictims := func(n int) []uint32 {
			return c.selector.Select(c.blocks, c.tick, n, map[uint32]bool{}, filter)
		}
		return c.runGC(kind, c.coldFreePool, c.totalForKind(GCPoolCold), c.coolFreePool, &c.activeCool, selectVictims)
	default:
		selectVictims := func(n int) []uint32 {
			return c.selector.Select(c.blocks, c.tick, n, map[uint32]bool{}, nil)
		}
		return c.runGC(kind, c.freePool, c.totalForKind(GCPoolUnified), c.freePool, &c.activeUnified, selectVictims)
	}
}

// Tick drives one refresh-scheduler step: a pre-check GC pass runs if the
// cold (or unified) pool's free ratio has dropped below threshold, landing
// survivors in the cool (or unified) pool; then the scheduler promotes its
// next queue and RefreshEngine drains it
// into that pool's active block. Callers (typically the discrete-event
// Engine's periodic timer) invoke this once per refresh period.
func (c *FTLCore) Tick() error {
	qIdx := c.sched.Tick()

	pool, dstIdx := c.freePool, &c.activeUnified
	gcKind := GCPoolUnified
	if c.hotColdEnabled {
		pool, dstIdx = c.coolFreePool, &c.activeCool
		gcKind = GCPoolCold
	}

	if err := c.maybeGC(gcKind); err != nil {
		return err
	}

	newDst, newTick, err := c.refresh.RefreshTick(qIdx, c.blocks, pool, *dstIdx, c.tick, c.maxRefreshLayer)
	if err != nil {
		return err
	}
	*dstIdx = newDst
	c.tick = newTick
	return nil
}

// GetStatList returns the canonical, ordered metric names.
func (c *FTLCore) GetStatList() []string { return StatNames }

// GetStatValues returns the canonical-order values: the 19 monotonic
// counters followed by the four live pool/wear-levelling figures.
func (c *FTLCore) GetStatValues() []float64 {
	values := c.stats.values19()
	values = append(values, c.calculateWearLeveling(), float64(c.totalFreeBlocks()), float64(c.coldFreeBlocks()), float64(c.hotFreeBlocks()))
	return values
}

func (c *FTLCore) ResetStatValues() { c.stats.reset() }

func (c *FTLCore) totalFreeBlocks() int {
	if c.hotColdEnabled {
		return c.hotFreePool.Len() + c.coldFreePool.Len() + c.coolFreePool.Len()
	}
	return c.freePool.Len()
}

func (c *FTLCore) hotFreeBlocks() int {
	if !c.hotColdEnabled {
		return 0
	}
	return c.hotFreePool.Len()
}

func (c *FTLCore) coldFreeBlocks() int {
	if !c.hotColdEnabled {
		return 0
	}
	return c.coldFreePool.Len() + c.coolFreePool.Len()
}

// calculateWearLeveling reports (max-min)/mean erase count across all
// physical blocks -- zero when the device is perfectly level.
func (c *FTLCore) calculateWearLeveling() float64 {
	if len(c.blocks) == 0 {
		return 0
	}
	var sum, n uint64
	min := ^uint64(0)
	max := uint64(0)
	for _, b := range c.blocks {
		ec := b.EraseCount()
		sum += ec
		n++
		if ec < min {
			min = ec
		}
		if ec > max {
			max = ec
		}
	}
	mean := float64(sum) / float64(n)
	if mean == 0 {
		return 0
	}
	return float64(max-min) / mean
}

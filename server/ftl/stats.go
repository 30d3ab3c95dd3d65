package ftl

import "go.uber.org/atomic"

// Stats holds every counter FTLCore exposes through getStatList/getStatValues,
// in a fixed canonical order the test harness relies on. Fields are typed
// atomics (mirroring a sync/atomic buffer-pool stats block, promoted here to
// go.uber.org/atomic's ergonomic wrappers) so a collector goroutine may
// snapshot them between events without racing the FTL's own single-threaded
// call path: statistics are write-only from the FTL side and may be
// snapshotted at any point between events.
type Stats struct {
	gcCount               atomic.Uint64
	reclaimedBlocks       atomic.Uint64
	validSuperPageCopies  atomic.Uint64
	validPageCopies       atomic.Uint64
	refreshGcPageCopies   atomic.Uint64

	refreshCount           atomic.Uint64
	refreshedBlocks        atomic.Uint64
	refreshSuperPageCopies atomic.Uint64
	refreshPageCopies      atomic.Uint64
	refreshCallCount       atomic.Uint64

	hotGcCount              atomic.Uint64
	reclaimedHotBlocks      atomic.Uint64
	hotValidSuperPageCopies atomic.Uint64
	hotValidPageCopies      atomic.Uint64

	coldGcCount              atomic.Uint64
	reclaimedColdBlocks      atomic.Uint64
	coldValidSuperPageCopies atomic.Uint64
	coldValidPageCopies      atomic.Uint64

	doubleInsertionCount atomic.Uint64
}

// StatNames is the canonical, ordered list of metric names.
var StatNames = []string{
	"gcCount", "reclaimedBlocks", "validSuperPageCopies", "validPageCopies", "refreshGcPageCopies",
	"refreshCount", "refreshedBlocks", "refreshSuperPageCopies", "refreshPageCopies", "refreshCallCount",
	"hotGcCount", "reclaimedHotBlocks", "hotValidSuperPageCopies", "hotValidPageCopies",
	"coldGcCount", "reclaimedColdBlocks", "coldValidSuperPageCopies", "coldValidPageCopies",
	"doubleInsertionCount", "wearLeveling", "nFreeBlocks", "nColdFreeBlocks", "nHotFreeBlocks",
}

// values19 returns the first 19 canonical-order values. The trailing four
// (wearLeveling, nFreeBlocks, nColdFreeBlocks, nHotFreeBlocks) are computed
// live by FTLCore.GetStatValues since they reflect pool state rather than
// monotonic counters; Stats itself only owns the first 19 counters.
func (s *Stats) values19() []float64 {
	return []float64{
		float64(s.gcCount.Load()),
		float64(s.reclaimedBlocks.Load()),
		float64(s.validSuperPageCopies.Load()),
		float64(s.validPageCopies.Load()),
		float64(s.refreshGcPageCopies.Load()),
		float64(s.refreshCount.Load()),
		float64(s.refreshedBlocks.Load()),
		float64(s.refreshSuperPageCopies.Load()),
		float64(s.refreshPageCopies.Load()),
		float64(s.refreshCallCount.Load()),
		float64(s.hotGcCount.Load()),
		float64(s.reclaimedHotBlocks.Load()),
		float64(s.hotValidSuperPageCopies.Load()),
		float64(s.hotValidPageCopies.Load()),
		float64(s.coldGcCount.Load()),
		float64(s.reclaimedColdBlocks.Load()),
		float64(s.coldValidSuperPageCopies.Load()),
		float64(s.coldValidPageCopies.Load()),
		float64(s.doubleInsertionCount.Load()),
	}
}

func (s *Stats) reset() {
	s.gcCount.Store(0)
	s.reclaimedBlocks.Store(0)
	s.validSuperPageCopies.Store(0)
	s.validPageCopies.Store(0)
	s.refreshGcPageCopies.Store(0)
	s.refreshCount.Store(0)
	s.refreshedBlocks.Store(0)
	s.refreshSuperPageCopies.Store(0)
	s.refreshPageCopies.Store(0)
	s.refreshCallCount.Store(0)
	s.hotGcCount.Store(0)
	s.reclaimedHotBlocks.Store(0)
	s.hotValidSuperPageCopies.Store(0)
	s.hotValidPageCopies.Store(0)
	s.coldGcCount.Store(0)
	s.reclaimedColdBlocks.Store(0)
	s.coldValidSuperPageCopies.Store(0)
	s.coldValidPageCopies.Store(0)
	s.doubleInsertionCount.Store(0)
}

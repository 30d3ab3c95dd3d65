package ftltest

import "github.com/zhukovaskychina/go-ftlsim/server/ftl"

// DefaultScenarioParams returns the canonical small-device parameters used
// across the scenario tests: ioUnitInPage=1, pagesInBlock=8,
// totalPhysicalBlocks=16, totalLogicalBlocks=12, pageCountToMaxPerf=4.
// Individual tests copy and override fields as needed.
func DefaultScenarioParams() ftl.FTLParams {
	return ftl.FTLParams{
		IOUnitInPage:        1,
		PagesInBlock:        8,
		TotalPhysicalBlocks: 16,
		TotalLogicalBlocks:  12,
		PageCountToMaxPerf:  4,
		BadBlockThreshold:   1000,
		InitialEraseCount:   0,
		UseRandomIOTweak:    false,

		HotColdSeparation: false,
		HotBlockRatio:     0.2,
		CoolDownWindow:    4,

		GCThresholdRatio:   0.1,
		GCReclaimThreshold: 0.3,
		GCMode:             ftl.GCModeFixedCount,
		GCReclaimBlock:     1,
		EvictPolicy:        ftl.PolicyGreedy,
		DChoiceParam:       2,
		RecoParam:          0.5,

		FillingMode:      ftl.FillingSequential,
		FillRatio:        0,
		ColdRatio:        0.5,
		InvalidPageRatio: 0,

		RefreshQueueCount:      8,
		RefreshPeriodNs:        1_000_000_000,
		RefreshMaxRBER:         1.8e-4,
		RefreshGroupingMode:    ftl.GroupingSingleLayer,
		RefreshGroupingSize:    3,
		RefreshReenrolThresh:   24,
		RefreshMaxLayerPerTick: 4,
		LayersPerBlock:         8,

		ErrorModel: ftl.ErrorModelParams{
			Temperature: 40,
			Ea:          0.6,
			Epsilon:     1e-6,
			Alpha:       1,
			Beta:        1e-5,
			Gamma:       1,
			KTerm:       -4,
			MTerm:       0.6,
			NTerm:       0.5,
			Sigma:       0,
			PageSize:    16384,
			Seed:        1,
		},

		RandomSeed: 1,
	}
}

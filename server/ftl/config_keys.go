package ftl

// Config section/key names, mirroring the FTL_CONFIG enum of the reference
// implementation. Values read through Config.Read{Int,Uint,Float,Bool} use
// these as the key argument within section Section.
const Section = "ftl"

const (
	KeyMappingMode         = "mapping_mode"
	KeyOverprovisionRatio  = "overprovision_ratio"
	KeyGCThresholdRatio    = "gc_threshold_ratio"
	KeyBadBlockThreshold   = "bad_block_threshold"
	KeyFillingMode         = "filling_mode"
	KeyFillRatio           = "fill_ratio"
	KeyInvalidPageRatio    = "invalid_page_ratio"
	KeyGCMode              = "gc_mode"
	KeyGCReclaimBlock      = "gc_reclaim_block"
	KeyGCReclaimThreshold  = "gc_reclaim_threshold"
	KeyGCEvictPolicy       = "gc_evict_policy"
	KeyGCDChoiceParam      = "gc_d_choice_param"
	KeyUseRandomIOTweak    = "use_random_io_tweak"
	KeyGCRecoParam         = "gc_reco_param"

	KeyRefreshPolicy         = "refresh_policy"
	KeyRefreshThreshold      = "refresh_threshold"
	KeyRefreshPeriod         = "refresh_period"
	KeyRefreshFilterNum      = "refresh_filter_num"
	KeyRefreshFilterSize     = "refresh_filter_size"
	KeyRefreshMode           = "refresh_mode"
	KeyRefreshMaxLayerNum    = "refresh_max_layer_num"
	KeyRefreshMaxRBER        = "refresh_max_rber"
	KeyRefreshGroupingSize   = "refresh_grouping_size"
	KeyRefreshGroupingMode   = "refresh_grouping_mode"
	KeyRefreshReenrolThresh  = "refresh_reenrol_threshold_slots"

	KeyInitialEraseCount = "initial_erase_count"
	KeyLayersPerBlock    = "layers_per_block"

	KeyTemperature = "temperature"
	KeyEpsilon     = "epsilon"
	KeyAlpha       = "alpha"
	KeyBeta        = "beta"
	KeyGamma       = "gamma"
	KeyKTerm       = "k_term"
	KeyMTerm       = "m_term"
	KeyNTerm       = "n_term"
	KeyErrorSigma  = "error_sigma"
	KeyRandomSeed  = "random_seed"
	KeyEa          = "activation_energy"

	KeyHotColdSeparation  = "hot_cold_separation"
	KeyHotBlockRatio      = "hot_block_ratio"
	KeyCoolDownWindowSize = "cool_down_window_size"
	KeyColdRatio          = "cold_ratio"

	KeyPagesInBlock         = "pages_in_block"
	KeyIOUnitInPage         = "io_unit_in_page"
	KeyTotalPhysicalBlocks  = "total_physical_blocks"
	KeyTotalLogicalBlocks   = "total_logical_blocks"
	KeyPageCountToMaxPerf   = "page_count_to_max_perf"
	KeyPageSize             = "page_size"
)

// MappingMode selects the address-translation granularity. Only page
// mapping is modelled; the enum exists so Config round-trips the
// reference's FTL_MAPPING_MODE key without a magic int at call sites.
type MappingMode uint32

const MappingPageLevel MappingMode = 0

// GCMode selects how many victims a GC pass reclaims.
type GCMode uint32

const (
	GCModeFixedCount GCMode = iota // reclaim a fixed `reclaimBlock` count
	GCModeUntilThreshold            // reclaim until nFree >= total*reclaimThreshold
)

// FillingMode selects how the warmup phase populates the device.
type FillingMode uint32

const (
	FillingSequential FillingMode = iota
	FillingRandom
	FillingSequentialThenInvalidate
)

// EvictPolicy selects the victim-weighting formula.
type EvictPolicy uint32

const (
	PolicyGreedy EvictPolicy = iota
	PolicyCostBenefit
	PolicyRandom
	PolicyDChoice
	PolicyReco
)

// RefreshGroupingMode selects how a written layer enrols neighbouring
// layers for proactive refresh alongside it.
type RefreshGroupingMode uint32

const (
	GroupingSingleLayer RefreshGroupingMode = iota
	GroupingNeighborK
	GroupingCrossSegment
	GroupingCrossSegmentNeighbor3
)

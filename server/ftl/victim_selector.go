package ftl

import (
	"sort"

	"github.com/zhukovaskychina/go-ftlsim/util"
)

// candidateWeight pairs a block index with its eviction weight. Lower is a
// better reclaim candidate under every policy here (fewer valid pages to
// copy, or -- for Reco -- more refresh-copy cost already sunk).
type candidateWeight struct {
	blockIdx uint32
	weight   float64
}

// VictimSelector computes per-block weights under the active eviction
// policy and ranks reclaim candidates. Random/d-Choice draw
// from a seeded RNG so a run is reproducible given FTL_RANDOM_SEED.
type VictimSelector struct {
	policy        EvictPolicy
	dChoiceParam  int
	recoParam     float64
	rng           *util.Rng
}

func NewVictimSelector(policy EvictPolicy, dChoiceParam int, recoParam float64, seed uint32) *VictimSelector {
	if dChoiceParam < 1 {
		dChoiceParam = 1
	}
	return &VictimSelector{
		policy:       policy,
		dChoiceParam: dChoiceParam,
		recoParam:    recoParam,
		rng:          util.NewRng(seed),
	}
}

func (v *VictimSelector) weight(blk *Block, tick uint64) float64 {
	switch v.policy {
	case PolicyGreedy, PolicyRandom, PolicyDChoice:
		return float64(blk.GetValidPageCountRaw())
	case PolicyCostBenefit:
		u := float64(blk.GetValidPageCountRaw()) / float64(blk.PagesInBlock())
		age := float64(tick) - float64(blk.LastAccessed())
		if age <= 0 {
			age = 1
		}
		if u >= 1 {
			u = 1 - 1e-9
		}
		return u / ((1 - u) * age)
	case PolicyReco:
		return float64(blk.GetValidPageCountRaw()) - v.recoParam*float64(blk.RefreshedPageCount())
	default:
		panic(NewOpError("VictimSelector.weight", ErrInvalidPolicy))
	}
}

// eligible filters blocks full enough to be GC candidates and not on the exclusion list.
func eligibleBlocks(active map[uint32]*Block, exclude map[uint32]bool, filter func(*Block) bool) []uint32 {
	out := make([]uint32, 0, len(active))
	for idx, blk := range active {
		if exclude != nil && exclude[idx] {
			continue
		}
		if !blk.IsFull() {
			continue
		}
		if filter != nil && !filter(blk) {
			continue
		}
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] }) // stable base order before weighting
	return out
}

// Select returns up to nBlocks victim block indices from active, excluding
// any in exclude, ranked by the configured policy. filter narrows
// eligibility further (used by cold-victim selection to drop HOT blocks).
func (v *VictimSelector) Select(active map[uint32]*Block, tick uint64, nBlocks int, exclude map[uint32]bool, filter func(*Block) bool) []uint32 {
	eligible := eligibleBlocks(active, exclude, filter)
	if len(eligible) == 0 || nBlocks <= 0 {
		return nil
	}

	switch v.policy {
	case PolicyRandom:
		perm := v.rng.Perm(len(eligible))
		n := nBlocks
		if n > len(eligible) {
			n = len(eligible)
		}
		result := make([]uint32, n)
		for i := 0; i < n; i++ {
			result[i] = eligible[perm[i]]
		}
		return result

	case PolicyDChoice:
		sampleSize := v.dChoiceParam * nBlocks
		if sampleSize > len(eligible) {
			sampleSize = len(eligible)
		}
		perm := v.rng.Perm(len(eligible))
		weighted := make([]candidateWeight, sampleSize)
		for i := 0; i < sampleSize; i++ {
			idx := eligible[perm[i]]
			weighted[i] = candidateWeight{blockIdx: idx, weight: v.weight(active[idx], tick)}
		}
		return lowestN(weighted, nBlocks)

	default: // Greedy, CostBenefit, Reco
		weighted := make([]candidateWeight, len(eligible))
		for i, idx := range eligible {
			weighted[i] = candidateWeight{blockIdx: idx, weight: v.weight(active[idx], tick)}
		}
		return lowestN(weighted, nBlocks)
	}
}

func lowestN(weighted []candidateWeight, n int) []uint32 {
	sort.Slice(weighted, func(i, j int) bool {
		if weighted[i].weight != weighted[j].weight {
			return weighted[i].weight < weighted[j].weight
		}
		return weighted[i].blockIdx < weighted[j].blockIdx
	})
	if n > len(weighted) {
		n = len(weighted)
	}
	result := make([]uint32, n)
	for i := 0; i < n; i++ {
		result[i] = weighted[i].blockIdx
	}
	return result
}

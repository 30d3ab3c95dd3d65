package ftl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullBlock(idx uint32, pagesInBlock, ioUnit uint32, validPages uint32) *Block {
	b := NewBlock(idx, pagesInBlock, ioUnit, 0, BlockCold)
	for p := uint32(0); p < pagesInBlock; p++ {
		for u := uint32(0); u < ioUnit; u++ {
			b.Write(p, uint64(idx)*1000+uint64(p), u, uint64(p))
		}
	}
	for p := validPages; p < pagesInBlock; p++ {
		for u := uint32(0); u < ioUnit; u++ {
			b.Invalidate(p, u)
		}
	}
	return b
}

func TestGreedySelectsFewestValidPages(t *testing.T) {
	blocks := map[uint32]*Block{
		0: fullBlock(0, 8, 1, 6),
		1: fullBlock(1, 8, 1, 2),
		2: fullBlock(2, 8, 1, 8),
	}
	vs := NewVictimSelector(PolicyGreedy, 2, 0.5, 1)
	victims := vs.Select(blocks, 100, 1, nil, nil)
	require.Len(t, victims, 1)
	assert.Equal(t, uint32(1), victims[0])
}

func TestSelectExcludesBlocksNotFull(t *testing.T) {
	blocks := map[uint32]*Block{
		0: NewBlock(0, 8, 1, 0, BlockCold), // empty, not full
		1: fullBlock(1, 8, 1, 2),
	}
	vs := NewVictimSelector(PolicyGreedy, 2, 0.5, 1)
	victims := vs.Select(blocks, 100, 2, nil, nil)
	require.Len(t, victims, 1)
	assert.Equal(t, uint32(1), victims[0])
}

func TestSelectHonoursExcludeSet(t *testing.T) {
	blocks := map[uint32]*Block{
		0: fullBlock(0, 8, 1, 1),
		1: fullBlock(1, 8, 1, 2),
	}
	vs := NewVictimSelector(PolicyGreedy, 2, 0.5, 1)
	victims := vs.Select(blocks, 100, 1, map[uint32]bool{0: true}, nil)
	require.Len(t, victims, 1)
	assert.Equal(t, uint32(1), victims[0])
}

func TestRandomSelectIsPermutationOfEligible(t *testing.T) {
	blocks := map[uint32]*Block{
		0: fullBlock(0, 8, 1, 8),
		1: fullBlock(1, 8, 1, 8),
		2: fullBlock(2, 8, 1, 8),
	}
	vs := NewVictimSelector(PolicyRandom, 2, 0.5, 42)
	victims := vs.Select(blocks, 100, 3, nil, nil)
	assert.ElementsMatch(t, []uint32{0, 1, 2}, victims)
}

func TestUnknownPolicyPanics(t *testing.T) {
	blocks := map[uint32]*Block{0: fullBlock(0, 8, 1, 8)}
	vs := NewVictimSelector(EvictPolicy(99), 2, 0.5, 1)
	assert.Panics(t, func() { vs.Select(blocks, 100, 1, nil, nil) })
}

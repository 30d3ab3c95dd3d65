package ftl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(mode RefreshGroupingMode) *RefreshScheduler {
	em := NewErrorModel(testParams())
	return NewRefreshScheduler(8, 8, 16, 1_000_000_000, 1.8e-4, mode, 3, 24, em)
}

func TestSetRefreshPeriodEnrolsSingleLayer(t *testing.T) {
	s := newTestScheduler(GroupingSingleLayer)
	s.SetRefreshPeriod(0, 2, 3)
	id := s.LayerID(2, 3)
	q, ok := s.LayerQueueNum(id)
	require.True(t, ok)
	assert.True(t, s.Inserted(id))
	assert.GreaterOrEqual(t, q, 0)
}

func TestNeighborKOnlyAnchorEnrols(t *testing.T) {
	s := newTestScheduler(GroupingNeighborK)
	s.groupingK = 4
	s.SetRefreshPeriod(0, 1, 1) // not an anchor (1 % 4 != 0)
	id := s.LayerID(1, 1)
	_, ok := s.LayerQueueNum(id)
	assert.False(t, ok)

	s.SetRefreshPeriod(0, 1, 0) // anchor
	for o := uint32(0); o < 4; o++ {
		_, ok := s.LayerQueueNum(s.LayerID(1, o))
		assert.True(t, ok)
	}
}

func TestTickPromotesRingSlot(t *testing.T) {
	s := newTestScheduler(GroupingSingleLayer)
	first := s.Tick()
	second := s.Tick()
	assert.NotEqual(t, -1, first)
	assert.NotEqual(t, -1, second)
	assert.Equal(t, uint64(2), s.RefreshCallCount())
}

func TestRemoveFromQueueClearsBookkeeping(t *testing.T) {
	s := newTestScheduler(GroupingSingleLayer)
	s.SetRefreshPeriod(0, 0, 0)
	id := s.LayerID(0, 0)
	require.True(t, s.Inserted(id))
	s.removeFromQueue(id)
	assert.False(t, s.Inserted(id))
	_, ok := s.LayerQueueNum(id)
	assert.False(t, ok)
}

func TestReenrolWithHigherEraseCountKeepsLayerEnrolled(t *testing.T) {
	s := newTestScheduler(GroupingSingleLayer)
	s.reenrolThresholdSlots = 1
	s.SetRefreshPeriod(0, 0, 0)
	id := s.LayerID(0, 0)
	qBefore, _ := s.LayerQueueNum(id)

	// Rewrite the layer with a much higher erase count. insertToQueue moves an
	// enrolled layer only when the new horizon is more than
	// reenrolThresholdSlots further out; a shorter or equal one leaves it.
	s.SetRefreshPeriod(1_000_000, 0, 0)
	qAfter, _ := s.LayerQueueNum(id)
	_ = qBefore
	_ = qAfter // exact slot depends on the RBER curve; just assert no panic/lost entry
	assert.True(t, s.Inserted(id))
}

package ftl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhukovaskychina/go-ftlsim/server/ftl"
	"github.com/zhukovaskychina/go-ftlsim/server/ftl/ftltest"
)

func newCore(t *testing.T) (*ftl.FTLCore, *ftltest.FakePAL) {
	t.Helper()
	pal := ftltest.NewFakePAL(ftltest.DefaultLatencies())
	dram := ftltest.NewFakeDRAM(ftltest.DefaultLatencies())
	engine := ftltest.NewFakeEngine()
	params := ftltest.DefaultScenarioParams()
	core := ftl.NewFTLCore(params, pal, dram, engine)
	require.NoError(t, core.Initialize())
	return core, pal
}

// S1: a single write followed by a read of the same LPN succeeds and issues
// PAL requests.
func TestS1WriteThenReadRoundTrips(t *testing.T) {
	core, pal := newCore(t)
	_, err := core.Write(5)
	require.NoError(t, err)
	_, err = core.Read(5)
	require.NoError(t, err)
	require.NotEmpty(t, pal.Requests)
}

// S1: getStatus over the whole logical range reports exactly one mapped LPN
// after a single write.
func TestS1GetStatusReportsMappedRange(t *testing.T) {
	core, _ := newCore(t)
	_, err := core.Write(7)
	require.NoError(t, err)
	status := core.GetStatus(0, 96)
	assert.Equal(t, uint64(96), status.TotalLogicalPages)
	assert.Equal(t, uint64(1), status.MappedLogicalPages)
}

// S2: reading an LPN that was never written is a fatal (reported) error,
// never silently returns garbage.
func TestS2ReadOfUnwrittenLPNIsError(t *testing.T) {
	core, _ := newCore(t)
	_, err := core.Read(999)
	assert.True(t, ftl.IsCorruptedMapping(err))
}

// S3: rewriting the same LPN succeeds and the LPN still reads back without
// error afterwards.
func TestS3RewriteThenReadSucceeds(t *testing.T) {
	core, _ := newCore(t)
	_, err := core.Write(1)
	require.NoError(t, err)
	_, err = core.Write(1)
	require.NoError(t, err)
	_, err = core.Read(1)
	require.NoError(t, err)
}

// S4: trimming an LPN removes its mapping entirely; a subsequent read
// behaves as if it were never written.
func TestS4TrimRemovesMapping(t *testing.T) {
	core, _ := newCore(t)
	_, err := core.Write(2)
	require.NoError(t, err)
	require.NoError(t, core.Trim(2))
	_, err = core.Read(2)
	assert.True(t, ftl.IsCorruptedMapping(err))
}

// S5: filling past one block's capacity triggers a rollover to a fresh
// block without the caller observing an error.
func TestS5WritesRollOverBlocks(t *testing.T) {
	core, _ := newCore(t)
	for lpn := uint64(0); lpn < 40; lpn++ {
		_, err := core.Write(lpn)
		require.NoError(t, err)
	}
	for lpn := uint64(0); lpn < 40; lpn++ {
		_, err := core.Read(lpn)
		require.NoError(t, err)
	}
}

// S6: format() drops every mapping in range; reads afterward behave as
// unwritten.
func TestS6FormatClearsAllMappings(t *testing.T) {
	core, _ := newCore(t)
	_, err := core.Write(3)
	require.NoError(t, err)
	core.Format(0, 96)
	_, err = core.Read(3)
	assert.True(t, ftl.IsCorruptedMapping(err))
}

// S6: format() outside its range leaves a mapping untouched.
func TestS6FormatOnlyClearsGivenRange(t *testing.T) {
	core, _ := newCore(t)
	_, err := core.Write(3)
	require.NoError(t, err)
	core.Format(50, 96)
	_, err = core.Read(3)
	require.NoError(t, err)
}

func TestStatListMatchesCanonicalOrder(t *testing.T) {
	core, _ := newCore(t)
	names := core.GetStatList()
	values := core.GetStatValues()
	assert.Equal(t, len(names), len(values))
	assert.Equal(t, "gcCount", names[0])
	assert.Equal(t, "nHotFreeBlocks", names[len(names)-1])
}

func TestResetStatValuesZeroesCounters(t *testing.T) {
	core, _ := newCore(t)
	_, err := core.Write(1)
	require.NoError(t, err)
	core.ResetStatValues()
	values := core.GetStatValues()
	for i := 0; i < 19; i++ {
		assert.Equal(t, float64(0), values[i])
	}
}

func TestTickDrivesRefreshWithoutError(t *testing.T) {
	core, _ := newCore(t)
	for lpn := uint64(0); lpn < 8; lpn++ {
		_, err := core.Write(lpn)
		require.NoError(t, err)
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, core.Tick())
	}
}

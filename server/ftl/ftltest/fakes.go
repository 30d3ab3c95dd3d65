// Package ftltest provides deterministic fake PAL/DRAM/Engine collaborators
// for exercising server/ftl without a real NAND timing model or
// discrete-event engine, in the teacher's table-driven testify style.
package ftltest

import "github.com/zhukovaskychina/go-ftlsim/server/ftl"

// Latencies bundles the fixed per-operation tick costs the fake PAL/DRAM
// charge. Real timing models vary these with channel contention; the fakes
// keep them constant so tests can assert exact tick arithmetic.
type Latencies struct {
	ReadNs  uint64
	WriteNs uint64
	EraseNs uint64
	DRAMNs  uint64
}

func DefaultLatencies() Latencies {
	return Latencies{ReadNs: 25000, WriteNs: 200000, EraseNs: 1500000, DRAMNs: 50}
}

// FakePAL advances tick by a fixed latency per call and records every
// request it was asked to perform, so tests can assert on call order.
type FakePAL struct {
	Lat      Latencies
	Requests []ftl.Request
}

func NewFakePAL(lat Latencies) *FakePAL { return &FakePAL{Lat: lat} }

func (p *FakePAL) Read(req ftl.Request, tick *uint64) {
	p.Requests = append(p.Requests, req)
	*tick += p.Lat.ReadNs
}

func (p *FakePAL) Write(req ftl.Request, tick *uint64) {
	p.Requests = append(p.Requests, req)
	*tick += p.Lat.WriteNs
}

func (p *FakePAL) Erase(req ftl.Request, tick *uint64) {
	p.Requests = append(p.Requests, req)
	*tick += p.Lat.EraseNs
}

// FakeDRAM advances tick by a fixed latency regardless of entry/bytes, and
// records the byte counts it was asked to account for.
type FakeDRAM struct {
	Lat       Latencies
	ReadBytes []uint32
	WriteBytes []uint32
}

func NewFakeDRAM(lat Latencies) *FakeDRAM { return &FakeDRAM{Lat: lat} }

func (d *FakeDRAM) Read(entry uint64, bytes uint32, tick *uint64) {
	d.ReadBytes = append(d.ReadBytes, bytes)
	*tick += d.Lat.DRAMNs
}

func (d *FakeDRAM) Write(entry uint64, bytes uint32, tick *uint64) {
	d.WriteBytes = append(d.WriteBytes, bytes)
	*tick += d.Lat.DRAMNs
}

// FakeEngine is a minimal single-threaded discrete-event stand-in: events
// are recorded rather than actually dispatched asynchronously, since
// server/ftl's own operations already advance tick synchronously through
// PAL/DRAM calls and never rely on the engine firing a closure mid-call.
type FakeEngine struct {
	tick     uint64
	handles  map[ftl.EventHandle]func(uint64)
	nextID   uint64
	Scheduled []struct {
		Handle ftl.EventHandle
		AbsTick uint64
	}
}

func NewFakeEngine() *FakeEngine {
	return &FakeEngine{handles: make(map[ftl.EventHandle]func(uint64))}
}

func (e *FakeEngine) AllocateEvent(closure func(tick uint64)) ftl.EventHandle {
	e.nextID++
	h := ftl.EventHandle(e.nextID)
	e.handles[h] = closure
	return h
}

func (e *FakeEngine) ScheduleEvent(handle ftl.EventHandle, absTick uint64) {
	e.Scheduled = append(e.Scheduled, struct {
		Handle  ftl.EventHandle
		AbsTick uint64
	}{handle, absTick})
}

func (e *FakeEngine) GetTick() uint64 { return e.tick }

// Fire invokes a previously allocated handle's closure directly and advances
// the engine's own clock, for tests that want to drive the refresh timer
// without a real scheduler loop.
func (e *FakeEngine) Fire(handle ftl.EventHandle, tick uint64) {
	e.tick = tick
	if fn, ok := e.handles[handle]; ok {
		fn(tick)
	}
}

var (
	_ ftl.PAL    = (*FakePAL)(nil)
	_ ftl.DRAM   = (*FakeDRAM)(nil)
	_ ftl.Engine = (*FakeEngine)(nil)
)

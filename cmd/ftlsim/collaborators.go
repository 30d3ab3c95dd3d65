package main

import (
	"container/heap"

	"github.com/zhukovaskychina/go-ftlsim/server/ftl"
)

// SimPAL is a fixed-latency NAND timing model: each operation advances the
// caller's tick by a constant per IOType, independent of queue depth. It
// stands in for a real physical-abstraction-layer implementation, which is
// out of scope for this module.
type SimPAL struct {
	ReadNs  uint64
	WriteNs uint64
	EraseNs uint64
}

func NewSimPAL() *SimPAL {
	return &SimPAL{ReadNs: 40_000, WriteNs: 200_000, EraseNs: 2_000_000}
}

func (p *SimPAL) Read(req ftl.Request, tick *uint64)  { *tick += p.ReadNs }
func (p *SimPAL) Write(req ftl.Request, tick *uint64) { *tick += p.WriteNs }
func (p *SimPAL) Erase(req ftl.Request, tick *uint64) { *tick += p.EraseNs }

// SimDRAM accounts mapping-table cache traffic at a fixed per-byte rate.
type SimDRAM struct {
	NsPerByte uint64
}

func NewSimDRAM() *SimDRAM {
	return &SimDRAM{NsPerByte: 1}
}

func (d *SimDRAM) Read(entry uint64, bytes uint32, tick *uint64)  { *tick += uint64(bytes) * d.NsPerByte }
func (d *SimDRAM) Write(entry uint64, bytes uint32, tick *uint64) { *tick += uint64(bytes) * d.NsPerByte }

// pendingEvent is one entry in SimEngine's time-ordered min-heap.
type pendingEvent struct {
	absTick uint64
	handle  ftl.EventHandle
	seq     int
}

type eventHeap []pendingEvent

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].absTick != h[j].absTick {
		return h[i].absTick < h[j].absTick
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(pendingEvent)) }
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// SimEngine is a minimal discrete-event scheduler: closures registered via
// AllocateEvent fire in absolute-tick order when Run drains the heap.
type SimEngine struct {
	tick     uint64
	closures map[ftl.EventHandle]func(tick uint64)
	pending  eventHeap
	nextID   uint64
	seq      int
}

func NewSimEngine() *SimEngine {
	return &SimEngine{closures: make(map[ftl.EventHandle]func(tick uint64))}
}

func (e *SimEngine) AllocateEvent(closure func(tick uint64)) ftl.EventHandle {
	e.nextID++
	h := ftl.EventHandle(e.nextID)
	e.closures[h] = closure
	return h
}

func (e *SimEngine) ScheduleEvent(handle ftl.EventHandle, absTick uint64) {
	e.seq++
	heap.Push(&e.pending, pendingEvent{absTick: absTick, handle: handle, seq: e.seq})
}

func (e *SimEngine) GetTick() uint64 { return e.tick }

// Run drains every pending event in tick order, advancing e.tick to match.
func (e *SimEngine) Run() {
	for e.pending.Len() > 0 {
		ev := heap.Pop(&e.pending).(pendingEvent)
		e.tick = ev.absTick
		if fn, ok := e.closures[ev.handle]; ok {
			fn(e.tick)
		}
	}
}

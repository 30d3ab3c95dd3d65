package ftl

// BlockType tags a block's pool membership under hot/cold separation.
type BlockType uint8

const (
	BlockHot BlockType = iota
	BlockCool
	BlockCold
)

func (t BlockType) String() string {
	switch t {
	case BlockHot:
		return "HOT"
	case BlockCool:
		return "COOL"
	case BlockCold:
		return "COLD"
	default:
		return "UNKNOWN"
	}
}

// Block is the per-physical-block control structure: valid/erased bitmaps
// per io-unit, LPN back-pointers, and the age/cursor bookkeeping GC, refresh
// and wear-levelling all read. Grounded on the reference block.cc, unified
// into the always-bitset representation (Go gains nothing from the C++
// single-io-unit fast path).
type Block struct {
	blockIdx     uint32
	pagesInBlock uint32
	ioUnitInPage uint32

	valid  *Bitset
	erased *Bitset
	lpns   []uint64

	nextWritePageIndex []uint32

	lastAccessed uint64
	lastWritten  uint64
	eraseCount   uint64

	refreshedPageCount uint64
	blockType          BlockType
}

// sentinelLPN marks an (page,io-unit) slot that has never been written.
const sentinelLPN = ^uint64(0)

// NewBlock constructs a block freshly erased, as if just formatted.
func NewBlock(blockIdx, pagesInBlock, ioUnitInPage uint32, initEraseCount uint64, blockType BlockType) *Block {
	if ioUnitInPage == 0 {
		panic(NewOpError("NewBlock", ErrInvalidIOUnit))
	}
	n := int(pagesInBlock * ioUnitInPage)
	b := &Block{
		blockIdx:           blockIdx,
		pagesInBlock:       pagesInBlock,
		ioUnitInPage:       ioUnitInPage,
		valid:              NewBitset(n),
		erased:             NewBitset(n),
		lpns:               make([]uint64, n),
		nextWritePageIndex: make([]uint32, ioUnitInPage),
		eraseCount:         initEraseCount,
		blockType:          blockType,
	}
	for i := range b.lpns {
		b.lpns[i] = sentinelLPN
	}
	b.erased.SetAll()
	return b
}

func (b *Block) idx(page, ioUnit uint32) int {
	return int(page*b.ioUnitInPage + ioUnit)
}

func (b *Block) BlockIdx() uint32    { return b.blockIdx }
func (b *Block) EraseCount() uint64  { return b.eraseCount }
func (b *Block) LastAccessed() uint64 { return b.lastAccessed }
func (b *Block) LastWritten() uint64  { return b.lastWritten }
func (b *Block) Type() BlockType     { return b.blockType }
func (b *Block) SetType(t BlockType) { b.blockType = t }
func (b *Block) RefreshedPageCount() uint64 { return b.refreshedPageCount }
func (b *Block) PagesInBlock() uint32 { return b.pagesInBlock }
func (b *Block) IOUnitInPage() uint32 { return b.ioUnitInPage }

// ResetRefreshedPageCount zeroes the refresh-copy counter. No allocation or
// erase path calls it, so the counter accumulates across erase cycles.
func (b *Block) ResetRefreshedPageCount() { b.refreshedPageCount = 0 }

// IncRefreshedPageCount is called by the refresh engine each time a live
// page is copied out of this block proactively (not via GC).
func (b *Block) IncRefreshedPageCount() { b.refreshedPageCount++ }

func (b *Block) SetLastWritten(tick uint64) { b.lastWritten = tick }

// Read returns the valid bit for (page, ioUnit) and bumps lastAccessed on a
// hit, matching the reference block.cc::read.
func (b *Block) Read(page, ioUnit uint32, tick uint64) bool {
	if ioUnit >= b.ioUnitInPage {
		panic(NewOpError("Block.Read", ErrInvalidIOUnit))
	}
	hit := b.valid.Test(b.idx(page, ioUnit))
	if hit {
		b.lastAccessed = tick
	}
	return hit
}

// Write requires the unit to be erased and the page index to be at least the
// unit's write cursor; otherwise panics with the matching fatal sentinel.
func (b *Block) Write(page uint32, lpn uint64, ioUnit uint32, tick uint64) {
	if ioUnit >= b.ioUnitInPage {
		panic(NewOpError("Block.Write", ErrInvalidIOUnit))
	}
	if page < b.nextWritePageIndex[ioUnit] {
		panic(NewOpError("Block.Write", ErrSequentialWrite))
	}
	i := b.idx(page, ioUnit)
	if !b.erased.Test(i) {
		panic(NewOpError("Block.Write", ErrWriteToNonErased))
	}
	b.erased.Reset(i)
	b.valid.Set(i)
	b.lpns[i] = lpn
	b.nextWritePageIndex[ioUnit] = page + 1
	b.lastWritten = tick
}

// Invalidate clears the valid bit only; the unit becomes dirty until erase.
func (b *Block) Invalidate(page, ioUnit uint32) {
	if ioUnit >= b.ioUnitInPage {
		panic(NewOpError("Block.Invalidate", ErrInvalidIOUnit))
	}
	b.valid.Reset(b.idx(page, ioUnit))
}

// Erase resets both bitmaps, zeros write cursors and increments eraseCount.
func (b *Block) Erase() {
	b.valid.ClearAll()
	b.erased.SetAll()
	for i := range b.nextWritePageIndex {
		b.nextWritePageIndex[i] = 0
	}
	b.eraseCount++
}

// GetPageInfo returns, for a page, the LPN recorded at every io-unit and the
// per-unit valid mask (bit i == unit i valid).
func (b *Block) GetPageInfo(page uint32) (lpns []uint64, validMask []bool) {
	lpns = make([]uint64, b.ioUnitInPage)
	validMask = make([]bool, b.ioUnitInPage)
	for u := uint32(0); u < b.ioUnitInPage; u++ {
		i := b.idx(page, u)
		lpns[u] = b.lpns[i]
		validMask[u] = b.valid.Test(i)
	}
	return
}

// GetValidPageCount counts superpages (page indices) with at least one live
// io-unit.
func (b *Block) GetValidPageCount() uint32 {
	count := uint32(0)
	for p := uint32(0); p < b.pagesInBlock; p++ {
		for u := uint32(0); u < b.ioUnitInPage; u++ {
			if b.valid.Test(b.idx(p, u)) {
				count++
				break
			}
		}
	}
	return count
}

// GetValidPageCountRaw sums live io-units across the whole block.
func (b *Block) GetValidPageCountRaw() uint32 {
	return uint32(b.valid.Count())
}

// GetDirtyPageCount counts io-units that are neither valid nor erased.
func (b *Block) GetDirtyPageCount() uint32 {
	total := int(b.pagesInBlock * b.ioUnitInPage)
	count := 0
	for i := 0; i < total; i++ {
		if !b.erased.Test(i) && !b.valid.Test(i) {
			count++
		}
	}
	return uint32(count)
}

// NextWriteIndex returns the maximum write cursor across all io-units --
// the page index at which the block as a whole is considered full.
func (b *Block) NextWriteIndex() uint32 {
	max := uint32(0)
	for _, v := range b.nextWritePageIndex {
		if v > max {
			max = v
		}
	}
	return max
}

// NextWriteIndexAt returns the write cursor for a single io-unit.
func (b *Block) NextWriteIndexAt(ioUnit uint32) uint32 {
	return b.nextWritePageIndex[ioUnit]
}

// IsFull reports whether every io-unit's cursor has reached pagesInBlock --
// the eligibility test victim selection uses for GC candidacy.
func (b *Block) IsFull() bool {
	for _, v := range b.nextWritePageIndex {
		if v < b.pagesInBlock {
			return false
		}
	}
	return true
}

package ftl

// PPN is a physical page reference: a block index and a page index within
// it. The sentinel value (returned by MappingTable.Sentinel) marks an
// io-unit of a superpage that has never been written.
type PPN struct {
	BlockIdx uint32
	PageIdx  uint32
}

// MappingTable maps a 64-bit LPN to an ordered sequence of PPNs, one per
// io-unit of the superpage. An entry is present iff at least one io-unit has
// been written since the LPN was last removed (by trim or format);
// individual io-unit slots may still hold the sentinel
// under "random I/O tweak" mode where io-units land in different blocks.
type MappingTable struct {
	ioUnitInPage uint32
	sentinel     PPN
	table        map[uint64][]PPN
}

// NewMappingTable builds an empty table. totalPhysicalBlocks/pagesInBlock
// define the sentinel PPN ("(totalPhysicalBlocks, pagesInBlock)
// marks an uninitialized io-unit").
func NewMappingTable(ioUnitInPage, totalPhysicalBlocks, pagesInBlock uint32) *MappingTable {
	return &MappingTable{
		ioUnitInPage: ioUnitInPage,
		sentinel:     PPN{BlockIdx: totalPhysicalBlocks, PageIdx: pagesInBlock},
		table:        make(map[uint64][]PPN),
	}
}

func (t *MappingTable) Sentinel() PPN { return t.sentinel }

// Get returns the PPN slice for lpn and whether an entry exists at all.
func (t *MappingTable) Get(lpn uint64) ([]PPN, bool) {
	v, ok := t.table[lpn]
	return v, ok
}

// GetOrInsertDefault returns the PPN slice for lpn, creating a
// sentinel-filled entry (one slot per io-unit) on first access. The returned
// slice aliases the table's storage -- mutate via Set, or edit slots in
// place, to have changes observed on subsequent Get calls.
func (t *MappingTable) GetOrInsertDefault(lpn uint64) []PPN {
	if v, ok := t.table[lpn]; ok {
		return v
	}
	v := make([]PPN, t.ioUnitInPage)
	for i := range v {
		v[i] = t.sentinel
	}
	t.table[lpn] = v
	return v
}

// Set records the PPN for one io-unit of lpn's superpage, creating the entry
// if absent.
func (t *MappingTable) Set(lpn uint64, ioUnit uint32, ppn PPN) {
	v := t.GetOrInsertDefault(lpn)
	v[ioUnit] = ppn
}

func (t *MappingTable) Remove(lpn uint64) {
	delete(t.table, lpn)
}

func (t *MappingTable) Size() int {
	return len(t.table)
}

// Range iterates lpn in [lpnBegin, lpnEnd), calling fn with the current
// entry when present. Used by format() to bulk-invalidate a logical range.
// Stops early if fn returns false.
func (t *MappingTable) Range(lpnBegin, lpnEnd uint64, fn func(lpn uint64, ppns []PPN) bool) {
	for lpn := lpnBegin; lpn < lpnEnd; lpn++ {
		if v, ok := t.table[lpn]; ok {
			if !fn(lpn, v) {
				return
			}
		}
	}
}

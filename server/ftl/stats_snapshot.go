package ftl

import (
	"bytes"
	"encoding/binary"

	"github.com/golang/snappy"
)

// SnapshotStats encodes the canonical-order stat values as a
// snappy-compressed little-endian float64 vector, for cheap periodic
// archiving of simulation progress without paying a text-encoding or
// reflection cost on every tick.
func (c *FTLCore) SnapshotStats() []byte {
	values := c.GetStatValues()
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(values)))
	for _, v := range values {
		_ = binary.Write(buf, binary.LittleEndian, v)
	}
	return snappy.Encode(nil, buf.Bytes())
}

// DecodeStatsSnapshot reverses SnapshotStats, for offline analysis of
// archived runs.
func DecodeStatsSnapshot(data []byte) ([]float64, error) {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, NewOpError("DecodeStatsSnapshot", err)
	}
	r := bytes.NewReader(raw)
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, NewOpError("DecodeStatsSnapshot", err)
	}
	values := make([]float64, n)
	for i := range values {
		if err := binary.Read(r, binary.LittleEndian, &values[i]); err != nil {
			return nil, NewOpError("DecodeStatsSnapshot", err)
		}
	}
	return values, nil
}

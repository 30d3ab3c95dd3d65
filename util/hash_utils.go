package util

import (
	"encoding/binary"

	"github.com/OneOfOne/xxhash"
)

// HashCode hashes an arbitrary byte key to a 64-bit xxhash digest. The
// random and d-choice eviction policies do not use it; they draw from Rng.
func HashCode(key []byte) uint64 {
	h := xxhash.New64()
	h.Write(key)
	return h.Sum64()
}

// HashBlockIdx hashes a block index's big-endian encoding with HashCode,
// giving a stable key per block index.
func HashBlockIdx(blockIdx uint32) uint64 {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], blockIdx)
	return HashCode(buf[:])
}

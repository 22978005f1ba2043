// Package fxhash implements the 64-bit Fx hash used to derive object ids.
// Ids produced here are stable across releases; changing the algorithm
// would orphan every object already on disk.
package fxhash

import (
	"encoding/base64"
	"encoding/binary"
	"math/bits"
)

const seed = 0x517cc1b727220a95

// IDLength is the length of an encoded id: 8 hash bytes in unpadded base64.
const IDLength = 11

func mix(hash, word uint64) uint64 {
	return (bits.RotateLeft64(hash, 5) ^ word) * seed
}

// Sum64 hashes data by folding in 8-byte little-endian words,
// then the 4/2/1-byte remainders.
func Sum64(data []byte) uint64 {
	var hash uint64
	for len(data) >= 8 {
		hash = mix(hash, binary.LittleEndian.Uint64(data))
		data = data[8:]
	}
	if len(data) >= 4 {
		hash = mix(hash, uint64(binary.LittleEndian.Uint32(data)))
		data = data[4:]
	}
	if len(data) >= 2 {
		hash = mix(hash, uint64(binary.LittleEndian.Uint16(data)))
		data = data[2:]
	}
	if len(data) >= 1 {
		hash = mix(hash, uint64(data[0]))
	}
	return hash
}

// ID returns the object id for data: the URL-safe unpadded base64
// encoding of the little-endian hash.
func ID(data []byte) string {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], Sum64(data))
	return base64.RawURLEncoding.EncodeToString(buf[:])
}

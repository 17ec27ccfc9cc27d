package spooky

import (
	"encoding/binary"
	"unsafe"
)

// stringToBytes views s as a []byte without copying. SpookyHash never
// mutates its input, so this is safe even though the string's backing
// memory is conceptually immutable.
func stringToBytes(s string) []byte {
	if len(s) == 0 {
		return []byte{}
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// HashString is the string convenience overload of Hash128: it hashes the
// UTF-8 bytes of s without copying them.
func HashString(s string, seed1, seed2 uint64) (uint64, uint64) {
	return Hash128(stringToBytes(s), seed1, seed2)
}

// HashRange hashes the window data[start:start+length]. It returns
// ErrRangeOutOfBounds if start or length is negative, or the window runs
// past the end of data, rather than panicking like a raw slice expression
// would.
func HashRange(data []byte, start, length int, seed1, seed2 uint64) (uint64, uint64, error) {
	// length > len(data)-start avoids the start+length overflow a direct sum
	// would risk for adversarial int inputs.
	if start < 0 || length < 0 || length > len(data)-start {
		return 0, 0, ErrRangeOutOfBounds
	}
	h1, h2 := Hash128(data[start:start+length], seed1, seed2)
	return h1, h2, nil
}

// HashStringSequence hashes a sequence of optional strings as a single
// stream: present elements contribute their UTF-8 bytes, and an absent
// (nil) element contributes the 8 little-endian bytes of the SpookyHash
// constant instead. This distinguishes a present empty string from an
// absent one. Present elements are concatenated with no separator, so
// e.g. {"ab", "c"} and {"a", "bc"} hash the same.
func HashStringSequence(items []*string, seed1, seed2 uint64) (uint64, uint64) {
	h := NewHasher(seed1, seed2)
	var scBytes [8]byte
	binary.LittleEndian.PutUint64(scBytes[:], scConst)
	for _, item := range items {
		if item == nil {
			h.Update(scBytes[:])
			continue
		}
		h.Update(stringToBytes(*item))
	}
	return h.Final()
}

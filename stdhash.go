package spooky

import (
	"encoding/binary"
	"hash"
)

// Hash128Sum is the hash.Hash extension implemented by this package's
// hash.Hash adapter: in addition to the standard Sum, callers that want
// the raw 128-bit pair without an intermediate byte slice can call
// Sum128 directly.
type Hash128Sum interface {
	hash.Hash
	Sum128() (uint64, uint64)
}

// digest adapts Hasher to the standard library's hash.Hash interface.
type digest struct {
	seed1, seed2 uint64
	h            Hasher
}

// New returns a Hash128Sum seeded with the package default seed
// (scConst, scConst).
func New() Hash128Sum {
	return NewWithSeeds(scConst, scConst)
}

// NewWithSeeds returns a Hash128Sum seeded with the given pair.
func NewWithSeeds(seed1, seed2 uint64) Hash128Sum {
	d := &digest{seed1: seed1, seed2: seed2}
	d.h.Init(seed1, seed2)
	return d
}

// NewHash64 returns a hash.Hash64 seeded with (seed, seed), for code that
// only wants the lower 64 bits — such as the approx package's sketches.
func NewHash64(seed uint64) hash.Hash64 {
	return NewWithSeeds(seed, seed).(*digest)
}

// Write implements io.Writer. Per the io.Writer convention a nil p is
// treated as empty rather than as the NullInput usage error that
// Hasher.Update itself reports; callers that need to distinguish an
// absent buffer from an empty one should call Hasher.Update directly.
func (d *digest) Write(p []byte) (int, error) {
	if p == nil {
		return 0, nil
	}
	d.h.Update(p)
	return len(p), nil
}

// Sum appends the 16-byte little-endian digest to b without resetting
// the accumulated state.
func (d *digest) Sum(b []byte) []byte {
	h1, h2 := d.h.Final()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], h1)
	binary.LittleEndian.PutUint64(buf[8:16], h2)
	return append(b, buf[:]...)
}

// Sum128 returns the 128-bit digest as the (h1, h2) pair Hasher.Final
// returns, without allocating a byte slice; Sum writes h1 first.
func (d *digest) Sum128() (uint64, uint64) {
	return d.h.Final()
}

// Sum64 returns Sum128's first half, satisfying hash.Hash64.
func (d *digest) Sum64() uint64 {
	h1, _ := d.h.Final()
	return h1
}

// Reset restores the digest to its initial, freshly seeded state.
func (d *digest) Reset() { d.h.Init(d.seed1, d.seed2) }

// Size returns 16, the digest length in bytes.
func (d *digest) Size() int { return 16 }

// BlockSize returns the long-path block size.
func (d *digest) BlockSize() int { return BlockSize }

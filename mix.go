package spooky

import "math/bits"

// numVars is the width, in 64-bit lanes, of the long-path mixing state.
const numVars = 12

// mixRotations is the per-lane rotation schedule applied inside MixBlock.
var mixRotations = [numVars]uint{11, 32, 43, 31, 17, 28, 39, 57, 55, 54, 22, 46}

// endRotations is the per-lane rotation schedule applied inside EndPartial.
var endRotations = [numVars]uint{44, 15, 34, 21, 38, 33, 10, 13, 38, 53, 42, 54}

// MixBlock absorbs one 96-byte block, presented as twelve little-endian
// 64-bit lanes in d, into the accumulator state h. The twelve lane updates
// must run in order: lane i depends on the result of lane i-1.
func MixBlock(h, d *[numVars]uint64) {
	for i := 0; i < numVars; i++ {
		h[i] += d[i]
		h[(i+2)%numVars] ^= h[(i+10)%numVars]
		h[(i+11)%numVars] ^= h[i]
		h[i] = bits.RotateLeft64(h[i], int(mixRotations[i]))
		h[(i+11)%numVars] += h[(i+1)%numVars]
	}
}

// EndPartial runs one round of the long-path finisher over h without
// absorbing any new data.
func EndPartial(h *[numVars]uint64) {
	for i := 0; i < numVars; i++ {
		h[(i+11)%numVars] += h[(i+1)%numVars]
		h[(i+2)%numVars] ^= h[(i+11)%numVars]
		h[(i+1)%numVars] = bits.RotateLeft64(h[(i+1)%numVars], int(endRotations[i]))
	}
}

// End absorbs the final, length-padded block d into h and runs the
// finisher to completion (three rounds of EndPartial).
func End(h, d *[numVars]uint64) {
	for i := 0; i < numVars; i++ {
		h[i] += d[i]
	}
	EndPartial(h)
	EndPartial(h)
	EndPartial(h)
}

// ShortMix runs the twelve-step mixing round of the 4-lane short path.
func ShortMix(a, b, c, d *uint64) {
	*c = bits.RotateLeft64(*c, 50)
	*c += *d
	*a ^= *c
	*d = bits.RotateLeft64(*d, 52)
	*d += *a
	*b ^= *d
	*a = bits.RotateLeft64(*a, 30)
	*a += *b
	*c ^= *a
	*b = bits.RotateLeft64(*b, 41)
	*b += *c
	*d ^= *b
	*c = bits.RotateLeft64(*c, 54)
	*c += *d
	*a ^= *c
	*d = bits.RotateLeft64(*d, 48)
	*d += *a
	*b ^= *d
	*a = bits.RotateLeft64(*a, 38)
	*a += *b
	*c ^= *a
	*b = bits.RotateLeft64(*b, 37)
	*b += *c
	*d ^= *b
	*c = bits.RotateLeft64(*c, 62)
	*c += *d
	*a ^= *c
	*d = bits.RotateLeft64(*d, 34)
	*d += *a
	*b ^= *d
	*a = bits.RotateLeft64(*a, 5)
	*a += *b
	*c ^= *a
	*b = bits.RotateLeft64(*b, 36)
	*b += *c
	*d ^= *b
}

// ShortEnd finishes the 4-lane short path, mixing the four lanes down to
// the final (a, b) pair that forms the digest.
func ShortEnd(a, b, c, d *uint64) {
	*d ^= *c
	*c = bits.RotateLeft64(*c, 15)
	*d += *c
	*a ^= *d
	*d = bits.RotateLeft64(*d, 52)
	*a += *d
	*b ^= *a
	*a = bits.RotateLeft64(*a, 26)
	*b += *a
	*c ^= *b
	*b = bits.RotateLeft64(*b, 51)
	*c += *b
	*d ^= *c
	*c = bits.RotateLeft64(*c, 28)
	*d += *c
	*a ^= *d
	*d = bits.RotateLeft64(*d, 9)
	*a += *d
	*b ^= *a
	*a = bits.RotateLeft64(*a, 47)
	*b += *a
	*c ^= *b
	*b = bits.RotateLeft64(*b, 54)
	*c += *b
	*d ^= *c
	*c = bits.RotateLeft64(*c, 32)
	*d += *c
	*a ^= *d
	*d = bits.RotateLeft64(*d, 25)
	*a += *d
	*b ^= *a
	*a = bits.RotateLeft64(*a, 63)
	*b += *a
}

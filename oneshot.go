package spooky

import "encoding/binary"

// Exported size constants for the core.
const (
	// NumVars is the width, in 64-bit lanes, of the long-path state.
	NumVars = numVars
	// BlockSize is the number of bytes absorbed per long-path MixBlock call.
	BlockSize = 96
	// BufSize is the size of the streaming staging buffer; inputs shorter
	// than BufSize are hashed with the short path.
	BufSize = 192
	// scConst is Bob Jenkins' "nothing up my sleeve" constant, used both as
	// a default seed component and as padding.
	scConst = 0xDEADBEEFDEADBEEF
)

// Hash128 computes the 128-bit SpookyHash digest of data under the given
// seed pair. A nil data slice returns (0, 0); a non-nil, zero-length slice
// is hashed like any other short input.
func Hash128(data []byte, seed1, seed2 uint64) (uint64, uint64) {
	if data == nil {
		return 0, 0
	}
	if len(data) < BufSize {
		return shortHash(data, seed1, seed2)
	}
	return longHash(data, seed1, seed2)
}

// Hash64 computes the lower 64 bits of Hash128(data, seed, seed).
func Hash64(data []byte, seed uint64) uint64 {
	h1, _ := Hash128(data, seed, seed)
	return h1
}

// Hash32 computes the lower 32 bits of Hash64(data, seed).
func Hash32(data []byte, seed uint64) uint32 {
	return uint32(Hash64(data, seed))
}

// readLane reads a little-endian 64-bit lane from b at byte offset off.
func readLane(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off:])
}

// readBlock loads twelve little-endian 64-bit lanes from a 96-byte block.
func readBlock(d *[numVars]uint64, b []byte) {
	for i := 0; i < numVars; i++ {
		d[i] = readLane(b, i*8)
	}
}

// shortHash implements the 4-lane short path: used for any input
// shorter than BufSize.
func shortHash(data []byte, seed1, seed2 uint64) (uint64, uint64) {
	a, b, c, d := seed1, seed2, uint64(scConst), uint64(scConst)

	p := data
	for len(p) >= 32 {
		c += readLane(p, 0)
		d += readLane(p, 8)
		ShortMix(&a, &b, &c, &d)
		a += readLane(p, 16)
		b += readLane(p, 24)
		p = p[32:]
	}

	rem := len(p)
	if rem >= 16 {
		c += readLane(p, 0)
		d += readLane(p, 8)
		ShortMix(&a, &b, &c, &d)
		p = p[16:]
		rem -= 16
	}

	d += uint64(len(data)) << 56

	var cAdd, dAdd uint64
	for i := 0; i < rem && i < 8; i++ {
		cAdd |= uint64(p[i]) << (8 * uint(i))
	}
	for i := 8; i < rem; i++ {
		dAdd |= uint64(p[i]) << (8 * uint(i-8))
	}
	c += cAdd
	d += dAdd
	if rem == 0 {
		c += scConst
		d += scConst
	}

	ShortEnd(&a, &b, &c, &d)
	return a, b
}

// longHash implements the 12-lane long path: used for inputs of
// BufSize bytes or more.
func longHash(data []byte, seed1, seed2 uint64) (uint64, uint64) {
	var h [numVars]uint64
	h[0], h[3], h[6], h[9] = seed1, seed1, seed1, seed1
	h[1], h[4], h[7], h[10] = seed2, seed2, seed2, seed2
	h[2], h[5], h[8], h[11] = scConst, scConst, scConst, scConst

	p := data
	for len(p) >= BlockSize {
		var d [numVars]uint64
		readBlock(&d, p)
		MixBlock(&h, &d)
		p = p[BlockSize:]
	}

	var final [BlockSize]byte
	rem := copy(final[:], p)
	final[BlockSize-1] = byte(rem)

	var d [numVars]uint64
	readBlock(&d, final[:])
	End(&h, &d)

	return h[0], h[1]
}

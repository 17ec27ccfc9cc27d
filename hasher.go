package spooky

// Hasher is an incremental SpookyHash. The zero value is not usable; call
// Init (or use NewHasher) before Update/Final. A Hasher has exclusive
// ownership semantics: it is not safe to call Update/Final concurrently
// from multiple goroutines on the same instance, but distinct instances
// are independent.
type Hasher struct {
	s         [numVars]uint64
	buf       [BufSize]byte
	length    uint64 // widened counter, see DESIGN.md Open Question
	remainder int
}

// NewHasher returns a Hasher seeded with seed1, seed2.
func NewHasher(seed1, seed2 uint64) *Hasher {
	h := &Hasher{}
	h.Init(seed1, seed2)
	return h
}

// Init (re)starts the stream with the given seed pair.
func (h *Hasher) Init(seed1, seed2 uint64) {
	h.length = 0
	h.remainder = 0
	h.s[0] = seed1
	h.s[1] = seed2
}

// Update absorbs p into the stream. A nil p is a usage error and leaves
// the Hasher unchanged; an empty, non-nil p is a no-op.
func (h *Hasher) Update(p []byte) error {
	if p == nil {
		return ErrNilInput
	}
	if len(p) == 0 {
		return nil
	}

	newRemainder := h.remainder + len(p)
	if newRemainder < BufSize {
		copy(h.buf[h.remainder:], p)
		h.remainder = newRemainder
		h.length += uint64(len(p))
		return nil
	}

	var hh [numVars]uint64
	if h.length < BufSize {
		hh[0], hh[3], hh[6], hh[9] = h.s[0], h.s[0], h.s[0], h.s[0]
		hh[1], hh[4], hh[7], hh[10] = h.s[1], h.s[1], h.s[1], h.s[1]
		hh[2], hh[5], hh[8], hh[11] = scConst, scConst, scConst, scConst
	} else {
		hh = h.s
	}
	h.length += uint64(len(p))

	if h.remainder > 0 {
		prefix := BufSize - h.remainder
		copy(h.buf[h.remainder:], p[:prefix])
		var d0, d1 [numVars]uint64
		readBlock(&d0, h.buf[0:BlockSize])
		readBlock(&d1, h.buf[BlockSize:BufSize])
		MixBlock(&hh, &d0)
		MixBlock(&hh, &d1)
		p = p[prefix:]
		h.remainder = 0
	}

	for len(p) >= BlockSize {
		var d [numVars]uint64
		readBlock(&d, p)
		MixBlock(&hh, &d)
		p = p[BlockSize:]
	}

	h.remainder = copy(h.buf[:], p)
	h.s = hh
	return nil
}

// Final returns the digest of every byte absorbed since the last Init. It
// does not mutate the Hasher: it is safe to call repeatedly, and further
// Update calls continue the same stream.
func (h *Hasher) Final() (uint64, uint64) {
	if h.length < BufSize {
		return shortHash(h.buf[:h.length], h.s[0], h.s[1])
	}

	hh := h.s
	var b [BufSize]byte
	copy(b[:], h.buf[:h.remainder])
	rem := h.remainder

	if rem >= BlockSize {
		var d [numVars]uint64
		readBlock(&d, b[0:BlockSize])
		MixBlock(&hh, &d)
		copy(b[0:], b[BlockSize:BufSize])
		rem -= BlockSize
	}

	b[BlockSize-1] = byte(rem)
	var d [numVars]uint64
	readBlock(&d, b[0:BlockSize])
	End(&hh, &d)

	return hh[0], hh[1]
}

package approx

import (
	"fmt"
	"hash"
	"math"
)

const (
	minLinearCountingP = 6
	maxLinearCountingP = 24
)

// LinearCounting is a space efficient data structure for count-distinct
// with a hard upper bound on cardinality.
type LinearCounting struct {
	hash hash.Hash64 // a 64-bit hash function to map inputs to uniform buckets
	bits BitVector   // bitvector to hold the occupied buckets
	p    byte        // the number of buckets m = 2^p
}

// NewLinearCounting returns a LinearCounting sized to m=2^p buckets using
// the given hash function. p is clamped to [minLinearCountingP, maxLinearCountingP].
func NewLinearCounting(p byte, hash hash.Hash64) *LinearCounting {
	if p < minLinearCountingP {
		p = minLinearCountingP
	} else if p > maxLinearCountingP {
		p = maxLinearCountingP
	}
	m := uint64(1 << p)
	bits := NewBitVector(m)
	return &LinearCounting{p: p, hash: hash, bits: bits}
}

// Add adds an item to the multiset represented by the LinearCounting.
func (lc *LinearCounting) Add(item []byte) {
	lc.hash.Reset()
	lc.hash.Write(item)
	hash := lc.hash.Sum64()
	bucket := hash >> (64 - lc.p) // top p bits are the bucket
	lc.bits.Set(bucket)
}

// Distinct returns the estimated number of distinct elements seen. If the
// backing BitVector is full it returns m, the size of the BitVector.
func (lc LinearCounting) Distinct() uint64 {
	m := uint64(1 << lc.p)
	zeroCount := m - lc.bits.PopCount()
	if zeroCount > 0 {
		return uint64(float64(m) * math.Log(float64(m)/float64(zeroCount)))
	}
	return 1 << lc.p
}

// Compress produces a new LinearCounting with reduced size, 2^factor
// smaller. p never drops below minLinearCountingP.
func (lc *LinearCounting) Compress(factor byte) *LinearCounting {
	var p byte
	if lc.p > factor {
		p = lc.p - factor
	}
	if p < minLinearCountingP {
		p = minLinearCountingP
	}
	newLC := NewLinearCounting(p, lc.hash)

	// copy the old BitVector to a new temporary one that can be folded
	bitsToFold := NewBitVector(uint64(1 << lc.p))
	copy(bitsToFold, lc.bits)
	// "fold" the bit vector
	for i := lc.p; i > p; i-- {
		mFold := 1 << (i - 7) // half the current length in units of 64 bits
		for j := 0; j < mFold; j++ {
			bitsToFold[j] |= bitsToFold[j+mFold]
		}
	}
	copy(newLC.bits, bitsToFold)
	return newLC
}

// Union combines two LinearCountings, reducing precision to the minimum of
// the two. It errors if the two hash functions disagree.
func (lc *LinearCounting) Union(lcB *LinearCounting) (*LinearCounting, error) {
	if err := checkSameHash(lc.hash, lcB.hash, "LinearCounting"); err != nil {
		return nil, err
	}
	lc1, lc2, combinedP := lc.align(lcB)
	combinedLC := NewLinearCounting(combinedP, lc.hash)
	for i := range combinedLC.bits {
		combinedLC.bits[i] = lc1.bits[i] | lc2.bits[i]
	}
	return combinedLC, nil
}

// Intersect combines two LinearCountings, reducing precision to the
// minimum of the two. It errors if the two hash functions disagree.
func (lc *LinearCounting) Intersect(lcB *LinearCounting) (*LinearCounting, error) {
	if err := checkSameHash(lc.hash, lcB.hash, "LinearCounting"); err != nil {
		return nil, err
	}
	lc1, lc2, combinedP := lc.align(lcB)
	combinedLC := NewLinearCounting(combinedP, lc.hash)
	for i := range combinedLC.bits {
		combinedLC.bits[i] = lc1.bits[i] & lc2.bits[i]
	}
	return combinedLC, nil
}

// align compresses whichever of lc, lcB has the larger p down to the
// other's, returning both at the common precision.
func (lc *LinearCounting) align(lcB *LinearCounting) (*LinearCounting, *LinearCounting, byte) {
	if lc.p < lcB.p {
		return lc, lcB.Compress(lcB.p - lc.p), lc.p
	}
	if lcB.p < lc.p {
		return lc.Compress(lc.p - lcB.p), lcB, lcB.p
	}
	return lc, lcB, lc.p
}

// Occupancy returns the ratio of filled buckets in the LinearCounting.
func (lc LinearCounting) Occupancy() float64 {
	return float64(lc.bits.PopCount()) / float64(uint64(1<<lc.p))
}

// ExpectedError returns the expected relative error at the current
// filling of the LinearCounting.
func (lc LinearCounting) ExpectedError() float64 {
	m := float64(uint64(1 << lc.p))
	loadFactor := lc.Occupancy()
	return 2 * math.Sqrt((math.Exp(loadFactor)-loadFactor-1)/m) / loadFactor
}

func (lc LinearCounting) String() string {
	N := lc.Distinct()
	delta := uint64(float64(N) * lc.ExpectedError())
	return fmt.Sprintf("LinearCounting N: %d +/- %d", N, delta)
}

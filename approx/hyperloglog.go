package approx

import (
	"fmt"
	"hash"
	"math"
	"math/bits"
)

const (
	minimumHyperLogLogP = 4
	maximumHyperLogLogP = 16
)

// HyperLogLog is a data structure for count-distinct estimation over
// multisets far too large to hold in memory, based on
// "HyperLogLog: the analysis of a near-optimal cardinality estimation
// algorithm", Philippe Flajolet, Éric Fusy, Olivier Gandouet, and
// Frédéric Meunier, AOFA 2007.
type HyperLogLog struct {
	hash  hash.Hash64 // the base hash function
	alpha float64     // the bias-correction constant dependent on m
	p     byte        // number of buckets m = 2^p
	data  []byte      // per-bucket maximum of (leading zeros + 1) seen
}

// NewHyperLogLog returns a HyperLogLog with 2^p buckets using the given
// hash function. p is clamped to [minimumHyperLogLogP, maximumHyperLogLogP].
func NewHyperLogLog(p byte, hash hash.Hash64) *HyperLogLog {
	if p < minimumHyperLogLogP {
		p = minimumHyperLogLogP
	} else if p > maximumHyperLogLogP {
		p = maximumHyperLogLogP
	}
	m := uint64(1) << p
	return &HyperLogLog{
		hash:  hash,
		alpha: alphaForM(m),
		p:     p,
		data:  make([]byte, m),
	}
}

func alphaForM(m uint64) float64 {
	switch m {
	case 16:
		return 0.673
	case 32:
		return 0.697
	case 64:
		return 0.709
	default:
		return 0.7213 / (1 + 1.079/float64(m))
	}
}

// Add adds an item to the multiset represented by the HyperLogLog.
func (hll *HyperLogLog) Add(item []byte) {
	hll.hash.Reset()
	hll.hash.Write(item)
	h := hll.hash.Sum64()
	bucket := h >> (64 - hll.p) // top p bits select the bucket

	rest := h << hll.p // the remaining 64-p bits, left justified
	var rho byte
	if rest == 0 {
		rho = byte(64-hll.p) + 1
	} else {
		rho = byte(bits.LeadingZeros64(rest)) + 1
	}
	if rho > hll.data[bucket] {
		hll.data[bucket] = rho
	}
}

// Reset clears every bucket, returning the HyperLogLog to its initial,
// empty state.
func (hll *HyperLogLog) Reset() {
	for i := range hll.data {
		hll.data[i] = 0
	}
}

// RawEstimate returns the unmodified HyperLogLog cardinality estimate,
// appropriate once the estimate is well clear of m on both ends.
func (hll HyperLogLog) RawEstimate() uint64 {
	m := float64(uint64(1) << hll.p)
	var sum float64
	for _, v := range hll.data {
		sum += math.Pow(2, -float64(v))
	}
	return uint64(hll.alpha * m * m / sum)
}

// LinearCounting returns the linear-counting cardinality estimate,
// accurate when the estimate is small relative to m and many buckets are
// still empty.
func (hll HyperLogLog) LinearCounting() uint64 {
	m := float64(uint64(1) << hll.p)
	var zeros int
	for _, v := range hll.data {
		if v == 0 {
			zeros++
		}
	}
	if zeros == 0 {
		return uint64(m)
	}
	return uint64(m * math.Log(m/float64(zeros)))
}

// BiasCorrected returns the raw estimate adjusted by a small empirical
// correction, appropriate in the mid-range between where LinearCounting
// and RawEstimate are each individually accurate.
func (hll HyperLogLog) BiasCorrected() uint64 {
	m := float64(uint64(1) << hll.p)
	raw := float64(hll.RawEstimate())
	bias := 1 - 0.05*(raw/(5*m))
	return uint64(raw * bias)
}

// Distinct returns the estimated number of distinct items added to the
// HyperLogLog, selecting LinearCounting, BiasCorrected or RawEstimate
// depending on where the raw estimate falls relative to m.
func (hll HyperLogLog) Distinct() uint64 {
	m := float64(uint64(1) << hll.p)
	raw := float64(hll.RawEstimate())
	switch {
	case raw <= 2.5*m:
		return hll.LinearCounting()
	case raw <= 5*m:
		return hll.BiasCorrected()
	default:
		return uint64(raw)
	}
}

// ExpectedError returns the expected relative error of the estimate,
// 1.04/sqrt(m).
func (hll HyperLogLog) ExpectedError() float64 {
	m := float64(uint64(1) << hll.p)
	return 1.04 / math.Sqrt(m)
}

// Compress produces a new HyperLogLog with p reduced by factor, folding
// each group of 2^factor adjacent buckets into one by taking their
// maximum. p never drops below minimumHyperLogLogP.
func (hll HyperLogLog) Compress(factor byte) *HyperLogLog {
	newP := hll.p
	if newP > factor {
		newP -= factor
	} else {
		newP = minimumHyperLogLogP
	}
	if newP < minimumHyperLogLogP {
		newP = minimumHyperLogLogP
	}
	actualFactor := hll.p - newP
	newM := uint64(1) << newP
	stride := uint64(1) << actualFactor

	newData := make([]byte, newM)
	for i := uint64(0); i < newM; i++ {
		var max byte
		for j := uint64(0); j < stride; j++ {
			if v := hll.data[i*stride+j]; v > max {
				max = v
			}
		}
		newData[i] = max
	}
	return &HyperLogLog{hash: hll.hash, alpha: alphaForM(newM), p: newP, data: newData}
}

// Union combines two HyperLogLogs, producing one that estimates the
// cardinality of the union of the two multisets. The result is taken at
// the coarser of the two precisions. It errors if the two hash functions
// disagree.
func (hll *HyperLogLog) Union(hllB *HyperLogLog) (*HyperLogLog, error) {
	if err := checkSameHash(hll.hash, hllB.hash, "HyperLogLog"); err != nil {
		return nil, err
	}
	a, b := hll.align(hllB)
	data := make([]byte, len(a.data))
	for i := range data {
		if a.data[i] > b.data[i] {
			data[i] = a.data[i]
		} else {
			data[i] = b.data[i]
		}
	}
	return &HyperLogLog{hash: hll.hash, alpha: a.alpha, p: a.p, data: data}, nil
}

// Intersect combines two HyperLogLogs, producing one that estimates the
// cardinality of the intersection of the two multisets by taking the
// per-bucket minimum of the registers. The result is taken at the
// coarser of the two precisions. It errors if the two hash functions
// disagree.
func (hll *HyperLogLog) Intersect(hllB *HyperLogLog) (*HyperLogLog, error) {
	if err := checkSameHash(hll.hash, hllB.hash, "HyperLogLog"); err != nil {
		return nil, err
	}
	a, b := hll.align(hllB)
	data := make([]byte, len(a.data))
	for i := range data {
		if a.data[i] < b.data[i] {
			data[i] = a.data[i]
		} else {
			data[i] = b.data[i]
		}
	}
	return &HyperLogLog{hash: hll.hash, alpha: a.alpha, p: a.p, data: data}, nil
}

// align compresses whichever of hll, hllB has the finer precision down to
// the other's, returning both at the common precision.
func (hll *HyperLogLog) align(hllB *HyperLogLog) (*HyperLogLog, *HyperLogLog) {
	if hll.p < hllB.p {
		return hll, hllB.Compress(hllB.p - hll.p)
	}
	if hllB.p < hll.p {
		return hll.Compress(hll.p - hllB.p), hllB
	}
	return hll, hllB
}

func (hll HyperLogLog) String() string {
	N := hll.Distinct()
	delta := uint64(float64(N) * hll.ExpectedError())
	return fmt.Sprintf("HyperLogLog N: %d +/- %d", N, delta)
}

package diskvec

import "math/bits"

// decompose maps a logical index to the (rank, offset) pair identifying the
// slot that holds it: rank r holds 2^r slots, and slots fill ranks in
// increasing order (rank 0 first, then rank 1, ...).
//
// decompose(0)=(0,0), decompose(1)=(1,0), decompose(2)=(1,1),
// decompose(3)=(2,0), decompose(6)=(2,3).
//
// Pure, no I/O, no allocation.
func decompose(i uint64) (rank, offset uint64) {
	n := i + 1
	rank = uint64(bits.Len64(n) - 1)
	offset = n - (uint64(1) << rank)

	return rank, offset
}

// bounds returns the inclusive [min, max] range of logical indices held by
// rank r. bounds(0)=(0,0); for r>0, bounds(r)=(2^r-1, 2^(r+1)-2).
//
// For r==63 the upper bound 2^64-2 cannot be represented by 1<<64 in a
// uint64, but uint64 arithmetic wraps modulo 2^64 and 1<<64 mod 2^64 is 0,
// so the subtraction "0 - 2" wraps back around to exactly 2^64-2. This is
// the one rank where the formula relies on that wraparound rather than
// evaluating straightforwardly; every other rank never reaches it.
//
// Pure, no I/O, no allocation.
func bounds(r uint64) (minIdx, maxIdx uint64) {
	if r == 0 {
		return 0, 0
	}

	minIdx = (uint64(1) << r) - 1
	maxIdx = (uint64(1) << (r + 1)) - 2

	return minIdx, maxIdx
}

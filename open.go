package diskvec

import (
	"fmt"

	"github.com/krl/diskvec/internal/fs"
)

// Open opens or creates a vector rooted at dir.
//
// If dir does not exist it is created. Existing rank files ("0", "1", "2",
// ... under dir) are opened and mapped in order; scanning stops at the
// first missing rank, and the logical length is recovered by binary
// searching the highest mapped rank for the boundary between written and
// never-written slots (spec.md §4.2).
//
// If an appender crashed after claiming an index but before writing its
// value, the corresponding slot stays zero and recovery under-counts by
// one for each such gap touching the highest rank — diskvec is not
// crash-safe, per spec.md §1 and §4.2.
func Open[T comparable](dir string) (*Vector[T], error) {
	return open[T](dir, fs.NewReal())
}

// open is the fsys-parameterized implementation behind [Open], letting
// tests substitute [fs.Chaos] to exercise OpenFailure paths deterministically.
func open[T comparable](dir string, fsys fs.FS) (*Vector[T], error) {
	if err := fsys.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("diskvec: create directory %s: %w", dir, err)
	}

	v := &Vector[T]{
		dir:  dir,
		fsys: fsys,
	}

	var nRanks uint64

	for r := uint64(0); r < maxRanks; r++ {
		rm, ok, err := openRank(fsys, dir, r)
		if err != nil {
			return nil, fmt.Errorf("diskvec: open %s: %w", dir, err)
		}

		if !ok {
			break
		}

		v.ranks[r].Store(rm)
		nRanks++
	}

	v.initialized.Store(nRanks)

	length, err := recoverLength[T](v, nRanks)
	if err != nil {
		return nil, fmt.Errorf("diskvec: recover length for %s: %w", dir, err)
	}

	v.length.Store(length)

	return v, nil
}

// recoverLength implements spec.md §4.2: if no rank is mapped, length is 0.
// Otherwise binary search the highest mapped rank k for the boundary
// between written (non-zero) and never-written (zero) slots.
func recoverLength[T comparable](v *Vector[T], nRanks uint64) (uint64, error) {
	if nRanks == 0 {
		return 0, nil
	}

	k := nRanks - 1

	minIdx, maxIdx := bounds(k)

	for minIdx < maxIdx {
		probe := minIdx + (maxIdx-minIdx)/2

		if v.readSlotRaw(probe) {
			minIdx = probe + 1
		} else {
			maxIdx = probe
		}
	}

	if v.readSlotRaw(minIdx) {
		return minIdx + 1, nil
	}

	return minIdx, nil
}

// readSlotRaw reports whether the slot at logical index i holds a
// non-zero value. Used only during recovery, before v.length is set, so it
// addresses ranks directly rather than going through [Vector.Get].
func (v *Vector[T]) readSlotRaw(i uint64) bool {
	rank, offset := decompose(i)

	rm := v.ranks[rank].Load()

	var zero T

	return *slotPointer[T](rm.data, offset) != zero
}

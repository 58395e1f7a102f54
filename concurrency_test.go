package diskvec_test

import (
	"sync"
	"testing"

	"github.com/krl/diskvec"
	"github.com/stretchr/testify/require"
)

// TestConcurrentPushDisjointIndices is the B4 boundary scenario: 16
// goroutines push concurrently, and every claimed index must be claimed by
// exactly one pusher and become visible once all pushers have joined.
func TestConcurrentPushDisjointIndices(t *testing.T) {
	const goroutines = 16
	const perGoroutine = 200

	v, err := diskvec.Open[checkSummed](t.TempDir())
	require.NoError(t, err)
	defer v.Close()

	indices := make([][]uint64, goroutines)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		g := g

		wg.Add(1)
		go func() {
			defer wg.Done()

			indices[g] = make([]uint64, perGoroutine)
			for i := 0; i < perGoroutine; i++ {
				idx, err := v.Push(checkSummed{Val: uint64(g) + 1, Checksum: uint64(i) + 1})
				require.NoError(t, err)

				indices[g][i] = idx
			}
		}()
	}
	wg.Wait()

	seen := make(map[uint64]bool, goroutines*perGoroutine)
	for _, gi := range indices {
		for _, idx := range gi {
			require.False(t, seen[idx], "index %d pushed by more than one goroutine", idx)
			seen[idx] = true
		}
	}

	require.Equal(t, uint64(goroutines*perGoroutine), v.Len())

	for i := uint64(0); i < v.Len(); i++ {
		_, ok, err := v.Get(i)
		require.NoError(t, err)
		require.True(t, ok, "index %d never visible after all pushers joined", i)
	}
}

// TestConcurrentGetMutSerializes is the B5 boundary scenario: 16 goroutines
// race to increment the same slot through GetMut; the residue write-guard
// must serialize them so every increment lands.
func TestConcurrentGetMutSerializes(t *testing.T) {
	const goroutines = 16
	const increments = 500

	v, err := diskvec.Open[checkSummed](t.TempDir())
	require.NoError(t, err)
	defer v.Close()

	idx, err := v.Push(checkSummed{Val: 1, Checksum: 0})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := 0; i < increments; i++ {
				h, ok, err := v.GetMut(idx)
				require.NoError(t, err)
				require.True(t, ok)

				h.Value().Checksum++
				h.Release()
			}
		}()
	}
	wg.Wait()

	got, ok, err := v.Get(idx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(goroutines*increments), got.Checksum)
}

// TestConcurrentGetMutOnDistinctResidues checks that two indices in
// distinct write-guard residue classes, mutated concurrently, each see
// every one of their own increments, not just that neither panics.
func TestConcurrentGetMutOnDistinctResidues(t *testing.T) {
	const increments = 1000

	v, err := diskvec.Open[checkSummed](t.TempDir())
	require.NoError(t, err)
	defer v.Close()

	idxA, err := v.Push(checkSummed{Val: 1, Checksum: 0})
	require.NoError(t, err)

	idxB, err := v.Push(checkSummed{Val: 2, Checksum: 0})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, idx := range []uint64{idxA, idxB} {
		idx := idx

		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := 0; i < increments; i++ {
				h, ok, err := v.GetMut(idx)
				require.NoError(t, err)
				require.True(t, ok)

				h.Value().Checksum++
				h.Release()
			}
		}()
	}
	wg.Wait()

	gotA, ok, err := v.Get(idxA)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(increments), gotA.Checksum)

	gotB, ok, err := v.Get(idxB)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(increments), gotB.Checksum)
}

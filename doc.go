// Package diskvec provides a persistent, thread-safe, append-mostly vector
// backed by a directory of memory-mapped files.
//
// diskvec is built for workloads that append a lot, read a lot, and
// occasionally mutate an existing slot in place — a write-ahead event log's
// index, a growing table of fixed-size records, a cache of computed values
// keyed by a dense integer id. It is not a general-purpose database: there
// is no delete, no reordering, and no crash-durability guarantee.
//
// # Basic usage
//
//	type Record struct {
//		Val      uint64
//		Checksum uint64
//	}
//
//	v, err := diskvec.Open[Record]("/tmp/my.diskvec")
//	if err != nil {
//		// handle it
//	}
//	defer v.Close()
//
//	idx, err := v.Push(Record{Val: 7, Checksum: 8})
//
//	rec, ok, err := v.Get(idx)
//
//	if h, ok, err := v.GetMut(idx); ok {
//		h.Value().Checksum++
//		h.Release()
//	}
//
// # Element type
//
// T must be a fixed-size, bit-copyable, comparable type whose zero value is
// reserved to mean "slot never written". Pushing the zero value of T is
// rejected with [ErrInvalidValue]. T must not contain pointers, slices,
// maps, strings, or interfaces: diskvec reads and writes T directly against
// mapped file bytes via unsafe.Pointer, so any such field would alias
// memory that does not belong to the Go heap and is never garbage
// collected or relocated the way a normal pointer field would be.
//
// # Concurrency
//
// [Vector.Push] and [Vector.Get] only take a brief read lock to check
// whether the [Vector] has been closed, except for the rare case where
// Push must map a new rank file, which is additionally serialized by a
// single mutex shared across all appenders. [Vector.GetMut] blocks on one
// of a fixed pool of per-residue-class mutexes; see [Vector.GetMut] for the
// resulting deadlock hazard when holding two handles at once. After
// [Vector.Close], all three return [ErrClosed].
//
// # Persistence
//
// There is no metadata file. Reopening a directory previously written by
// diskvec recovers the logical length by scanning the highest-numbered
// rank file for the boundary between written and zero-valued slots. See
// [Open] for the full recovery procedure and its crash-recovery
// limitations.
package diskvec

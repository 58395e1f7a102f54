package diskvec

// maxRanks is R, the fixed capacity of the rank table.
//
// A logical index is a uint64, so [decompose] never produces a rank past
// 63 in practice (bits.Len64 tops out there). The table is still sized to
// the spec's R so the type stays honest about the theoretical bound even
// though every build on a 64-bit index space only ever touches the first
// 64 entries.
const maxRanks = 128

// numWriteGuards is L, the fixed number of per-residue-class mutexes used
// by [Vector.GetMut]. Indices are serialized by index mod numWriteGuards,
// not individually, trading spurious contention for a bounded, constant
// amount of memory regardless of vector length.
const numWriteGuards = 1024

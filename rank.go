package diskvec

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"unsafe"

	"github.com/krl/diskvec/internal/fs"
)

// rankMapping is the mmap'd backing store for one rank file.
//
// Once installed into Vector.ranks it is immutable for the container's
// lifetime: the bytes are written to (by pushers and mutators) but the
// slice header itself — pointer, length, capacity — never changes after
// installation. That immutability is what lets [Vector.Get] read without
// any lock.
type rankMapping struct {
	data []byte
}

// rankFileName returns the on-disk name for rank r: the plain decimal
// number, no leading zeros, no extension.
//
// Both [openRank] (scanning at [Open] time) and [createRank] (creating a
// new rank for [Vector.growTo] under the growth guard) call this one
// helper, so the filename
// computed while reading a directory can never drift from the filename
// computed while creating a file in it.
func rankFileName(r uint64) string {
	return strconv.FormatUint(r, 10)
}

// slotSize returns sizeof(T) for the generic element type.
func slotSize[T comparable]() uintptr {
	var zero T

	return unsafe.Sizeof(zero)
}

// rankByteSize returns the size in bytes of rank r's file: sizeof(T) * 2^r.
func rankByteSize[T comparable](r uint64) int64 {
	return int64(slotSize[T]()) << r
}

// openRank opens rank r's file if it exists and maps it for its full
// on-disk length, which is assumed to already be sizeof(T)*2^r (a short
// file is undefined behavior per spec.md §4.3; diskvec does not repair it).
//
// Returns (nil, false, nil) if the file does not exist.
func openRank(fsys fs.FS, dir string, r uint64) (*rankMapping, bool, error) {
	path := filepath.Join(dir, rankFileName(r))

	exists, err := fsys.Exists(path)
	if err != nil {
		return nil, false, fmt.Errorf("stat rank %d: %w", r, err)
	}

	if !exists {
		return nil, false, nil
	}

	f, err := fsys.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, false, fmt.Errorf("open rank %d: %w", r, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()

		return nil, false, fmt.Errorf("stat rank %d: %w", r, err)
	}

	data, err := mmapFile(f, info.Size())
	if err != nil {
		return nil, false, fmt.Errorf("mmap rank %d: %w", r, err)
	}

	return &rankMapping{data: data}, true, nil
}

// createRank creates, sizes, and maps rank r's file. Called only under the
// growth guard, by at most one goroutine at a time for a given r.
//
// growTo never records a rank as initialized until createRank returns
// successfully, so any failure here must leave no trace on disk: a
// half-sized or empty leftover file would make every future createRank for
// this rank fail with EEXIST, and would make a later Open's openRank map a
// zero-length file and hand it to syscall.Mmap, which rejects a zero-length
// mapping outright. Every failure path after O_CREATE|O_EXCL therefore
// unlinks path before returning, the same cleanup the teacher's own
// O_EXCL-create path in pkg/slotcache/open.go's createNewCache does.
func createRank[T comparable](fsys fs.FS, dir string, r uint64) (*rankMapping, error) {
	path := filepath.Join(dir, rankFileName(r))

	f, err := fsys.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create rank %d: %w", r, err)
	}

	size := rankByteSize[T](r)

	if err := syscall.Ftruncate(int(f.Fd()), size); err != nil {
		_ = f.Close()
		_ = syscall.Unlink(path)

		return nil, fmt.Errorf("size rank %d to %d bytes: %w", r, size, err)
	}

	data, err := mmapFile(f, size)
	if err != nil {
		_ = syscall.Unlink(path)

		return nil, fmt.Errorf("mmap rank %d: %w", r, err)
	}

	return &rankMapping{data: data}, nil
}

// mmapFile maps f shared read-write for its whole length and closes f: on
// POSIX the mapping remains valid after the descriptor is closed, and
// holding 128 file descriptors open for the container's lifetime buys
// nothing.
func mmapFile(f fs.File, size int64) ([]byte, error) {
	defer f.Close()

	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// Package fs provides the filesystem seam diskvec opens rank files through.
//
// Keeping directory creation and rank-file creation behind an interface
// (rather than calling the os package directly) is what lets the test suite
// inject I/O failures deterministically to exercise diskvec's OpenFailure
// and GrowFailure paths (see [Chaos]).
//
// The actual mmap/munmap syscalls are not part of this interface: there is
// no portable mmap in the standard library, so diskvec drops to the
// syscall package directly once it has a real file descriptor, the same
// way the teacher codebase's own mmap-backed cache does.
package fs

import "os"

// File is an OS-backed open file descriptor.
//
// Satisfied by [os.File]. [File.Fd] must return a real OS file descriptor
// usable with syscalls (mmap, ftruncate) until the file is closed.
type File interface {
	Close() error

	// Fd returns the file descriptor backing this handle. Used to mmap and
	// ftruncate the rank file via the syscall package.
	Fd() uintptr

	// Stat returns file metadata, primarily Size.
	Stat() (os.FileInfo, error)
}

// FS defines the filesystem operations diskvec needs to manage rank files.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type FS interface {
	// OpenFile opens or creates path with the given flags and permissions.
	// See [os.OpenFile].
	OpenFile(path string, flag int, perm os.FileMode) (File, error)

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// Exists reports whether path exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)
}

// Compile-time interface check.
var _ File = (*os.File)(nil)

package fs

import (
	"math/rand/v2"
	"os"
	"sync"
	"syscall"
)

// ChaosConfig controls fault injection probabilities for [Chaos].
//
// Each rate is a float64 from 0.0 (never) to 1.0 (always). The zero value
// disables all fault injection.
type ChaosConfig struct {
	// OpenFailRate controls how often OpenFile fails to open a rank file.
	// Returns ENOSPC, EIO, or EMFILE.
	OpenFailRate float64

	// MkdirFailRate controls how often MkdirAll fails to create the
	// container directory. Returns ENOSPC, EIO, or EMFILE.
	MkdirFailRate float64
}

var chaosErrors = []syscall.Errno{syscall.ENOSPC, syscall.EIO, syscall.EMFILE}

// Chaos wraps an [FS] and injects deterministic, seeded faults according to
// [ChaosConfig]. It exists so tests can exercise diskvec's OpenFailure and
// GrowFailure paths (spec.md §7) without depending on real disk exhaustion.
type Chaos struct {
	mu     sync.Mutex
	rng    *rand.Rand
	under  FS
	config ChaosConfig
}

// NewChaos wraps under with fault injection driven by a seeded RNG, so a
// fixed seed reproduces the same fault sequence across runs.
func NewChaos(under FS, seed uint64, config ChaosConfig) *Chaos {
	return &Chaos{
		rng:    rand.New(rand.NewPCG(seed, seed)),
		under:  under,
		config: config,
	}
}

func (c *Chaos) roll(rate float64) bool {
	if rate <= 0 {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.rng.Float64() < rate
}

func (c *Chaos) pickError() error {
	c.mu.Lock()
	errno := chaosErrors[c.rng.IntN(len(chaosErrors))]
	c.mu.Unlock()

	return errno
}

// OpenFile injects [ChaosConfig.OpenFailRate] failures, otherwise delegates
// to the wrapped [FS].
func (c *Chaos) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	if c.roll(c.config.OpenFailRate) {
		return nil, &os.PathError{Op: "open", Path: path, Err: c.pickError()}
	}

	return c.under.OpenFile(path, flag, perm)
}

// MkdirAll injects [ChaosConfig.MkdirFailRate] failures, otherwise delegates
// to the wrapped [FS].
func (c *Chaos) MkdirAll(path string, perm os.FileMode) error {
	if c.roll(c.config.MkdirFailRate) {
		return &os.PathError{Op: "mkdir", Path: path, Err: c.pickError()}
	}

	return c.under.MkdirAll(path, perm)
}

// Exists never injects faults: diskvec's own recovery logic already treats
// a missing rank as the normal "stop scanning" signal, so a flaky Exists
// would just be indistinguishable from reaching the end of the rank table.
func (c *Chaos) Exists(path string) (bool, error) {
	return c.under.Exists(path)
}

// Compile-time interface check.
var _ FS = (*Chaos)(nil)

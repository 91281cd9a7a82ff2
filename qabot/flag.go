package qabot

import (
	"sync"
	"time"
)

// transientFlag is a boolean that is raised synchronously and lowered after
// a short delay. The chat engine keeps emitting messages for a little while
// after its restart/replace promises resolve, so the lowering has to lag the
// state transition that raised the flag.
//
// This is a best-effort synchronization, not a completion signal: a very
// slow engine can still outrun the delay.
type transientFlag struct {
	mu  sync.Mutex
	up  bool
	gen int
}

// Raise sets the flag. Raising again before a pending lower fires
// supersedes that lower, so overlapping transitions keep the flag up.
func (f *transientFlag) Raise() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.up = true
	f.gen++
}

// IsSet reports whether the flag is currently raised.
func (f *transientFlag) IsSet() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.up
}

// Lower clears the flag immediately.
func (f *transientFlag) Lower() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.up = false
}

// LowerAfter schedules the flag to clear once the delay elapses, unless the
// flag is raised again in the meantime.
func (f *transientFlag) LowerAfter(delay time.Duration) {
	f.mu.Lock()
	gen := f.gen
	f.mu.Unlock()

	time.AfterFunc(delay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.gen == gen {
			f.up = false
		}
	})
}

package services

import "sync"

// ownerLocks hands out one mutex per owner key so that sync passes for the
// same owner never interleave, while different owners proceed in parallel.
type ownerLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{m: make(map[string]*sync.Mutex)}
}

// acquire locks the owner's mutex and returns the unlock func.
func (l *ownerLocks) acquire(ownerKey string) func() {
	l.mu.Lock()
	om, ok := l.m[ownerKey]
	if !ok {
		om = &sync.Mutex{}
		l.m[ownerKey] = om
	}
	l.mu.Unlock()

	om.Lock()
	return om.Unlock
}

package library

import "sync"

// The library serializes disk mutations per entity while letting different
// entities proceed in parallel. A full rescan takes the global write lock so
// it observes a quiescent tree.

func (l *Library) entityLock(slug string) *sync.Mutex {
	l.locksMu.Lock()
	defer l.locksMu.Unlock()
	lock, ok := l.locks[slug]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[slug] = lock
	}
	return lock
}

// withEntityLock runs fn holding the global read lock plus the entity lock.
func (l *Library) withEntityLock(slug string, fn func() error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	lock := l.entityLock(slug)
	lock.Lock()
	defer lock.Unlock()
	return fn()
}

// withScanLock runs fn as the sole library operation.
func (l *Library) withScanLock(fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn()
}

/* lock.go
 * Contains a reader/writer lock whose acquire methods give up when their context is done. It is built on a weighted
 * semaphore, which serves waiters in FIFO order: readers take one unit, writers take every unit, so a waiting writer
 * blocks readers that arrive after it
 */

package registry

import (
	"context"

	"golang.org/x/sync/semaphore"
)

const maxReaders = 1 << 30

type timedRWLock struct {
	sem *semaphore.Weighted
}

func newTimedRWLock() *timedRWLock {
	return &timedRWLock{sem: semaphore.NewWeighted(maxReaders)}
}

// RLock acquires the lock for reading, or returns the context's error
func (l *timedRWLock) RLock(ctx context.Context) error {
	return l.sem.Acquire(ctx, 1)
}

func (l *timedRWLock) RUnlock() {
	l.sem.Release(1)
}

// Lock acquires the lock for writing, or returns the context's error
func (l *timedRWLock) Lock(ctx context.Context) error {
	return l.sem.Acquire(ctx, maxReaders)
}

func (l *timedRWLock) Unlock() {
	l.sem.Release(maxReaders)
}

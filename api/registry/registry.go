/* registry.go
 * Contains the Registry for a single guild. A registry holds any number of pending tournaments and at most one
 * current tournament. Access to the current tournament goes through a reader/writer lock with a bounded wait, and
 * every method reports failure with an error instead of panicking
 */

package registry

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"tournament-assistant/api/tournament"
)

// DefaultTimeout is how long an action waits for the current tournament's lock
const DefaultTimeout = 60 * time.Second

// Registry owns the tournaments of one guild
type Registry struct {
	GuildID uint64

	timeout time.Duration

	pendingMu sync.Mutex
	pending   map[string]*tournament.State

	lock    *timedRWLock
	current *tournament.State
}

// NewRegistry creates an empty registry. A timeout of zero or less uses DefaultTimeout
func NewRegistry(guildID uint64, timeout time.Duration) *Registry {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Registry{
		GuildID: guildID,
		timeout: timeout,
		pending: make(map[string]*tournament.State),
		lock:    newTimedRWLock(),
	}
}

// region Pending tournaments

// AddOrUpdateTournament adds initial as a pending tournament if there is none with that name, otherwise it replaces
// the pending tournament with the result of update. Both happen atomically with respect to other pending operations
// Postconditions: Returns the tournament stored under the name
func (r *Registry) AddOrUpdateTournament(name string, initial *tournament.State, update func(*tournament.State) *tournament.State) *tournament.State {
	r.pendingMu.Lock()
	defer r.pendingMu.Unlock()

	existing, ok := r.pending[name]
	if !ok {
		r.pending[name] = initial
		return initial
	}

	updated := update(existing)
	r.pending[name] = updated
	return updated
}

// TryGetTournament looks up a pending tournament
func (r *Registry) TryGetTournament(name string) (*tournament.State, bool) {
	r.pendingMu.Lock()
	defer r.pendingMu.Unlock()

	state, ok := r.pending[name]
	return state, ok
}

// WithPendingTournament runs fn on a pending tournament while no other pending operation can run
// Postconditions: Returns false if there is no pending tournament with that name
func (r *Registry) WithPendingTournament(name string, fn func(*tournament.State)) bool {
	r.pendingMu.Lock()
	defer r.pendingMu.Unlock()

	state, ok := r.pending[name]
	if !ok {
		return false
	}
	fn(state)
	return true
}

// RemovePendingTournament deletes a pending tournament. Returns false if it does not exist
func (r *Registry) RemovePendingTournament(name string) bool {
	r.pendingMu.Lock()
	defer r.pendingMu.Unlock()

	if _, ok := r.pending[name]; !ok {
		return false
	}
	delete(r.pending, name)
	return true
}

// PendingTournamentNames returns the names of the pending tournaments in sorted order
func (r *Registry) PendingTournamentNames() []string {
	r.pendingMu.Lock()
	defer r.pendingMu.Unlock()

	names := make([]string, 0, len(r.pending))
	for name := range r.pending {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// endregion

// region Current tournament

// TrySetCurrentTournament moves a pending tournament into the current slot.
// Preconditions: No tournament is running and a pending tournament with the name exists
// Postconditions: The tournament is current and no longer pending, or an error is returned and nothing changed
func (r *Registry) TrySetCurrentTournament(ctx context.Context, name string) error {
	release, err := r.acquire(ctx, true)
	if err != nil {
		return err
	}
	defer release()

	if r.current != nil {
		return fmt.Errorf("%w: '%s'", ErrTournamentAlreadyRunning, r.current.Name)
	}

	r.pendingMu.Lock()
	defer r.pendingMu.Unlock()

	state, ok := r.pending[name]
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrTournamentNotFound, name)
	}
	r.current = state
	delete(r.pending, name)
	return nil
}

// TryReadActionOnCurrentTournament runs fn with shared access to the current tournament. fn must not modify it
// Postconditions: Returns the error from fn, ErrUnableToGetAccess if the lock could not be taken in time, or
// ErrNoCurrentTournament if no tournament is running
func (r *Registry) TryReadActionOnCurrentTournament(ctx context.Context, fn func(*tournament.State) error) error {
	return r.actionOnCurrent(ctx, false, fn)
}

// TryReadWriteActionOnCurrentTournament runs fn with exclusive access to the current tournament
// Postconditions: Returns the error from fn, ErrUnableToGetAccess if the lock could not be taken in time, or
// ErrNoCurrentTournament if no tournament is running
func (r *Registry) TryReadWriteActionOnCurrentTournament(ctx context.Context, fn func(*tournament.State) error) error {
	return r.actionOnCurrent(ctx, true, fn)
}

// TryClearCurrentTournament empties the current slot under the exclusive lock. When fn is given it runs first, in the
// same critical section, and the slot is only emptied if it succeeds
// Postconditions: With a nil fn it succeeds once the lock is taken, even if the slot was already empty. With fn it
// returns ErrNoCurrentTournament if the slot is empty, or fn's error with the tournament still current
func (r *Registry) TryClearCurrentTournament(ctx context.Context, fn func(*tournament.State) error) error {
	release, err := r.acquire(ctx, true)
	if err != nil {
		return err
	}
	defer release()

	if fn != nil {
		if r.current == nil {
			return ErrNoCurrentTournament
		}
		if err := runAction(r.current, fn); err != nil {
			return err
		}
	}
	r.current = nil
	return nil
}

// Read runs fn with shared access to the current tournament and returns its result
func Read[T any](ctx context.Context, r *Registry, fn func(*tournament.State) (T, error)) (T, error) {
	var result T
	err := r.TryReadActionOnCurrentTournament(ctx, func(state *tournament.State) error {
		var err error
		result, err = fn(state)
		return err
	})
	return result, err
}

// ReadWrite runs fn with exclusive access to the current tournament and returns its result
func ReadWrite[T any](ctx context.Context, r *Registry, fn func(*tournament.State) (T, error)) (T, error) {
	var result T
	err := r.TryReadWriteActionOnCurrentTournament(ctx, func(state *tournament.State) error {
		var err error
		result, err = fn(state)
		return err
	})
	return result, err
}

func (r *Registry) actionOnCurrent(ctx context.Context, write bool, fn func(*tournament.State) error) error {
	release, err := r.acquire(ctx, write)
	if err != nil {
		return err
	}
	defer release()

	if r.current == nil {
		return ErrNoCurrentTournament
	}
	return runAction(r.current, fn)
}

// acquire takes the lock, waiting at most the registry's timeout
// Postconditions: Returns a function that releases the lock, or ErrUnableToGetAccess
func (r *Registry) acquire(ctx context.Context, write bool) (func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if write {
		if err := r.lock.Lock(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnableToGetAccess, err)
		}
		return r.lock.Unlock, nil
	}

	if err := r.lock.RLock(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnableToGetAccess, err)
	}
	return r.lock.RUnlock, nil
}

// runAction calls fn, turning a panic into an error so the lock is always released and nothing escapes the registry
func runAction(state *tournament.State, fn func(*tournament.State) error) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%w: %v", ErrActionPanicked, recovered)
		}
	}()
	return fn(state)
}

// endregion

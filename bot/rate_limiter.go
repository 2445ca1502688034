/* rate_limiter.go
 * Contains a per user rate limiter so one user cannot flood a tournament's lock with commands
 */

package bot

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// cleanupThreshold is the minimum map size before a cleanup pass runs
	cleanupThreshold = 500
	// maxIdleAge is how long a user can be idle before their limiter is dropped
	maxIdleAge = 10 * time.Minute
)

type userEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserRateLimiter hands out one rate.Limiter per Discord user and prunes idle users inline
type UserRateLimiter struct {
	users map[string]*userEntry
	mu    sync.Mutex
	r     rate.Limit
	b     int
}

// NewUserRateLimiter creates a UserRateLimiter allowing r commands per second with bursts of b
func NewUserRateLimiter(r rate.Limit, b int) *UserRateLimiter {
	return &UserRateLimiter{
		users: make(map[string]*userEntry),
		r:     r,
		b:     b,
	}
}

// GetLimiter returns the limiter for a user, pruning idle users when the map exceeds cleanupThreshold
func (u *UserRateLimiter) GetLimiter(userID string) *rate.Limiter {
	u.mu.Lock()
	defer u.mu.Unlock()

	if len(u.users) > cleanupThreshold {
		cutoff := time.Now().Add(-maxIdleAge)
		for id, entry := range u.users {
			if entry.lastSeen.Before(cutoff) {
				delete(u.users, id)
			}
		}
	}

	entry, ok := u.users[userID]
	if !ok {
		entry = &userEntry{limiter: rate.NewLimiter(u.r, u.b)}
		u.users[userID] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter
}

// Allow reports whether the user may run another command now
func (u *UserRateLimiter) Allow(userID string) bool {
	return u.GetLimiter(userID).Allow()
}

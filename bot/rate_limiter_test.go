/* rate_limiter_test.go
 * Contains unit tests for rate_limiter.go
 */

package bot

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestUserRateLimiter_SameLimiterPerUser(t *testing.T) {
	limiter := NewUserRateLimiter(1, 1)

	assert.Same(t, limiter.GetLimiter("1"), limiter.GetLimiter("1"))
	assert.NotSame(t, limiter.GetLimiter("1"), limiter.GetLimiter("2"))
}

func TestUserRateLimiter_BurstThenBlocked(t *testing.T) {
	limiter := NewUserRateLimiter(rate.Every(time.Hour), 3)

	for range 3 {
		assert.True(t, limiter.Allow("1"))
	}
	assert.False(t, limiter.Allow("1"))
	assert.True(t, limiter.Allow("2"), "users are limited separately")
}

func TestUserRateLimiter_PrunesIdleUsers(t *testing.T) {
	limiter := NewUserRateLimiter(1, 1)
	for i := range cleanupThreshold + 1 {
		limiter.GetLimiter(fmt.Sprintf("%d", i))
	}
	limiter.mu.Lock()
	for _, entry := range limiter.users {
		entry.lastSeen = time.Now().Add(-2 * maxIdleAge)
	}
	limiter.mu.Unlock()

	limiter.GetLimiter("new")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Len(t, limiter.users, 1)
}

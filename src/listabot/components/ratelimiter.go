package components

import (
	"sync"
	"time"
)

// RateLimiter enforces a per-user cooldown on mutating commands, keyed by
// guild and user.
type RateLimiter struct {
	users map[string]time.Time
	mu    sync.Mutex
	limit time.Duration
}

func NewRateLimiter(limit time.Duration) *RateLimiter {
	return &RateLimiter{
		users: make(map[string]time.Time),
		limit: limit,
	}
}

func key(guildID, userID string) string {
	return guildID + ":" + userID
}

func (rl *RateLimiter) CanUse(guildID, userID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	k := key(guildID, userID)
	lastUse, exists := rl.users[k]
	if !exists || time.Since(lastUse) >= rl.limit {
		rl.users[k] = time.Now()
		return true
	}
	return false
}

func (rl *RateLimiter) TimeUntilNext(guildID, userID string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	lastUse, exists := rl.users[key(guildID, userID)]
	if !exists {
		return 0
	}

	elapsed := time.Since(lastUse)
	if elapsed >= rl.limit {
		return 0
	}
	return rl.limit - elapsed
}

func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for k, lastUse := range rl.users {
		if now.Sub(lastUse) > rl.limit*2 {
			delete(rl.users, k)
		}
	}
}

func (rl *RateLimiter) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			rl.Cleanup()
		}
	}()
}

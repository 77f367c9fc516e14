package common

import (
	"sync"
	"time"
)

// Cooldowns rate limits commands per user. Each command has its own window.
type Cooldowns struct {
	mu      sync.Mutex
	windows map[string]time.Duration
	last    map[cooldownKey]time.Time
	now     func() time.Time
}

type cooldownKey struct {
	command string
	userID  int64
}

// NewCooldowns creates a tracker; commands absent from windows are never limited
func NewCooldowns(windows map[string]time.Duration) *Cooldowns {
	return &Cooldowns{
		windows: windows,
		last:    make(map[cooldownKey]time.Time),
		now:     time.Now,
	}
}

// Acquire records a use of command by userID. If the user is still cooling down it
// returns the remaining wait and false without recording anything.
func (c *Cooldowns) Acquire(command string, userID int64) (time.Duration, bool) {
	window, ok := c.windows[command]
	if !ok || window <= 0 {
		return 0, true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	key := cooldownKey{command: command, userID: userID}
	if last, ok := c.last[key]; ok {
		if remaining := last.Add(window).Sub(now); remaining > 0 {
			return remaining, false
		}
	}
	c.last[key] = now
	return 0, true
}

// Window returns the configured window for a command
func (c *Cooldowns) Window(command string) time.Duration {
	return c.windows[command]
}

// Remaining returns how long userID must still wait before using command
func (c *Cooldowns) Remaining(command string, userID int64) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	last, ok := c.last[cooldownKey{command: command, userID: userID}]
	if !ok {
		return 0
	}
	if remaining := last.Add(c.windows[command]).Sub(c.now()); remaining > 0 {
		return remaining
	}
	return 0
}

package ratelimit

import (
	"strconv"
	"sync"
	"time"
)

const (
	// privateGap is the minimum spacing between sends to one private chat.
	privateGap = time.Second
	// groupBudget is the per-minute send budget for one group or channel.
	groupBudget = 20
	// sweepInterval bounds how often stale destinations are dropped.
	sweepInterval = time.Minute
)

// PerChatLimiter paces sends per destination. Negative numeric identifiers
// denote groups and channels (at most 20 sends per trailing minute);
// non-negative ones denote private chats (minimum 1 s between sends).
// Identifiers that do not parse as integers, such as @channelname, get the
// conservative group regime.
type PerChatLimiter struct {
	mu        sync.Mutex
	history   map[string][]time.Time
	lastSweep time.Time

	now func() time.Time
}

// NewPerChatLimiter creates an empty per-destination limiter.
func NewPerChatLimiter() *PerChatLimiter {
	return &PerChatLimiter{
		history: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// AdmitFor reports whether a send to destID may proceed now; when refused,
// wait is how long the caller should tell the client to hold off.
func (l *PerChatLimiter) AdmitFor(destID string) (allowed bool, wait time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.maybeSweep(now)

	hist := l.evict(destID, now)

	if isGroup(destID) {
		if len(hist) < groupBudget {
			return true, 0
		}
		wait = window - now.Sub(hist[0])
		if wait < 0 {
			wait = 0
		}
		return false, wait
	}

	if len(hist) == 0 {
		return true, 0
	}
	since := now.Sub(hist[len(hist)-1])
	if since >= privateGap {
		return true, 0
	}
	return false, privateGap - since
}

// RecordFor appends the current instant to destID's history.
func (l *PerChatLimiter) RecordFor(destID string) {
	l.mu.Lock()
	l.history[destID] = append(l.history[destID], l.now())
	l.mu.Unlock()
}

// Tracked returns the number of destinations with in-window history.
func (l *PerChatLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	n := 0
	for id := range l.history {
		if len(l.evict(id, now)) > 0 {
			n++
		}
	}
	return n
}

// isGroup classifies a destination identifier. Unparsable ids default to the
// stricter group regime.
func isGroup(destID string) bool {
	n, err := strconv.ParseInt(destID, 10, 64)
	if err != nil {
		return true
	}
	return n < 0
}

// evict trims destID's history to the window, removing empty entries.
// Caller holds the lock.
func (l *PerChatLimiter) evict(destID string, now time.Time) []time.Time {
	hist := l.history[destID]
	cut := 0
	for cut < len(hist) && now.Sub(hist[cut]) >= window {
		cut++
	}
	if cut > 0 {
		hist = append(hist[:0], hist[cut:]...)
		if len(hist) == 0 {
			delete(l.history, destID)
		} else {
			l.history[destID] = hist
		}
	}
	return hist
}

// maybeSweep drops destinations whose history is fully outside the window,
// at most once per sweepInterval. Caller holds the lock.
func (l *PerChatLimiter) maybeSweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now
	for id := range l.history {
		l.evict(id, now)
	}
}

package bot

import (
	"sync"
	"time"
)

// userLimiter enforces a sliding-window request cap per Telegram user for
// the expensive /run command.
type userLimiter struct {
	mu         sync.Mutex
	window     time.Duration
	limit      int
	timestamps map[int64][]time.Time
	now        func() time.Time
}

func newUserLimiter(limit int, window time.Duration) *userLimiter {
	return &userLimiter{
		window:     window,
		limit:      limit,
		timestamps: make(map[int64][]time.Time),
		now:        time.Now,
	}
}

func (l *userLimiter) Allow(userID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := make([]time.Time, 0, l.limit)
	for _, t := range l.timestamps[userID] {
		if now.Sub(t) <= l.window {
			recent = append(recent, t)
		}
	}
	if len(recent) >= l.limit {
		l.timestamps[userID] = recent
		return false
	}
	l.timestamps[userID] = append(recent, now)
	return true
}

package ratelimit

import (
	"sync"
	"time"
)

// LoginLimiter throttles login attempts per client key (normally the remote
// IP) over sliding minute and hour windows.
type LoginLimiter struct {
	perMinute int
	perHour   int
	enabled   bool

	mu      sync.Mutex
	clients map[string]*windows
}

type windows struct {
	minuteWindow []time.Time
	hourWindow   []time.Time
}

// NewLoginLimiter creates a limiter with the given per-key limits. A limit
// of 0 disables that window.
func NewLoginLimiter(perMinute, perHour int, enabled bool) *LoginLimiter {
	return &LoginLimiter{
		perMinute: perMinute,
		perHour:   perHour,
		enabled:   enabled,
		clients:   make(map[string]*windows),
	}
}

// Allow checks whether another login attempt from key is permitted, and
// records it when so.
func (rl *LoginLimiter) Allow(key string) bool {
	if !rl.enabled {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.clients[key]
	if !ok {
		w = &windows{}
		rl.clients[key] = w
	}

	w.minuteWindow = filterTimes(w.minuteWindow, now.Add(-time.Minute))
	w.hourWindow = filterTimes(w.hourWindow, now.Add(-time.Hour))

	if rl.perMinute > 0 && len(w.minuteWindow) >= rl.perMinute {
		return false
	}
	if rl.perHour > 0 && len(w.hourWindow) >= rl.perHour {
		return false
	}

	w.minuteWindow = append(w.minuteWindow, now)
	w.hourWindow = append(w.hourWindow, now)
	return true
}

// Stats contains per-key limiter statistics.
type Stats struct {
	Enabled            bool `json:"enabled"`
	AttemptsLastMinute int  `json:"attempts_last_minute"`
	AttemptsLastHour   int  `json:"attempts_last_hour"`
	LimitPerMinute     int  `json:"limit_per_minute"`
	LimitPerHour       int  `json:"limit_per_hour"`
}

// GetStats reports the current windows for key.
func (rl *LoginLimiter) GetStats(key string) Stats {
	if !rl.enabled {
		return Stats{Enabled: false}
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.clients[key]
	if !ok {
		return Stats{Enabled: true, LimitPerMinute: rl.perMinute, LimitPerHour: rl.perHour}
	}
	w.minuteWindow = filterTimes(w.minuteWindow, now.Add(-time.Minute))
	w.hourWindow = filterTimes(w.hourWindow, now.Add(-time.Hour))

	return Stats{
		Enabled:            true,
		AttemptsLastMinute: len(w.minuteWindow),
		AttemptsLastHour:   len(w.hourWindow),
		LimitPerMinute:     rl.perMinute,
		LimitPerHour:       rl.perHour,
	}
}

// Reset clears all tracked attempts (useful for testing).
func (rl *LoginLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.clients = make(map[string]*windows)
}

// filterTimes keeps only times after the cutoff
func filterTimes(times []time.Time, cutoff time.Time) []time.Time {
	result := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			result = append(result, t)
		}
	}
	return result
}

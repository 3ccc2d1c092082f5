package ratelimiter

import (
	"sync"
	"time"
)

// RequestCounter tracks request count and window expiry for one sender IP
type RequestCounter struct {
	Count     int
	ResetTime time.Time
}

// RateLimiter enforces a per-IP request quota over a rolling window,
// held entirely in process memory. Counters are lost on restart and not
// shared across instances.
type RateLimiter struct {
	requests map[string]*RequestCounter
	mutex    sync.RWMutex
	limit    int
	window   time.Duration
}

// New creates a new RateLimiter with the specified quota and window
func New(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string]*RequestCounter),
		limit:    limit,
		window:   window,
	}
}

// Allow consumes one unit of quota for the IP and reports whether the
// request may proceed. Quota is consumed up front, so a request counts
// against the window even if its downstream work later fails.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()

	counter, exists := rl.requests[ip]
	if !exists {
		rl.requests[ip] = &RequestCounter{
			Count:     1,
			ResetTime: now.Add(rl.window),
		}
		return true
	}

	// Window elapsed: start a fresh one
	if now.After(counter.ResetTime) {
		counter.Count = 1
		counter.ResetTime = now.Add(rl.window)
		return true
	}

	if counter.Count >= rl.limit {
		return false
	}

	counter.Count++
	return true
}

// Remaining returns the unused quota and window expiry for an IP
func (rl *RateLimiter) Remaining(ip string) (remaining int, resetTime time.Time) {
	rl.mutex.RLock()
	defer rl.mutex.RUnlock()

	counter, exists := rl.requests[ip]
	if !exists || time.Now().After(counter.ResetTime) {
		return rl.limit, time.Now().Add(rl.window)
	}

	remaining = rl.limit - counter.Count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, counter.ResetTime
}

// Limit returns the configured per-window quota
func (rl *RateLimiter) Limit() int {
	return rl.limit
}

// Cleanup removes expired entries to prevent unbounded memory growth
func (rl *RateLimiter) Cleanup() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	for ip, counter := range rl.requests {
		if now.After(counter.ResetTime) {
			delete(rl.requests, ip)
		}
	}
}

// Size returns the number of tracked IPs
func (rl *RateLimiter) Size() int {
	rl.mutex.RLock()
	defer rl.mutex.RUnlock()
	return len(rl.requests)
}

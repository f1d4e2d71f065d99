// Package ratelimit provides per-client request limiting for the API
// using token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// Buckets idle longer than this are dropped by the cleanup pass.
const staleAfter = time.Hour

// bucket is a token bucket. level refills continuously at perSecond up
// to burst. The mutex guards every field.
type bucket struct {
	mu        sync.Mutex
	burst     float64
	perSecond float64
	level     float64
	updated   time.Time
	lastSeen  time.Time
}

func newBucket(burst int, perSecond float64) *bucket {
	now := time.Now()
	return &bucket{
		burst:     float64(burst),
		perSecond: perSecond,
		level:     float64(burst),
		updated:   now,
		lastSeen:  now,
	}
}

// take refills the bucket for the elapsed time, then consumes one token
// if available. It reports whether the request may proceed, how many
// whole tokens remain, and when the bucket will be full again.
func (b *bucket) take() (allowed bool, remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.level += now.Sub(b.updated).Seconds() * b.perSecond
	if b.level > b.burst {
		b.level = b.burst
	}
	b.updated = now
	b.lastSeen = now

	if b.level >= 1 {
		b.level--
		allowed = true
	}

	remaining = int(b.level)
	reset = now
	if b.level < b.burst {
		reset = now.Add(time.Duration((b.burst - b.level) / b.perSecond * float64(time.Second)))
	}
	return allowed, remaining, reset
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSeen.Before(cutoff)
}

// Info describes the outcome of a rate limit check, for response headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration. Whitelist bypasses limiting
// entirely; Blacklist rejects unconditionally.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter tracks one token bucket per client, path and method.
type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	config  *Config
	ticker  *time.Ticker
	stop    chan struct{}
}

// NewLimiter creates a limiter. A nil config enables limiting with the
// default limit of 1000 requests per minute.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.ticker = time.NewTicker(config.CleanupInterval)
		l.stop = make(chan struct{})
		go l.cleanupLoop()
	}

	return l
}

// Allow checks whether a request from clientID against the given path
// and method may proceed.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	ec := MatchEndpoint(path, method, l.config.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if ec.Limit <= 0 {
		// Unlimited endpoint, e.g. the health check.
		return true, Info{Allowed: true}
	}

	b := l.bucketFor(clientID+":"+path+":"+method, ec)
	allowed, remaining, reset := b.take()

	var retryAfter time.Duration
	if !allowed {
		if retryAfter = time.Until(reset); retryAfter < 0 {
			retryAfter = 0
		}
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      ec.Limit,
		Remaining:  remaining,
		ResetTime:  reset,
		RetryAfter: retryAfter,
	}
}

func (l *Limiter) bucketFor(key string, ec *EndpointConfig) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	burst := ec.Burst
	if burst <= 0 {
		burst = ec.Limit
	}
	perSecond := float64(ec.Limit) / ec.Window.Seconds()

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.buckets[key]; ok {
		return existing
	}
	b = newBucket(burst, perSecond)
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.ticker.C:
			l.dropStale()
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) dropStale() {
	cutoff := time.Now().Add(-staleAfter)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
	if l.stop != nil {
		close(l.stop)
	}
}

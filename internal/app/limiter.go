package app

import (
	"context"
	"sync"
)

// LoadLimiter borne le nombre de lectures du dataset en cours.
// Le plafond peut être modifié à chaud via SetLimit; Acquire respecte le contexte.
type LoadLimiter struct {
	mu       sync.Mutex
	limit    int
	inFlight int
	notify   chan struct{}
}

// NewLoadLimiter: limit <= 0 désactive le plafond.
func NewLoadLimiter(limit int) *LoadLimiter {
	return &LoadLimiter{limit: limit, notify: make(chan struct{})}
}

func (l *LoadLimiter) Limit() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.limit
}

func (l *LoadLimiter) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight
}

func (l *LoadLimiter) SetLimit(limit int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.limit == limit {
		return
	}
	l.limit = limit
	l.wakeLocked()
}

func (l *LoadLimiter) Acquire(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.mu.Lock()
		if l.limit <= 0 || l.inFlight < l.limit {
			l.inFlight++
			l.mu.Unlock()
			return nil
		}
		ch := l.notify
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ch:
		}
	}
}

func (l *LoadLimiter) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inFlight > 0 {
		l.inFlight--
	}
	l.wakeLocked()
}

// wakeLocked réveille tous les waiters; ils repassent par le test de plafond.
func (l *LoadLimiter) wakeLocked() {
	close(l.notify)
	l.notify = make(chan struct{})
}

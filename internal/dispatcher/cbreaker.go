package dispatcher

import (
	"sync"
	"time"
)

type breakerState int

const (
	stClosed breakerState = iota
	stOpen
	stHalfOpen
)

// MicroBreaker guards one SMS gateway: trip after threshold consecutive
// failures, hold off for the cooldown, then let a single probe through
// before closing again. Small enough that a library breaker would be
// more surface than logic.
type MicroBreaker struct {
	mu        sync.Mutex
	st        breakerState
	failures  int
	threshold int
	cooldown  time.Duration
	reopenAt  time.Time
	probing   bool
}

func NewMicroBreaker(threshold int, cooldown time.Duration) *MicroBreaker {
	return &MicroBreaker{threshold: threshold, cooldown: cooldown}
}

// Ready reports whether a call could go through right now, without
// claiming the probe slot.
func (b *MicroBreaker) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.st {
	case stOpen:
		return time.Now().After(b.reopenAt) && !b.probing
	case stHalfOpen:
		return !b.probing
	default:
		return true
	}
}

// TryAcquire claims the right to call. Past the cooldown it admits
// exactly one probe; everything else waits for its verdict.
func (b *MicroBreaker) TryAcquire() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.st {
	case stOpen:
		if time.Now().After(b.reopenAt) && !b.probing {
			b.st = stHalfOpen
			b.probing = true
			return true
		}
		return false
	case stHalfOpen:
		if !b.probing {
			b.probing = true
			return true
		}
		return false
	default:
		return true
	}
}

func (b *MicroBreaker) OnSuccess() {
	b.mu.Lock()
	b.failures = 0
	b.st = stClosed
	b.probing = false
	b.mu.Unlock()
}

func (b *MicroBreaker) OnFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A failed probe reopens immediately; the failure streak is moot.
	if b.st == stHalfOpen {
		b.st = stOpen
		b.reopenAt = time.Now().Add(b.cooldown)
		b.probing = false
		return
	}

	b.failures++
	if b.failures >= b.threshold {
		b.st = stOpen
		b.reopenAt = time.Now().Add(b.cooldown)
	}
}

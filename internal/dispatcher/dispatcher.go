// Package dispatcher delivers status-change SMS notifications through
// external gateway providers: round-robin over the healthy ones, a
// small circuit breaker per provider, bounded retries.
package dispatcher

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Notification is one SMS to a policy holder.
type Notification struct {
	Phone string `json:"phone"`
	Text  string `json:"text"`
}

var (
	ErrNoHealthy = fmt.Errorf("no healthy providers")
	ErrNoAcquire = fmt.Errorf("provider not acquired")
)

type Dispatcher struct {
	providers         []Provider
	roundRobinCounter atomic.Uint64
	maxAttempts       int
}

func NewDispatcher(provs []Provider, maxAttempts int) *Dispatcher {
	if maxAttempts < 1 {
		maxAttempts = 2
	}

	return &Dispatcher{providers: provs, maxAttempts: maxAttempts}
}

func (d *Dispatcher) selectProvider() (Provider, error) {
	healthy := make([]Provider, 0, len(d.providers))
	for _, p := range d.providers {
		if p.Ready() {
			healthy = append(healthy, p)
		}
	}

	if len(healthy) == 0 {
		return nil, ErrNoHealthy
	}

	x := d.roundRobinCounter.Add(1)
	idx := int((x - 1) % uint64(len(healthy)))

	return healthy[idx], nil
}

func (d *Dispatcher) tryOnce(ctx context.Context, n Notification) error {
	p, err := d.selectProvider()
	if err != nil {
		return err
	}

	if !p.Acquire() {
		return ErrNoAcquire
	}

	return p.Send(ctx, n)
}

// Send attempts delivery up to maxAttempts times, rotating providers.
func (d *Dispatcher) Send(ctx context.Context, n Notification) error {
	var last error
	for i := 0; i < d.maxAttempts; i++ {
		if err := d.tryOnce(ctx, n); err == nil {
			return nil
		} else {
			last = err
		}
	}

	if last == nil {
		last = fmt.Errorf("send notification failed")
	}

	return last
}

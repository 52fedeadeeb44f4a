package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stoneriver/portal/internal/dispatcher"
	"github.com/stoneriver/portal/internal/kafka"
	"github.com/stoneriver/portal/internal/logger"
	"github.com/stoneriver/portal/internal/metrics"
	"github.com/stoneriver/portal/internal/model"
)

// Notifier:
// - fetches status-change events from Kafka (relayed there from the
//   outbox table),
// - renders the SMS text for the transition,
// - dispatches it via the provider gateways.
//
// Delivery is at-least-once; the gateways deduplicate on their side.
type Notifier struct {
	Consumer *kafka.Consumer
	Dispatch *dispatcher.Dispatcher

	Workers int // goroutines processing events
}

// NewNotifier builds a worker with sane defaults.
func NewNotifier(consumer *kafka.Consumer, dispatch *dispatcher.Dispatcher) *Notifier {
	return &Notifier{
		Consumer: consumer,
		Dispatch: dispatch,
		Workers:  16,
	}
}

// Run starts the worker and blocks until ctx is cancelled.
func (w *Notifier) Run(ctx context.Context) error {
	if w.Consumer == nil || w.Dispatch == nil {
		return errors.New("notifier: missing consumer or dispatcher")
	}
	if w.Workers <= 0 {
		w.Workers = 16
	}

	msgCh := make(chan kafka.Message, w.Workers*2)

	// Fetcher goroutine
	go func() {
		defer close(msgCh)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				m, err := w.Consumer.Fetch(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					logger.L().Warn("kafka fetch failed", zap.Error(err))
					time.Sleep(200 * time.Millisecond)
					continue
				}
				msgCh <- m
			}
		}
	}()

	for i := 0; i < w.Workers; i++ {
		go w.runProcessor(ctx, msgCh)
	}

	<-ctx.Done()
	return nil
}

func (w *Notifier) runProcessor(ctx context.Context, in <-chan kafka.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-in:
			if !ok {
				return
			}
			w.processOne(ctx, m)
		}
	}
}

func (w *Notifier) processOne(ctx context.Context, m kafka.Message) {
	var change model.StatusChange
	if err := json.Unmarshal(m.Value, &change); err != nil || change.PolicyNumber == "" {
		// poison message: commit and skip
		_ = w.Consumer.Commit(ctx, m)
		metrics.NotificationsTotal.WithLabelValues("dropped").Inc()
		logger.L().Warn("bad status-change payload", zap.Error(err))
		return
	}

	if change.Phone == "" {
		_ = w.Consumer.Commit(ctx, m)
		metrics.NotificationsTotal.WithLabelValues("dropped").Inc()
		logger.L().Warn("status change without phone number",
			zap.String("policy_number", change.PolicyNumber))
		return
	}

	n := dispatcher.Notification{
		Phone: change.Phone,
		Text:  renderText(change),
	}

	if err := w.Dispatch.Send(ctx, n); err != nil {
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		logger.L().Error("notification dispatch failed",
			zap.String("policy_number", change.PolicyNumber),
			zap.Error(err))
	} else {
		metrics.NotificationsTotal.WithLabelValues("sent").Inc()
	}

	// Always commit (at-least-once).
	if err := w.Consumer.Commit(ctx, m); err != nil {
		logger.L().Error("kafka commit failed", zap.Error(err))
	}
}

// renderText builds the customer-facing SMS for one transition.
func renderText(c model.StatusChange) string {
	switch c.ToStatus {
	case model.StatusOverdue:
		return fmt.Sprintf(
			"Stone River: policy %s is %d month behind. Outstanding %.2f. Please settle to keep your cover active.",
			c.PolicyNumber, c.MonthsBehind, c.Outstanding)
	case model.StatusSuspended:
		return fmt.Sprintf(
			"Stone River: policy %s has been suspended (%d months in arrears, outstanding %.2f). Contact your agent to restore cover.",
			c.PolicyNumber, c.MonthsBehind, c.Outstanding)
	default:
		return fmt.Sprintf("Stone River: policy %s status is now %s.", c.PolicyNumber, c.ToStatus)
	}
}

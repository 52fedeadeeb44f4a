package batch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/stoneriver/portal/internal/compliance"
	"github.com/stoneriver/portal/internal/model"
)

const PassApplySuspensions = "apply-suspensions"

// StatusChangedTopic is the Kafka topic the outbox relay publishes
// status transitions to; the notifier worker consumes it.
const StatusChangedTopic = "policy.status-changed"

// Arrears severity tiers reported by the suspension pass.
const (
	tierMinor    = "arrears_minor"    // 1 month behind
	tierModerate = "arrears_moderate" // 2 months
	tierCritical = "arrears_critical" // 3+ months
)

// ApplySuspensions evaluates the canonical compliance model for every
// customer and persists status transitions. Each divergence is written
// in one transaction together with its outbox event, so a notification
// is queued exactly when a transition lands.
func (d *Deps) ApplySuspensions(ctx context.Context) (*Report, error) {
	customers, err := d.loadCustomers(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := d.Payments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}

	r := newReport(newRunID(), PassApplySuspensions)
	today := d.now()

	var totalOutstanding float64

	for i := range customers {
		c := &customers[i]
		r.Processed++

		dec := compliance.Evaluate(c, payments[c.ID], today)

		r.count("status_" + dec.Status.String())
		totalOutstanding += dec.Outstanding
		switch {
		case dec.MonthsBehind >= 3:
			r.count(tierCritical)
		case dec.MonthsBehind == 2:
			r.count(tierModerate)
		case dec.MonthsBehind == 1:
			r.count(tierMinor)
		}

		if c.Status.Sticky() {
			r.decide(c, model.ActionSkipped, c.Status.String(), c.Status.String(), "sticky status, never recomputed")
			continue
		}
		if dec.Status == c.Status {
			r.decide(c, model.ActionSkipped, c.Status.String(), dec.Status.String(), "status unchanged")
			continue
		}

		if err := d.applyTransition(ctx, c, dec, r.RunID); err != nil {
			r.fail(c, err)
			continue
		}
		r.decide(c, model.ActionUpdated, c.Status.String(), dec.Status.String(),
			fmt.Sprintf("%d month(s) behind, outstanding %.2f", dec.MonthsBehind, dec.Outstanding))
	}

	r.TotalOutstanding = totalOutstanding

	d.finish(ctx, r)
	return r, nil
}

// applyTransition persists one status change plus its outbox event
// atomically. Notifications only fire for delinquency transitions worth
// flagging; recoveries back to Active update silently.
func (d *Deps) applyTransition(ctx context.Context, c *model.Customer, dec compliance.Decision, runID string) error {
	return d.transact(ctx, func(tx *sqlx.Tx) error {
		if err := d.Customers.UpdateStatus(ctx, tx, c.ID, dec.Status); err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		if !dec.ShouldSuspend {
			return nil
		}

		change := model.StatusChange{
			CustomerID:   c.ID,
			PolicyNumber: c.PolicyNumber,
			Phone:        c.Phone,
			FromStatus:   c.Status,
			ToStatus:     dec.Status,
			MonthsBehind: dec.MonthsBehind,
			Outstanding:  dec.Outstanding,
			RunID:        runID,
		}
		payload, err := json.Marshal(change)
		if err != nil {
			return fmt.Errorf("marshal status change: %w", err)
		}
		if err := d.Outbox.Insert(ctx, tx, "customer", c.PolicyNumber, StatusChangedTopic, payload); err != nil {
			return fmt.Errorf("insert outbox: %w", err)
		}
		return nil
	})
}

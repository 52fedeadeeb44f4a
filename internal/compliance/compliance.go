// Package compliance derives a customer's payment-arrears state from
// its receipt history and maps it onto the policy status ladder.
//
// The canonical model counts whole calendar months since inception
// against the number of recorded receipts. The alternative grace-period
// model in grace.go is report-only (see batch verify-compliance) and is
// never mixed with this one inside a single run.
package compliance

import (
	"time"

	"github.com/stoneriver/portal/internal/model"
)

// Decision is the engine's verdict for one customer. The engine is
// pure: persisting the new status, stamping timestamps and accumulating
// run statistics are the driving pass's job.
type Decision struct {
	Status               model.Status
	MonthsSinceInception int
	PaymentsCovered      int
	MonthsBehind         int
	Outstanding          float64

	// ShouldSuspend is true when the mapped status is a delinquency
	// status the customer is not already in, i.e. the transition is
	// worth flagging and notifying. Re-running over an account already
	// Overdue/Suspended for the same arrears stays quiet.
	ShouldSuspend bool
}

// Evaluate computes the arrears decision for one customer as of today.
// Sticky statuses (Cancelled, Express) are returned unchanged with zero
// arrears: this engine never recomputes them.
func Evaluate(c *model.Customer, payments []model.Payment, today time.Time) Decision {
	if c.Status.Sticky() {
		return Decision{Status: c.Status}
	}

	covered := paymentsCovered(payments)

	// No history at all: the policy never went live. Classified, not
	// crashed.
	if c.InceptionDate == nil {
		if covered == 0 {
			return Decision{Status: model.StatusInactive}
		}
		// Receipts exist but the row lost its inception date; without a
		// start point there is no arrears arithmetic to do.
		return Decision{Status: model.StatusInactive, PaymentsCovered: covered}
	}

	months := monthsBetween(*c.InceptionDate, today)

	behind := months - covered
	if behind < 0 {
		behind = 0
	}

	var status model.Status
	switch {
	case behind == 0:
		status = model.StatusActive
	case behind == 1:
		status = model.StatusOverdue
	default:
		status = model.StatusSuspended
	}

	return Decision{
		Status:               status,
		MonthsSinceInception: months,
		PaymentsCovered:      covered,
		MonthsBehind:         behind,
		Outstanding:          float64(behind) * c.TotalPremium,
		ShouldSuspend:        status != model.StatusActive && status != c.Status,
	}
}

// paymentsCovered counts how many premium periods the receipt history
// settles. One receipt settles one period regardless of amount or
// period length; partial and lump-sum payments are not reconciled
// against specific periods. Known simplification inherited from the
// legacy imports - a reconciliation engine replaces this function, not
// the callers.
func paymentsCovered(payments []model.Payment) int {
	return len(payments)
}

// monthsBetween counts whole calendar months from a to b using
// year*12+month arithmetic (not day-precise), floored at zero for
// policies whose inception lies in the future.
func monthsBetween(a, b time.Time) int {
	m := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if m < 0 {
		return 0
	}
	return m
}

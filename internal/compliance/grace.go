package compliance

import (
	"time"

	"github.com/stoneriver/portal/internal/model"
)

// Escalation steps beyond the period's own grace window.
const (
	graceExtraDays     = 30
	suspendedExtraDays = 90
)

// GraceDecision is the verdict of the days-since-last-payment ladder.
// This model tolerates lump-sum payers better than the canonical one
// (a single recent receipt keeps the account Active whatever the
// arithmetic says), which is exactly why the verification pass uses it
// as a cross-check instead of letting both models mutate state.
type GraceDecision struct {
	Status           model.Status
	DaysSincePayment int
	GraceWindowDays  int
}

// EvaluateGrace classifies one customer on the grace-period ladder:
// Active (within one premium period of the last receipt), Grace Period,
// Suspended, Lapsed. Sticky statuses pass through unchanged and a
// customer with neither receipts nor an inception date is Inactive,
// mirroring the canonical model's edge handling.
func EvaluateGrace(c *model.Customer, payments []model.Payment, today time.Time) GraceDecision {
	if c.Status.Sticky() {
		return GraceDecision{Status: c.Status}
	}

	grace := c.PremiumPeriod.GraceDays()

	last := lastPaymentDate(payments)
	if last == nil {
		// Never paid: fall back to inception as the clock's start.
		if c.InceptionDate == nil {
			return GraceDecision{Status: model.StatusInactive, GraceWindowDays: grace}
		}
		last = c.InceptionDate
	}

	days := int(today.Sub(*last).Hours() / 24)
	if days < 0 {
		days = 0
	}

	d := GraceDecision{DaysSincePayment: days, GraceWindowDays: grace}

	switch {
	case days <= grace:
		d.Status = model.StatusActive
	case days <= grace+graceExtraDays:
		d.Status = model.StatusGracePeriod
	case days <= grace+suspendedExtraDays:
		d.Status = model.StatusSuspended
	default:
		d.Status = model.StatusLapsed
	}

	return d
}

func lastPaymentDate(payments []model.Payment) *time.Time {
	var last *time.Time
	for i := range payments {
		t := payments[i].Date
		if last == nil || t.After(*last) {
			last = &t
		}
	}
	return last
}

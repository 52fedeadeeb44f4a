package batch

import (
	"context"
	"fmt"

	"github.com/stoneriver/portal/internal/compliance"
	"github.com/stoneriver/portal/internal/model"
)

const PassVerifyCompliance = "verify-compliance"

// VerifyCompliance runs the grace-period ladder as a report-only
// cross-check of the stored statuses. It never writes: the two
// compliance models disagree by design on lump-sum payers, and only the
// canonical model is allowed to mutate.
func (d *Deps) VerifyCompliance(ctx context.Context) (*Report, error) {
	customers, err := d.loadCustomers(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := d.Payments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}

	r := newReport(newRunID(), PassVerifyCompliance)
	today := d.now()

	for i := range customers {
		c := &customers[i]
		r.Processed++

		dec := compliance.EvaluateGrace(c, payments[c.ID], today)
		r.count("ladder_" + dec.Status.String())

		// The ladder vocabulary is wider than the stored one; only an
		// Active/Suspended disagreement on a non-sticky account is a
		// finding.
		if c.Status.Sticky() || dec.Status == c.Status {
			r.decide(c, model.ActionSkipped, c.Status.String(), dec.Status.String(), "consistent")
			continue
		}
		if dec.Status == model.StatusGracePeriod || dec.Status == model.StatusLapsed {
			r.decide(c, model.ActionSkipped, c.Status.String(), dec.Status.String(), "ladder-only status")
			continue
		}

		r.Issues = append(r.Issues, fmt.Sprintf(
			"policy %s: stored status %s but grace model says %s (%d day(s) since last payment, window %d)",
			c.PolicyNumber, c.Status, dec.Status, dec.DaysSincePayment, dec.GraceWindowDays))
		r.decide(c, model.ActionFlagged, c.Status.String(), dec.Status.String(),
			fmt.Sprintf("%d day(s) since last payment", dec.DaysSincePayment))
	}

	d.finish(ctx, r)
	return r, nil
}

package batch

import (
	"context"
	"fmt"

	"github.com/stoneriver/portal/internal/dedupe"
	"github.com/stoneriver/portal/internal/model"
)

const PassResolveDuplicates = "resolve-duplicates"

// ResolveDuplicates finds customer groups sharing a national id and
// resolves each down to one canonical record. The full resolution is
// computed and reported before anything is deleted; deletions only
// happen when apply is set, one group at a time, followed by a rescan
// that must find zero residual groups.
func (d *Deps) ResolveDuplicates(ctx context.Context, apply bool) (*Report, error) {
	customers, err := d.loadCustomers(ctx)
	if err != nil {
		return nil, err
	}

	r := newReport(newRunID(), PassResolveDuplicates)

	groups := dedupe.GroupByIDNumber(customers)
	r.Counts["duplicate_groups"] = len(groups)

	// Resolution phase: every verdict lands in the report before the
	// first delete.
	resolutions := make([]dedupe.Resolution, 0, len(groups))
	for _, g := range groups {
		res := dedupe.Resolve(g)
		resolutions = append(resolutions, res)

		r.Issues = append(r.Issues, fmt.Sprintf(
			"id number %s held by %d records; keeping policy %s (id %d): %s",
			res.IDNumber, len(g.Records), res.Winner.PolicyNumber, res.Winner.ID, res.Reason))
	}

	// Apply phase.
	for _, res := range resolutions {
		w := res.Winner
		r.Processed++

		if !apply {
			r.decide(&w, model.ActionFlagged, w.Status.String(), w.Status.String(),
				fmt.Sprintf("dry run: would delete %d duplicate(s)", len(res.Losers)))
			continue
		}

		deleted := 0
		for i := range res.Losers {
			l := res.Losers[i]
			if err := d.Customers.Delete(ctx, nil, l.ID); err != nil {
				r.fail(&l, fmt.Errorf("delete duplicate: %w", err))
				continue
			}
			r.decide(&l, model.ActionDeleted, l.Status.String(), "",
				fmt.Sprintf("duplicate of policy %s", w.PolicyNumber))
			deleted++
		}
		r.decide(&w, model.ActionUpdated, w.Status.String(), w.Status.String(),
			fmt.Sprintf("kept as canonical, %d duplicate(s) removed", deleted))
	}

	if apply {
		d.verifyNoResiduals(ctx, r)
	}

	d.finish(ctx, r)
	return r, nil
}

// verifyNoResiduals rescans storage after the apply phase and reports
// pass/fail explicitly.
func (d *Deps) verifyNoResiduals(ctx context.Context, r *Report) {
	customers, err := d.loadCustomers(ctx)
	if err != nil {
		r.Issues = append(r.Issues, fmt.Sprintf("post-pass rescan failed: %v", err))
		return
	}

	residual := dedupe.GroupByIDNumber(customers)
	r.Counts["residual_groups"] = len(residual)
	for _, g := range residual {
		r.Issues = append(r.Issues, fmt.Sprintf(
			"residual duplicate group: id number %s still held by %d records", g.IDNumber, len(g.Records)))
	}
}

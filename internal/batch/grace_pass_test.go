package batch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoneriver/portal/internal/model"
)

func TestVerifyComplianceFlagsModelDisagreements(t *testing.T) {
	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	customers := &fakeCustomers{rows: map[int64]model.Customer{
		// Stored Active, last receipt 70 days before fixedNow: ladder
		// says Suspended.
		1: policySince(1, model.StatusActive, jan, 25),
		// Stored Suspended, paid 5 days ago: ladder says Active.
		2: policySince(2, model.StatusSuspended, jan, 25),
		// Stored Active, paid 10 days ago: consistent.
		3: policySince(3, model.StatusActive, jan, 25),
		// Sticky: never a finding, however stale.
		4: policySince(4, model.StatusCancelled, jan, 25),
	}}
	payments := &fakePayments{rows: map[int64][]model.Payment{
		1: {{CustomerID: 1, Date: fixedNow().AddDate(0, 0, -70)}},
		2: {{CustomerID: 2, Date: fixedNow().AddDate(0, 0, -5)}},
		3: {{CustomerID: 3, Date: fixedNow().AddDate(0, 0, -10)}},
	}}

	d, _, _ := newTestDeps(customers, &fakeParticipants{rows: map[int64][]model.Participant{}}, payments)

	r, err := d.VerifyCompliance(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, r.Processed)
	assert.Equal(t, 2, r.Counts[model.ActionFlagged])
	assert.Equal(t, 2, r.Counts[model.ActionSkipped])

	assert.Equal(t, 1, r.Counts["ladder_Suspended"])
	assert.Equal(t, 2, r.Counts["ladder_Active"])
	assert.Equal(t, 1, r.Counts["ladder_Cancelled"])

	require.Len(t, r.Issues, 2)
	assert.Contains(t, r.Issues[0], "SRP-0001")
	assert.Contains(t, r.Issues[0], "grace model says Suspended")
	assert.Contains(t, r.Issues[1], "SRP-0002")

	// Report-only: stored statuses untouched.
	assert.Equal(t, model.StatusActive, customers.rows[1].Status)
	assert.Equal(t, model.StatusSuspended, customers.rows[2].Status)
}

func TestVerifyComplianceSkipsLadderOnlyStatuses(t *testing.T) {
	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	customers := &fakeCustomers{rows: map[int64]model.Customer{
		// 45 days since receipt: Grace Period on the ladder, which has no
		// stored counterpart and is not a finding.
		1: policySince(1, model.StatusActive, jan, 25),
	}}
	payments := &fakePayments{rows: map[int64][]model.Payment{
		1: {{CustomerID: 1, Date: fixedNow().AddDate(0, 0, -45)}},
	}}

	d, _, _ := newTestDeps(customers, &fakeParticipants{rows: map[int64][]model.Participant{}}, payments)

	r, err := d.VerifyCompliance(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, r.Counts[model.ActionSkipped])
	assert.Zero(t, r.Counts[model.ActionFlagged])
	assert.Equal(t, 1, r.Counts["ladder_Grace Period"])
	assert.Empty(t, r.Issues)
}

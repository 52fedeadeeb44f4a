package batch

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoneriver/portal/internal/model"
)

func policySince(id int64, status model.Status, inception time.Time, premium float64) model.Customer {
	return model.Customer{
		ID:            id,
		PolicyNumber:  "SRP-000" + string(rune('0'+id)),
		Status:        status,
		Phone:         "+263771000001",
		InceptionDate: &inception,
		TotalPremium:  premium,
		PremiumPeriod: model.PeriodMonthly,
	}
}

func monthlyReceipts(customerID int64, from time.Time, n int) []model.Payment {
	out := make([]model.Payment, n)
	for i := range out {
		out[i] = model.Payment{CustomerID: customerID, Amount: 25, Date: from.AddDate(0, i, 0)}
	}
	return out
}

func TestApplySuspensionsClassifiesAndCounts(t *testing.T) {
	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	customers := &fakeCustomers{rows: map[int64]model.Customer{
		1: policySince(1, model.StatusActive, jan, 25.50),    // 3 receipts, fully paid
		2: policySince(2, model.StatusOverdue, jan, 25.50),   // 2 receipts, 1 behind
		3: policySince(3, model.StatusSuspended, jan, 25.50), // 1 receipt, 2 behind
		4: policySince(4, model.StatusCancelled, jan, 25.50), // sticky
	}}
	payments := &fakePayments{rows: map[int64][]model.Payment{
		1: monthlyReceipts(1, jan, 3),
		2: monthlyReceipts(2, jan, 2),
		3: monthlyReceipts(3, jan, 1),
	}}

	d, ob, _ := newTestDeps(customers, &fakeParticipants{rows: map[int64][]model.Participant{}}, payments)

	r, err := d.ApplySuspensions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, r.Processed)
	assert.Equal(t, 4, r.Counts[model.ActionSkipped])
	assert.Zero(t, r.Counts[model.ActionUpdated])

	assert.Equal(t, 1, r.Counts["status_Active"])
	assert.Equal(t, 1, r.Counts["status_Overdue"])
	assert.Equal(t, 1, r.Counts["status_Suspended"])
	assert.Equal(t, 1, r.Counts["status_Cancelled"])

	assert.Equal(t, 1, r.Counts["arrears_minor"])
	assert.Equal(t, 1, r.Counts["arrears_moderate"])
	assert.Zero(t, r.Counts["arrears_critical"])

	// 1 month + 2 months behind at 25.50 each; cents survive.
	assert.InDelta(t, 76.50, r.TotalOutstanding, 0.001)

	assert.Empty(t, ob.topics, "no transition, no outbox event")

	// Stored statuses untouched.
	assert.Equal(t, model.StatusOverdue, customers.rows[2].Status)
	assert.Equal(t, model.StatusSuspended, customers.rows[3].Status)
}

func TestApplySuspensionsPersistsTransitionWithOutboxEvent(t *testing.T) {
	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	// Active on record, zero receipts since a 3-month-old inception:
	// the pass must write Suspended and queue exactly one notification.
	customers := &fakeCustomers{rows: map[int64]model.Customer{
		1: policySince(1, model.StatusActive, jan, 25.50),
	}}

	d, ob, _ := newTestDeps(customers, &fakeParticipants{rows: map[int64][]model.Participant{}}, &fakePayments{rows: map[int64][]model.Payment{}})

	r, err := d.ApplySuspensions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, r.Counts[model.ActionUpdated])
	assert.Equal(t, model.StatusSuspended, customers.rows[1].Status)

	require.Equal(t, []string{StatusChangedTopic}, ob.topics)

	var change model.StatusChange
	require.NoError(t, json.Unmarshal(ob.payloads[0], &change))
	assert.Equal(t, "SRP-0001", change.PolicyNumber)
	assert.Equal(t, "+263771000001", change.Phone)
	assert.Equal(t, model.StatusActive, change.FromStatus)
	assert.Equal(t, model.StatusSuspended, change.ToStatus)
	assert.Equal(t, 3, change.MonthsBehind)
	assert.InDelta(t, 76.50, change.Outstanding, 0.001)
	assert.Equal(t, r.RunID, change.RunID)

	require.Len(t, r.Decisions, 1)
	assert.Equal(t, model.ActionUpdated, r.Decisions[0].Action)
	assert.Equal(t, "Active", r.Decisions[0].OldStatus)
	assert.Equal(t, "Suspended", r.Decisions[0].NewStatus)
}

func TestApplySuspensionsRecoveryUpdatesSilently(t *testing.T) {
	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	// Suspended on record but fully paid up: status recovers to Active
	// with no notification queued.
	customers := &fakeCustomers{rows: map[int64]model.Customer{
		1: policySince(1, model.StatusSuspended, jan, 25.50),
	}}
	payments := &fakePayments{rows: map[int64][]model.Payment{
		1: monthlyReceipts(1, jan, 3),
	}}

	d, ob, _ := newTestDeps(customers, &fakeParticipants{rows: map[int64][]model.Participant{}}, payments)

	r, err := d.ApplySuspensions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, r.Counts[model.ActionUpdated])
	assert.Equal(t, model.StatusActive, customers.rows[1].Status)
	assert.Empty(t, ob.topics, "recoveries never notify")
}

func TestApplySuspensionsOutboxFailureIsFailSoft(t *testing.T) {
	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	customers := &fakeCustomers{rows: map[int64]model.Customer{
		1: policySince(1, model.StatusActive, jan, 25.50), // would transition
		2: policySince(2, model.StatusActive, jan, 25.50), // stays Active
	}}
	payments := &fakePayments{rows: map[int64][]model.Payment{
		2: monthlyReceipts(2, jan, 3),
	}}

	d, ob, _ := newTestDeps(customers, &fakeParticipants{rows: map[int64][]model.Participant{}}, payments)
	ob.insertErr = errors.New("outbox table locked")

	r, err := d.ApplySuspensions(context.Background())
	require.NoError(t, err, "record failures never abort the run")

	assert.Equal(t, 1, r.Counts[model.ActionFailed])
	assert.Equal(t, 1, r.Counts[model.ActionSkipped])
	require.Len(t, r.Failures, 1)
	assert.Equal(t, int64(1), r.Failures[0].CustomerID)
	assert.Contains(t, r.Failures[0].Error, "outbox table locked")
}

func TestApplySuspensionsStickyNeverRecomputed(t *testing.T) {
	jan := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	customers := &fakeCustomers{rows: map[int64]model.Customer{
		1: policySince(1, model.StatusExpress, jan, 25), // years behind on paper
	}}

	d, ob, _ := newTestDeps(customers, &fakeParticipants{rows: map[int64][]model.Participant{}}, &fakePayments{rows: map[int64][]model.Payment{}})

	r, err := d.ApplySuspensions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, r.Counts[model.ActionSkipped])
	assert.Equal(t, model.StatusExpress, customers.rows[1].Status)
	assert.Empty(t, ob.topics)
	require.Len(t, r.Decisions, 1)
	assert.Contains(t, r.Decisions[0].Detail, "sticky")
}

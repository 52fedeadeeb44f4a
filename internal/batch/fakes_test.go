package batch

import (
	"context"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/stoneriver/portal/internal/model"
)

// In-memory repository fakes. Writes mutate the maps directly so passes
// that rescan (dedupe) observe their own effects.

type fakeCustomers struct {
	rows      map[int64]model.Customer
	deleteErr map[int64]error
	deleted   []int64
}

func (f *fakeCustomers) ListAll(ctx context.Context) ([]model.Customer, error) {
	ids := make([]int64, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]model.Customer, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.rows[id])
	}
	return out, nil
}

func (f *fakeCustomers) GetByPolicyNumber(ctx context.Context, policyNumber string) (*model.Customer, error) {
	for _, c := range f.rows {
		if c.PolicyNumber == policyNumber {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomers) UpdateStatus(ctx context.Context, tx *sqlx.Tx, id int64, status model.Status) error {
	c := f.rows[id]
	c.Status = status
	f.rows[id] = c
	return nil
}

func (f *fakeCustomers) UpdateLatestReceipt(ctx context.Context, tx *sqlx.Tx, id int64, date string) error {
	return nil
}

func (f *fakeCustomers) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	if err := f.deleteErr[id]; err != nil {
		return err
	}
	delete(f.rows, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeParticipants struct {
	rows       map[int64][]model.Participant
	replaceErr map[int64]error
	replaced   []int64
}

func (f *fakeParticipants) ListAll(ctx context.Context) (map[int64][]model.Participant, error) {
	out := make(map[int64][]model.Participant, len(f.rows))
	for id, ps := range f.rows {
		out[id] = append([]model.Participant(nil), ps...)
	}
	return out, nil
}

func (f *fakeParticipants) ListByCustomer(ctx context.Context, customerID int64) ([]model.Participant, error) {
	return append([]model.Participant(nil), f.rows[customerID]...), nil
}

func (f *fakeParticipants) ReplaceForCustomer(ctx context.Context, tx *sqlx.Tx, customerID int64, participants []model.Participant) error {
	if err := f.replaceErr[customerID]; err != nil {
		return err
	}
	f.rows[customerID] = append([]model.Participant(nil), participants...)
	f.replaced = append(f.replaced, customerID)
	return nil
}

type fakePayments struct {
	rows map[int64][]model.Payment
}

func (f *fakePayments) ListAll(ctx context.Context) (map[int64][]model.Payment, error) {
	return f.rows, nil
}

func (f *fakePayments) ListByCustomer(ctx context.Context, customerID int64) ([]model.Payment, error) {
	return f.rows[customerID], nil
}

func (f *fakePayments) ExistsReceipt(ctx context.Context, p model.Payment) (bool, error) {
	for _, existing := range f.rows[p.CustomerID] {
		if existing.SameReceipt(p) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePayments) Insert(ctx context.Context, tx *sqlx.Tx, p model.Payment) (int64, error) {
	f.rows[p.CustomerID] = append(f.rows[p.CustomerID], p)
	return int64(len(f.rows[p.CustomerID])), nil
}

type fakeOutbox struct {
	topics    []string
	payloads  [][]byte
	insertErr error
}

func (f *fakeOutbox) Insert(ctx context.Context, tx *sqlx.Tx, aggregate, aggregateID, topic string, payload []byte) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, payload)
	return nil
}

type fakeDecisions struct {
	batchSizes []int
	insertErr  error
}

func (f *fakeDecisions) InsertBatch(ctx context.Context, records []model.DecisionRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.batchSizes = append(f.batchSizes, len(records))
	return nil
}

func (f *fakeDecisions) ListByRun(ctx context.Context, runID string, limit, offset int) ([]model.DecisionRecord, error) {
	return nil, nil
}

func (f *fakeDecisions) ListByPolicy(ctx context.Context, policyNumber string, limit, offset int) ([]model.DecisionRecord, error) {
	return nil, nil
}

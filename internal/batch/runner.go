package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/stoneriver/portal/internal/metrics"
	"github.com/stoneriver/portal/internal/model"
	"github.com/stoneriver/portal/internal/repository"
	"github.com/stoneriver/portal/internal/util"
)

// Deps wires a pass to storage. Decisions may be nil when no audit sink
// is configured (dev runs); everything else is required.
type Deps struct {
	DB           *sqlx.DB
	Customers    repository.CustomersRepository
	Participants repository.ParticipantsRepository
	Payments     repository.PaymentsRepository
	Outbox       repository.OutboxRepository
	Decisions    repository.DecisionsRepository

	// WriteChunkSize bounds audit-log bulk inserts; defaults to 50.
	WriteChunkSize int

	// Now is the pass's clock; overridable in tests. Defaults to
	// time.Now.
	Now func() time.Time

	// Transact runs fn inside one transaction; overridable in tests.
	// Defaults to a transaction on DB.
	Transact func(ctx context.Context, fn func(*sqlx.Tx) error) error
}

func (d *Deps) transact(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if d.Transact != nil {
		return d.Transact(ctx, fn)
	}

	tx, err := d.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Deps) chunkSize() int {
	if d.WriteChunkSize > 0 {
		return d.WriteChunkSize
	}
	return 50
}

func newRunID() string { return util.NewID() }

// loadCustomers fetches every customer with its participant list
// attached, one query each. A failure here is a setup error: the pass
// aborts before touching anything.
func (d *Deps) loadCustomers(ctx context.Context) ([]model.Customer, error) {
	customers, err := d.Customers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	participants, err := d.Participants.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load participants: %w", err)
	}
	for i := range customers {
		customers[i].Participants = participants[customers[i].ID]
	}
	return customers, nil
}

// finish stamps the report, pushes decisions to the audit sink in
// chunks, and bumps the metrics. Audit failures are reported as issues,
// not errors: the run's verdicts already happened.
func (d *Deps) finish(ctx context.Context, r *Report) {
	r.FinishedAt = d.now().UTC()

	for _, dec := range r.Decisions {
		metrics.BatchDecisionsTotal.WithLabelValues(r.Pass, dec.Action).Inc()
	}

	if d.Decisions == nil {
		return
	}
	chunk := d.chunkSize()
	for i := 0; i < len(r.Decisions); i += chunk {
		end := i + chunk
		if end > len(r.Decisions) {
			end = len(r.Decisions)
		}
		if err := d.Decisions.InsertBatch(ctx, r.Decisions[i:end]); err != nil {
			r.Issues = append(r.Issues, fmt.Sprintf("audit log write failed: %v", err))
			return
		}
	}
}

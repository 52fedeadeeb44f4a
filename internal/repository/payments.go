package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/stoneriver/portal/internal/model"
)

// PaymentsRepository defines persistence for premium receipts. Receipts
// are append-only: no update or delete path exists.
type PaymentsRepository interface {
	ListAll(ctx context.Context) (map[int64][]model.Payment, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Payment, error)
	ExistsReceipt(ctx context.Context, p model.Payment) (bool, error)
	Insert(ctx context.Context, tx *sqlx.Tx, p model.Payment) (int64, error)
}

type PaymentsRepositoryImpl struct {
	db *sqlx.DB
}

func NewPaymentsRepository(db *sqlx.DB) *PaymentsRepositoryImpl {
	return &PaymentsRepositoryImpl{db: db}
}

var _ PaymentsRepository = (*PaymentsRepositoryImpl)(nil)

const paymentColumns = `
	id, customer_id, policy_number, payment_amount, payment_method,
	payment_period, payment_date, receipt_filename, recorded_by_agent_id,
	is_legacy_receipt, legacy_receipt_notes`

// ListAll loads the full payment history once, grouped by customer, for
// the compliance passes.
func (r *PaymentsRepositoryImpl) ListAll(ctx context.Context) (map[int64][]model.Payment, error) {
	var rows []model.Payment
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+paymentColumns+`
		  FROM payments
		 ORDER BY customer_id, payment_date
	`)
	if err != nil {
		return nil, err
	}

	out := make(map[int64][]model.Payment, 256)
	for _, p := range rows {
		out[p.CustomerID] = append(out[p.CustomerID], p)
	}
	return out, nil
}

func (r *PaymentsRepositoryImpl) ListByCustomer(ctx context.Context, customerID int64) ([]model.Payment, error) {
	var rows []model.Payment
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+paymentColumns+`
		  FROM payments
		 WHERE customer_id = $1
		 ORDER BY payment_date
	`, customerID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ExistsReceipt reports whether an equivalent receipt is already on
// record: same customer, day and period, amount within tolerance.
func (r *PaymentsRepositoryImpl) ExistsReceipt(ctx context.Context, p model.Payment) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(1)
		  FROM payments
		 WHERE customer_id = $1
		   AND payment_date = $2
		   AND payment_period = $3
		   AND ABS(payment_amount - $4) < $5
	`, p.CustomerID, p.Date, p.Period, p.Amount, model.AmountTolerance)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PaymentsRepositoryImpl) Insert(ctx context.Context, tx *sqlx.Tx, p model.Payment) (int64, error) {
	const q = `
		INSERT INTO payments
		    (customer_id, policy_number, payment_amount, payment_method,
		     payment_period, payment_date, receipt_filename,
		     recorded_by_agent_id, is_legacy_receipt, legacy_receipt_notes)
		VALUES
		    ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	var id int64
	err := withTx(ctx, r.db, tx, func(tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, q,
			p.CustomerID, p.PolicyNumber, p.Amount, p.Method,
			p.Period, p.Date, p.ReceiptFilename,
			p.RecordedByAgentID, p.IsLegacyReceipt, p.LegacyReceiptNotes,
		).Scan(&id)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

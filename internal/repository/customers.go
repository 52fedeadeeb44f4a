package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/stoneriver/portal/internal/model"
)

const customerColumns = `
	id, policy_number, first_name, surname, id_number, date_of_birth,
	gender, phone, email, street_address, town, postal_address,
	funeral_package, status, inception_date, cover_date, premium_period,
	total_premium, policy_premium, addon_premium, assigned_agent_id,
	latest_receipt_date, date_created, last_updated`

// CustomersRepository defines persistence for the customers table.
type CustomersRepository interface {
	ListAll(ctx context.Context) ([]model.Customer, error)
	GetByPolicyNumber(ctx context.Context, policyNumber string) (*model.Customer, error)
	UpdateStatus(ctx context.Context, tx *sqlx.Tx, id int64, status model.Status) error
	UpdateLatestReceipt(ctx context.Context, tx *sqlx.Tx, id int64, date string) error
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
}

type CustomersRepositoryImpl struct {
	db *sqlx.DB
}

func NewCustomersRepository(db *sqlx.DB) *CustomersRepositoryImpl {
	return &CustomersRepositoryImpl{db: db}
}

var _ CustomersRepository = (*CustomersRepositoryImpl)(nil)

// ListAll loads every customer row once; batch passes iterate the slice
// in memory rather than re-querying per record.
func (r *CustomersRepositoryImpl) ListAll(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	err := r.db.SelectContext(ctx, &out, `
		SELECT `+customerColumns+`
		  FROM customers
		 ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CustomersRepositoryImpl) GetByPolicyNumber(ctx context.Context, policyNumber string) (*model.Customer, error) {
	var c model.Customer
	err := r.db.GetContext(ctx, &c, `
		SELECT `+customerColumns+`
		  FROM customers
		 WHERE policy_number = $1
	`, policyNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateStatus persists a status transition and stamps last_updated;
// callers only invoke it when the freshly computed status diverges from
// the stored one.
func (r *CustomersRepositoryImpl) UpdateStatus(ctx context.Context, tx *sqlx.Tx, id int64, status model.Status) error {
	const q = `UPDATE customers SET status = $1, last_updated = NOW() WHERE id = $2`
	return withTx(ctx, r.db, tx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, q, status.String(), id)
		return err
	})
}

func (r *CustomersRepositoryImpl) UpdateLatestReceipt(ctx context.Context, tx *sqlx.Tx, id int64, date string) error {
	const q = `UPDATE customers SET latest_receipt_date = $1, last_updated = NOW() WHERE id = $2`
	return withTx(ctx, r.db, tx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, q, date, id)
		return err
	})
}

// Delete removes one customer; participants and payments go with it via
// ON DELETE CASCADE. Used only by the duplicate-resolution apply pass.
func (r *CustomersRepositoryImpl) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	const q = `DELETE FROM customers WHERE id = $1`
	return withTx(ctx, r.db, tx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, q, id)
		return err
	})
}

package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/stoneriver/portal/internal/model"
)

// ParticipantsRepository defines persistence for the participants table
// (one-to-many under customers, ordered by position).
type ParticipantsRepository interface {
	ListAll(ctx context.Context) (map[int64][]model.Participant, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Participant, error)
	ReplaceForCustomer(ctx context.Context, tx *sqlx.Tx, customerID int64, participants []model.Participant) error
}

type ParticipantsRepositoryImpl struct {
	db *sqlx.DB
}

func NewParticipantsRepository(db *sqlx.DB) *ParticipantsRepositoryImpl {
	return &ParticipantsRepositoryImpl{db: db}
}

var _ ParticipantsRepository = (*ParticipantsRepositoryImpl)(nil)

const participantColumns = `
	id, customer_id, uuid, first_name, surname, relationship,
	date_of_birth, id_number, gender, suffix, medical_package,
	cash_back_addon, is_student, contact, position`

// ListAll loads every participant once, grouped by customer and ordered
// by the canonical position key.
func (r *ParticipantsRepositoryImpl) ListAll(ctx context.Context) (map[int64][]model.Participant, error) {
	var rows []model.Participant
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+participantColumns+`
		  FROM participants
		 ORDER BY customer_id, position
	`)
	if err != nil {
		return nil, err
	}

	out := make(map[int64][]model.Participant, 256)
	for _, p := range rows {
		out[p.CustomerID] = append(out[p.CustomerID], p)
	}
	return out, nil
}

func (r *ParticipantsRepositoryImpl) ListByCustomer(ctx context.Context, customerID int64) ([]model.Participant, error) {
	var rows []model.Participant
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+participantColumns+`
		  FROM participants
		 WHERE customer_id = $1
		 ORDER BY position
	`, customerID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceForCustomer swaps one customer's participant list atomically:
// delete then multi-row insert in a single statement, so the stored
// order is exactly the assigned order.
func (r *ParticipantsRepositoryImpl) ReplaceForCustomer(ctx context.Context, tx *sqlx.Tx, customerID int64, participants []model.Participant) error {
	return withTx(ctx, r.db, tx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM participants WHERE customer_id = $1`, customerID); err != nil {
			return fmt.Errorf("delete participants: %w", err)
		}
		if len(participants) == 0 {
			return nil
		}

		var sb strings.Builder
		args := make([]any, 0, len(participants)*14)

		sb.WriteString(`INSERT INTO participants
			(customer_id, uuid, first_name, surname, relationship, date_of_birth,
			 id_number, gender, suffix, medical_package, cash_back_addon,
			 is_student, contact, position) VALUES `)
		for i, p := range participants {
			if i > 0 {
				sb.WriteString(",")
			}
			base := i * 14
			sb.WriteString("(")
			for j := 1; j <= 14; j++ {
				if j > 1 {
					sb.WriteString(", ")
				}
				fmt.Fprintf(&sb, "$%d", base+j)
			}
			sb.WriteString(")")
			args = append(args,
				customerID, p.UUID, p.FirstName, p.Surname, p.Relationship.String(),
				p.DateOfBirth, p.IDNumber, p.Gender, p.Suffix, p.MedicalPackage,
				p.CashBackAddon, p.IsStudent, p.Contact, p.Position,
			)
		}

		if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
			return fmt.Errorf("insert participants: %w", err)
		}
		return nil
	})
}

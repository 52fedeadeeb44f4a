package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/stoneriver/portal/internal/model"
)

// DecisionsRepository appends and lists batch decisions in ClickHouse
// (append-only audit log).
type DecisionsRepository interface {
	InsertBatch(ctx context.Context, records []model.DecisionRecord) error
	ListByRun(ctx context.Context, runID string, limit, offset int) ([]model.DecisionRecord, error)
	ListByPolicy(ctx context.Context, policyNumber string, limit, offset int) ([]model.DecisionRecord, error)
}

type decisionsRepository struct {
	ch *sqlx.DB // ClickHouse connection
}

func NewDecisionsRepository(ch *sqlx.DB) DecisionsRepository {
	return &decisionsRepository{ch: ch}
}

// InsertBatch writes one multi-row insert per call; batch passes flush
// decisions in fixed-size chunks.
func (r *decisionsRepository) InsertBatch(ctx context.Context, records []model.DecisionRecord) error {
	if len(records) == 0 {
		return nil
	}

	var sb strings.Builder
	args := make([]any, 0, len(records)*9)

	sb.WriteString(`INSERT INTO portal.batch_decisions
		(run_id, pass, customer_id, policy_number, action, old_status, new_status, detail, created_at) VALUES `)
	for i, d := range records {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			d.RunID, d.Pass, d.CustomerID, d.PolicyNumber,
			d.Action, d.OldStatus, d.NewStatus, d.Detail, d.CreatedAt,
		)
	}

	_, err := r.ch.ExecContext(ctx, sb.String(), args...)
	return err
}

func (r *decisionsRepository) ListByRun(ctx context.Context, runID string, limit, offset int) ([]model.DecisionRecord, error) {
	return r.list(ctx, "run_id = ?", runID, limit, offset)
}

func (r *decisionsRepository) ListByPolicy(ctx context.Context, policyNumber string, limit, offset int) ([]model.DecisionRecord, error) {
	return r.list(ctx, "policy_number = ?", policyNumber, limit, offset)
}

func (r *decisionsRepository) list(ctx context.Context, where string, arg any, limit, offset int) ([]model.DecisionRecord, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := `
		SELECT run_id, pass, customer_id, policy_number, action, old_status, new_status, detail, created_at
		FROM portal.batch_decisions
		WHERE ` + where + `
		ORDER BY created_at DESC LIMIT ? OFFSET ?`

	var rows []model.DecisionRecord
	if err := r.ch.SelectContext(ctx, &rows, q, arg, limit, offset); err != nil {
		return nil, err
	}
	return rows, nil
}

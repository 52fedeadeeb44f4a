package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/stoneriver/portal/internal/model"
)

type AgentsRepository interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*model.Agent, error)
}

type AgentsRepositoryImpl struct {
	db *sqlx.DB
}

func NewAgentsRepository(db *sqlx.DB) *AgentsRepositoryImpl {
	return &AgentsRepositoryImpl{db: db}
}

var _ AgentsRepository = (*AgentsRepositoryImpl)(nil)

func (r *AgentsRepositoryImpl) GetByAPIKey(ctx context.Context, apiKey string) (*model.Agent, error) {
	var a model.Agent
	err := r.db.GetContext(ctx, &a, `
		SELECT id, name, api_key, status, rate_limit_rps, created_at, updated_at
		  FROM agents
		 WHERE api_key = $1 LIMIT 1
	`, apiKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

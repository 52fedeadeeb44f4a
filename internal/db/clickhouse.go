package db

import (
	"context"
	"fmt"
	"time"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jmoiron/sqlx"
)

// ClickHouseOpts configures the batch-decision audit sink. The sink is
// optional: batch passes run without it when no DSN is configured.
type ClickHouseOpts struct {
	DSN             string // e.g. clickhouse://default:@localhost:9000/portal?dial_timeout=5s&compress=true
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration // default 3s
}

// NewClickHouseConnection opens the audit-sink connection through the
// database/sql face of clickhouse-go, so the decisions repository can
// use the same sqlx idioms as the Postgres side.
func NewClickHouseConnection(opts ClickHouseOpts) (*sqlx.DB, error) {
	pingTimeout := opts.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}

	ch, err := sqlx.Open("clickhouse", opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		ch.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		ch.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		ch.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	if opts.ConnMaxIdleTime > 0 {
		ch.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := ch.PingContext(ctx); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	return ch, nil
}

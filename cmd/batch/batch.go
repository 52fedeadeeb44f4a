// Package batch holds the one-shot administrative subcommands. Each
// command loads the dataset once, runs its pass, writes the JSON run
// artifact and prints the structured summary.
package batch

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/stoneriver/portal/internal/batch"
	"github.com/stoneriver/portal/internal/config"
	"github.com/stoneriver/portal/internal/db"
	"github.com/stoneriver/portal/internal/logger"
	"github.com/stoneriver/portal/internal/metrics"
	"github.com/stoneriver/portal/internal/repository"
)

// NewBatchCmd returns the parent "batch" command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run one-shot administrative passes",
	}
	// attach subcommands
	cmd.AddCommand(assignSuffixesCmd)
	cmd.AddCommand(verifySuffixesCmd)
	cmd.AddCommand(applySuspensionsCmd)
	cmd.AddCommand(verifyComplianceCmd)
	cmd.AddCommand(resolveDuplicatesCmd)

	return cmd
}

// setup loads config, connects storage, and builds the pass
// dependencies. Any failure here is fatal: no pass runs half-wired.
// The returned cleanup closes the connections.
func setup(cmd *cobra.Command) (*batch.Deps, config.Config, func(), error) {
	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, cfg, nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Log.Level)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	pgDB, err := db.NewPostgresConnection(cfg.Postgres.DSN, db.PostgresOpts{
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Postgres.ConnMaxIdleTime,
		PingTimeout:     cfg.Postgres.PingTimeout,
	})
	if err != nil {
		return nil, cfg, nil, fmt.Errorf("postgres connect: %w", err)
	}

	deps := &batch.Deps{
		DB:             pgDB,
		Customers:      repository.NewCustomersRepository(pgDB),
		Participants:   repository.NewParticipantsRepository(pgDB),
		Payments:       repository.NewPaymentsRepository(pgDB),
		Outbox:         repository.NewOutboxRepository(pgDB),
		WriteChunkSize: cfg.Batch.WriteChunkSize,
	}

	cleanup := func() { _ = pgDB.Close() }

	// the audit sink is optional: an empty DSN runs the pass without it
	if cfg.ClickHouse.DSN != "" {
		chDB, err := db.NewClickHouseConnection(db.ClickHouseOpts{
			DSN:             cfg.ClickHouse.DSN,
			MaxOpenConns:    cfg.ClickHouse.MaxOpenConns,
			MaxIdleConns:    cfg.ClickHouse.MaxIdleConns,
			ConnMaxLifetime: cfg.ClickHouse.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ClickHouse.ConnMaxIdleTime,
			PingTimeout:     cfg.ClickHouse.PingTimeout,
		})
		if err != nil {
			cleanup()
			return nil, cfg, nil, fmt.Errorf("clickhouse connect: %w", err)
		}
		deps.Decisions = repository.NewDecisionsRepository(chDB)
		cleanup = func() {
			_ = chDB.Close()
			_ = pgDB.Close()
		}
	}

	return deps, cfg, cleanup, nil
}

// finishRun writes the artifact and prints the summary; artifact
// failures are reported but do not fail the run that already happened.
func finishRun(r *batch.Report, cfg config.Config) error {
	r.LogSummary(cfg.Batch.MaxReportItems)

	path, err := r.WriteArtifact(cfg.Batch.ReportDir)
	if err != nil {
		fmt.Printf(">> run %s finished, but writing the artifact failed: %v\n", r.RunID, err)
		return nil
	}
	fmt.Printf(">> run %s finished, artifact at %s\n", r.RunID, path)
	return nil
}

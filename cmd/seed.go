package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/stoneriver/portal/internal/config"
	"github.com/stoneriver/portal/internal/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo customers, participants and agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1) load config
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// 2) connect Postgres
		sqlDB, err := db.NewPostgresConnection(cfg.Postgres.DSN, db.PostgresOpts{
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Postgres.ConnMaxIdleTime,
			PingTimeout:     cfg.Postgres.PingTimeout,
		})
		if err != nil {
			return fmt.Errorf("postgres connect: %w", err)
		}
		defer sqlDB.Close()

		log.Println(">> Seeding demo data...")

		if err := seedAgents(sqlDB); err != nil {
			return err
		}
		if err := seedCustomers(sqlDB); err != nil {
			return err
		}

		log.Println(">> Seed completed ✅")
		return nil
	},
}

// seedAgents inserts deterministic demo field agents (idempotent).
func seedAgents(dbx *sqlx.DB) error {
	const q = `
INSERT INTO agents (name, api_key, status, rate_limit_rps, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW(), NOW())
ON CONFLICT (api_key) DO UPDATE SET
    name           = EXCLUDED.name,
    status         = EXCLUDED.status,
    rate_limit_rps = EXCLUDED.rate_limit_rps,
    updated_at     = EXCLUDED.updated_at
`
	agents := []struct {
		name   string
		apiKey string
		status string
		rps    *int
	}{
		{"Tendai Moyo", "11111111111111111111111111111111", "active", intptr(20)},
		{"Grace Ncube", "22222222222222222222222222222222", "active", intptr(10)},
		{"Suspended Agent", "33333333333333333333333333333333", "suspended", nil},
	}

	for _, a := range agents {
		if _, err := dbx.Exec(q, a.name, a.apiKey, a.status, a.rps); err != nil {
			return fmt.Errorf("insert agent %q: %w", a.name, err)
		}
	}
	return nil
}

// seedCustomers inserts demo policies covering the interesting cases:
// paid up, overdue, suspended, cancelled, and one with no principal
// participant so an assign-suffixes run has something to fix.
func seedCustomers(dbx *sqlx.DB) error {
	tx, err := dbx.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsert = `
INSERT INTO customers
    (policy_number, first_name, surname, id_number, date_of_birth, gender,
     phone, funeral_package, status, inception_date, premium_period,
     total_premium, date_created)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
ON CONFLICT (policy_number) DO UPDATE SET
    status       = EXCLUDED.status,
    last_updated = NOW()
RETURNING id
`
	now := time.Now()
	dob := time.Date(1975, time.June, 12, 0, 0, 0, 0, time.UTC)

	type demo struct {
		policy, first, last, id, gender, phone, pkg, status, period string
		premium                                                     float64
		inceptionMonthsAgo                                          int
		participants                                                []struct{ first, last, rel string }
	}
	demos := []demo{
		{"SRP-0001", "Blessing", "Chirwa", "63-123456A78", "Male", "+263771000001", "Silver", "Active", "Monthly", 25, 6,
			[]struct{ first, last, rel string }{
				{"Blessing", "Chirwa", "Self"},
				{"Rudo", "Chirwa", "Spouse"},
				{"Tawanda", "Chirwa", "Child"},
			}},
		{"SRP-0002", "Nyasha", "Dube", "63-222222B11", "Female", "+263771000002", "Gold", "Active", "Monthly", 40, 8,
			[]struct{ first, last, rel string }{
				// no principal on purpose
				{"Kudzai", "Dube", "Spouse"},
				{"Anesu", "Dube", "Child"},
			}},
		{"SRP-0003", "Farai", "Gumbo", "63-333333C22", "Male", "+263771000003", "Bronze", "Cancelled", "Quarterly", 15, 12, nil},
		{"SRP-0004", "Chipo", "Mutasa", "63-444444D33", "Female", "", "Silver", "Active", "Monthly", 25, 10, nil},
	}

	for _, d := range demos {
		inception := now.AddDate(0, -d.inceptionMonthsAgo, 0)
		var customerID int64
		if err := tx.QueryRowx(upsert,
			d.policy, d.first, d.last, d.id, dob, d.gender, d.phone,
			d.pkg, d.status, inception, d.period, d.premium,
		).Scan(&customerID); err != nil {
			return fmt.Errorf("insert customer %q: %w", d.policy, err)
		}

		for i, p := range d.participants {
			if _, err := tx.Exec(`
INSERT INTO participants (customer_id, uuid, first_name, surname, relationship, gender, position)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (customer_id, uuid) DO NOTHING
`, customerID, fmt.Sprintf("%s-p%d", d.policy, i), p.first, p.last, p.rel, "Unknown", i); err != nil {
				return fmt.Errorf("insert participant for %q: %w", d.policy, err)
			}
		}

		// two receipts per live policy, leaving the older ones in arrears
		if d.status != "Cancelled" {
			for m := 0; m < 2; m++ {
				payDate := inception.AddDate(0, m, 0)
				if _, err := tx.Exec(`
INSERT INTO payments
    (customer_id, policy_number, payment_amount, payment_method, payment_period, payment_date)
VALUES ($1, $2, $3, 'cash', $4, $5)
ON CONFLICT DO NOTHING
`, customerID, d.policy, d.premium, d.period, payDate); err != nil {
					return fmt.Errorf("insert payment for %q: %w", d.policy, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

func intptr(i int) *int { return &i }

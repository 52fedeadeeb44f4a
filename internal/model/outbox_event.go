package model

import "time"

type OutboxEvent struct {
	ID          int64     `db:"id"`
	Aggregate   string    `db:"aggregate"`    // e.g. "customer"
	AggregateID string    `db:"aggregate_id"` // policy number
	Topic       string    `db:"topic"`
	Payload     []byte    `db:"payload"`
	Attempts    int       `db:"attempts"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// StatusChange is the payload published to Kafka (via Debezium outbox
// SMT) whenever a compliance pass moves a customer to a new status.
type StatusChange struct {
	CustomerID   int64   `json:"customer_id"`
	PolicyNumber string  `json:"policy_number"`
	Phone        string  `json:"phone"`
	FromStatus   Status  `json:"from_status"`
	ToStatus     Status  `json:"to_status"`
	MonthsBehind int     `json:"months_behind"`
	Outstanding  float64 `json:"outstanding"`
	RunID        string  `json:"run_id"`
}

package model

import "time"

// Decision actions recorded in the audit log.
const (
	ActionUpdated = "updated"
	ActionSkipped = "skipped"
	ActionFlagged = "flagged"
	ActionFailed  = "failed"
	ActionDeleted = "deleted"
)

// DecisionRecord is one per-record verdict of a batch pass, appended to
// the ClickHouse audit log so every run stays reviewable after the fact.
type DecisionRecord struct {
	RunID        string    `db:"run_id"`
	Pass         string    `db:"pass"` // assign-suffixes|apply-suspensions|...
	CustomerID   int64     `db:"customer_id"`
	PolicyNumber string    `db:"policy_number"`
	Action       string    `db:"action"`
	OldStatus    string    `db:"old_status"`
	NewStatus    string    `db:"new_status"`
	Detail       string    `db:"detail"`
	CreatedAt    time.Time `db:"created_at"`
}

package model

import (
	"math"
	"time"
)

// AmountTolerance bounds float comparison when matching receipt amounts.
const AmountTolerance = 0.01

// Payment is one recorded premium receipt. Rows are immutable once
// recorded; corrections happen by recording a new receipt.
type Payment struct {
	ID                 int64     `db:"id"`
	CustomerID         int64     `db:"customer_id"`
	PolicyNumber       string    `db:"policy_number"`
	Amount             float64   `db:"payment_amount"`
	Method             string    `db:"payment_method"`
	Period             string    `db:"payment_period"`
	Date               time.Time `db:"payment_date"`
	ReceiptFilename    string    `db:"receipt_filename"`
	RecordedByAgentID  *int64    `db:"recorded_by_agent_id"`
	IsLegacyReceipt    bool      `db:"is_legacy_receipt"`
	LegacyReceiptNotes string    `db:"legacy_receipt_notes"`
}

// SameReceipt reports whether two payments describe the same receipt:
// same customer, day and period, amounts equal within tolerance.
func (p Payment) SameReceipt(o Payment) bool {
	return p.CustomerID == o.CustomerID &&
		p.Period == o.Period &&
		p.Date.Format("2006-01-02") == o.Date.Format("2006-01-02") &&
		math.Abs(p.Amount-o.Amount) < AmountTolerance
}

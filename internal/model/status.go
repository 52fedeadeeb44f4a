package model

import "strings"

type Status string

const (
	StatusActive    Status = "Active"
	StatusOverdue   Status = "Overdue"
	StatusSuspended Status = "Suspended"
	StatusCancelled Status = "Cancelled"
	StatusExpress   Status = "Express"
	StatusInactive  Status = "Inactive"
)

// Grace-ladder statuses reported by the verification pass. They never
// reach the customers table.
const (
	StatusGracePeriod Status = "Grace Period"
	StatusLapsed      Status = "Lapsed"
)

func (s Status) String() string { return string(s) }

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusOverdue, StatusSuspended, StatusCancelled, StatusExpress, StatusInactive:
		return true
	}
	return false
}

// Sticky statuses are never recomputed by the compliance engine.
func (s Status) Sticky() bool {
	return s == StatusCancelled || s == StatusExpress
}

// ParseStatus normalizes legacy free-form status text; empty => Inactive.
// Returns (value, true) when the input names a known status; otherwise
// (Inactive, false).
func ParseStatus(raw string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active":
		return StatusActive, true
	case "overdue":
		return StatusOverdue, true
	case "suspended":
		return StatusSuspended, true
	case "cancelled", "canceled":
		return StatusCancelled, true
	case "express":
		return StatusExpress, true
	case "", "inactive":
		return StatusInactive, true
	default:
		return StatusInactive, false
	}
}

type PremiumPeriod string

const (
	PeriodMonthly   PremiumPeriod = "Monthly"
	PeriodQuarterly PremiumPeriod = "Quarterly"
	PeriodAnnually  PremiumPeriod = "Annually"
)

func (p PremiumPeriod) String() string { return string(p) }

// ParsePremiumPeriod normalizes input; empty => Monthly.
func ParsePremiumPeriod(raw string) (PremiumPeriod, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "monthly", "month":
		return PeriodMonthly, true
	case "quarterly", "quarter":
		return PeriodQuarterly, true
	case "annually", "annual", "yearly":
		return PeriodAnnually, true
	default:
		return PeriodMonthly, false
	}
}

// GraceDays is the delinquency window of one premium period, used by the
// grace-ladder verification model.
func (p PremiumPeriod) GraceDays() int {
	switch p {
	case PeriodQuarterly:
		return 90
	case PeriodAnnually:
		return 365
	default:
		return 30
	}
}

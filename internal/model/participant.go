package model

import "time"

// Participant is one person covered under a customer's policy, including
// the principal member. Position is the canonical sort key: principal
// first, then spouses, children, dependents, each in assignment order.
type Participant struct {
	ID             int64        `db:"id"`
	CustomerID     int64        `db:"customer_id"`
	UUID           string       `db:"uuid"`
	FirstName      string       `db:"first_name"`
	Surname        string       `db:"surname"`
	Relationship   Relationship `db:"relationship"`
	DateOfBirth    *time.Time   `db:"date_of_birth"`
	IDNumber       string       `db:"id_number"`
	Gender         string       `db:"gender"`
	Suffix         string       `db:"suffix"` // three-digit band code, e.g. "000", "101", "201"
	MedicalPackage string       `db:"medical_package"`
	CashBackAddon  string       `db:"cash_back_addon"`
	IsStudent      bool         `db:"is_student"`
	Contact        string       `db:"contact"`
	Position       int          `db:"position"`
}

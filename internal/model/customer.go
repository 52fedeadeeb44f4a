package model

import "time"

// Customer is one policy holder row in the customers table.
// Participants live in their own table and are loaded alongside.
type Customer struct {
	ID                int64         `db:"id"`
	PolicyNumber      string        `db:"policy_number"` // unique business key
	FirstName         string        `db:"first_name"`
	Surname           string        `db:"surname"`
	IDNumber          string        `db:"id_number"`
	DateOfBirth       *time.Time    `db:"date_of_birth"`
	Gender            string        `db:"gender"`
	Phone             string        `db:"phone"`
	Email             string        `db:"email"`
	StreetAddress     string        `db:"street_address"`
	Town              string        `db:"town"`
	PostalAddress     string        `db:"postal_address"`
	FuneralPackage    string        `db:"funeral_package"`
	Status            Status        `db:"status"`
	InceptionDate     *time.Time    `db:"inception_date"`
	CoverDate         *time.Time    `db:"cover_date"`
	PremiumPeriod     PremiumPeriod `db:"premium_period"`
	TotalPremium      float64       `db:"total_premium"`
	PolicyPremium     float64       `db:"policy_premium"`
	AddonPremium      float64       `db:"addon_premium"`
	AssignedAgentID   *int64        `db:"assigned_agent_id"`
	LatestReceiptDate *time.Time    `db:"latest_receipt_date"`
	DateCreated       time.Time     `db:"date_created"`
	LastUpdated       *time.Time    `db:"last_updated"`

	Participants []Participant `db:"-"`
}

// FullName joins first name and surname, tolerating either being empty.
func (c *Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.Surname
	case c.Surname == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.Surname
	}
}

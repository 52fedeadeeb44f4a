// Package suffix assigns the three-digit family-role codes carried by
// every policy participant: "000" for the principal member, 101+ for
// spouses, 201+ for children, 301+ for other dependents.
package suffix

import (
	"fmt"
	"time"

	"github.com/stoneriver/portal/internal/model"
	"github.com/stoneriver/portal/internal/util"
)

// PrincipalSuffix is the fixed code of the policy holder.
const PrincipalSuffix = "000"

// First code of each non-principal band.
const (
	spouseBase    = 101
	childBase     = 201
	dependentBase = 301
)

// placeholderDOB fills the date of birth of a synthesized principal when
// the customer row carries none. Downstream schema requires a value.
var placeholderDOB = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Result is the outcome of one assignment over one customer's
// participant list.
type Result struct {
	// Participants in canonical persisted order: principal, spouses,
	// children, dependents, original relative order kept inside each
	// band. Position is renumbered 0..n-1.
	Participants []model.Participant

	// PrincipalAdded is true when no participant represented the policy
	// holder and one was synthesized from the customer's own identity.
	PrincipalAdded bool
}

// Assign partitions the participants into role bands and issues suffix
// codes. Beyond the uuid minted for a synthesized principal it is a
// pure function of (participants, customer identity): re-running it
// over an already compliant list yields the identical list, so batch
// passes can diff against the stored rows and skip writes when nothing
// moved.
func Assign(c *model.Customer, participants []model.Participant) Result {
	var principals, spouses, children, dependents []model.Participant

	for _, p := range participants {
		switch p.Relationship.CategoryOf() {
		case model.CategoryPrincipal:
			principals = append(principals, p)
		case model.CategorySpouse:
			spouses = append(spouses, p)
		case model.CategoryChild:
			children = append(children, p)
		default:
			dependents = append(dependents, p)
		}
	}

	res := Result{}

	// Every policy must carry its holder exactly once. When the legacy
	// list has no principal, build one from the customer row itself.
	if len(principals) == 0 {
		principals = append(principals, synthesizePrincipal(c))
		res.PrincipalAdded = true
	}

	out := make([]model.Participant, 0, len(principals)+len(spouses)+len(children)+len(dependents))

	// Multiple principals are a data defect but must not crash; each
	// one keeps the "000" code and validation will flag the duplicates.
	for _, p := range principals {
		p.Suffix = PrincipalSuffix
		out = append(out, p)
	}
	for i, p := range spouses {
		p.Suffix = fmt.Sprintf("%03d", spouseBase+i)
		out = append(out, p)
	}
	for i, p := range children {
		p.Suffix = fmt.Sprintf("%03d", childBase+i)
		out = append(out, p)
	}
	for i, p := range dependents {
		p.Suffix = fmt.Sprintf("%03d", dependentBase+i)
		out = append(out, p)
	}

	for i := range out {
		out[i].Position = i
	}

	res.Participants = out
	return res
}

// synthesizePrincipal builds a Self participant from the customer's own
// identity fields, defaulting anything missing so the row never
// violates schema constraints.
func synthesizePrincipal(c *model.Customer) model.Participant {
	dob := c.DateOfBirth
	if dob == nil {
		d := placeholderDOB
		dob = &d
	}
	gender := c.Gender
	if gender == "" {
		gender = "Male"
	}

	// A fresh uuid, not the schema's "" default: an empty uuid would
	// collide with legacy rows under the (customer_id, uuid) unique key
	// and wedge every later rewrite of the list.
	return model.Participant{
		CustomerID:     c.ID,
		UUID:           util.NewID(),
		FirstName:      c.FirstName,
		Surname:        c.Surname,
		Relationship:   model.RelationshipSelf,
		DateOfBirth:    dob,
		IDNumber:       c.IDNumber,
		Gender:         gender,
		MedicalPackage: "none",
		CashBackAddon:  "none",
		Contact:        c.Phone,
	}
}

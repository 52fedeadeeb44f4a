// Package dedupe resolves groups of customer records sharing a national
// id number down to a single canonical record.
package dedupe

import (
	"fmt"

	"github.com/stoneriver/portal/internal/model"
	"github.com/stoneriver/portal/internal/util"
)

// Group is a set of customer records claiming the same national id.
type Group struct {
	IDNumber string // normalized
	Records  []model.Customer
}

// Resolution names the record to keep and the records to delete, with a
// reason suitable for the pre-deletion report.
type Resolution struct {
	IDNumber string
	Winner   model.Customer
	Losers   []model.Customer
	Reason   string
}

// GroupByIDNumber buckets customers by normalized national id and
// returns only the buckets holding more than one record. Blank ids are
// skipped: two customers without an id are not duplicates of each other.
func GroupByIDNumber(customers []model.Customer) []Group {
	index := make(map[string][]model.Customer)
	var order []string

	for _, c := range customers {
		id := util.NormalizeIDNumber(c.IDNumber)
		if id == "" {
			continue
		}
		if _, ok := index[id]; !ok {
			order = append(order, id)
		}
		index[id] = append(index[id], c)
	}

	var groups []Group
	for _, id := range order {
		if recs := index[id]; len(recs) > 1 {
			groups = append(groups, Group{IDNumber: id, Records: recs})
		}
	}
	return groups
}

// Resolve picks the canonical record of one duplicate group. The
// tie-break chain is a strict total order (numeric id last), so the
// same group always produces the same winner whatever the input order.
func Resolve(g Group) Resolution {
	winner := g.Records[0]
	reason := "only candidate"
	if len(g.Records) > 1 {
		reason = "beats every other candidate"
	}

	for _, c := range g.Records[1:] {
		if r, better := beats(c, winner); better {
			winner = c
			reason = r
		}
	}

	res := Resolution{IDNumber: g.IDNumber, Winner: winner, Reason: reason}
	for _, c := range g.Records {
		if c.ID != winner.ID {
			res.Losers = append(res.Losers, c)
		}
	}
	return res
}

// beats reports whether a should replace b as the group's canonical
// record, and why.
func beats(a, b model.Customer) (string, bool) {
	// 1) most recently updated; a set timestamp beats a missing one
	switch {
	case a.LastUpdated != nil && b.LastUpdated == nil:
		return "has a last_updated timestamp", true
	case a.LastUpdated == nil && b.LastUpdated != nil:
		return "", false
	case a.LastUpdated != nil && b.LastUpdated != nil && !a.LastUpdated.Equal(*b.LastUpdated):
		return "more recently updated", a.LastUpdated.After(*b.LastUpdated)
	}

	// 2) completeness
	sa, sb := CompletenessScore(&a), CompletenessScore(&b)
	if sa != sb {
		return fmt.Sprintf("more complete record (score %d vs %d)", sa, sb), sa > sb
	}

	// 3) most recently created
	if !a.DateCreated.Equal(b.DateCreated) {
		return "more recently created", a.DateCreated.After(b.DateCreated)
	}

	// 4) last resort: higher id is the later insert
	return "higher record id", a.ID > b.ID
}

// CompletenessScore counts filled canonical fields, plus 2 per
// participant and 3 when a latest receipt date is present. Higher means
// more worth keeping.
func CompletenessScore(c *model.Customer) int {
	score := 0
	for _, s := range []string{
		c.FirstName, c.Surname, c.IDNumber, c.Gender,
		c.Phone, c.Email, c.StreetAddress, c.Town, c.PostalAddress,
		c.FuneralPackage,
	} {
		if s != "" {
			score++
		}
	}
	if c.DateOfBirth != nil {
		score++
	}
	if c.TotalPremium > 0 {
		score++
	}

	score += 2 * len(c.Participants)

	if c.LatestReceiptDate != nil {
		score += 3
	}
	return score
}

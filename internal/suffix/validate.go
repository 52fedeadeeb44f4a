package suffix

import (
	"fmt"
	"strconv"

	"github.com/stoneriver/portal/internal/model"
)

// band returns the inclusive numeric suffix range allowed for a category.
func band(c model.Category) (lo, hi int) {
	switch c {
	case model.CategoryPrincipal:
		return 0, 0
	case model.CategorySpouse:
		return spouseBase, spouseBase + 98 // 101-199
	case model.CategoryChild:
		return childBase, childBase + 98 // 201-299
	default:
		return dependentBase, dependentBase + 98 // 301-399
	}
}

// Validate checks one participant list for suffix compliance and
// returns human-readable issue strings; empty means compliant. It never
// fails: callers decide how to report or escalate.
func Validate(participants []model.Participant) []string {
	var issues []string

	seen := make(map[string]string, len(participants))

	for _, p := range participants {
		name := participantName(p)

		if p.Suffix == "" {
			issues = append(issues, fmt.Sprintf("%s has no suffix", name))
			continue
		}
		if len(p.Suffix) != 3 {
			issues = append(issues, fmt.Sprintf("%s has malformed suffix %q: want exactly three digits", name, p.Suffix))
			continue
		}
		n, err := strconv.Atoi(p.Suffix)
		if err != nil {
			issues = append(issues, fmt.Sprintf("%s has malformed suffix %q: want exactly three digits", name, p.Suffix))
			continue
		}

		cat := p.Relationship.CategoryOf()
		lo, hi := band(cat)
		if n < lo || n > hi {
			issues = append(issues, fmt.Sprintf(
				"%s (%s) has suffix %s outside the %s band %03d-%03d",
				name, p.Relationship, p.Suffix, cat, lo, hi))
		}

		if prev, dup := seen[p.Suffix]; dup {
			issues = append(issues, fmt.Sprintf("%s shares suffix %s with %s", name, p.Suffix, prev))
		} else {
			seen[p.Suffix] = name
		}
	}

	return issues
}

func participantName(p model.Participant) string {
	switch {
	case p.FirstName == "" && p.Surname == "":
		return fmt.Sprintf("participant #%d", p.Position+1)
	case p.Surname == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.Surname
	}
}

package model

import "strings"

type Relationship string

const (
	RelationshipSelf        Relationship = "Self"
	RelationshipPrincipal   Relationship = "Principal Member"
	RelationshipSpouse      Relationship = "Spouse"
	RelationshipChild       Relationship = "Child"
	RelationshipStepchild   Relationship = "Stepchild"
	RelationshipGrandchild  Relationship = "Grandchild"
	RelationshipSibling     Relationship = "Sibling"
	RelationshipParent      Relationship = "Parent"
	RelationshipGrandparent Relationship = "Grandparent"
	RelationshipOther       Relationship = "Other"
)

func (r Relationship) String() string { return string(r) }

// ParseRelationship normalizes legacy free-form relationship text.
// Unrecognized input degrades to Other rather than failing: the legacy
// imports carry typos and vernacular, and the category mapping must be
// total.
func ParseRelationship(raw string) (Relationship, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "self", "main member", "policy holder":
		return RelationshipSelf, true
	case "principal member", "principal":
		return RelationshipPrincipal, true
	case "spouse", "wife", "husband":
		return RelationshipSpouse, true
	case "child", "son", "daughter":
		return RelationshipChild, true
	case "stepchild", "step child", "stepson", "stepdaughter":
		return RelationshipStepchild, true
	case "grandchild", "grand child", "grandson", "granddaughter":
		return RelationshipGrandchild, true
	case "sibling", "brother", "sister":
		return RelationshipSibling, true
	case "parent", "mother", "father":
		return RelationshipParent, true
	case "grandparent", "grandmother", "grandfather":
		return RelationshipGrandparent, true
	case "other":
		return RelationshipOther, true
	default:
		return RelationshipOther, false
	}
}

// Category is the suffix band a participant falls into.
type Category int

const (
	CategoryPrincipal Category = iota
	CategorySpouse
	CategoryChild
	CategoryDependent
)

func (c Category) String() string {
	switch c {
	case CategoryPrincipal:
		return "principal"
	case CategorySpouse:
		return "spouse"
	case CategoryChild:
		return "child"
	default:
		return "dependent"
	}
}

// CategoryOf maps a relationship onto its suffix band. Total: anything
// outside the known family roles lands in the dependent band.
func (r Relationship) CategoryOf() Category {
	switch r {
	case RelationshipSelf, RelationshipPrincipal:
		return CategoryPrincipal
	case RelationshipSpouse:
		return CategorySpouse
	case RelationshipChild, RelationshipStepchild, RelationshipGrandchild:
		return CategoryChild
	default:
		return CategoryDependent
	}
}

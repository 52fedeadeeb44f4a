package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRelationshipVernacular(t *testing.T) {
	cases := []struct {
		raw  string
		want Relationship
		ok   bool
	}{
		{"self", RelationshipSelf, true},
		{"Main Member", RelationshipSelf, true},
		{"policy holder", RelationshipSelf, true},
		{"Principal", RelationshipPrincipal, true},
		{"wife", RelationshipSpouse, true},
		{"HUSBAND", RelationshipSpouse, true},
		{"daughter", RelationshipChild, true},
		{"step child", RelationshipStepchild, true},
		{"grand child", RelationshipGrandchild, true},
		{"brother", RelationshipSibling, true},
		{"mother", RelationshipParent, true},
		{"grandfather", RelationshipGrandparent, true},
		{"other", RelationshipOther, true},
		{"neighbour", RelationshipOther, false},
		{"", RelationshipOther, false},
	}
	for _, tc := range cases {
		got, ok := ParseRelationship(tc.raw)
		assert.Equal(t, tc.want, got, "input %q", tc.raw)
		assert.Equal(t, tc.ok, ok, "input %q", tc.raw)
	}
}

func TestCategoryOfIsTotal(t *testing.T) {
	assert.Equal(t, CategoryPrincipal, RelationshipSelf.CategoryOf())
	assert.Equal(t, CategoryPrincipal, RelationshipPrincipal.CategoryOf())
	assert.Equal(t, CategorySpouse, RelationshipSpouse.CategoryOf())
	assert.Equal(t, CategoryChild, RelationshipChild.CategoryOf())
	assert.Equal(t, CategoryChild, RelationshipStepchild.CategoryOf())
	assert.Equal(t, CategoryChild, RelationshipGrandchild.CategoryOf())
	assert.Equal(t, CategoryDependent, RelationshipSibling.CategoryOf())
	assert.Equal(t, CategoryDependent, RelationshipOther.CategoryOf())
	assert.Equal(t, CategoryDependent, Relationship("whatever").CategoryOf())
}

package suffix

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoneriver/portal/internal/model"
)

func testCustomer() *model.Customer {
	dob := time.Date(1980, time.March, 15, 0, 0, 0, 0, time.UTC)
	return &model.Customer{
		ID:           42,
		PolicyNumber: "SRP-0042",
		FirstName:    "Blessing",
		Surname:      "Chirwa",
		IDNumber:     "63-123456A78",
		DateOfBirth:  &dob,
		Gender:       "Male",
		Phone:        "+263771000001",
	}
}

func part(first string, rel model.Relationship) model.Participant {
	return model.Participant{FirstName: first, Surname: "Chirwa", Relationship: rel}
}

func TestAssignSynthesizesPrincipal(t *testing.T) {
	c := testCustomer()
	in := []model.Participant{
		part("A", model.RelationshipSpouse),
		part("B", model.RelationshipChild),
		part("C", model.RelationshipChild),
	}

	res := Assign(c, in)

	require.True(t, res.PrincipalAdded)
	require.Len(t, res.Participants, 4)

	p := res.Participants[0]
	assert.Equal(t, PrincipalSuffix, p.Suffix)
	assert.Equal(t, model.RelationshipSelf, p.Relationship)
	assert.Equal(t, "Blessing", p.FirstName)
	assert.Equal(t, c.ID, p.CustomerID)
	assert.NotEmpty(t, p.UUID, "synthesized principal needs its own uuid")

	assert.Equal(t, "101", res.Participants[1].Suffix)
	assert.Equal(t, "A", res.Participants[1].FirstName)
	assert.Equal(t, "201", res.Participants[2].Suffix)
	assert.Equal(t, "B", res.Participants[2].FirstName)
	assert.Equal(t, "202", res.Participants[3].Suffix)
	assert.Equal(t, "C", res.Participants[3].FirstName)
}

func TestAssignSynthesizedPrincipalDefaults(t *testing.T) {
	c := testCustomer()
	c.DateOfBirth = nil
	c.Gender = ""

	res := Assign(c, nil)

	require.True(t, res.PrincipalAdded)
	require.Len(t, res.Participants, 1)

	p := res.Participants[0]
	require.NotNil(t, p.DateOfBirth)
	assert.Equal(t, 1900, p.DateOfBirth.Year())
	assert.Equal(t, "Male", p.Gender)
	assert.Equal(t, "none", p.MedicalPackage)
	assert.Equal(t, "none", p.CashBackAddon)
}

func TestAssignSynthesizedPrincipalDistinctFromBlankLegacyUUIDs(t *testing.T) {
	c := testCustomer()
	legacy := part("Wife", model.RelationshipSpouse) // uuid left ""

	res := Assign(c, []model.Participant{legacy})

	require.True(t, res.PrincipalAdded)
	require.Len(t, res.Participants, 2)
	assert.NotEmpty(t, res.Participants[0].UUID)
	assert.NotEqual(t, res.Participants[0].UUID, res.Participants[1].UUID)
}

func TestAssignIdempotent(t *testing.T) {
	c := testCustomer()
	in := []model.Participant{
		part("Self", model.RelationshipSelf),
		part("W1", model.RelationshipSpouse),
		part("W2", model.RelationshipSpouse),
	}

	first := Assign(c, in)
	require.False(t, first.PrincipalAdded)

	second := Assign(c, first.Participants)
	assert.False(t, second.PrincipalAdded)
	assert.Equal(t, first.Participants, second.Participants)
}

func TestAssignCanonicalOrder(t *testing.T) {
	c := testCustomer()
	in := []model.Participant{
		part("Dep", model.RelationshipParent),
		part("Kid", model.RelationshipGrandchild),
		part("Wife", model.RelationshipSpouse),
		part("Me", model.RelationshipPrincipal),
	}

	res := Assign(c, in)
	require.Len(t, res.Participants, 4)

	assert.Equal(t, []string{"Me", "Wife", "Kid", "Dep"}, names(res.Participants))
	assert.Equal(t, []string{"000", "101", "201", "301"}, suffixes(res.Participants))
	for i, p := range res.Participants {
		assert.Equal(t, i, p.Position)
	}
}

func TestAssignUnknownRelationshipFallsToDependent(t *testing.T) {
	c := testCustomer()
	in := []model.Participant{
		part("Self", model.RelationshipSelf),
		part("X", model.Relationship("neighbour")),
	}

	res := Assign(c, in)
	require.Len(t, res.Participants, 2)
	assert.Equal(t, "301", res.Participants[1].Suffix)
}

func TestAssignMultiplePrincipalsDoNotCrash(t *testing.T) {
	c := testCustomer()
	in := []model.Participant{
		part("P1", model.RelationshipSelf),
		part("P2", model.RelationshipPrincipal),
	}

	res := Assign(c, in)
	require.Len(t, res.Participants, 2)
	assert.False(t, res.PrincipalAdded)
	assert.Equal(t, PrincipalSuffix, res.Participants[0].Suffix)
	assert.Equal(t, PrincipalSuffix, res.Participants[1].Suffix)
}

func TestAssignSuffixesPairwiseDistinct(t *testing.T) {
	c := testCustomer()
	in := []model.Participant{
		part("S1", model.RelationshipSpouse),
		part("S2", model.RelationshipSpouse),
		part("C1", model.RelationshipChild),
		part("C2", model.RelationshipStepchild),
		part("C3", model.RelationshipGrandchild),
		part("D1", model.RelationshipSibling),
		part("D2", model.RelationshipGrandparent),
	}

	res := Assign(c, in)

	seen := map[string]bool{}
	for _, p := range res.Participants {
		assert.False(t, seen[p.Suffix], "duplicate suffix %s", p.Suffix)
		seen[p.Suffix] = true
		assert.Len(t, p.Suffix, 3)
	}
}

func names(ps []model.Participant) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.FirstName
	}
	return out
}

func suffixes(ps []model.Participant) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Suffix
	}
	return out
}

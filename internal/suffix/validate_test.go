package suffix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoneriver/portal/internal/model"
)

func vp(first string, rel model.Relationship, suffix string) model.Participant {
	return model.Participant{FirstName: first, Surname: "Moyo", Relationship: rel, Suffix: suffix}
}

func TestValidateCompliantList(t *testing.T) {
	issues := Validate([]model.Participant{
		vp("Self", model.RelationshipSelf, "000"),
		vp("Wife", model.RelationshipSpouse, "101"),
		vp("Kid", model.RelationshipChild, "201"),
		vp("Aunt", model.RelationshipOther, "301"),
	})
	assert.Empty(t, issues)
}

func TestValidateEmptyListIsCompliant(t *testing.T) {
	assert.Empty(t, Validate(nil))
}

func TestValidateMissingSuffix(t *testing.T) {
	issues := Validate([]model.Participant{vp("Wife", model.RelationshipSpouse, "")})
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "no suffix")
}

func TestValidateMalformedSuffix(t *testing.T) {
	for _, bad := range []string{"1", "12", "1234", "0a1", "---"} {
		issues := Validate([]model.Participant{vp("Kid", model.RelationshipChild, bad)})
		require.Len(t, issues, 1, "suffix %q", bad)
		assert.Contains(t, issues[0], "malformed", "suffix %q", bad)
	}
}

func TestValidateWrongBand(t *testing.T) {
	// A child carrying a spouse-band code is the classic legacy defect.
	issues := Validate([]model.Participant{
		vp("Self", model.RelationshipSelf, "000"),
		vp("Kid", model.RelationshipChild, "150"),
	})
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "150")
	assert.Contains(t, issues[0], "child band 201-299")
}

func TestValidateDuplicateSuffix(t *testing.T) {
	issues := Validate([]model.Participant{
		vp("K1", model.RelationshipChild, "201"),
		vp("K2", model.RelationshipChild, "201"),
	})
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "shares suffix 201")
	assert.Contains(t, issues[0], "K1 Moyo")
}

func TestValidateAssignOutputIsAlwaysCompliant(t *testing.T) {
	c := testCustomer()
	in := []model.Participant{
		part("Wife", model.RelationshipSpouse),
		part("Kid", model.RelationshipChild),
		part("Gran", model.RelationshipGrandparent),
	}
	res := Assign(c, in)
	assert.Empty(t, Validate(res.Participants))
}

func TestValidateUnnamedParticipantUsesPosition(t *testing.T) {
	p := model.Participant{Relationship: model.RelationshipChild, Suffix: "", Position: 2}
	issues := Validate([]model.Participant{p})
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "participant #3")
}

package controlgroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/corptax/src/models"
	"github.com/username/corptax/src/ownership"
)

func TestParentSubsidiaryForms(t *testing.T) {
	parent := holder("parent-co", map[string]float64{"sub1": 80, "sub2": 85})
	minority := holder("minority", map[string]float64{"sub1": 20, "sub2": 15})

	sub1 := corpWith(t, "sub1", 100, parent, minority)
	sub2 := corpWith(t, "sub2", 100, parent, minority)

	group, err := NewParentSubsidiary(testConstants(t), parent, sub1, sub2)
	require.NoError(t, err)

	assert.Equal(t, 2, group.Len())
	assert.Equal(t, "parent-co", group.Parent().Name())
	assert.True(t, group.Contains(sub1))
	assert.True(t, group.Contains("sub2"))
}

func TestParentSubsidiaryPassesOnValueAlone(t *testing.T) {
	// 70% of shares but the parent's block carries 87.5% of the value.
	parent := ownership.NewIndividual("parent-co",
		models.NewShareLot("sub", models.ClassVoting, 70, 70000, 0))
	minority := ownership.NewIndividual("minority",
		models.NewShareLot("sub", models.ClassNonVoting, 30, 10000, 0))

	sub := corpWith(t, "sub", 100, parent, minority)

	group, err := NewParentSubsidiary(testConstants(t), parent, sub)
	require.NoError(t, err)
	assert.True(t, group.Contains("sub"))
}

func TestParentSubsidiaryRejectsBelowThreshold(t *testing.T) {
	parent := holder("parent-co", map[string]float64{"sub1": 80, "sub2": 79})
	minority := holder("minority", map[string]float64{"sub1": 20, "sub2": 21})

	sub1 := corpWith(t, "sub1", 100, parent, minority)
	sub2 := corpWith(t, "sub2", 100, parent, minority)

	_, err := NewParentSubsidiary(testConstants(t), parent, sub1, sub2)
	assert.ErrorIs(t, err, ErrNotParentSubsidiary)
}

func TestParentSubsidiaryFailureAdmitsNothing(t *testing.T) {
	parent := holder("parent-co", map[string]float64{"sub1": 90, "sub2": 90, "sub3": 50})
	minority := holder("minority", map[string]float64{"sub1": 10, "sub2": 10, "sub3": 50})

	sub1 := corpWith(t, "sub1", 100, parent, minority)
	sub2 := corpWith(t, "sub2", 100, parent, minority)
	sub3 := corpWith(t, "sub3", 100, parent, minority)

	group, err := NewParentSubsidiary(testConstants(t), parent, sub1)
	require.NoError(t, err)

	err = group.AddCorps(sub2, sub3)
	require.ErrorIs(t, err, ErrNotParentSubsidiary)

	// The passing candidate is not admitted either.
	assert.Equal(t, 1, group.Len())
	assert.False(t, group.Contains("sub2"))
	assert.False(t, group.Contains("sub3"))
}

func TestParentSubsidiaryCountsConstructiveOwnership(t *testing.T) {
	// The parent holds 50% directly and picks up a spouse's 30% through
	// attribution, clearing the 80% floor.
	direct := ownership.NewIndividual("parent",
		models.NewShareLot("sub", models.ClassCommon, 50, 50000, 0))
	spouse := ownership.NewFamilyMember("spouse", ownership.RelationSpouse, direct,
		models.NewShareLot("sub", models.ClassCommon, 30, 30000, 0))
	minority := ownership.NewIndividual("minority",
		models.NewShareLot("sub", models.ClassCommon, 20, 20000, 0))

	sub := corpWith(t, "sub", 100, direct, spouse, minority)

	group, err := NewParentSubsidiary(testConstants(t), direct, sub)
	require.NoError(t, err)
	assert.True(t, group.Contains("sub"))
}

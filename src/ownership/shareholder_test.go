package ownership

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/corptax/src/models"
)

func TestSpouseAttributionIsReciprocal(t *testing.T) {
	corp := NewCorporation("acme", 100)
	harper := NewIndividual("harper", models.NewShareLot("acme", models.ClassCommon, 60, 60000, 12000))
	winter := NewFamilyMember("winter", RelationSpouse, harper, models.NewShareLot("acme", models.ClassCommon, 40, 40000, 8000))
	require.NoError(t, corp.AddOwner(harper))
	require.NoError(t, corp.AddOwner(winter))

	assert.Equal(t, 100.0, harper.OwnedShares(corp).Shares())
	assert.Equal(t, 100.0, winter.OwnedShares(corp).Shares())
}

func TestGrandchildAttributionIsOneDirectional(t *testing.T) {
	corp := NewCorporation("acme", 100)
	elder := NewIndividual("elder", models.NewShareLot("acme", models.ClassCommon, 50, 50000, 10000))
	junior := NewFamilyMember("junior", RelationGrandchild, elder, models.NewShareLot("acme", models.ClassCommon, 20, 20000, 4000))
	require.NoError(t, corp.AddOwner(elder))
	require.NoError(t, corp.AddOwner(junior))

	// The elder is attributed the grandchild's stock, not the reverse.
	assert.Equal(t, 70.0, elder.OwnedShares(corp).Shares())
	assert.Equal(t, 20.0, junior.OwnedShares(corp).Shares())
}

func TestSharesForWithoutEdgeFails(t *testing.T) {
	corp := NewCorporation("acme", 100)
	holder := NewIndividual("holder", models.NewShareLot("acme", models.ClassCommon, 50, 0, 0))
	stranger := NewIndividual("stranger", nil)

	_, err := holder.SharesFor(stranger, corp)
	assert.ErrorIs(t, err, ErrNoOwnershipRelation)
}

func TestTrustBeneficiaryCutoff(t *testing.T) {
	corp := NewCorporation("acme", 100)
	bella := NewIndividual("bella", models.NewShareLot("acme", models.ClassCommon, 10, 10000, 2000))
	cara := NewIndividual("cara", models.NewShareLot("acme", models.ClassCommon, 10, 10000, 2000))

	trust := NewTrust("family-trust", models.NewShareLot("acme", models.ClassCommon, 50, 50000, 10000),
		Beneficiary{Shareholder: bella, Interest: 0.20},
		Beneficiary{Shareholder: cara, Interest: 0.04},
	)
	require.NoError(t, corp.AddOwner(trust))
	require.NoError(t, corp.AddOwner(bella))
	require.NoError(t, corp.AddOwner(cara))

	// Cara's 4% interest is below the cutoff and excluded entirely.
	assert.InDelta(t, 52.0, trust.OwnedShares(corp).Shares(), 1e-9)

	fetched, err := trust.SharesFor(bella, corp)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, fetched.Shares(), 1e-9)

	_, err = trust.SharesFor(cara, corp)
	assert.ErrorIs(t, err, ErrNoOwnershipRelation)
}

func TestEstateIncludesDecedentHoldings(t *testing.T) {
	corp := NewCorporation("acme", 100)
	decedent := NewIndividual("decedent", models.NewShareLot("acme", models.ClassCommon, 30, 30000, 6000))
	estate := NewEstate("estate", decedent, models.NewShareLot("acme", models.ClassCommon, 20, 20000, 4000))
	require.NoError(t, corp.AddOwner(estate))
	require.NoError(t, corp.AddOwner(decedent))

	assert.Equal(t, 50.0, estate.OwnedShares(corp).Shares())
}

func TestPartnershipProportionalBothWays(t *testing.T) {
	corp := NewCorporation("acme", 100)
	dana := NewIndividual("dana", models.NewShareLot("acme", models.ClassCommon, 20, 20000, 4000))
	eli := NewIndividual("eli", nil)

	pship := NewPartnership("dm-partners", models.NewShareLot("acme", models.ClassCommon, 80, 80000, 16000),
		Partner{Shareholder: dana, Interest: 0.25},
		Partner{Shareholder: eli, Interest: 0.75},
	)
	require.NoError(t, corp.AddOwner(pship))
	require.NoError(t, corp.AddOwner(dana))

	// Partner side: 25% of the partnership's 80 shares.
	fetched, err := pship.SharesFor(dana, corp)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, fetched.Shares(), 1e-9)

	_, err = pship.SharesFor(NewIndividual("outsider", nil), corp)
	assert.ErrorIs(t, err, ErrNoOwnershipRelation)

	// Entity side: the partnership picks up 25% of Dana's own holdings.
	assert.InDelta(t, 85.0, pship.OwnedShares(corp).Shares(), 1e-9)
}

func TestCorporateShareholderStepFunction(t *testing.T) {
	target := NewCorporation("target", 100)
	holdcoEntity := NewCorporation("holdco", 100)

	holdco := NewCorporateShareholder("holdco", holdcoEntity, models.NewShareLot("target", models.ClassCommon, 70, 70000, 14000))
	require.NoError(t, target.AddOwner(holdco))

	ivy := NewIndividual("ivy", models.NewShareLot("holdco", models.ClassCommon, 50, 50000, 10000))
	require.NoError(t, holdcoEntity.AddOwner(ivy))
	ivy.AddConstructiveEdge(holdco.DirectLot())

	// At exactly 50% the full holding is attributed, not a proportion.
	assert.Equal(t, 70.0, ivy.OwnedShares(target).Shares())

	noa := NewIndividual("noa", models.NewShareLot("holdco", models.ClassCommon, 49, 49000, 9800))
	require.NoError(t, holdcoEntity.AddOwner(noa))
	noa.AddConstructiveEdge(holdco.DirectLot())

	assert.Equal(t, 0.0, noa.OwnedShares(target).Shares())
}

func TestOwnershipProportionsStayInUnitInterval(t *testing.T) {
	corp := NewCorporation("acme", 100)
	harper := NewIndividual("harper", models.NewShareLot("acme", models.ClassCommon, 60, 60000, 12000))
	winter := NewFamilyMember("winter", RelationSpouse, harper, models.NewShareLot("acme", models.ClassCommon, 40, 40000, 8000))
	require.NoError(t, corp.AddOwner(harper))
	require.NoError(t, corp.AddOwner(winter))

	for _, sh := range []Shareholder{harper, winter} {
		prop := corp.OwnershipOf(sh)
		assert.GreaterOrEqual(t, prop, 0.0)
		assert.LessOrEqual(t, prop, 1.0)
	}
}

func TestAddOwnerEnforcesOutstandingInvariant(t *testing.T) {
	corp := NewCorporation("acme", 100)
	require.NoError(t, corp.AddOwner(NewIndividual("a", models.NewShareLot("acme", models.ClassCommon, 60, 0, 0))))

	err := corp.AddOwner(NewIndividual("b", models.NewShareLot("acme", models.ClassCommon, 50, 0, 0)))
	assert.Error(t, err)
}

func TestTotalOutstandingFMV(t *testing.T) {
	corp := NewCorporation("acme", 100)
	require.NoError(t, corp.AddOwner(NewIndividual("a", models.NewShareLot("acme", models.ClassCommon, 60, 66000, 0))))
	require.NoError(t, corp.AddOwner(NewIndividual("b", models.NewShareLot("acme", models.ClassCommon, 40, 34000, 0))))

	assert.Equal(t, 100000.0, corp.TotalOutstandingFMV())
}

func TestPortfolioLotsResolve(t *testing.T) {
	corpA := NewCorporation("acme", 100)
	corpB := NewCorporation("bolt", 100)

	holder := NewIndividual("holder", models.NewShareLot("acme", models.ClassCommon, 30, 0, 0))
	holder.AddLot(models.NewShareLot("bolt", models.ClassCommon, 25, 0, 0))
	require.NoError(t, corpA.AddOwner(holder))
	require.NoError(t, corpB.AddOwner(holder))

	assert.Equal(t, 30.0, holder.OwnedShares(corpA).Shares())
	assert.Equal(t, 25.0, holder.OwnedShares(corpB).Shares())
}

package ownership

import (
	"github.com/username/corptax/src/models"
)

// beneficiaryCutoff is the hard floor below which a trust or estate
// beneficiary is excluded from attribution entirely.
const beneficiaryCutoff = 0.05

// Beneficiary pairs a shareholder with a fractional interest in a trust
// or estate.
type Beneficiary struct {
	Shareholder Shareholder
	Interest    float64
}

// Trust attributes its holdings to and from beneficiaries with an
// interest of at least 5%, scaled by that interest. Smaller interests are
// cut off, not phased.
type Trust struct {
	Individual
	beneficiaries []Beneficiary
}

func NewTrust(name string, lot *models.ShareLot, beneficiaries ...Beneficiary) *Trust {
	t := &Trust{
		Individual:    *NewIndividual(name, lot),
		beneficiaries: beneficiaries,
	}
	if lot != nil {
		lot.Owner = t
	}
	return t
}

func (t *Trust) SharesFor(requester Shareholder, corp *Corporation) (models.Aggregate, error) {
	for _, b := range t.beneficiaries {
		if b.Shareholder.Name() != requester.Name() {
			continue
		}
		if b.Interest < beneficiaryCutoff {
			return models.Aggregate{}, ErrNoOwnershipRelation
		}
		return scaled(t.directHoldings(corp), b.Interest), nil
	}
	return t.Individual.SharesFor(requester, corp)
}

func (t *Trust) OwnedShares(corp *Corporation) models.Aggregate {
	agg := t.directHoldings(corp)
	agg.Extend(t.resolveEdges(t, corp))
	for _, b := range t.beneficiaries {
		if b.Interest < beneficiaryCutoff {
			continue
		}
		agg.Extend(scaled(b.Shareholder.OwnedShares(corp), b.Interest))
	}
	return agg
}

// Estate resolves to its own holdings plus everything the decedent owned.
type Estate struct {
	Individual
	decedent Shareholder
}

func NewEstate(name string, decedent Shareholder, lot *models.ShareLot) *Estate {
	return &Estate{
		Individual: *NewIndividual(name, lot),
		decedent:   decedent,
	}
}

func (e *Estate) Decedent() Shareholder { return e.decedent }

func (e *Estate) OwnedShares(corp *Corporation) models.Aggregate {
	agg := e.directHoldings(corp)
	agg.Extend(e.resolveEdges(e, corp))
	if e.decedent != nil {
		agg.Extend(e.decedent.OwnedShares(corp))
	}
	return agg
}

// Partner pairs a shareholder with a capital/profit interest in a
// partnership.
type Partner struct {
	Shareholder Shareholder
	Interest    float64
}

// Partnership attributes proportionally in both directions: a partner is
// attributed their interest share of partnership holdings, and the
// partnership is attributed each partner's holdings scaled by the same
// interest. Estates with proportional beneficial interests and S
// corporations follow these rules too.
type Partnership struct {
	Individual
	partners []Partner
}

func NewPartnership(name string, lot *models.ShareLot, partners ...Partner) *Partnership {
	p := &Partnership{
		Individual: *NewIndividual(name, lot),
		partners:   partners,
	}
	if lot != nil {
		lot.Owner = p
	}
	return p
}

func (p *Partnership) SharesFor(requester Shareholder, corp *Corporation) (models.Aggregate, error) {
	for _, partner := range p.partners {
		if partner.Shareholder.Name() == requester.Name() {
			return scaled(p.directHoldings(corp), partner.Interest), nil
		}
	}
	return models.Aggregate{}, ErrNoOwnershipRelation
}

func (p *Partnership) OwnedShares(corp *Corporation) models.Aggregate {
	agg := p.directHoldings(corp)
	for _, partner := range p.partners {
		agg.Extend(scaled(partner.Shareholder.OwnedShares(corp), partner.Interest))
	}
	return agg
}

// CorporateShareholder composes a shareholder aspect with the corporation
// it is: an entity that both holds stock and issues it.
//
// Attribution is a step function, not linear: a requester owning at least
// half of this corporation (by share count) is attributed all of its
// direct holdings in the target; below half, nothing.
type CorporateShareholder struct {
	Individual
	Entity *Corporation
}

func NewCorporateShareholder(name string, entity *Corporation, lot *models.ShareLot) *CorporateShareholder {
	c := &CorporateShareholder{
		Individual: *NewIndividual(name, lot),
		Entity:     entity,
	}
	if lot != nil {
		lot.Owner = c
	}
	return c
}

func (c *CorporateShareholder) SharesFor(requester Shareholder, corp *Corporation) (models.Aggregate, error) {
	if c.Entity == nil {
		return c.Individual.SharesFor(requester, corp)
	}
	if directOwnershipIn(c.Entity, requester) >= 0.5 {
		return c.directHoldings(corp), nil
	}
	return models.Aggregate{}, nil
}

func (c *CorporateShareholder) OwnedShares(corp *Corporation) models.Aggregate {
	agg := c.directHoldings(corp)
	agg.Extend(c.resolveEdges(c, corp))
	return agg
}

// directOwnershipIn is the requester's direct share-count proportion of
// the entity, used by the corporate 50% test.
func directOwnershipIn(entity *Corporation, sh Shareholder) float64 {
	if entity.TotalShares <= 0 {
		return 0
	}
	return directSharesIn(entity, sh) / entity.TotalShares
}

// scaled wraps every holding of an aggregate in a proportional proxy.
func scaled(agg models.Aggregate, proportion float64) models.Aggregate {
	var out models.Aggregate
	for _, h := range agg.Items() {
		out.Append(&models.PartialLot{Of: h, Proportion: proportion})
	}
	return out
}

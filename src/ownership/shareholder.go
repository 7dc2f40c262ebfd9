package ownership

import (
	"errors"

	"github.com/username/corptax/src/models"
)

// ErrNoOwnershipRelation signals that the requesting party holds no
// constructive-ownership edge to this shareholder. It is always caught and
// neutralized inside the resolver, never surfaced to a top-level caller.
var ErrNoOwnershipRelation = errors.New("no constructive ownership relation")

// Shareholder is a node in the ownership graph. Every variant supplies its
// own attribution formula through SharesFor and OwnedShares.
type Shareholder interface {
	models.LotOwner

	// SharesFor is the one-hop fetch other nodes call on this node: it
	// returns this shareholder's direct holdings in corp, but only if a
	// constructive-ownership edge exists from the requester to this
	// shareholder. Otherwise it fails with ErrNoOwnershipRelation.
	SharesFor(requester Shareholder, corp *Corporation) (models.Aggregate, error)

	// OwnedShares resolves everything this shareholder owns in corp,
	// directly and constructively.
	OwnedShares(corp *Corporation) models.Aggregate

	// DirectLot is the shareholder's primary lot, if any.
	DirectLot() *models.ShareLot

	// AddConstructiveEdge links this shareholder to a lot held by a
	// related party.
	AddConstructiveEdge(lot *models.ShareLot)
}

// Individual is the base shareholder: a primary lot, a portfolio of lots
// in other corporations, and a set of directed constructive-ownership
// edges. Edges point at share lots, never at other shareholders'
// resolvers, so resolution is one-hop by construction and needs no cycle
// guard.
type Individual struct {
	name      string
	lot       *models.ShareLot
	portfolio models.Aggregate
	edges     []*models.ShareLot
}

func NewIndividual(name string, lot *models.ShareLot) *Individual {
	s := &Individual{name: name}
	if lot != nil {
		s.AddLot(lot)
	}
	return s
}

func (s *Individual) Name() string { return s.name }

func (s *Individual) DirectLot() *models.ShareLot { return s.lot }

// AddLot attaches a lot this shareholder directly owns. The first lot
// becomes the primary holding; later lots go into the portfolio.
func (s *Individual) AddLot(lot *models.ShareLot) {
	lot.Owner = s
	if s.lot == nil {
		s.lot = lot
	} else {
		s.portfolio.Append(lot)
	}
	s.edges = append(s.edges, lot)
}

func (s *Individual) AddConstructiveEdge(lot *models.ShareLot) {
	s.edges = append(s.edges, lot)
}

// Portfolio holds the shareholder's lots beyond the primary one.
func (s *Individual) Portfolio() models.Aggregate {
	return s.portfolio
}

// directHoldings collects the lots this shareholder itself holds in corp.
func (s *Individual) directHoldings(corp *Corporation) models.Aggregate {
	var agg models.Aggregate
	if s.lot != nil && s.lot.Corp == corp.ID {
		agg.Append(s.lot)
	}
	for _, h := range s.portfolio.Items() {
		if lot, ok := models.UnderlyingLot(h); ok && lot.Corp == corp.ID {
			agg.Append(h)
		}
	}
	return agg
}

func (s *Individual) SharesFor(requester Shareholder, corp *Corporation) (models.Aggregate, error) {
	for _, edge := range s.edges {
		if edge.Owner != nil && edge.Owner.Name() == requester.Name() {
			return s.directHoldings(corp), nil
		}
	}
	return models.Aggregate{}, ErrNoOwnershipRelation
}

func (s *Individual) OwnedShares(corp *Corporation) models.Aggregate {
	agg := s.directHoldings(corp)
	agg.Extend(s.resolveEdges(s, corp))
	return agg
}

// resolveEdges performs the one-hop fetch across this node's constructive
// edges on behalf of self (the outermost variant). Edges back to self are
// skipped and missing relations contribute zero.
func (s *Individual) resolveEdges(self Shareholder, corp *Corporation) models.Aggregate {
	var agg models.Aggregate
	for _, edge := range s.edges {
		if edge.Owner == nil || edge.Owner.Name() == s.name {
			continue
		}
		related, ok := edge.Owner.(Shareholder)
		if !ok {
			continue
		}
		fetched, err := related.SharesFor(self, corp)
		if err != nil {
			// Absent relations contribute zero.
			continue
		}
		agg.Extend(fetched)
	}
	return agg
}

// FamilyRelation names how a family shareholder relates to the person the
// stock is attributed to.
type FamilyRelation string

const (
	RelationSpouse     FamilyRelation = "spouse"
	RelationChild      FamilyRelation = "child"
	RelationParent     FamilyRelation = "parent"
	RelationGrandchild FamilyRelation = "grandchild"
)

// Reciprocal reports whether attribution runs in both directions for this
// relation. Grandchild attribution is one-directional.
func (r FamilyRelation) Reciprocal() bool {
	return r != RelationGrandchild
}

// Family is a shareholder whose stock is attributed to a related person.
// Spouse, child and parent relations are reciprocal; grandchild is not.
type Family struct {
	Individual
	relation  FamilyRelation
	relatedTo Shareholder
}

// NewFamilyMember creates the family shareholder and wires the
// constructive edges: relatedTo always receives an edge to the member's
// lot, and reciprocal relations receive the edge back.
func NewFamilyMember(name string, relation FamilyRelation, relatedTo Shareholder, lot *models.ShareLot) *Family {
	f := &Family{
		Individual: *NewIndividual(name, lot),
		relation:   relation,
		relatedTo:  relatedTo,
	}
	if lot != nil {
		lot.Owner = f
		relatedTo.AddConstructiveEdge(lot)
	}
	if relation.Reciprocal() && relatedTo.DirectLot() != nil {
		f.AddConstructiveEdge(relatedTo.DirectLot())
	}
	return f
}

func (f *Family) Relation() FamilyRelation { return f.relation }

func (f *Family) RelatedTo() Shareholder { return f.relatedTo }

// SharesFor grants the related person the fetch even when the relation is
// one-directional and no back-edge exists.
func (f *Family) SharesFor(requester Shareholder, corp *Corporation) (models.Aggregate, error) {
	if f.relatedTo != nil && requester.Name() == f.relatedTo.Name() {
		return f.directHoldings(corp), nil
	}
	return f.Individual.SharesFor(requester, corp)
}

// AddLot keeps the owner tag pointing at the family variant so waiver
// filtering can recognize later-added lots.
func (f *Family) AddLot(lot *models.ShareLot) {
	f.Individual.AddLot(lot)
	lot.Owner = f
}

// FamilyAttributed reports whether the holding is a lot owned by a family
// shareholder, which the family-attribution waiver excludes.
func FamilyAttributed(h models.Holding) bool {
	lot, ok := models.UnderlyingLot(h)
	if !ok || lot.Owner == nil {
		return false
	}
	_, isFamily := lot.Owner.(*Family)
	return isFamily
}

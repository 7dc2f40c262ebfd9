package ownership

import (
	"fmt"

	"github.com/username/corptax/src/models"
)

// Corporation is an issuer: identity, total shares outstanding, and an
// ordered cap table of shareholders. Direct lots issued against it can
// never exceed the total outstanding shares.
type Corporation struct {
	ID          string
	TotalShares float64
	Owners      []Shareholder

	// CapTable carries optional per-class bookkeeping; nil when the
	// scenario does not track issuance.
	CapTable *models.CapTable
}

func NewCorporation(id string, totalShares float64) *Corporation {
	return &Corporation{ID: id, TotalShares: totalShares}
}

// AddOwner registers a shareholder on the cap table, enforcing the
// outstanding-shares invariant across all direct lots.
func (c *Corporation) AddOwner(sh Shareholder) error {
	total := directSharesIn(c, sh)
	for _, owner := range c.Owners {
		total += directSharesIn(c, owner)
	}
	if total > c.TotalShares {
		return fmt.Errorf("direct lots (%v shares) exceed total outstanding %v in %s",
			total, c.TotalShares, c.ID)
	}
	c.Owners = append(c.Owners, sh)
	return nil
}

func directSharesIn(c *Corporation, sh Shareholder) float64 {
	var total float64
	if lot := sh.DirectLot(); lot != nil && lot.Corp == c.ID {
		total += lot.Shares
	}
	if base, ok := sh.(interface{ Portfolio() models.Aggregate }); ok {
		for _, h := range base.Portfolio().Items() {
			if lot, ok := models.UnderlyingLot(h); ok && lot.Corp == c.ID {
				total += lot.Shares
			}
		}
	}
	return total
}

// TotalOutstandingFMV sums the fair market value of every direct lot
// issued against this corporation.
func (c *Corporation) TotalOutstandingFMV() float64 {
	var total float64
	for _, owner := range c.Owners {
		if lot := owner.DirectLot(); lot != nil && lot.Corp == c.ID {
			total += lot.FMV
		}
		if base, ok := owner.(interface{ Portfolio() models.Aggregate }); ok {
			for _, h := range base.Portfolio().Items() {
				if lot, ok := models.UnderlyingLot(h); ok && lot.Corp == c.ID {
					total += lot.FMV
				}
			}
		}
	}
	return total
}

// OwnershipOf is the shareholder's constructive ownership proportion of
// this corporation by share count, in [0, 1].
func (c *Corporation) OwnershipOf(sh Shareholder) float64 {
	if c.TotalShares <= 0 {
		return 0
	}
	prop := sh.OwnedShares(c).Shares() / c.TotalShares
	if prop < 0 {
		return 0
	}
	if prop > 1 {
		return 1
	}
	return prop
}

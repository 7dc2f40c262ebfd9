package controlgroup

import (
	"fmt"

	"github.com/username/corptax/src/config"
	"github.com/username/corptax/src/ownership"
)

// parentSubThreshold is the ownership floor, by share count or value,
// for a parent-subsidiary relationship.
const parentSubThreshold = 0.8

// ParentSubsidiary is a controlled group held together by one parent
// owning at least 80% of each subsidiary, by voting shares or by value.
// Membership is all-or-nothing per corporation.
type ParentSubsidiary struct {
	ControlledGroup
	parent ownership.Shareholder
}

func NewParentSubsidiary(constants *config.YearConstants, parent ownership.Shareholder, subsidiaries ...*ownership.Corporation) (*ParentSubsidiary, error) {
	g := &ParentSubsidiary{
		ControlledGroup: *newControlledGroup(constants),
		parent:          parent,
	}
	if err := g.AddCorps(subsidiaries...); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *ParentSubsidiary) Parent() ownership.Shareholder { return g.parent }

// AddCorps admits each candidate whose stock the parent constructively
// owns at least 80% of; any failing candidate aborts with
// ErrNotParentSubsidiary and nothing is admitted partially.
func (g *ParentSubsidiary) AddCorps(candidates ...*ownership.Corporation) error {
	for _, candidate := range candidates {
		owned := g.parent.OwnedShares(candidate)

		var pctShares, pctValue float64
		if candidate.TotalShares > 0 {
			pctShares = owned.Shares() / candidate.TotalShares
		}
		if fmv := candidate.TotalOutstandingFMV(); fmv > 0 {
			pctValue = owned.FMV() / fmv
		}

		if pctShares < parentSubThreshold && pctValue < parentSubThreshold {
			return fmt.Errorf("%w: %s owns %.1f%% of shares and %.1f%% of value in %s",
				ErrNotParentSubsidiary, g.parent.Name(), pctShares*100, pctValue*100, candidate.ID)
		}
	}
	// Admit only after every candidate passes; a failure aborts the
	// whole addition.
	for _, candidate := range candidates {
		g.admit(candidate)
	}
	return nil
}

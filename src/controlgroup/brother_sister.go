package controlgroup

import (
	"fmt"

	"github.com/username/corptax/src/config"
	"github.com/username/corptax/src/ownership"
	"github.com/username/corptax/src/utils"
)

const (
	// brotherSisterEightyTest: common owners must together hold at least
	// 80% of each member, by share count or by value.
	brotherSisterEightyTest = 0.8

	// brotherSisterFiftyTest: the per-owner minimum holdings summed
	// across owners must exceed 50% of the group.
	brotherSisterFiftyTest = 0.5

	// maxCommonOwners caps eligible common owners. Finding the smallest
	// passing owner subset is a knapsack-style search this classifier
	// deliberately skips.
	maxCommonOwners = 5
)

// BrotherSister is a controlled group of corporations held by the same
// small set of individual, trust, or estate owners.
type BrotherSister struct {
	ControlledGroup
}

func NewBrotherSister(constants *config.YearConstants, corporations ...*ownership.Corporation) (*BrotherSister, error) {
	g := &BrotherSister{ControlledGroup: *newControlledGroup(constants)}
	if err := g.AddCorps(corporations...); err != nil {
		return nil, err
	}
	return g, nil
}

// AddCorps re-runs both ownership tests over the existing members plus
// the candidates. Any failure aborts with a typed error and admits
// nothing.
func (g *BrotherSister) AddCorps(candidates ...*ownership.Corporation) error {
	all := append(g.Members(), candidates...)
	if len(all) == 0 {
		return nil
	}

	owners := commonOwners(all)
	if len(owners) > maxCommonOwners {
		return fmt.Errorf("%w: found %d", ErrTooManyCommonOwners, len(owners))
	}

	// Per-owner minimum ownership across all members, for the 50% test.
	minShares := make(map[string]float64)
	minValue := make(map[string]float64)

	for _, corp := range all {
		var groupShares, groupValue float64
		corpFMV := corp.TotalOutstandingFMV()

		perOwnerShares := make(map[string]float64)
		perOwnerValue := make(map[string]float64)

		for _, owner := range owners {
			owned := owner.OwnedShares(corp)
			perOwnerShares[owner.Name()] = owned.Shares()
			perOwnerValue[owner.Name()] = owned.FMV()
			groupShares += owned.Shares()
			groupValue += owned.FMV()
		}

		var pctShares, pctValue float64
		if corp.TotalShares > 0 {
			pctShares = groupShares / corp.TotalShares
		}
		if corpFMV > 0 {
			pctValue = groupValue / corpFMV
		}
		if pctShares < brotherSisterEightyTest && pctValue < brotherSisterEightyTest {
			return &GroupTestError{Which: "80%", Corp: corp.ID}
		}

		for _, owner := range owners {
			name := owner.Name()
			sharePct := 0.0
			valuePct := 0.0
			if corp.TotalShares > 0 {
				sharePct = perOwnerShares[name] / corp.TotalShares
			}
			if corpFMV > 0 {
				valuePct = perOwnerValue[name] / corpFMV
			}
			if prev, ok := minShares[name]; ok {
				minShares[name] = utils.MinFloat(prev, sharePct)
			} else {
				minShares[name] = sharePct
			}
			if prev, ok := minValue[name]; ok {
				minValue[name] = utils.MinFloat(prev, valuePct)
			} else {
				minValue[name] = valuePct
			}
		}
	}

	var sumMinShares, sumMinValue float64
	for _, v := range minShares {
		sumMinShares += v
	}
	for _, v := range minValue {
		sumMinValue += v
	}
	if sumMinShares <= brotherSisterFiftyTest && sumMinValue <= brotherSisterFiftyTest {
		return &GroupTestError{Which: "50%"}
	}

	for _, corp := range all {
		g.admit(corp)
	}
	return nil
}

// CommonOwners are the owners present on every member's cap table,
// restricted to individuals, trusts, and estates.
func (g *BrotherSister) CommonOwners() []ownership.Shareholder {
	return commonOwners(g.Members())
}

func commonOwners(corps []*ownership.Corporation) []ownership.Shareholder {
	if len(corps) == 0 {
		return nil
	}

	var common []ownership.Shareholder
	for _, owner := range corps[0].Owners {
		if !eligibleCommonOwner(owner) {
			continue
		}
		onAll := true
		for _, corp := range corps[1:] {
			if !ownerOf(corp, owner.Name()) {
				onAll = false
				break
			}
		}
		if onAll {
			common = append(common, owner)
		}
	}
	return common
}

func ownerOf(corp *ownership.Corporation, name string) bool {
	for _, owner := range corp.Owners {
		if owner.Name() == name {
			return true
		}
	}
	return false
}

// eligibleCommonOwner excludes non-individual entities: corporate and
// partnership shareholders cannot count toward the common-owner tests.
func eligibleCommonOwner(sh ownership.Shareholder) bool {
	switch sh.(type) {
	case *ownership.CorporateShareholder, *ownership.Partnership:
		return false
	}
	return true
}

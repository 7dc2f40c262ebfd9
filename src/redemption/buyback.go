package redemption

import (
	"errors"
	"time"

	"github.com/username/corptax/src/models"
	"github.com/username/corptax/src/ownership"
)

// ErrInvalidRedemptionState rejects a basis adjustment that would leave
// the shareholder with a negative share count.
var ErrInvalidRedemptionState = errors.New("redemption exceeds shares held")

// BuyBack is a stock redemption: the corporation buys shares back from
// one of its shareholders. Whether the shareholder gets sale/exchange
// treatment or distribution treatment turns on IsQualifyingExchange.
//
// Distributions in redemption of stock, qualifying or not, are
// nonliquidating distributions: the corporation recognizes gain on
// appreciated property distributed as if sold at FMV, and never
// recognizes loss.
type BuyBack struct {
	Month          time.Month
	Corp           *ownership.Corporation
	Shareholder    ownership.Shareholder
	SharesSold     models.Aggregate
	AmountReceived float64

	// FamilyWaiver elects out of family attribution; it is only valid
	// alongside a complete-termination redemption.
	FamilyWaiver bool

	// PartialLiquidation is determined externally, not computed here.
	PartialLiquidation bool

	DeathTaxRedemption  bool
	DecedentEstateValue float64
}

func NewBuyBack(month time.Month, corp *ownership.Corporation, shareholder ownership.Shareholder, amountReceived float64, sharesSold ...models.Holding) *BuyBack {
	return &BuyBack{
		Month:          month,
		Corp:           corp,
		Shareholder:    shareholder,
		SharesSold:     models.NewAggregate(sharesSold...),
		AmountReceived: amountReceived,
	}
}

func (b *BuyBack) beforeShares() models.Aggregate {
	return b.Shareholder.OwnedShares(b.Corp)
}

// BeforeVotingShares is the shareholder's voting-stock holdings, direct
// and constructive, immediately before the redemption.
func (b *BuyBack) BeforeVotingShares() float64 {
	return b.beforeShares().FilterClass(models.StockClass.Voting).Shares()
}

// AfterVotingShares nets out the voting shares sold in this event.
func (b *BuyBack) AfterVotingShares() float64 {
	sold := b.SharesSold.FilterClass(models.StockClass.Voting).Shares()
	return b.BeforeVotingShares() - sold
}

func (b *BuyBack) BeforeCommonShares() float64 {
	return b.beforeShares().FilterClass(models.StockClass.Common).Shares()
}

func (b *BuyBack) AfterCommonShares() float64 {
	sold := b.SharesSold.FilterClass(models.StockClass.Common).Shares()
	return b.BeforeCommonShares() - sold
}

// IsQualifyingExchange decides whether this buyback is treated as a
// section 1001 sale/exchange rather than a distribution. The five tests
// run in order and any single pass qualifies the whole event.
func (b *BuyBack) IsQualifyingExchange() bool {
	if b.substantiallyDisproportionate() {
		return true
	}
	if b.completeTermination() {
		return true
	}
	if b.PartialLiquidation {
		return true
	}
	if b.notEssentiallyEquivalentToDividend() {
		return true
	}
	// Section 303: the redeemed stock must be included in the decedent's
	// gross estate and exceed 35% of the adjusted gross estate. Usually
	// tax free anyway, since the estate's basis is FMV at death.
	if b.DeathTaxRedemption && b.SharesSold.FMV() > 0.35*b.DecedentEstateValue {
		return true
	}
	return false
}

// substantiallyDisproportionate requires, after the redemption:
// under 50% of combined voting power, under 80% of the voting percentage
// held before, and under 80% of the common percentage held before. The
// after-denominator excludes every share redeemed in the event.
func (b *BuyBack) substantiallyDisproportionate() bool {
	totalOutstanding := b.Corp.TotalShares
	totalAfter := totalOutstanding - b.SharesSold.Shares()
	if totalAfter <= 0 {
		return false
	}

	percentBefore := b.BeforeVotingShares() / totalOutstanding
	percentAfter := b.AfterVotingShares() / totalAfter

	if percentAfter >= 0.5 {
		return false
	}
	if percentAfter >= 0.8*percentBefore {
		return false
	}

	percentBefore = b.BeforeCommonShares() / totalOutstanding
	percentAfter = b.AfterCommonShares() / totalAfter
	if percentAfter >= 0.8*percentBefore {
		return false
	}

	return true
}

// completeTermination passes when the shareholder's entire interest,
// direct and constructive, is redeemed. With a family waiver elected,
// lots attributed from family relations are excluded first.
func (b *BuyBack) completeTermination() bool {
	owned := b.beforeShares()
	if b.FamilyWaiver {
		owned = owned.Filter(func(h models.Holding) bool {
			return !ownership.FamilyAttributed(h)
		})
	}
	return owned.Shares()-b.SharesSold.Shares() == 0
}

// notEssentiallyEquivalentToDividend looks for a meaningful reduction in
// voting control.
//
// The concert analysis below is deliberately conservative: only the
// slam-dunk case returns true, where the shareholder could have paired
// with any single other owner for control before the redemption and can
// pair with no one after. A borderline taxpayer may still have a
// defensible position; this code will not find it for them.
func (b *BuyBack) notEssentiallyEquivalentToDividend() bool {
	numOwners := len(b.Corp.Owners)
	soldShares := b.SharesSold.Shares()
	totalAfter := b.Corp.TotalShares - soldShares
	if totalAfter <= 0 {
		return false
	}

	before := b.BeforeVotingShares() / b.Corp.TotalShares
	after := b.AfterVotingShares() / totalAfter

	if numOwners <= 2 {
		return before > 0.5 && after <= 0.5
	}

	if after > 0.5 {
		return false
	}
	if before > 0.5 && after < 0.5 {
		return true
	}
	if before > 0.5 && after == 0.5 {
		// Someone else could combine to match control.
		return false
	}

	// Concert: with unrelated owners, could the shareholder have teamed
	// up with one other owner for control? Related owners make the
	// question unanalyzable, so fail conservatively.
	for _, owner := range b.Corp.Owners {
		if _, related := owner.(*ownership.Family); related {
			return false
		}
	}

	myShares := directShares(b.Shareholder)
	couldTeamUpBefore := true
	couldTeamUpAfter := false
	for _, owner := range b.Corp.Owners {
		if owner.Name() == b.Shareholder.Name() {
			continue
		}
		ownerShares := directShares(owner)

		beforePair := (myShares + ownerShares) / b.Corp.TotalShares
		if couldTeamUpBefore && beforePair < 0.5 {
			couldTeamUpBefore = false
		}

		afterPair := (myShares - soldShares + ownerShares) / totalAfter
		if !couldTeamUpAfter && afterPair > 0.5 {
			couldTeamUpAfter = true
		}
	}

	return couldTeamUpBefore && !couldTeamUpAfter
}

func directShares(sh ownership.Shareholder) float64 {
	if lot := sh.DirectLot(); lot != nil {
		return lot.Shares
	}
	return 0
}

// ApplyBasisAdjustment mutates the shareholder's retained lot once the
// qualification outcome is known. Call it exactly once per event; it is
// not idempotent.
//
// Non-qualifying: the share count drops but aggregate basis is unchanged,
// so basis per share rises. Qualifying: basis per share is preserved and
// aggregate basis falls proportionally.
func (b *BuyBack) ApplyBasisAdjustment() error {
	lot := b.Shareholder.DirectLot()
	if lot == nil {
		return ErrInvalidRedemptionState
	}
	soldShares := b.SharesSold.Shares()
	if lot.Shares-soldShares < 0 {
		return ErrInvalidRedemptionState
	}

	if !b.IsQualifyingExchange() {
		lot.Shares -= soldShares
		return nil
	}

	abPerShare := lot.AB / lot.Shares
	lot.Shares -= soldShares
	lot.AB = abPerShare * lot.Shares
	return nil
}

package models

import (
	"fmt"
)

// StockClass identifies the class of a share lot. Common stock carries
// voting rights; preferred does not.
type StockClass string

const (
	ClassVoting    StockClass = "voting"
	ClassNonVoting StockClass = "nonvoting"
	ClassCommon    StockClass = "common"
	ClassPreferred StockClass = "preferred"
)

// Voting reports whether this class carries voting power.
func (c StockClass) Voting() bool {
	return c == ClassVoting || c == ClassCommon
}

// Common reports whether this class is common stock.
func (c StockClass) Common() bool {
	return c == ClassCommon
}

// Field names a numeric attribute that can be aggregated across holdings.
type Field int

const (
	FieldShares Field = iota
	FieldFMV
	FieldAB
)

// LotOwner is the narrow view of a shareholder that a lot keeps a
// back-reference to.
type LotOwner interface {
	Name() string
}

// Holding is the closed set of things that can sit in an Aggregate: a
// ShareLot, a Boot, or a PartialLot proxy. Value returns the named numeric
// field and whether the holding carries that field at all.
type Holding interface {
	Value(field Field) (float64, bool)
}

// ShareLot is a quantity of stock of one corporation held at a point in
// time.
type ShareLot struct {
	Corp   string
	Class  StockClass
	Shares float64
	FMV    float64
	AB     float64
	Owner  LotOwner

	// GainOnSale holds the gain recognized by the most recent Sell.
	GainOnSale float64
}

func NewShareLot(corp string, class StockClass, shares, fmv, ab float64) *ShareLot {
	return &ShareLot{Corp: corp, Class: class, Shares: shares, FMV: fmv, AB: ab}
}

func (l *ShareLot) Value(field Field) (float64, bool) {
	switch field {
	case FieldShares:
		return l.Shares, true
	case FieldFMV:
		return l.FMV, true
	case FieldAB:
		return l.AB, true
	}
	return 0, false
}

// Sell transfers numShares out of this lot for the given amount. Basis is
// reallocated proportionally, the remaining FMV is repriced at the sale
// price, and the buyer's new lot is returned along with the recognized
// gain.
func (l *ShareLot) Sell(numShares, amount float64) (*ShareLot, float64, error) {
	if numShares <= 0 || numShares > l.Shares {
		return nil, 0, fmt.Errorf("cannot sell %v shares out of %v", numShares, l.Shares)
	}

	proportion := numShares / l.Shares
	gain := amount - proportion*l.AB

	buyerLot := NewShareLot(l.Corp, l.Class, numShares, amount, amount)

	l.Shares -= numShares
	l.FMV = (amount / numShares) * l.Shares
	l.AB -= proportion * l.AB
	l.GainOnSale = gain

	return buyerLot, gain, nil
}

// StockDividend records a stock dividend or split. A same-class dividend
// adds shares without changing aggregate basis (basis per share drops). A
// different-class dividend allocates the existing basis between the two
// lots by relative fair market value.
func (l *ShareLot) StockDividend(other *ShareLot) {
	if other.Class == l.Class {
		l.Shares += other.Shares
		return
	}
	totalFMV := l.FMV + other.FMV
	basis := l.AB
	l.AB = (l.FMV / totalFMV) * basis
	other.AB = (other.FMV / totalFMV) * basis
}

// Boot is non-stock consideration received in a transaction. Its basis is
// its fair market value on the date of transfer, and it carries no share
// count.
type Boot struct {
	FMV float64
}

func (b *Boot) Value(field Field) (float64, bool) {
	switch field {
	case FieldFMV, FieldAB:
		return b.FMV, true
	}
	return 0, false
}

// PartialLot scales the numeric fields of a wrapped holding by a
// fractional interest. Non-numeric attributes (class, corporation, owner)
// pass through unchanged via UnderlyingLot.
type PartialLot struct {
	Of         Holding
	Proportion float64
}

func (p *PartialLot) Value(field Field) (float64, bool) {
	v, ok := p.Of.Value(field)
	if !ok {
		return 0, false
	}
	return v * p.Proportion, true
}

// UnderlyingLot unwraps PartialLot chains down to the share lot they
// scale. Boot has no underlying lot.
func UnderlyingLot(h Holding) (*ShareLot, bool) {
	for {
		switch v := h.(type) {
		case *ShareLot:
			return v, true
		case *PartialLot:
			h = v.Of
		default:
			return nil, false
		}
	}
}

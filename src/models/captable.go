package models

import (
	"fmt"

	"github.com/username/corptax/src/utils"
)

// classInfo tracks one class of stock on a corporation's books.
type classInfo struct {
	Issued      float64
	Outstanding float64
	Treasury    []*ShareLot
	Par         float64
	HasPar      bool
	Value       float64
	APIC        float64
	Lots        Aggregate
}

// CapTable is a corporation's per-class stock bookkeeping: issued,
// outstanding and treasury counts plus stated value and additional
// paid-in capital.
type CapTable struct {
	classes map[StockClass]*classInfo
}

func NewCapTable() *CapTable {
	return &CapTable{classes: make(map[StockClass]*classInfo)}
}

// AddClass registers a class of stock with its initially outstanding
// share count. Pass hasPar=false for no-par stock.
func (t *CapTable) AddClass(class StockClass, outstanding float64, par float64, hasPar bool) {
	t.classes[class] = &classInfo{
		Issued:      outstanding,
		Outstanding: outstanding,
		Par:         par,
		HasPar:      hasPar,
	}
}

// Issue issues new shares of a class and returns the lot handed to the
// subscriber. Par stock splits the proceeds between stated value and APIC;
// no-par stock books the net proceeds as stated value.
func (t *CapTable) Issue(class StockClass, shares, issuePrice, issueCosts float64) (*ShareLot, error) {
	info, ok := t.classes[class]
	if !ok {
		return nil, fmt.Errorf("stock class %s not registered", class)
	}

	if !info.HasPar {
		info.Value += issuePrice - issueCosts
	} else {
		info.Value += shares * info.Par
		info.APIC += utils.RoundFloat((issuePrice-shares*info.Par)-issueCosts, 2)
	}

	info.Issued += shares
	info.Outstanding += shares

	lot := NewShareLot("", class, shares, issuePrice, issuePrice)
	info.Lots.Append(lot)
	return lot, nil
}

// Repurchase buys back a lot as treasury stock, reducing outstanding
// shares.
func (t *CapTable) Repurchase(lot *ShareLot) error {
	info, ok := t.classes[lot.Class]
	if !ok {
		return fmt.Errorf("stock class %s not registered", lot.Class)
	}

	if !info.HasPar {
		info.Value -= lot.FMV
	} else {
		info.Value -= lot.Shares * info.Par
		info.APIC -= lot.FMV - lot.Shares*info.Par
	}

	info.Outstanding -= lot.Shares
	info.Treasury = append(info.Treasury, lot)
	return nil
}

// Outstanding sums outstanding shares across all classes.
func (t *CapTable) Outstanding() float64 {
	var total float64
	for _, info := range t.classes {
		total += info.Outstanding
	}
	return total
}

// FMV is the book value of the equity: stated value plus APIC across all
// classes.
func (t *CapTable) FMV() float64 {
	var total float64
	for _, info := range t.classes {
		total += info.Value + info.APIC
	}
	return total
}

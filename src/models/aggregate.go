package models

// Aggregate is an ordered collection of holdings with field-wise summation.
// Summation silently skips holdings that lack the requested field; an
// empty aggregate sums to the start value.
type Aggregate struct {
	items []Holding

	// Start is added to every sum, mirroring a running total carried in
	// from elsewhere.
	Start float64
}

func NewAggregate(items ...Holding) Aggregate {
	return Aggregate{items: items}
}

func (a *Aggregate) Append(h Holding) {
	a.items = append(a.items, h)
}

func (a *Aggregate) Extend(other Aggregate) {
	a.items = append(a.items, other.items...)
}

func (a Aggregate) Items() []Holding {
	return a.items
}

func (a Aggregate) Len() int {
	return len(a.items)
}

// Sum adds the named field across all holdings. Order of summation is
// irrelevant.
func (a Aggregate) Sum(field Field) float64 {
	total := a.Start
	for _, item := range a.items {
		if v, ok := item.Value(field); ok {
			total += v
		}
	}
	return total
}

func (a Aggregate) Shares() float64 { return a.Sum(FieldShares) }
func (a Aggregate) FMV() float64    { return a.Sum(FieldFMV) }
func (a Aggregate) AB() float64     { return a.Sum(FieldAB) }

// Filter returns a new aggregate keeping only holdings for which keep
// returns true. Start carries over.
func (a Aggregate) Filter(keep func(Holding) bool) Aggregate {
	out := Aggregate{Start: a.Start}
	for _, item := range a.items {
		if keep(item) {
			out.Append(item)
		}
	}
	return out
}

// FilterClass keeps holdings whose underlying lot's stock class satisfies
// the predicate. Holdings without a stock class (boot) are dropped.
func (a Aggregate) FilterClass(pred func(StockClass) bool) Aggregate {
	return a.Filter(func(h Holding) bool {
		lot, ok := UnderlyingLot(h)
		return ok && pred(lot.Class)
	})
}

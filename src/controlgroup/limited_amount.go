package controlgroup

// LimitedAmount is an amount being built up against a cap, tracking the
// excess that spills over. Adding past the limit parks the overflow in
// Excess; adding a negative amount pulls parked excess back in.
type LimitedAmount struct {
	limit  float64
	amount float64
	excess float64
}

func NewLimitedAmount(upperLimit float64) *LimitedAmount {
	return &LimitedAmount{limit: upperLimit}
}

func (l *LimitedAmount) Add(v float64) {
	bulk := l.amount + l.excess + v
	if bulk > l.limit {
		l.excess = bulk - l.limit
		l.amount = l.limit
		return
	}
	l.amount = bulk
	l.excess = 0
}

func (l *LimitedAmount) Amount() float64 { return l.amount }
func (l *LimitedAmount) Excess() float64 { return l.excess }
func (l *LimitedAmount) Limit() float64  { return l.limit }

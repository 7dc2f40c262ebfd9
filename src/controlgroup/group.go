package controlgroup

import (
	"fmt"

	"github.com/username/corptax/src/config"
	"github.com/username/corptax/src/ownership"
)

// ControlledGroup is a set of commonly controlled corporations that split
// shared statutory limits between them.
type ControlledGroup struct {
	corps      map[string]*ownership.Corporation
	order      []string
	allocation map[string]float64
	constants  *config.YearConstants
}

func newControlledGroup(constants *config.YearConstants) *ControlledGroup {
	return &ControlledGroup{
		corps:     make(map[string]*ownership.Corporation),
		constants: constants,
	}
}

func (g *ControlledGroup) admit(corp *ownership.Corporation) {
	if _, ok := g.corps[corp.ID]; ok {
		return
	}
	g.corps[corp.ID] = corp
	g.order = append(g.order, corp.ID)
}

// Members returns the member corporations in admission order.
func (g *ControlledGroup) Members() []*ownership.Corporation {
	out := make([]*ownership.Corporation, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.corps[id])
	}
	return out
}

func (g *ControlledGroup) Len() int { return len(g.corps) }

// Contains accepts a *ownership.Corporation or a corporation id.
func (g *ControlledGroup) Contains(corpOrID interface{}) bool {
	switch v := corpOrID.(type) {
	case string:
		_, ok := g.corps[v]
		return ok
	case *ownership.Corporation:
		member, ok := g.corps[v.ID]
		return ok && member == v
	}
	return false
}

// SetAllocation overrides the default equal split. The mapping must cover
// every member and nothing else. To actually elect an uneven split, each
// member's written consent goes with the tax return.
func (g *ControlledGroup) SetAllocation(alloc map[string]float64) error {
	if len(alloc) != len(g.corps) {
		return fmt.Errorf("%w: got %d entries for %d members", ErrInvalidAllocation, len(alloc), len(g.corps))
	}
	for id := range g.corps {
		if _, ok := alloc[id]; !ok {
			return fmt.Errorf("%w: missing %s", ErrInvalidAllocation, id)
		}
	}
	g.allocation = alloc
	return nil
}

// Allocation is the member weight map, defaulting to an equal split.
func (g *ControlledGroup) Allocation() map[string]float64 {
	if g.allocation != nil {
		return g.allocation
	}
	out := make(map[string]float64, len(g.corps))
	for id := range g.corps {
		out[id] = 1 / float64(len(g.corps))
	}
	return out
}

// GetLimit is a member's slice of a group-wide statutory limit for the
// year.
func (g *ControlledGroup) GetLimit(year int, corpID, limitName string) (float64, error) {
	if _, ok := g.corps[corpID]; !ok {
		return 0, fmt.Errorf("%s is not a member of this group", corpID)
	}
	limit, err := g.constants.Limit(limitName, year)
	if err != nil {
		return 0, err
	}
	return g.Allocation()[corpID] * limit, nil
}

// LimitAccumulator wraps a member's allocated limit in a LimitedAmount so
// callers can consume it and track excess.
func (g *ControlledGroup) LimitAccumulator(year int, corpID, limitName string) (*LimitedAmount, error) {
	limit, err := g.GetLimit(year, corpID, limitName)
	if err != nil {
		return nil, err
	}
	return NewLimitedAmount(limit), nil
}

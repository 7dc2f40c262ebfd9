package controlgroup

import (
	"errors"
	"fmt"
)

var (
	// ErrNotParentSubsidiary rejects a candidate subsidiary the parent
	// does not own at least 80% of, by share count or by value.
	ErrNotParentSubsidiary = errors.New("not a parent-subsidiary relationship")

	// ErrTooManyCommonOwners enforces the five common-owner cap. The
	// classifier deliberately does not search owner subsets for a
	// passing combination.
	ErrTooManyCommonOwners = errors.New("more than five common owners")

	// ErrInvalidAllocation rejects an allocation override that does not
	// cover every group member exactly.
	ErrInvalidAllocation = errors.New("allocation must cover every group member")
)

// GroupTestError reports which brother-sister ownership test failed, and
// for the per-corporation 80% test, which corporation failed it. Group
// formation aborts entirely; no partial group is ever returned.
type GroupTestError struct {
	Which string // "80%" or "50%"
	Corp  string // set for the 80% test
}

func (e *GroupTestError) Error() string {
	if e.Corp != "" {
		return fmt.Sprintf("control group %s test failed for %s", e.Which, e.Corp)
	}
	return fmt.Sprintf("control group %s test failed", e.Which)
}

package services

import (
	"github.com/username/corptax/src/controlgroup"
	"github.com/username/corptax/src/ownership"
	"github.com/username/corptax/src/redemption"
)

// EvaluationService is the entry point callers use to run the attribution
// machinery. Control groups are classified fresh from current graph state
// per tax year and memoized; the cache must be invalidated whenever a
// graph is rebuilt.
type EvaluationService interface {
	ClassifyBrotherSister(year int, corporations ...*ownership.Corporation) (*controlgroup.BrotherSister, error)
	ClassifyParentSubsidiary(year int, parent ownership.Shareholder, subsidiaries ...*ownership.Corporation) (*controlgroup.ParentSubsidiary, error)
	GroupLimit(year int, group *controlgroup.ControlledGroup, corpID, limitName string) (float64, error)
	QualifyRedemption(event *redemption.BuyBack) bool
	InvalidateYear(year int)
}

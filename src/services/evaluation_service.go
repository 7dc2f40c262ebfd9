package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/corptax/src/config"
	"github.com/username/corptax/src/controlgroup"
	"github.com/username/corptax/src/logger"
	"github.com/username/corptax/src/ownership"
	"github.com/username/corptax/src/redemption"
)

const (
	// Per-year classification caches
	ckBrotherSister    = "cg_brother_sister_%d_%s"
	ckParentSubsidiary = "cg_parent_sub_%d_%s_%s"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type evaluationServiceImpl struct {
	constants  *config.YearConstants
	groupCache *cache.Cache
}

func NewEvaluationService(constants *config.YearConstants, groupCache *cache.Cache) EvaluationService {
	if groupCache == nil {
		groupCache = cache.New(DefaultCacheExpiration, CacheCleanupInterval)
	}
	return &evaluationServiceImpl{
		constants:  constants,
		groupCache: groupCache,
	}
}

func (s *evaluationServiceImpl) ClassifyBrotherSister(year int, corporations ...*ownership.Corporation) (*controlgroup.BrotherSister, error) {
	key := fmt.Sprintf(ckBrotherSister, year, memberKey(corporations))
	if cached, found := s.groupCache.Get(key); found {
		logger.L.Debug("Brother-sister classification cache hit", "year", year, "key", key)
		return cached.(*controlgroup.BrotherSister), nil
	}

	group, err := controlgroup.NewBrotherSister(s.constants, corporations...)
	if err != nil {
		logger.L.Info("Brother-sister group formation failed", "year", year, "error", err)
		return nil, err
	}

	s.groupCache.Set(key, group, cache.DefaultExpiration)
	logger.L.Info("Brother-sister group formed", "year", year, "members", len(group.Members()), "commonOwners", len(group.CommonOwners()))
	return group, nil
}

func (s *evaluationServiceImpl) ClassifyParentSubsidiary(year int, parent ownership.Shareholder, subsidiaries ...*ownership.Corporation) (*controlgroup.ParentSubsidiary, error) {
	key := fmt.Sprintf(ckParentSubsidiary, year, parent.Name(), memberKey(subsidiaries))
	if cached, found := s.groupCache.Get(key); found {
		logger.L.Debug("Parent-subsidiary classification cache hit", "year", year, "key", key)
		return cached.(*controlgroup.ParentSubsidiary), nil
	}

	group, err := controlgroup.NewParentSubsidiary(s.constants, parent, subsidiaries...)
	if err != nil {
		logger.L.Info("Parent-subsidiary group formation failed", "year", year, "parent", parent.Name(), "error", err)
		return nil, err
	}

	s.groupCache.Set(key, group, cache.DefaultExpiration)
	logger.L.Info("Parent-subsidiary group formed", "year", year, "parent", parent.Name(), "members", len(group.Members()))
	return group, nil
}

func (s *evaluationServiceImpl) GroupLimit(year int, group *controlgroup.ControlledGroup, corpID, limitName string) (float64, error) {
	limit, err := group.GetLimit(year, corpID, limitName)
	if err != nil {
		return 0, fmt.Errorf("error resolving %s for %s: %w", limitName, corpID, err)
	}
	return limit, nil
}

func (s *evaluationServiceImpl) QualifyRedemption(event *redemption.BuyBack) bool {
	qualifies := event.IsQualifyingExchange()
	logger.L.Info("Redemption qualification evaluated",
		"corp", event.Corp.ID,
		"shareholder", event.Shareholder.Name(),
		"sharesSold", event.SharesSold.Shares(),
		"qualifies", qualifies)
	return qualifies
}

// InvalidateYear drops every cached classification for the year. Call it
// after rebuilding the ownership graph.
func (s *evaluationServiceImpl) InvalidateYear(year int) {
	prefixes := []string{
		fmt.Sprintf("cg_brother_sister_%d_", year),
		fmt.Sprintf("cg_parent_sub_%d_", year),
	}
	for key := range s.groupCache.Items() {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				s.groupCache.Delete(key)
				break
			}
		}
	}
	logger.L.Debug("Invalidated control-group caches", "year", year)
}

func memberKey(corps []*ownership.Corporation) string {
	ids := make([]string, len(corps))
	for i, corp := range corps {
		ids[i] = corp.ID
	}
	return strings.Join(ids, ",")
}

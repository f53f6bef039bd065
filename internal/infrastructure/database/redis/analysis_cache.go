package redis

import (
	"context"
	"time"

	"github.com/turtacn/AnswerKey-Intelligence/internal/application/analysis"
	"github.com/turtacn/AnswerKey-Intelligence/internal/domain/answer"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/types/common"
)

const analysisKeyPrefix = "analysis:answer:"

// AnalysisCache caches completed analyses keyed by answer ID.  A stored
// analysis never changes, so entries only expire, they are never
// invalidated explicitly.
type AnalysisCache struct {
	cache Cache
	ttl   time.Duration
}

var _ analysis.AnalysisCache = (*AnalysisCache)(nil)

// NewAnalysisCache builds the cache adapter.  A zero ttl falls back to the
// underlying cache's default.
func NewAnalysisCache(cache Cache, ttl time.Duration) *AnalysisCache {
	return &AnalysisCache{cache: cache, ttl: ttl}
}

// Get returns the cached analysis for answerID, or (nil, nil) on a miss.
func (c *AnalysisCache) Get(ctx context.Context, answerID common.ID) (*answer.Analysis, error) {
	var a answer.Analysis
	err := c.cache.Get(ctx, analysisKeyPrefix+string(answerID), &a)
	if err == ErrCacheMiss {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Set stores the analysis under its answer ID.
func (c *AnalysisCache) Set(ctx context.Context, a *answer.Analysis) error {
	return c.cache.Set(ctx, analysisKeyPrefix+string(a.AnswerID), a, c.ttl)
}

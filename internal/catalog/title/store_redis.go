// Copyright (c) 2026 YaMDb. All rights reserved.

package title

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sdvkam/yamdb-final/internal/platform/constants"
)

// ratingCacheTTL bounds staleness when an invalidation is lost.
const ratingCacheTTL = 10 * time.Minute

// noRatingSentinel marks a cached "title has no reviews yet" result, so the
// absence of reviews does not force a recompute on every read.
const noRatingSentinel = "none"

// RatingCache stores computed average review scores per title in Redis.
//
// # Degradation
//
// A nil client turns every operation into a no-op miss, so the API keeps
// serving (with recomputed ratings) when Redis is down or not configured.
type RatingCache struct {
	client *redis.Client
}

// NewRatingCache creates a rating cache backed by the given client.
func NewRatingCache(client *redis.Client) *RatingCache {
	return &RatingCache{client: client}
}

// Get returns the cached rating and whether the cache held an entry.
// A hit may carry a nil rating (title known to have no reviews).
func (cache *RatingCache) Get(context context.Context, titleID int64) (*float64, bool) {
	if cache == nil || cache.client == nil {
		return nil, false
	}

	raw, err := cache.client.Get(context, ratingKey(titleID)).Result()
	if err != nil {
		// redis.Nil is an ordinary miss; anything else degrades to a miss too.
		if !errors.Is(err, redis.Nil) {
			return nil, false
		}
		return nil, false
	}

	if raw == noRatingSentinel {
		return nil, true
	}

	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &rating, true
}

// Set stores a computed rating. Errors are swallowed; the cache is advisory.
func (cache *RatingCache) Set(context context.Context, titleID int64, rating *float64) {
	if cache == nil || cache.client == nil {
		return
	}

	value := noRatingSentinel
	if rating != nil {
		value = strconv.FormatFloat(*rating, 'f', -1, 64)
	}

	_ = cache.client.Set(context, ratingKey(titleID), value, ratingCacheTTL).Err()
}

// Invalidate drops the cached rating for a title. Called by the review
// module whenever a review for the title is created, updated, or deleted.
func (cache *RatingCache) Invalidate(context context.Context, titleID int64) error {
	if cache == nil || cache.client == nil {
		return nil
	}

	return cache.client.Del(context, ratingKey(titleID)).Err()
}

func ratingKey(titleID int64) string {
	return constants.RedisPrefixTitleRating + strconv.FormatInt(titleID, 10)
}

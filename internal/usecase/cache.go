package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"career-compass/internal/domain/skill"
)

// Cache is the slice of the redis adapter the usecases depend on. The
// adapter degrades to a no-op when redis is unreachable, so callers treat
// cache errors as misses.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	InvalidateUserScope(ctx context.Context, userID string) error
}

// Cache lifetimes per data class. Market demand moves daily, catalog course
// listings and public github profiles barely move week to week, and
// per-user projections are cheap enough to rebuild every few minutes.
const (
	marketCacheTTL        = 24 * time.Hour
	courseCacheTTL        = 7 * 24 * time.Hour
	githubCacheTTL        = 7 * 24 * time.Hour
	userCacheTTL          = 10 * time.Minute
	analysisLockTTL       = 10 * time.Minute
	postingSearchCacheTTL = 5 * time.Minute
)

func marketCacheKey(role, location string) string {
	key := "market:req:" + skill.NormalizeName(role)
	if loc := skill.NormalizeName(location); loc != "" {
		key += ":" + loc
	}
	return key
}

func courseCacheKey(skillName string) string {
	return "courses:skill:" + skill.NormalizeName(skillName)
}

func githubCacheKey(username string) string {
	return "github:user:" + username
}

func userSkillsCacheKey(userID uuid.UUID) string {
	return "user:" + userID.String() + ":skills"
}

func latestGapCacheKey(userID uuid.UUID) string {
	return "gap:latest:" + userID.String()
}

func analysisLockKey(userID uuid.UUID) string {
	return "analysis:lock:" + userID.String()
}

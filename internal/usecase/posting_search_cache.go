package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"career-compass/internal/domain/job"
)

// postingSearchKeyInput is the canonical form of one search. Hashing a
// normalized JSON encoding keeps the key stable across equivalent filter
// spellings ("Data  Analyst" and "data analyst" share a cache entry).
type postingSearchKeyInput struct {
	Role     string `json:"role"`
	Location string `json:"location"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

func normalizeSearchValue(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

func postingSearchCacheKey(params job.SearchParams, offset int) string {
	in := postingSearchKeyInput{
		Role:     normalizeSearchValue(params.Role),
		Location: normalizeSearchValue(params.Location),
		Limit:    params.Limit,
		Offset:   offset,
	}

	b, err := json.Marshal(in)
	if err != nil {
		return "postings:search:invalid"
	}
	sum := sha256.Sum256(b)
	return "postings:search:" + hex.EncodeToString(sum[:])
}

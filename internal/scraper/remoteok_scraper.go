package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RemoteOKScraper reads the public RemoteOK feed. The feed is a single
// JSON array whose first element is a legal notice, so rows are decoded
// one at a time and rows without a position are dropped. Everything on
// the board is remote, so the location filter is ignored.
type RemoteOKScraper struct {
	client  *http.Client
	apiBase string
}

func NewRemoteOKScraper() *RemoteOKScraper {
	return &RemoteOKScraper{
		client:  &http.Client{Timeout: 25 * time.Second},
		apiBase: "https://remoteok.com",
	}
}

func (s *RemoteOKScraper) Name() string { return "remoteok" }

type remoteOKListing struct {
	ID          json.RawMessage `json:"id"`
	Slug        string          `json:"slug"`
	Position    string          `json:"position"`
	Company     string          `json:"company"`
	Location    string          `json:"location"`
	Tags        []string        `json:"tags"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	URL         string          `json:"url"`
}

func (s *RemoteOKScraper) Collect(ctx context.Context, q Query) ([]Posting, error) {
	endpoint := strings.TrimRight(s.apiBase, "/") + "/api"
	body, err := httpGetWithRetry(ctx, s.client, endpoint, nil, 3)
	if err != nil {
		return nil, fmt.Errorf("remoteok: %w", err)
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("remoteok: unexpected response shape: %w", err)
	}

	out := make([]Posting, 0, len(rows))
	for _, raw := range rows {
		var it remoteOKListing
		if err := json.Unmarshal(raw, &it); err != nil {
			continue
		}
		position := strings.TrimSpace(it.Position)
		if position == "" {
			continue
		}
		if !roleMatches(q.Role, position+" "+strings.Join(it.Tags, " ")) {
			continue
		}

		extID := pickNonEmpty(it.Slug, rawString(it.ID))
		if extID == "" {
			extID = stableExternalIDFromURL(it.URL)
		}

		out = append(out, Posting{
			ExternalID:  extID,
			Title:       position,
			Company:     strings.TrimSpace(it.Company),
			Location:    pickNonEmpty(it.Location, "Remote"),
			URL:         normalizeURL(it.URL),
			Description: strings.TrimSpace(it.Description),
			PostedAt:    parseTimeOrNil(it.Date),
		})
	}
	return clipPostings(dedupePostings(out), q.Limit), nil
}

// roleMatches requires every role token of three or more characters to
// appear in the haystack. An empty role matches everything.
func roleMatches(role, haystack string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return true
	}
	hay := strings.ToLower(haystack)
	for _, tok := range strings.Fields(role) {
		if len(tok) < 3 {
			continue
		}
		if !strings.Contains(hay, tok) {
			return false
		}
	}
	return true
}

package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultLinkedInHost = "linkedin-job-search-api.p.rapidapi.com"

// LinkedInScraper pulls recent postings from the LinkedIn search API on
// RapidAPI. The API returns full description text inline, so a run is
// one request per page with no detail fetches.
type LinkedInScraper struct {
	client  *http.Client
	baseURL string
	host    string
	apiKey  string
	perPage int
}

func NewLinkedInScraper(apiKey, host string) *LinkedInScraper {
	host = strings.TrimSpace(host)
	if host == "" {
		host = defaultLinkedInHost
	}
	return &LinkedInScraper{
		client:  &http.Client{Timeout: 25 * time.Second},
		baseURL: "https://" + host,
		host:    host,
		apiKey:  strings.TrimSpace(apiKey),
		perPage: 50,
	}
}

func (s *LinkedInScraper) Name() string { return "linkedin" }

// linkedinJob mirrors the upstream row. The API is loose about field
// names across plans, so the alternates the original payloads carry are
// all declared.
type linkedinJob struct {
	ID               json.RawMessage `json:"id"`
	JobID            json.RawMessage `json:"job_id"`
	Title            string          `json:"title"`
	Organization     string          `json:"organization"`
	Company          string          `json:"company"`
	CompanyName      string          `json:"company_name"`
	LocationsDerived []string        `json:"locations_derived"`
	Location         string          `json:"location"`
	DescriptionText  string          `json:"description_text"`
	Description      string          `json:"description"`
	DatePosted       string          `json:"date_posted"`
	URL              string          `json:"url"`
}

type linkedinEnvelope struct {
	Data []linkedinJob `json:"data"`
}

func (s *LinkedInScraper) Collect(ctx context.Context, q Query) ([]Posting, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("linkedin: api key not configured")
	}
	role := strings.TrimSpace(q.Role)
	if role == "" {
		return nil, fmt.Errorf("linkedin: empty role")
	}
	pages := q.Pages
	if pages <= 0 {
		pages = 1
	}

	headers := map[string]string{
		"x-rapidapi-key":  s.apiKey,
		"x-rapidapi-host": s.host,
	}

	out := make([]Posting, 0, s.perPage)
	for page := 0; page < pages; page++ {
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
		endpoint := s.searchURL(role, q.Location, page*s.perPage)
		body, err := httpGetWithRetry(ctx, s.client, endpoint, headers, 3)
		if err != nil {
			// A failed later page ends pagination; rows already collected
			// still count.
			if len(out) > 0 {
				break
			}
			return nil, fmt.Errorf("linkedin: %w", err)
		}
		jobs, err := decodeLinkedInJobs(body)
		if err != nil {
			if len(out) > 0 {
				break
			}
			return nil, fmt.Errorf("linkedin: %w", err)
		}
		if len(jobs) == 0 {
			break
		}
		for _, j := range jobs {
			p, ok := mapLinkedInJob(j)
			if !ok {
				continue
			}
			out = append(out, p)
		}
		if len(jobs) < s.perPage {
			break
		}
	}
	return clipPostings(dedupePostings(out), q.Limit), nil
}

// The upstream expects quoted filter values, quotes included in the
// escaping.
func (s *LinkedInScraper) searchURL(role, location string, offset int) string {
	endpoint := fmt.Sprintf("%s/active-jb-24h?limit=%d&offset=%d&title_filter=%s&description_type=text",
		strings.TrimRight(s.baseURL, "/"), s.perPage, offset, url.QueryEscape(`"`+role+`"`))
	if loc := strings.TrimSpace(location); loc != "" {
		endpoint += "&location_filter=" + url.QueryEscape(`"`+loc+`"`)
	}
	return endpoint
}

func decodeLinkedInJobs(body []byte) ([]linkedinJob, error) {
	var env linkedinEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Data != nil {
		return env.Data, nil
	}
	var jobs []linkedinJob
	if err := json.Unmarshal(body, &jobs); err != nil {
		return nil, fmt.Errorf("unexpected response shape: %w", err)
	}
	return jobs, nil
}

func mapLinkedInJob(j linkedinJob) (Posting, bool) {
	title := strings.TrimSpace(j.Title)
	desc := strings.TrimSpace(pickNonEmpty(j.DescriptionText, j.Description))
	if title == "" && desc == "" {
		return Posting{}, false
	}

	loc := j.Location
	if len(j.LocationsDerived) > 0 {
		loc = j.LocationsDerived[0]
	}

	id := pickNonEmpty(rawString(j.ID), rawString(j.JobID))
	if id == "" {
		id = stableExternalIDFromURL(j.URL)
	}

	return Posting{
		ExternalID:  id,
		Title:       title,
		Company:     pickNonEmpty(j.Organization, pickNonEmpty(j.Company, j.CompanyName)),
		Location:    strings.TrimSpace(loc),
		URL:         normalizeURL(j.URL),
		Description: desc,
		PostedAt:    parseTimeOrNil(j.DatePosted),
	}, true
}

// rawString reads an id that may arrive as either a JSON string or a
// number.
func rawString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	return strings.Trim(s, `"`)
}

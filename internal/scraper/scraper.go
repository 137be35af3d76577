package scraper

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Posting is one job advertisement gathered from a source, normalized to
// the shape the ingestion webhook accepts.
type Posting struct {
	ExternalID  string
	Title       string
	Company     string
	Location    string
	URL         string
	Description string
	PostedAt    *time.Time
}

// Query describes one collection run.
type Query struct {
	Role     string
	Location string
	Pages    int
	Limit    int
}

// Source gathers postings for a role from one job board or API.
type Source interface {
	Name() string
	Collect(ctx context.Context, q Query) ([]Posting, error)
}

func httpHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "CareerCompassCollector/0.1",
		"Accept-Language": "en-US,en;q=0.9",
	}
}

func httpGetWithRetry(ctx context.Context, client *http.Client, rawURL string, headers map[string]string, attempts int) ([]byte, error) {
	if attempts <= 0 {
		attempts = 1
	}
	var body []byte
	var lastErr error
	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		for k, v := range httpHeaders() {
			req.Header.Set(k, v)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
			continue
		}
		func() {
			defer resp.Body.Close()
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				lastErr = fmt.Errorf("status %d", resp.StatusCode)
				return
			}
			b, err := readAllLimit(resp.Body, 5<<20)
			if err != nil {
				lastErr = err
				return
			}
			lastErr = nil
			body = b
		}()
		if lastErr == nil {
			return body, nil
		}
		time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
	}
	return nil, lastErr
}

func readAllLimit(r io.Reader, max int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: max}
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if lr.N <= 0 {
		return nil, fmt.Errorf("response too large")
	}
	return b, nil
}

func stableExternalIDFromURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	h := sha1.Sum([]byte(u))
	return "urlsha1-" + hex.EncodeToString(h[:])
}

func pickNonEmpty(a, b string) string {
	a = strings.TrimSpace(a)
	if a != "" {
		return a
	}
	return strings.TrimSpace(b)
}

func normalizeURL(u string) string {
	return strings.TrimSpace(u)
}

// parseTimeOrNil accepts the timestamp shapes the boards actually emit:
// RFC3339, RFC3339 without a zone, and bare dates.
func parseTimeOrNil(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if tm, err := time.Parse(layout, s); err == nil {
			tm = tm.UTC()
			return &tm
		}
	}
	return nil
}

func hostFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := u.Host
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

// dedupePostings keeps the first posting per URL (falling back to the
// external id for rows without one), preserving order.
func dedupePostings(in []Posting) []Posting {
	if len(in) < 2 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]Posting, 0, len(in))
	for _, p := range in {
		key := normalizeURL(p.URL)
		if key == "" {
			key = "ext:" + strings.TrimSpace(p.ExternalID)
		}
		if key == "ext:" {
			out = append(out, p)
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

func clipPostings(in []Posting, limit int) []Posting {
	if limit > 0 && len(in) > limit {
		return in[:limit]
	}
	return in
}

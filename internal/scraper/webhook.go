package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Completion is one delivered batch: everything a single source collected
// for a task.
type Completion struct {
	TaskID      string
	TargetRole  string
	Location    string
	Source      string
	CompletedAt time.Time
	Postings    []Posting
}

type completionPayload struct {
	TaskID      string           `json:"task_id"`
	TargetRole  string           `json:"target_role"`
	Location    string           `json:"location,omitempty"`
	Source      string           `json:"source"`
	CompletedAt string           `json:"completed_at"`
	Postings    []postingPayload `json:"postings"`
}

type postingPayload struct {
	ExternalID  string `json:"external_id,omitempty"`
	Title       string `json:"title"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description"`
	PostedAt    string `json:"posted_at,omitempty"`
}

// Reporter posts finished batches back to the API ingestion webhook.
type Reporter struct {
	client      *http.Client
	callbackURL string
	token       string
	logger      *log.Logger
}

// NewReporter returns nil when no callback URL is configured; the runner
// then logs batches instead of delivering them.
func NewReporter(callbackURL, token string, timeout time.Duration, logger *log.Logger) *Reporter {
	callbackURL = strings.TrimSpace(callbackURL)
	if callbackURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Reporter{
		client:      &http.Client{Timeout: timeout},
		callbackURL: strings.TrimRight(callbackURL, "/"),
		token:       strings.TrimSpace(token),
		logger:      logger,
	}
}

// Deliver posts one batch. Server-side failures are retried with backoff;
// a 4xx means the payload or token is wrong and will not heal, so it
// returns immediately.
func (r *Reporter) Deliver(ctx context.Context, c Completion) error {
	if r == nil {
		return errors.New("nil reporter")
	}

	payload := completionPayload{
		TaskID:      c.TaskID,
		TargetRole:  c.TargetRole,
		Location:    c.Location,
		Source:      c.Source,
		CompletedAt: c.CompletedAt.UTC().Format(time.RFC3339),
		Postings:    make([]postingPayload, 0, len(c.Postings)),
	}
	for _, p := range c.Postings {
		pp := postingPayload{
			ExternalID:  p.ExternalID,
			Title:       p.Title,
			Company:     p.Company,
			Location:    p.Location,
			URL:         p.URL,
			Description: p.Description,
		}
		if p.PostedAt != nil {
			pp.PostedAt = p.PostedAt.UTC().Format(time.RFC3339)
		}
		payload.Postings = append(payload.Postings, pp)
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	endpoint := r.callbackURL + "/internal/scrape-completed"

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Internal-Token", r.token)

		resp, err := r.client.Do(req)
		if err != nil {
			lastErr = err
		} else {
			status := resp.StatusCode
			var snippet []byte
			if status < 200 || status >= 300 {
				snippet, _ = io.ReadAll(io.LimitReader(resp.Body, 4096))
			}
			resp.Body.Close()
			if status >= 200 && status < 300 {
				return nil
			}
			lastErr = fmt.Errorf("webhook status %d: %s", status, strings.TrimSpace(string(snippet)))
			if status >= 400 && status < 500 {
				return lastErr
			}
		}
		time.Sleep(time.Duration(300*(attempt+1)) * time.Millisecond)
	}
	return lastErr
}

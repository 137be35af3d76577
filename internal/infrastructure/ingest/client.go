package ingest

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

	"career-compass/internal/config"
)

// TriggerClient asks the posting collector service to gather fresh
// postings for a role. A nil client means no collector is configured.
type TriggerClient interface {
	TriggerCollect(ctx context.Context, targetRole string, location string) (taskID string, err error)
}

type httpTriggerClient struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

type triggerCollectRequest struct {
	TargetRole string `json:"target_role"`
	Location   string `json:"location"`
}

type triggerCollectResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// NewTriggerClient returns nil when no collector base URL is configured;
// callers treat that as collection disabled.
func NewTriggerClient(cfg config.IngestConfig, logger *log.Logger) TriggerClient {
	baseURL := strings.TrimSpace(cfg.ScraperBaseURL)
	if baseURL == "" {
		return nil
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &httpTriggerClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *httpTriggerClient) TriggerCollect(ctx context.Context, targetRole string, location string) (string, error) {
	if c == nil {
		return "", errors.New("nil trigger client")
	}
	if c.client == nil {
		return "", errors.New("nil http client")
	}
	endpoint := c.baseURL + "/collect"

	body := triggerCollectRequest{TargetRole: strings.TrimSpace(targetRole), Location: strings.TrimSpace(location)}
	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		err := fmt.Errorf("collect trigger failed: status=%d body=%s", resp.StatusCode, bodyStr)
		if c.logger != nil {
			c.logger.Printf("[Ingest] TriggerCollect error endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, bodyStr)
		}
		return "", err
	}

	var out triggerCollectResponse
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.TaskID), nil
}

var _ TriggerClient = (*httpTriggerClient)(nil)

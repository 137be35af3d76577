package handler

import (
	"errors"
	"log"
	"strings"
	"time"

	"career-compass/internal/config"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/domain/job"
	"career-compass/internal/pkg/metrics"
	"career-compass/internal/usecase"
	"career-compass/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// ScrapedPosting is one row of a collection result as the scraper
// service reports it. Rows are lenient on purpose: the ingest usecase
// skips what it cannot store instead of failing the batch.
type ScrapedPosting struct {
	ExternalID  string `json:"external_id,omitempty"`
	Title       string `json:"title"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description"`
	PostedAt    string `json:"posted_at,omitempty"`
}

type ScrapeCompletedRequest struct {
	TaskID      string           `json:"task_id"`
	TargetRole  string           `json:"target_role"`
	Location    string           `json:"location,omitempty"`
	Source      string           `json:"source"`
	CompletedAt string           `json:"completed_at,omitempty"`
	Postings    []ScrapedPosting `json:"postings"`
}

// ScrapeCompletedHandler receives collection results from the scraper
// service. The route is service-to-service only, gated by a shared
// token instead of a user session.
type ScrapeCompletedHandler struct {
	cfg    config.IngestConfig
	uc     usecase.IngestUsecase
	logger *log.Logger
}

func NewScrapeCompletedHandler(cfg config.IngestConfig, uc usecase.IngestUsecase, logger *log.Logger) *ScrapeCompletedHandler {
	return &ScrapeCompletedHandler{cfg: cfg, uc: uc, logger: logger}
}

func (h *ScrapeCompletedHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/internal/scrape-completed", h.HandleScrapeCompleted)
}

func (h *ScrapeCompletedHandler) HandleScrapeCompleted(c fiber.Ctx) error {
	tok := strings.TrimSpace(c.Get("X-Internal-Token"))
	if tok == "" || h.cfg.InternalToken == "" || tok != h.cfg.InternalToken {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req ScrapeCompletedRequest
	if err := c.Bind().Body(&req); err != nil {
		if h.logger != nil {
			h.logger.Printf("Webhook error | error=%v", err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	req.TaskID = strings.TrimSpace(req.TaskID)
	req.TargetRole = strings.TrimSpace(req.TargetRole)
	req.Source = strings.TrimSpace(req.Source)
	req.CompletedAt = strings.TrimSpace(req.CompletedAt)

	if req.TaskID == "" || req.TargetRole == "" || req.Source == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}
	if req.CompletedAt != "" {
		if _, err := time.Parse(time.RFC3339, req.CompletedAt); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}

	postings := make([]job.Posting, 0, len(req.Postings))
	for _, row := range req.Postings {
		p := job.Posting{
			Source:      req.Source,
			ExternalID:  strings.TrimSpace(row.ExternalID),
			Title:       row.Title,
			Company:     row.Company,
			Location:    row.Location,
			URL:         row.URL,
			Description: row.Description,
		}
		if ts := strings.TrimSpace(row.PostedAt); ts != "" {
			if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
				p.PostedAt = parsed.UTC()
			}
		}
		postings = append(postings, p)
	}

	res, err := h.uc.StorePostings(c.Context(), req.TargetRole, req.Location, postings)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "Internal server error", nil, err)
	}

	metrics.RecordPostingsCollected(req.Source, res.Inserted)
	metrics.RecordPostingsDuplicate(res.Duplicates)

	if h.logger != nil {
		h.logger.Printf("Scrape completed | task=%s role=%s source=%s inserted=%d duplicates=%d skipped=%d",
			req.TaskID, res.TargetRole, req.Source, res.Inserted, res.Duplicates, res.Skipped)
	}

	if res.Inserted > 0 {
		ws.NotifyMarketUpdated(res.TargetRole, req.Source)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":      "stored",
		"target_role": res.TargetRole,
		"inserted":    res.Inserted,
		"duplicates":  res.Duplicates,
		"skipped":     res.Skipped,
	})
}

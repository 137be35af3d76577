package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
)

// BoardTarget describes how to walk one job board: where the search page
// lives and which selectors pull fields out of a detail page. SearchURL
// takes {role}, {location} (URL-escaped) and {page} (1-based)
// placeholders.
type BoardTarget struct {
	Name             string `json:"name"`
	BaseURL          string `json:"base_url"`
	SearchURL        string `json:"search_url"`
	LinkSelector     string `json:"link_selector"`
	LinkPattern      string `json:"link_pattern"`
	TitleSelector    string `json:"title_selector"`
	CompanySelector  string `json:"company_selector"`
	LocationSelector string `json:"location_selector"`
	BodySelector     string `json:"body_selector"`
	Headless         bool   `json:"headless"`
}

// BoardScraper walks a board's search pages for job links and fetches
// each detail page through a rate-limited worker pool. Boards that
// render their listings client-side can opt into a headless-browser
// fallback for the link harvest.
type BoardScraper struct {
	target      BoardTarget
	allowedHost string
	workers     int
}

func NewBoardScraper(target BoardTarget, workers int) *BoardScraper {
	if strings.TrimSpace(target.BaseURL) == "" {
		target.BaseURL = target.SearchURL
	}
	if strings.TrimSpace(target.LinkSelector) == "" {
		target.LinkSelector = "a"
	}
	if strings.TrimSpace(target.LinkPattern) == "" {
		target.LinkPattern = "/job"
	}
	if strings.TrimSpace(target.TitleSelector) == "" {
		target.TitleSelector = "h1"
	}
	if strings.TrimSpace(target.BodySelector) == "" {
		target.BodySelector = "body"
	}
	if workers <= 0 {
		workers = 4
	}
	return &BoardScraper{
		target:      target,
		allowedHost: hostFromURL(target.BaseURL),
		workers:     workers,
	}
}

func (s *BoardScraper) Name() string {
	return strings.ToLower(strings.TrimSpace(s.target.Name))
}

func (s *BoardScraper) Collect(ctx context.Context, q Query) ([]Posting, error) {
	if strings.TrimSpace(s.target.SearchURL) == "" {
		return nil, fmt.Errorf("board %s: no search url", s.Name())
	}
	pages := q.Pages
	if pages <= 0 {
		pages = 1
	}

	var listErr error
	links := make([]string, 0)
	seen := map[string]struct{}{}
	appendLinks := func(found []string) {
		for _, l := range found {
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			links = append(links, l)
		}
	}

	for page := 1; page <= pages; page++ {
		found, err := s.harvestLinks(ctx, s.searchPageURL(q, page))
		if err != nil {
			listErr = err
			continue
		}
		appendLinks(found)
	}

	if len(links) == 0 && s.target.Headless {
		found, err := s.harvestLinksHeadless(ctx, s.searchPageURL(q, 1), 60)
		if err != nil {
			if listErr == nil {
				listErr = err
			}
		} else {
			appendLinks(found)
		}
	}

	if len(links) == 0 {
		if listErr != nil {
			return nil, fmt.Errorf("board %s: %w", s.Name(), listErr)
		}
		return nil, nil
	}
	if q.Limit > 0 && len(links) > q.Limit {
		links = links[:q.Limit]
	}

	pool := NewWorkerPool(s.workers, s.workers*2)
	pool.SetRateLimit(3)
	results := pool.Run(ctx)

	var mu sync.Mutex
	postings := make([]Posting, 0, len(links))
	for _, link := range links {
		link := link
		pool.Submit(func(ctx context.Context) error {
			d, err := s.scrapeDetailPage(ctx, link)
			if err != nil {
				return err
			}
			if strings.TrimSpace(d.title) == "" && strings.TrimSpace(d.description) == "" {
				return fmt.Errorf("empty detail page %s", link)
			}
			mu.Lock()
			postings = append(postings, Posting{
				ExternalID:  stableExternalIDFromURL(link),
				Title:       d.title,
				Company:     pickNonEmpty(d.company, s.target.Name),
				Location:    d.location,
				URL:         link,
				Description: d.description,
			})
			mu.Unlock()
			return nil
		})
	}
	pool.Close()

	failed := 0
	for res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if len(postings) == 0 && failed > 0 {
		return nil, fmt.Errorf("board %s: all %d detail fetches failed", s.Name(), failed)
	}
	return dedupePostings(postings), nil
}

func (s *BoardScraper) searchPageURL(q Query, page int) string {
	u := s.target.SearchURL
	u = strings.ReplaceAll(u, "{role}", url.QueryEscape(strings.TrimSpace(q.Role)))
	u = strings.ReplaceAll(u, "{location}", url.QueryEscape(strings.TrimSpace(q.Location)))
	u = strings.ReplaceAll(u, "{page}", strconv.Itoa(page))
	return u
}

func (s *BoardScraper) newCollector() *colly.Collector {
	var c *colly.Collector
	if s.allowedHost == "" {
		c = colly.NewCollector()
	} else {
		c = colly.NewCollector(colly.AllowedDomains(s.allowedHost))
	}
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, RandomDelay: 750 * time.Millisecond, Delay: 400 * time.Millisecond})
	return c
}

func (s *BoardScraper) harvestLinks(ctx context.Context, listURL string) ([]string, error) {
	c := s.newCollector()

	links := make([]string, 0)
	dedup := map[string]struct{}{}

	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML(s.target.LinkSelector, func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.Attr("href"))
		if href == "" {
			return
		}
		if !strings.Contains(href, s.target.LinkPattern) {
			return
		}
		abs := normalizeURL(e.Request.AbsoluteURL(href))
		if abs == "" {
			return
		}
		if _, ok := dedup[abs]; ok {
			return
		}
		dedup[abs] = struct{}{}
		links = append(links, abs)
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(listURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil && len(links) == 0 {
		return nil, reqErr
	}
	return links, nil
}

type boardDetail struct {
	title       string
	company     string
	location    string
	description string
}

func (s *BoardScraper) scrapeDetailPage(ctx context.Context, jobURL string) (boardDetail, error) {
	c := s.newCollector()

	var out boardDetail
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML(s.target.TitleSelector, func(e *colly.HTMLElement) {
		if strings.TrimSpace(out.title) == "" {
			out.title = strings.TrimSpace(e.Text)
		}
	})

	if strings.TrimSpace(s.target.CompanySelector) != "" {
		c.OnHTML(s.target.CompanySelector, func(e *colly.HTMLElement) {
			if strings.TrimSpace(out.company) == "" {
				out.company = strings.TrimSpace(e.Text)
			}
		})
	}

	if strings.TrimSpace(s.target.LocationSelector) != "" {
		c.OnHTML(s.target.LocationSelector, func(e *colly.HTMLElement) {
			if strings.TrimSpace(out.location) == "" {
				out.location = strings.TrimSpace(e.Text)
			}
		})
	}

	c.OnHTML(s.target.BodySelector, func(e *colly.HTMLElement) {
		out.description = strings.TrimSpace(e.Text)
	})

	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return boardDetail{}, ctx.Err()
	}
	if err := c.Visit(jobURL); err != nil {
		return boardDetail{}, err
	}
	c.Wait()
	if reqErr != nil {
		return boardDetail{}, reqErr
	}
	return out, nil
}

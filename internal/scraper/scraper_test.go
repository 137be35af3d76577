package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestLinkedInScraper_CollectMapsFields(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	var gotKey, gotTitleFilter, gotLocationFilter string

	mux := http.NewServeMux()
	mux.HandleFunc("/active-jb-24h", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		gotKey = r.Header.Get("x-rapidapi-key")
		gotTitleFilter = r.URL.Query().Get("title_filter")
		gotLocationFilter = r.URL.Query().Get("location_filter")
		mu.Unlock()
		_, _ = w.Write([]byte(`{"data":[
			{"id": 101, "title": "Data Analyst", "organization": "Acme Health",
			 "locations_derived": ["Boston, MA"], "description_text": "SQL and dashboards",
			 "date_posted": "2025-07-01T08:00:00", "url": "https://www.linkedin.com/jobs/view/101"},
			{"id": "102", "title": "Senior Data Analyst", "company": "Beta Corp",
			 "location": "Remote", "description": "Python notebooks",
			 "date_posted": "2025-07-02", "url": "https://www.linkedin.com/jobs/view/102"}
		]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	s := NewLinkedInScraper("test-key", "example-host")
	s.baseURL = server.URL

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	postings, err := s.Collect(ctx, Query{Role: "Data Analyst", Location: "United States", Pages: 3})
	if err != nil {
		t.Fatalf("collect error: %v", err)
	}
	if len(postings) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(postings))
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected pagination to stop after a short page, got %d calls", calls)
	}
	if gotKey != "test-key" {
		t.Fatalf("expected rapidapi key header, got %q", gotKey)
	}
	if gotTitleFilter != `"Data Analyst"` {
		t.Fatalf("expected quoted title filter, got %q", gotTitleFilter)
	}
	if gotLocationFilter != `"United States"` {
		t.Fatalf("expected quoted location filter, got %q", gotLocationFilter)
	}

	first := postings[0]
	if first.ExternalID != "101" {
		t.Fatalf("expected external id 101, got %q", first.ExternalID)
	}
	if first.Company != "Acme Health" {
		t.Fatalf("expected organization as company, got %q", first.Company)
	}
	if first.Location != "Boston, MA" {
		t.Fatalf("expected derived location, got %q", first.Location)
	}
	if first.PostedAt == nil {
		t.Fatalf("expected posted_at to parse")
	}

	second := postings[1]
	if second.ExternalID != "102" {
		t.Fatalf("expected external id 102, got %q", second.ExternalID)
	}
	if second.Company != "Beta Corp" {
		t.Fatalf("expected company fallback, got %q", second.Company)
	}
	if second.PostedAt == nil {
		t.Fatalf("expected bare date to parse")
	}
}

func TestRemoteOKScraper_CollectFiltersByRole(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"legal": "API terms apply"},
			{"id": 123, "slug": "remote-backend-engineer-acme", "position": "Backend Engineer",
			 "company": "Acme", "location": "Worldwide", "tags": ["golang", "backend"],
			 "description": "Build APIs", "date": "2025-07-01T00:00:00Z",
			 "url": "https://remoteok.com/remote-jobs/123"},
			{"id": 124, "slug": "remote-product-designer-beta", "position": "Product Designer",
			 "company": "Beta", "tags": ["design"], "description": "Design things",
			 "date": "2025-07-02T00:00:00Z", "url": "https://remoteok.com/remote-jobs/124"}
		]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	s := NewRemoteOKScraper()
	s.apiBase = server.URL

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	postings, err := s.Collect(ctx, Query{Role: "Backend Engineer", Pages: 1})
	if err != nil {
		t.Fatalf("collect error: %v", err)
	}
	if len(postings) != 1 {
		t.Fatalf("expected 1 matching posting, got %d", len(postings))
	}
	p := postings[0]
	if p.ExternalID != "remote-backend-engineer-acme" {
		t.Fatalf("expected slug as external id, got %q", p.ExternalID)
	}
	if p.Title != "Backend Engineer" {
		t.Fatalf("unexpected title %q", p.Title)
	}
	if p.Location != "Worldwide" {
		t.Fatalf("unexpected location %q", p.Location)
	}
	if p.PostedAt == nil {
		t.Fatalf("expected posted_at to parse")
	}
}

func TestBoardScraper_CollectScrapesDetailPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/careers", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<a href="/job/a">Backend</a>
			<a href="/job/a">Backend again</a>
			<a href="/job/b">Platform</a>
			<a href="/about">About us</a>
		</body></html>`))
	})
	mux.HandleFunc("/job/a", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>Backend Engineer</h1><div class="company">Acme</div><p>Build services with Go and Postgres.</p></body></html>`))
	})
	mux.HandleFunc("/job/b", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>Platform Engineer</h1><div class="company">Acme</div><p>Run the clusters.</p></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	s := NewBoardScraper(BoardTarget{
		Name:            "acme-board",
		BaseURL:         server.URL,
		SearchURL:       server.URL + "/careers?q={role}&page={page}",
		LinkPattern:     "/job/",
		TitleSelector:   "h1",
		CompanySelector: ".company",
	}, 3)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	postings, err := s.Collect(ctx, Query{Role: "engineer", Pages: 1, Limit: 10})
	if err != nil {
		t.Fatalf("collect error: %v", err)
	}
	if len(postings) != 2 {
		t.Fatalf("expected 2 postings after dedup, got %d", len(postings))
	}

	byTitle := map[string]Posting{}
	for _, p := range postings {
		byTitle[p.Title] = p
	}
	p, ok := byTitle["Backend Engineer"]
	if !ok {
		t.Fatalf("missing backend posting, got %v", byTitle)
	}
	if !strings.HasPrefix(p.ExternalID, "urlsha1-") {
		t.Fatalf("expected url-derived external id, got %q", p.ExternalID)
	}
	if p.Company != "Acme" {
		t.Fatalf("expected company from selector, got %q", p.Company)
	}
	if !strings.Contains(p.Description, "Go and Postgres") {
		t.Fatalf("expected body text in description, got %q", p.Description)
	}
	if !strings.Contains(p.URL, "/job/a") {
		t.Fatalf("unexpected url %q", p.URL)
	}
}

func TestReporter_DeliverRetriesServerErrors(t *testing.T) {
	attempts := 0
	var mu sync.Mutex
	mux := http.NewServeMux()
	mux.HandleFunc("/internal/scrape-completed", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		n := attempts
		mu.Unlock()
		if n == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"status":"stored"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	r := NewReporter(server.URL, "secret", 5*time.Second, testLogger())
	err := r.Deliver(context.Background(), Completion{TaskID: "t1", TargetRole: "analyst", Source: "stub", CompletedAt: time.Now()})
	if err != nil {
		t.Fatalf("expected delivery to succeed after retry, got %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestReporter_DeliverStopsOnClientError(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/internal/scrape-completed", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		attempts++
		mu.Unlock()
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	r := NewReporter(server.URL, "wrong", 5*time.Second, testLogger())
	err := r.Deliver(context.Background(), Completion{TaskID: "t1", TargetRole: "analyst", Source: "stub", CompletedAt: time.Now()})
	if err == nil {
		t.Fatalf("expected delivery error")
	}
	mu.Lock()
	defer mu.Unlock()
	if attempts != 1 {
		t.Fatalf("expected a single attempt on 401, got %d", attempts)
	}
}

type stubSource struct {
	name     string
	postings []Posting
	err      error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Collect(ctx context.Context, q Query) ([]Posting, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.postings, nil
}

func TestRunner_RunOnceDeliversBatches(t *testing.T) {
	var mu sync.Mutex
	var gotToken string
	var gotBody completionPayload

	mux := http.NewServeMux()
	mux.HandleFunc("/internal/scrape-completed", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		gotToken = r.Header.Get("X-Internal-Token")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		_, _ = w.Write([]byte(`{"status":"stored"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	posted := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	src := &stubSource{
		name: "stub",
		postings: []Posting{
			{ExternalID: "1", Title: "Data Analyst", Company: "Acme", URL: "https://example.com/1", Description: "dashboards", PostedAt: &posted},
			{ExternalID: "2", Title: "BI Analyst", Company: "Beta", URL: "https://example.com/2", Description: "reports"},
		},
	}
	reporter := NewReporter(server.URL, "secret-token", 5*time.Second, testLogger())
	runner := NewRunner([]Source{src}, reporter, RunnerConfig{Pages: 1, Limit: 10, RunTimeout: 10 * time.Second}, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	task, err := runner.RunOnce(ctx, "Data Analyst", "Remote")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if task.Status != TaskCompleted {
		t.Fatalf("expected completed task, got %s (%s)", task.Status, task.Error)
	}
	if task.Collected != 2 || task.Delivered != 2 {
		t.Fatalf("expected 2 collected and delivered, got %d/%d", task.Collected, task.Delivered)
	}

	mu.Lock()
	defer mu.Unlock()
	if gotToken != "secret-token" {
		t.Fatalf("expected internal token header, got %q", gotToken)
	}
	if gotBody.TaskID != task.ID {
		t.Fatalf("expected task id %s in payload, got %s", task.ID, gotBody.TaskID)
	}
	if gotBody.Source != "stub" || gotBody.TargetRole != "Data Analyst" {
		t.Fatalf("unexpected payload header fields: %+v", gotBody)
	}
	if len(gotBody.Postings) != 2 {
		t.Fatalf("expected 2 postings in payload, got %d", len(gotBody.Postings))
	}
	if gotBody.Postings[0].PostedAt != "2025-07-01T08:00:00Z" {
		t.Fatalf("expected RFC3339 posted_at, got %q", gotBody.Postings[0].PostedAt)
	}
	if gotBody.Postings[1].PostedAt != "" {
		t.Fatalf("expected empty posted_at for undated posting, got %q", gotBody.Postings[1].PostedAt)
	}
}

func TestRunner_RunOnceFailsWhenAllSourcesFail(t *testing.T) {
	src := &stubSource{name: "stub", err: fmt.Errorf("upstream down")}
	runner := NewRunner([]Source{src}, nil, RunnerConfig{RunTimeout: 5 * time.Second}, testLogger())

	task, err := runner.RunOnce(context.Background(), "Data Analyst", "")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if task.Status != TaskFailed {
		t.Fatalf("expected failed task, got %s", task.Status)
	}
	if task.Error == "" {
		t.Fatalf("expected task error to be recorded")
	}
}

func TestServer_CollectAndTaskStatus(t *testing.T) {
	src := &stubSource{
		name:     "stub",
		postings: []Posting{{ExternalID: "1", Title: "Data Analyst", Description: "dashboards"}},
	}
	runner := NewRunner([]Source{src}, nil, RunnerConfig{Pages: 1, Limit: 5, RunTimeout: 5 * time.Second}, testLogger())
	app := NewServer(runner, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/collect", strings.NewReader(`{"target_role":"Data Analyst"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("collect request error: %v", err)
	}
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.StatusCode)
	}
	var started struct {
		TaskID string `json:"task_id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&started); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if started.TaskID == "" || started.Status != "collecting" {
		t.Fatalf("unexpected start response: %+v", started)
	}

	var task Task
	for i := 0; i < 100; i++ {
		req := httptest.NewRequest(http.MethodGet, "/tasks/"+started.TaskID, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("task request error: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if task.Status != TaskCollecting {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if task.Status != TaskCompleted {
		t.Fatalf("expected completed task, got %s (%s)", task.Status, task.Error)
	}
	if task.Collected != 1 {
		t.Fatalf("expected 1 collected posting, got %d", task.Collected)
	}

	req = httptest.NewRequest(http.MethodPost, "/collect", strings.NewReader(`{"location":"Remote"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("collect request error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing role, got %d", resp.StatusCode)
	}
}

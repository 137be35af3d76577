package scraper

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskCollecting TaskStatus = "collecting"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// Task is the recorded state of one collection run.
type Task struct {
	ID         string     `json:"task_id"`
	TargetRole string     `json:"target_role"`
	Location   string     `json:"location,omitempty"`
	Status     TaskStatus `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Sources    int        `json:"sources"`
	Collected  int        `json:"collected"`
	Delivered  int        `json:"delivered"`
	Error      string     `json:"error,omitempty"`
}

// RunnerConfig bounds a collection run.
type RunnerConfig struct {
	Pages      int
	Limit      int
	RunTimeout time.Duration
}

var (
	ErrEmptyRole = errors.New("empty target role")
	ErrNoSources = errors.New("no sources configured")
)

// Runner fans a collection request out over the configured sources and
// reports each finished batch to the API webhook. One task produces one
// webhook delivery per source that collected anything.
type Runner struct {
	sources  []Source
	reporter *Reporter
	cfg      RunnerConfig
	logger   *log.Logger

	mu    sync.RWMutex
	tasks map[string]Task
}

func NewRunner(sources []Source, reporter *Reporter, cfg RunnerConfig, logger *log.Logger) *Runner {
	if cfg.Pages <= 0 {
		cfg.Pages = 2
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 50
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 5 * time.Minute
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		sources:  sources,
		reporter: reporter,
		cfg:      cfg,
		logger:   logger,
		tasks:    map[string]Task{},
	}
}

// Start launches an asynchronous run and returns its task id.
func (r *Runner) Start(targetRole, location string) (string, error) {
	t, err := r.newTask(targetRole, location)
	if err != nil {
		return "", err
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.cfg.RunTimeout)
		defer cancel()
		r.run(ctx, t)
	}()
	return t.ID, nil
}

// RunOnce performs a synchronous run, used by the one-shot CLI mode.
func (r *Runner) RunOnce(ctx context.Context, targetRole, location string) (Task, error) {
	t, err := r.newTask(targetRole, location)
	if err != nil {
		return Task{}, err
	}
	return r.run(ctx, t), nil
}

// Task returns the recorded state of a run.
func (r *Runner) Task(id string) (Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[strings.TrimSpace(id)]
	return t, ok
}

func (r *Runner) newTask(targetRole, location string) (Task, error) {
	targetRole = strings.TrimSpace(targetRole)
	if targetRole == "" {
		return Task{}, ErrEmptyRole
	}
	if len(r.sources) == 0 {
		return Task{}, ErrNoSources
	}
	t := Task{
		ID:         uuid.New().String(),
		TargetRole: targetRole,
		Location:   strings.TrimSpace(location),
		Status:     TaskCollecting,
		StartedAt:  time.Now().UTC(),
		Sources:    len(r.sources),
	}
	r.mu.Lock()
	r.tasks[t.ID] = t
	r.mu.Unlock()
	return t, nil
}

func (r *Runner) run(ctx context.Context, t Task) Task {
	q := Query{Role: t.TargetRole, Location: t.Location, Pages: r.cfg.Pages, Limit: r.cfg.Limit}

	okSources := 0
	for _, src := range r.sources {
		if ctx.Err() != nil {
			t.Error = ctx.Err().Error()
			break
		}
		postings, err := src.Collect(ctx, q)
		if err != nil {
			r.logger.Printf("[Collector] Source failed | task=%s source=%s error=%v", t.ID, src.Name(), err)
			continue
		}
		okSources++
		t.Collected += len(postings)
		if len(postings) == 0 {
			r.logger.Printf("[Collector] Nothing collected | task=%s source=%s", t.ID, src.Name())
			continue
		}
		if r.reporter == nil {
			r.logger.Printf("[Collector] No callback configured, dropping batch | task=%s source=%s postings=%d", t.ID, src.Name(), len(postings))
			continue
		}
		err = r.reporter.Deliver(ctx, Completion{
			TaskID:      t.ID,
			TargetRole:  t.TargetRole,
			Location:    t.Location,
			Source:      src.Name(),
			CompletedAt: time.Now().UTC(),
			Postings:    postings,
		})
		if err != nil {
			r.logger.Printf("[Collector] Webhook delivery failed | task=%s source=%s error=%v", t.ID, src.Name(), err)
			t.Error = err.Error()
			continue
		}
		t.Delivered += len(postings)
		r.logger.Printf("[Collector] Batch delivered | task=%s source=%s postings=%d", t.ID, src.Name(), len(postings))
	}

	now := time.Now().UTC()
	t.FinishedAt = &now
	if okSources == 0 {
		t.Status = TaskFailed
		if t.Error == "" {
			t.Error = "all sources failed"
		}
	} else {
		t.Status = TaskCompleted
	}

	r.mu.Lock()
	r.tasks[t.ID] = t
	r.mu.Unlock()

	r.logger.Printf("[Collector] Run finished | task=%s status=%s collected=%d delivered=%d sources_ok=%d",
		t.ID, t.Status, t.Collected, t.Delivered, okSources)
	return t
}

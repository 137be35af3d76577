package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"career-compass/internal/app"
	"career-compass/internal/config"
	"career-compass/internal/scraper"
)

func main() {
	_ = godotenv.Load()

	role := flag.String("role", "", "run one collection for this role and exit")
	location := flag.String("location", "", "location filter for -role runs")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.Default()

	sources := buildSources(cfg.Collector, logger)
	if len(sources) == 0 {
		log.Fatalf("no posting sources configured")
	}

	reporter := scraper.NewReporter(cfg.Collector.CallbackURL, cfg.Ingest.InternalToken, cfg.Collector.RequestTimeout, logger)
	if reporter == nil {
		logger.Printf("[Collector] No callback URL configured, batches will be logged and dropped")
	}

	runner := scraper.NewRunner(sources, reporter, scraper.RunnerConfig{
		Pages:      cfg.Collector.Pages,
		Limit:      cfg.Collector.SourceLimit,
		RunTimeout: cfg.Collector.RunTimeout,
	}, logger)

	if strings.TrimSpace(*role) != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Collector.RunTimeout)
		defer cancel()
		t, err := runner.RunOnce(ctx, *role, *location)
		if err != nil {
			log.Fatalf("collection failed: %v", err)
		}
		logger.Printf("[Collector] Done | task=%s status=%s collected=%d delivered=%d", t.ID, t.Status, t.Collected, t.Delivered)
		if t.Status == scraper.TaskFailed {
			os.Exit(1)
		}
		return
	}

	srv := scraper.NewServer(runner, logger)
	addr, err := app.ListenAddr(cfg.Collector.HTTPPort)
	if err != nil {
		log.Fatalf("invalid collector port: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("collector error: %v", err)
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.ShutdownWithContext(ctx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}

func buildSources(cfg config.CollectorConfig, logger *log.Logger) []scraper.Source {
	sources := make([]scraper.Source, 0, 3)
	if strings.TrimSpace(cfg.RapidAPIKey) != "" {
		sources = append(sources, scraper.NewLinkedInScraper(cfg.RapidAPIKey, cfg.RapidAPIHost))
	}
	if cfg.RemoteOK {
		sources = append(sources, scraper.NewRemoteOKScraper())
	}
	for _, target := range parseBoardTargets(cfg.BoardTargets, logger) {
		sources = append(sources, scraper.NewBoardScraper(target, cfg.Workers))
	}
	return sources
}

func parseBoardTargets(raw string, logger *log.Logger) []scraper.BoardTarget {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var targets []scraper.BoardTarget
	if err := json.Unmarshal([]byte(raw), &targets); err != nil {
		logger.Printf("[Collector] Invalid COLLECTOR_BOARD_TARGETS, ignoring | error=%v", err)
		return nil
	}
	out := make([]scraper.BoardTarget, 0, len(targets))
	for _, t := range targets {
		if strings.TrimSpace(t.Name) == "" || strings.TrimSpace(t.SearchURL) == "" {
			logger.Printf("[Collector] Skipping board target without name or search_url")
			continue
		}
		out = append(out, t)
	}
	return out
}

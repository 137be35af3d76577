package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"career-compass/internal/config"
	"career-compass/internal/database/migration"
	"career-compass/internal/database/seeder"
	"career-compass/internal/delivery/http/routes"
	"career-compass/internal/pkg/validation"
	"career-compass/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap wires the container, applies migrations and seeders when
// configured, starts the websocket hub and mounts the route table.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.RunMigrations {
		migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer migCancel()
		r := migration.Runner{FS: migration.Embedded()}
		if err := r.Run(migCtx, c.DB.SQLDB()); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	if cfg.Database.RunSeeders {
		seedCtx, seedCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer seedCancel()
		r := seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}
		if err := r.Run(seedCtx, c.DB); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("run seeders: %w", err)
		}
	}

	go c.Hub.Run()
	ws.SetDefaultHub(c.Hub)

	f := fiber.New(fiber.Config{
		AppName:         cfg.App.AppName,
		StructValidator: validation.New(),
	})

	routes.NewRegistry(routes.Deps{
		Config: cfg,
		Logger: logger,

		DB:    c.DB,
		Redis: c.Cache,
		JWT:   c.JWT,
		Hub:   c.Hub,

		Auth:      c.Auth,
		Users:     c.Users,
		Artifacts: c.Artifacts,
		Skills:    c.Skills,
		Market:    c.Market,
		Jobs:      c.Jobs,
		Gap:       c.Gap,
		Courses:   c.Courses,
		GitHub:    c.GitHub,
		Roadmaps:  c.Roadmaps,
		Analysis:  c.Analysis,
		Ingest:    c.Ingest,
		Status:    c.Status,
	}).Register(f)

	return &App{Fiber: f, Container: c}, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}

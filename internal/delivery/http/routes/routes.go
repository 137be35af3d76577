package routes

import (
	"log"

	"career-compass/internal/config"
	"career-compass/internal/database"
	"career-compass/internal/delivery/http/handler"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/pkg/jwt"
	"career-compass/internal/pkg/metrics"
	"career-compass/internal/usecase"
	"career-compass/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps carries the services the HTTP layer exposes. The composition
// root wires them; this package only maps them onto routes.
type Deps struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Redis usecase.Pinger
	JWT   jwt.Service
	Hub   *ws.Hub

	Auth      usecase.AuthUsecase
	Users     usecase.UserUsecase
	Artifacts usecase.ArtifactUsecase
	Skills    usecase.SkillUsecase
	Market    usecase.MarketUsecase
	Jobs      usecase.JobUsecase
	Gap       usecase.GapUsecase
	Courses   usecase.CourseUsecase
	GitHub    usecase.GitHubUsecase
	Roadmaps  usecase.RoadmapUsecase
	Analysis  usecase.AnalysisUsecase
	Ingest    usecase.IngestUsecase
	Status    usecase.StatusUsecase
}

type Registry struct {
	deps Deps
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps}
}

// Register mounts the full route table. The metrics middleware sits
// before the error middleware so it observes the status code that is
// actually sent.
func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(r.deps.Logger).Middleware())
	app.Use(middleware.NewMetricsMiddleware().Middleware())
	app.Use(middleware.NewErrorMiddleware(r.deps.Logger).Middleware())

	handler.NewHealthHandler(r.deps.DB, r.deps.Redis).RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})))

	if r.deps.Hub != nil {
		wsHandler := ws.NewHandler(r.deps.Hub, r.deps.JWT, r.deps.Logger)
		app.Get("/ws/analysis", wsHandler.HandleAnalysisWS)
	}

	if r.deps.Ingest != nil {
		handler.NewScrapeCompletedHandler(r.deps.Config.Ingest, r.deps.Ingest, r.deps.Logger).RegisterRoutes(app)
	}

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.deps)
}

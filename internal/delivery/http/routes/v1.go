package routes

import (
	"career-compass/internal/delivery/http/handler"
	"career-compass/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// RegisterV1 mounts the versioned API. Everything except auth sits
// behind the JWT middleware. The market handler registers before the
// job handler so /jobs/market-analysis is matched ahead of /jobs/:id.
func RegisterV1(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	authGroup := r.Group("/auth")
	handler.NewAuthHandler(deps.Auth).RegisterRoutes(authGroup)

	protected := r.Group("", middleware.NewAuthMiddleware(deps.JWT).Middleware())

	handler.NewUserHandler(deps.Users).RegisterRoutes(protected)
	handler.NewSkillHandler(deps.Skills).RegisterRoutes(protected)
	handler.NewArtifactHandler(deps.Artifacts).RegisterRoutes(protected)
	handler.NewMarketHandler(deps.Market).RegisterRoutes(protected)
	handler.NewJobHandler(deps.Jobs).RegisterRoutes(protected)
	handler.NewGapHandler(deps.Gap).RegisterRoutes(protected)
	handler.NewAnalysisHandler(deps.Analysis).RegisterRoutes(protected)
	handler.NewCourseHandler(deps.Courses).RegisterRoutes(protected)
	handler.NewGitHubHandler(deps.GitHub).RegisterRoutes(protected)
	handler.NewRoadmapHandler(deps.Roadmaps).RegisterRoutes(protected)
	handler.NewStatusHandler(deps.Status).RegisterRoutes(protected)
}

package app

import (
	"context"
	"log"

	"career-compass/internal/config"
	"career-compass/internal/database"
	dbpostgres "career-compass/internal/database/postgres"
	"career-compass/internal/extract"
	"career-compass/internal/infrastructure/cache"
	"career-compass/internal/infrastructure/github"
	"career-compass/internal/infrastructure/ingest"
	"career-compass/internal/llm"
	"career-compass/internal/pkg/jwt"
	"career-compass/internal/repository"
	"career-compass/internal/usecase"
	ucmarket "career-compass/internal/usecase/market"
	"career-compass/internal/ws"
)

// Container holds every long-lived dependency of the API process, wired
// once at boot. Optional infrastructure (redis, gemini, the collector)
// comes up in degraded mode instead of failing construction.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	LLM   *llm.Gemini
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

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	gemini, err := llm.NewGemini(ctx, cfg.LLM)
	if err != nil {
		_ = redisCache.Close()
		_ = db.Close()
		return nil, err
	}

	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	ghClient := github.NewClient(cfg.GitHub, logger)
	collector := ingest.NewTriggerClient(cfg.Ingest, logger)
	hub := ws.NewHub(logger)

	users := repository.NewPostgresUserRepository(db)
	skills := repository.NewPostgresUserSkillRepository(db)
	artifacts := repository.NewPostgresArtifactRepository(db)
	markets := repository.NewPostgresMarketRepository(db)
	postings := repository.NewPostgresPostingRepository(db)
	reports := repository.NewPostgresGapReportRepository(db)
	catalog := repository.NewPostgresCourseCatalogRepository(db)
	roadmaps := repository.NewPostgresRoadmapRepository(db)

	extractor := extract.NewExtractor()
	freshness := ucmarket.NewFreshnessService(markets, collector, redisCache, logger, cfg.Ingest.MarketMaxAge)

	authUC := usecase.NewAuthUsecase(users, jwtSvc)
	userUC := usecase.NewUserUsecase(users, artifacts, reports, redisCache)
	artifactUC := usecase.NewArtifactUsecase(artifacts)
	skillUC := usecase.NewSkillUsecase(users, skills, artifacts, extractor, gemini, redisCache)
	marketUC := usecase.NewMarketUsecase(markets, postings, extractor, gemini, collector, freshness, redisCache)
	jobUC := usecase.NewJobUsecase(postings, extractor, redisCache)
	gapUC := usecase.NewGapUsecase(users, skills, reports, marketUC, redisCache, cfg.Gap.CoveredThreshold)
	courseUC := usecase.NewCourseUsecase(gapUC, catalog, redisCache)
	githubUC := usecase.NewGitHubUsecase(ghClient, skills, extractor, gemini, redisCache)
	roadmapUC := usecase.NewRoadmapUsecase(roadmaps, skills)
	analysisUC := usecase.NewAnalysisUsecase(users, skillUC, githubUC, marketUC, gapUC, courseUC, roadmapUC, redisCache, ws.Notifier{})
	ingestUC := usecase.NewIngestUsecase(postings, redisCache)
	statusUC := usecase.NewStatusUsecase(postings, markets, db, redisCache)

	return &Container{
		Config: cfg,
		Logger: logger,

		DB:    db,
		Cache: redisCache,
		LLM:   gemini,
		JWT:   jwtSvc,
		Hub:   hub,

		Auth:      authUC,
		Users:     userUC,
		Artifacts: artifactUC,
		Skills:    skillUC,
		Market:    marketUC,
		Jobs:      jobUC,
		Gap:       gapUC,
		Courses:   courseUC,
		GitHub:    githubUC,
		Roadmaps:  roadmapUC,
		Analysis:  analysisUC,
		Ingest:    ingestUC,
		Status:    statusUC,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	if c.LLM != nil {
		_ = c.LLM.Close()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

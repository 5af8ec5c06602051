package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/github"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/service"
	"app/internal/viewcache"
)

// New wires the full application: store handle, GitHub client, view cache,
// repositories, services and handlers. The Mongo handle is returned so the
// caller can disconnect on shutdown; the actual connection is established
// lazily on first use and reused afterwards.
func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *repository.Mongo, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("Router initialized")

	// 1. Store handle (lazy connect, shared across requests)
	store := repository.NewMongo(cfg.MongoURI, cfg.MongoDatabase)

	// 2. GitHub client and revalidating activity service
	ghClient := github.NewClient(
		github.DefaultBaseURL,
		cfg.GitHubUsername,
		cfg.GitHubToken,
		time.Duration(cfg.GitHubTimeoutSec)*time.Second,
		logger,
	)
	githubSvc := service.NewGithubService(ghClient, time.Duration(cfg.GitHubCacheTTLSec)*time.Second, logger)

	// 3. View cache for rendered course views
	viewCache := viewcache.NewMemory()

	// 4. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 5. Initialize repositories & services & handlers
	courseRepo := repository.NewCourseRepo(store)
	studyLogRepo := repository.NewStudyLogRepository(store)
	memoRepo := repository.NewMemoRepository(store)

	courseSvc := service.NewCourseService(courseRepo, viewCache)
	studyLogSvc := service.NewStudyLogService(studyLogRepo)
	memoSvc := service.NewMemoService(memoRepo)
	dashboardSvc := service.NewDashboardService(courseRepo, studyLogRepo, memoSvc, githubSvc)

	courseHandler := handler.NewCourseHandler(courseSvc, validate, logger)
	studyLogHandler := handler.NewStudyLogHandler(studyLogSvc, validate, logger)
	memoHandler := handler.NewMemoHandler(memoSvc, validate, logger)
	githubHandler := handler.NewGithubHandler(githubSvc, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, logger)

	// 6. Initialize middleware
	authMw := middleware.AuthMiddleware(cfg.JWTSecret, logger)

	// 7. Create ServeMux router and mount routes
	mux := http.NewServeMux()
	courseHandler.RegisterRoutes(mux, authMw)
	studyLogHandler.RegisterRoutes(mux, authMw)
	memoHandler.RegisterRoutes(mux, authMw)
	githubHandler.RegisterRoutes(mux)
	dashboardHandler.RegisterRoutes(mux, authMw)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// 8. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger, c.Handler(mux)), store, nil
}

package wire

import (
	"movie-review/internal/adaptor"
	"movie-review/internal/data/repository"
	"movie-review/internal/sentiment"
	"movie-review/internal/usecase"
	"movie-review/pkg/middleware"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring builds services and handlers and registers the routes
func Wiring(repo *repository.Repository, annotator sentiment.Annotator, config *utils.Config, logger *zap.Logger) *App {
	// Initialize services
	service := usecase.NewService(repo, annotator, logger)

	// Initialize handlers
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.HTTP.CORSAllowedOrigins))
	r.Use(middleware.Metrics())

	// Public routes
	r.Get("/", handler.Home.Index)
	r.Get("/health", handler.Home.Health)
	r.Handle("/metrics", promhttp.Handler())

	// API routes, rate limited; health checks and scrapes are not
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(config.HTTP.RateLimitRequests, config.HTTP.RateLimitWindow))

		wireMovie(r, handler.Movie)
		wireReview(r, handler.Review)
	})

	return r
}

package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"participation-service/internal/handler"
	"participation-service/internal/metrics"
	"participation-service/internal/middleware"
	"participation-service/internal/repository"
	"participation-service/internal/service"
)

// Config holds router configuration
type Config struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger *zap.Logger

	// Metrics and Gatherer default to the prometheus default registry
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	JWTSecret      string
	TokenValidator middleware.TokenValidator
	BasePath       string
	AllowedOrigins []string

	Schedule     service.ScheduleConfig
	ViewCacheTTL time.Duration
	Clock        service.Clock
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewWithLogger(cfg.Logger)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	metricsHandler := gin.WrapH(promhttp.Handler())
	if cfg.Gatherer != nil {
		metricsHandler = gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// Repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	courseRepo := repository.NewCourseRepository(cfg.DB)
	sessionRepo := repository.NewSessionRepository(cfg.DB)
	participationRepo := repository.NewParticipationRepository(cfg.DB)

	// Services
	viewCache := service.NewNoopViewCache()
	if cfg.Redis != nil {
		viewCache = service.NewRedisViewCache(cfg.Redis, cfg.ViewCacheTTL, cfg.Metrics, cfg.Logger)
	}
	authGateway := service.NewAuthGateway(userRepo, cfg.Logger)
	participationService := service.NewParticipationService(participationRepo, sessionRepo, authGateway, viewCache, cfg.Metrics, cfg.Clock, cfg.Logger)
	scheduleService := service.NewScheduleService(sessionRepo, authGateway, cfg.Schedule, cfg.Clock, cfg.Logger)
	statsService := service.NewStatsService(courseRepo, participationRepo, authGateway, viewCache, cfg.Clock, cfg.Logger)
	courseService := service.NewCourseService(courseRepo, cfg.Logger)

	// Handlers
	participationHandler := handler.NewParticipationHandler(participationService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	statsHandler := handler.NewStatsHandler(statsService)
	courseHandler := handler.NewCourseHandler(courseService)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)

	// Probes and metrics are reachable both at the root and under the base path
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", metricsHandler)

	api := r.Group(cfg.BasePath)
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)
		api.GET("/metrics", metricsHandler)
	}
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	var authMiddleware gin.HandlerFunc
	if cfg.TokenValidator != nil {
		authMiddleware = middleware.AuthWithValidator(cfg.TokenValidator)
	} else {
		authMiddleware = middleware.Auth(cfg.JWTSecret)
	}

	protected := api.Group("")
	protected.Use(authMiddleware)
	{
		sessions := protected.Group("/sessions")
		{
			sessions.GET("/today", scheduleHandler.GetTodaysAgenda)
			sessions.GET("/week", scheduleHandler.GetWeek)
			sessions.GET("/history", scheduleHandler.GetHistoryPage)
			sessions.GET("/:sessionId/participation", participationHandler.GetSessionParticipation)
		}

		participations := protected.Group("/participations")
		{
			participations.POST("", participationHandler.RecordParticipation)
			participations.PUT("/:participationId", participationHandler.UpdateParticipation)
			participations.DELETE("/:participationId", participationHandler.DeleteParticipation)
		}

		stats := protected.Group("/stats")
		{
			stats.GET("", statsHandler.GetUserStatistics)
			stats.GET("/tracking", statsHandler.GetCourseTracking)
		}

		protected.GET("/courses", courseHandler.ListCourses)
	}

	return r
}

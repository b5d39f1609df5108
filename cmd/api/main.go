package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	gormlogger "gorm.io/gorm/logger"

	httphandlers "github.com/rafabene/backoffice/internal/handlers/http"
	"github.com/rafabene/backoffice/internal/handlers/middleware"
	"github.com/rafabene/backoffice/internal/infrastructure/cache"
	"github.com/rafabene/backoffice/internal/infrastructure/config"
	"github.com/rafabene/backoffice/internal/infrastructure/i18n"
	"github.com/rafabene/backoffice/internal/infrastructure/logging"
	"github.com/rafabene/backoffice/internal/infrastructure/mail"
	"github.com/rafabene/backoffice/internal/infrastructure/metrics"
	"github.com/rafabene/backoffice/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/backoffice/internal/infrastructure/realtime"
	"github.com/rafabene/backoffice/internal/infrastructure/security"
	"github.com/rafabene/backoffice/internal/services"
)

// @title           Backoffice API
// @version         1.0
// @description     Admin API for users, blog posts and the audit log.
// @BasePath        /api/v1
func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("starting backoffice",
		"env", cfg.Env,
		"version", "dev",
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Conectar ao banco de dados
	var dbOpts []postgres.ConnectorOption
	if cfg.Env != "production" {
		dbOpts = append(dbOpts, postgres.WithLogLevel(gormlogger.Info))
	}
	connector := postgres.NewConnector(&cfg.Database, logger, dbOpts...)
	db, err := connector.DB(ctx)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewEmbeddedService("en")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	blogRepo := postgres.NewBlogRepository(db)
	activityRepo := postgres.NewActivityRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Segurança
	tokens, err := security.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiry)
	if err != nil {
		logger.Error("failed to initialize token service", "error", err)
		log.Fatal(err)
	}
	credentials := security.NewCredentialService(cfg.Security.BcryptCost)

	// Métricas e feed em tempo real
	appMetrics := metrics.New()
	hub := realtime.NewHub(logger, cfg.CORS.Origins(), appMetrics.SetStreamClients)
	go hub.Run(ctx)

	// Rate limit: Redis quando configurado, memória caso contrário
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			log.Fatal(err)
		}
		defer redisClient.Close()
	}
	limitStore, err := middleware.NewRateLimitStore(redisClient)
	if err != nil {
		logger.Error("failed to initialize rate limit store", "error", err)
		log.Fatal(err)
	}
	authLimiter, err := middleware.RateLimit(limitStore, cfg.RateLimit.Auth, logger)
	if err != nil {
		logger.Error("failed to initialize rate limiter", "error", err)
		log.Fatal(err)
	}

	mailer := mail.New(cfg.Mail, logger)

	// Inicializar services
	recorder := services.NewActivityRecorder(activityRepo, hub, appMetrics, logger)
	guard := services.NewAuthorizationGuard(tokens, userRepo, logger)
	authService := services.NewAuthService(userRepo, credentials, tokens, logger)
	userService := services.NewUserService(userRepo, credentials, recorder, logger)
	blogService := services.NewBlogService(blogRepo, services.NewSlugAllocator(blogRepo), recorder, logger)
	activityService := services.NewActivityService(activityRepo, userRepo, logger)
	resetService := services.NewPasswordResetService(userRepo, uow, credentials, mailer, appMetrics, cfg.Server.AppURL, logger)
	dashboardService := services.NewDashboardService(userService, blogService, activityService)

	// Middlewares de sessão
	cookies := middleware.NewCookieHelper(cfg.Cookie)
	authMiddleware := middleware.NewAuthMiddleware(guard, cookies)
	gate, err := middleware.NewSessionGate(middleware.DefaultGateRules(), tokens, cookies, logger)
	if err != nil {
		logger.Error("failed to initialize session gate", "error", err)
		log.Fatal(err)
	}

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httphandlers.SetupRouter(httphandlers.RouterConfig{
		BaseURL:         cfg.Server.BaseURL,
		AllowedOrigins:  cfg.CORS.Origins(),
		SwaggerEnabled:  cfg.Swagger.Enabled,
		I18n:            i18nService,
		Auth:            authMiddleware,
		Gate:            gate,
		AuthLimiter:     authLimiter,
		Metrics:         appMetrics,
		MetricsView:     appMetrics.Handler(),
		AuthHandler:     httphandlers.NewAuthHandler(authService, resetService, cookies, logger),
		UserHandler:     httphandlers.NewUserHandler(userService, logger),
		BlogHandler:     httphandlers.NewBlogHandler(blogService, logger),
		ActivityHandler: httphandlers.NewActivityHandler(activityService, hub, logger),
		PageHandler:     httphandlers.NewPageHandler(dashboardService, blogService, logger),
		HealthHandler:   httphandlers.NewHealthHandler(connector, userService, cfg.Env, logger),
	})

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	hub.Stop()
	if err := connector.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}

	logger.Info("server exited")
}

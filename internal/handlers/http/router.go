package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rafabene/backoffice/docs"
	"github.com/rafabene/backoffice/internal/handlers/dto"
	"github.com/rafabene/backoffice/internal/handlers/middleware"
	"github.com/rafabene/backoffice/internal/infrastructure/i18n"
)

// RouterConfig agrupa handlers e middlewares montados no bootstrap
type RouterConfig struct {
	BaseURL        string
	AllowedOrigins []string
	SwaggerEnabled bool

	I18n        *i18n.Service
	Auth        *middleware.AuthMiddleware
	Gate        *middleware.SessionGate
	AuthLimiter gin.HandlerFunc
	Metrics     middleware.RequestObserver
	MetricsView http.Handler

	AuthHandler     *AuthHandler
	UserHandler     *UserHandler
	BlogHandler     *BlogHandler
	ActivityHandler *ActivityHandler
	PageHandler     *PageHandler
	HealthHandler   *HealthHandler
}

// SetupRouter monta o engine gin com todas as rotas
func SetupRouter(cfg RouterConfig) *gin.Engine {
	dto.RegisterValidation()

	router := gin.Default()

	// Base URL usada nos tipos RFC 7807
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.BaseURL)
		c.Next()
	})
	if cfg.Metrics != nil {
		router.Use(middleware.Metrics(cfg.Metrics))
	}
	router.Use(middleware.NewI18nMiddleware(cfg.I18n).DetectLanguage())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/health", cfg.HealthHandler.Health)
	if cfg.MetricsView != nil {
		router.GET("/metrics", gin.WrapH(cfg.MetricsView))
	}

	limited := cfg.AuthLimiter
	if limited == nil {
		limited = func(c *gin.Context) { c.Next() }
	}
	admin := cfg.Auth.RequireAdmin()
	session := cfg.Auth.RequireSession()

	// Páginas do painel: o gate redireciona antes de qualquer busca de dados
	pages := router.Group("", cfg.Gate.Handler())
	{
		pages.GET("/dashboard", session, cfg.PageHandler.Dashboard)
		pages.GET("/dashboard/blogs", admin, cfg.PageHandler.DashboardBlogs)
		pages.GET("/profile", session, cfg.PageHandler.Profile)
	}

	v1 := router.Group("/api/v1")
	{
		v1.POST("/register", limited, cfg.AuthHandler.Register)
		v1.POST("/login", limited, cfg.AuthHandler.Login)
		v1.POST("/logout", cfg.AuthHandler.Logout)
		v1.GET("/me", cfg.AuthHandler.Me)
		v1.POST("/forgot-password", limited, cfg.AuthHandler.ForgotPassword)
		v1.POST("/reset-password", limited, cfg.AuthHandler.ResetPassword)

		// Contagem pública, usada pela landing page
		v1.GET("/users/count", cfg.UserHandler.CountUsers)

		users := v1.Group("/users", admin)
		{
			users.GET("", cfg.UserHandler.ListUsers)
			users.POST("", cfg.UserHandler.CreateUser)
			users.POST("/bulk-delete", cfg.UserHandler.BulkDeleteUsers)
			users.GET("/:id", cfg.UserHandler.GetUser)
			users.PUT("/:id", cfg.UserHandler.UpdateUser)
			users.DELETE("/:id", cfg.UserHandler.DeleteUser)
		}

		blogs := v1.Group("/blogs", admin)
		{
			blogs.GET("", cfg.BlogHandler.ListBlogs)
			blogs.POST("", cfg.BlogHandler.CreateBlog)
			blogs.GET("/count", cfg.BlogHandler.CountBlogs)
			blogs.POST("/bulk-delete", cfg.BlogHandler.BulkDeleteBlogs)
			blogs.GET("/:id", cfg.BlogHandler.GetBlog)
			blogs.PUT("/:id", cfg.BlogHandler.UpdateBlog)
			blogs.DELETE("/:id", cfg.BlogHandler.DeleteBlog)
		}

		activity := v1.Group("/activity", admin)
		{
			activity.GET("", cfg.ActivityHandler.ListActivity)
			activity.GET("/stream", cfg.ActivityHandler.StreamActivity)
		}
	}

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = "/api/v1"
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return router
}

package v1

import (
	"net/http"
	"time"

	"reliableteam-site/config"
	"reliableteam-site/internal/delivery/http/middleware"
	"reliableteam-site/internal/delivery/http/response"
	"reliableteam-site/internal/delivery/http/web"
	"reliableteam-site/internal/domain"
	"reliableteam-site/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	InquiryUC domain.InquiryUsecase
	HealthUC  usecase.HealthUsecase
	Page      *web.Page // landing page; nil serves the API only
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))

	// Swagger UI needs inline scripts, so it sits outside the CSP group
	r.GET("/api/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	secured := r.Group("")
	secured.Use(middleware.SecurityHeadersMiddleware())

	if deps.Page != nil {
		secured.GET("/", deps.Page.Index)
	}

	api := secured.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Staff routes
	staff := api.Group("")
	staff.Use(middleware.StaffAuthMiddleware(cfg.AdminJWTSecret))

	submitLimit := middleware.RateLimitMiddleware(middleware.InquiryRateLimitConfig(cfg.RateLimitInquiryThreshold, window))
	NewInquiryHandler(api, staff, deps.InquiryUC, deps.Page, submitLimit)

	return r
}

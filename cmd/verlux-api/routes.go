package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/verluxstands/verlux-api/internal/handler"
	"github.com/verluxstands/verlux-api/internal/middleware"
	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/pkg/config"
	"github.com/verluxstands/verlux-api/pkg/logger"
	corsmiddleware "github.com/verluxstands/verlux-api/pkg/middleware/cors"
	reqidmiddleware "github.com/verluxstands/verlux-api/pkg/middleware/requestid"
)

func (a *application) router(cfg *config.Config, logr *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(a.metrics))
	r.Use(middleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(a.metrics, a.store)
	seoHandler := handler.NewSEOHandler(a.seo, logr)
	pageHandler := handler.NewPageHandler(a.pages, a.seo)
	builderHandler := handler.NewBuilderHandler(a.builder)
	eventHandler := handler.NewEventHandler(a.events)
	analyticsHandler := handler.NewAnalyticsHandler(a.analytics, handler.AnalyticsHandlerConfig{
		Enabled:        cfg.Analytics.Enabled,
		CountryHeaders: cfg.Analytics.CountryHeaders,
	}, logr)
	authHandler := handler.NewAuthHandler(a.creds, a.sessions)
	totpHandler := handler.NewTOTPHandler(a.totp, a.settings)
	dashboardHandler := handler.NewDashboardHandler(a.dashboard)

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	r.GET("/sitemap.xml", seoHandler.Sitemap)
	r.GET("/", pageHandler.HTML)
	r.GET("/p/*slug", pageHandler.HTML)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAdmin := []gin.HandlerFunc{
		middleware.JWT(a.creds),
		middleware.RequireRoles(models.RoleAdmin, models.RoleEditor),
	}

	// Plain JSON endpoints used by the site itself.
	site := r.Group("/api")
	site.POST("/track", analyticsHandler.Track)
	site.GET("/track", analyticsHandler.Tree)
	site.POST("/totp/verify", totpHandler.Verify)
	site.GET("/totp/settings", append(requireAdmin, totpHandler.Settings)...)
	site.POST("/totp/setup", append(requireAdmin, totpHandler.Setup)...)
	site.POST("/totp/settings", append(requireAdmin,
		middleware.Audit(a.users, logr, "TOTP_SETTINGS", "totp"),
		totpHandler.UpdateSettings)...)

	api := r.Group(cfg.APIPrefix)
	api.GET("/pages/:slug", pageHandler.JSON)
	api.GET("/seo/:slug", seoHandler.Get)
	api.GET("/events", eventHandler.List)
	api.GET("/events/:id", eventHandler.Get)

	auth := api.Group("/auth")
	loginLimit := middleware.RateLimit(cfg.Session.LoginRateLimit)
	auth.POST("/login", loginLimit, authHandler.Login)
	auth.POST("/totp", loginLimit, authHandler.SubmitTOTP)
	auth.POST("/login/cancel", authHandler.CancelLogin)
	auth.GET("/session", authHandler.Session)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", middleware.JWT(a.creds), authHandler.Logout)
	auth.GET("/me", middleware.JWT(a.creds), authHandler.Me)
	auth.POST("/change-password", middleware.JWT(a.creds), authHandler.ChangePassword)

	admin := api.Group("/admin", requireAdmin...)
	admin.GET("/dashboard", dashboardHandler.Overview)
	admin.GET("/analytics", analyticsHandler.Summary)
	admin.GET("/sections", builderHandler.Catalog)

	seo := admin.Group("/seo")
	seo.GET("", seoHandler.List)
	seo.POST("", middleware.Audit(a.users, logr, "SEO_CREATE", "seo_pages"), seoHandler.Create)
	seo.POST("/validate", seoHandler.Validate)
	seo.POST("/seed", middleware.RequireRoles(models.RoleAdmin), middleware.Audit(a.users, logr, "SEO_SEED", "seo_pages"), seoHandler.Seed)
	seo.PUT("/:slug", middleware.Audit(a.users, logr, "SEO_UPDATE", "seo_pages"), seoHandler.Update)
	seo.DELETE("/:slug", middleware.RequireRoles(models.RoleAdmin), middleware.Audit(a.users, logr, "SEO_DELETE", "seo_pages"), seoHandler.Delete)

	pages := admin.Group("/pages")
	pages.GET("", builderHandler.List)
	pages.POST("", middleware.Audit(a.users, logr, "PAGE_CREATE", "page_builder"), builderHandler.Create)
	pages.GET("/:slug", builderHandler.Get)
	pages.PUT("/:slug", middleware.Audit(a.users, logr, "PAGE_SAVE", "page_builder"), builderHandler.Save)
	pages.POST("/:slug/reorder", middleware.Audit(a.users, logr, "PAGE_REORDER", "page_builder"), builderHandler.Reorder)
	pages.POST("/:slug/sections", middleware.Audit(a.users, logr, "SECTION_ADD", "page_builder"), builderHandler.AddSection)
	pages.DELETE("/:slug/sections/:sectionId", middleware.Audit(a.users, logr, "SECTION_REMOVE", "page_builder"), builderHandler.RemoveSection)
	pages.DELETE("/:slug", middleware.RequireRoles(models.RoleAdmin), middleware.Audit(a.users, logr, "PAGE_DELETE", "page_builder"), builderHandler.Delete)

	events := admin.Group("/events")
	events.GET("", eventHandler.List)
	events.GET("/export", eventHandler.Export)
	events.POST("", middleware.Audit(a.users, logr, "EVENT_CREATE", "events"), eventHandler.Create)
	events.PUT("/:id", middleware.Audit(a.users, logr, "EVENT_UPDATE", "events"), eventHandler.Update)
	events.POST("/:id/cancel", middleware.Audit(a.users, logr, "EVENT_CANCEL", "events"), eventHandler.Cancel)
	events.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), middleware.Audit(a.users, logr, "EVENT_DELETE", "events"), eventHandler.Delete)

	if cfg.Metrics.Enabled {
		admin.GET("/metrics", metricsHandler.Snapshot)
	}
	return r
}

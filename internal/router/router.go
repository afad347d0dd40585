// Package router maps the HTTP surface onto handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/cache2k25/registration-backend/internal/config"
	"github.com/cache2k25/registration-backend/internal/handler"
	"github.com/cache2k25/registration-backend/internal/middleware"
)

// Register wires every route of the service:
//
//	GET   /healthz                          – liveness probe
//	POST  /api/admin/login                  – admin login (public)
//	POST  /api/registrations                – submit registration (public, rate-limited)
//	PATCH /api/registrations/:id/verify     – set verification flag (admin)
//	GET   /api/registrations/admin          – full listing (admin, cached)
//	GET   /api/registrations/ticket/:id     – PDF ticket download (admin)
//	GET   /api/registrations/admin/export   – spreadsheet download (admin)
func Register(e *echo.Echo, cfg config.Config, reg *handler.RegistrationHandler, auth *handler.AuthHandler, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	e.POST("/api/admin/login", auth.Login)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	e.POST("/api/registrations", reg.Submit, limiter)

	admin := e.Group("/api/registrations")
	admin.Use(middleware.JWTAuth(cfg.JWTSecret))
	admin.PATCH("/:id/verify", reg.SetVerified)
	admin.GET("/ticket/:id", reg.Ticket)
	admin.GET("/admin/export", reg.Export)

	admin.GET("/admin", reg.ListAll, reg.Cache.Middleware())
}

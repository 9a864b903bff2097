package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/marquee/internal/config"
	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api"
	authapi "github.com/Nixie-Tech-LLC/marquee/internal/http/api/admin/auth/endpoints"
	adminapi "github.com/Nixie-Tech-LLC/marquee/internal/http/api/admin/control/endpoints"
	clientapi "github.com/Nixie-Tech-LLC/marquee/internal/http/api/tv/endpoints"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/marquee/internal/metrics"
	"github.com/Nixie-Tech-LLC/marquee/internal/service"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Store, schedules *service.ScheduleService) {
	r.Use(middleware.RequestID(), middleware.AccessLog())
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
			"If-None-Match",
			middleware.RequestIDHeader,
		},
		ExposeHeaders: []string{
			"Content-Length",
			"ETag",
			middleware.RequestIDHeader,
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		authapi.AuthPublicModule(cfg.Server.JWTSecret, cfg.Server.TokenTTL(), store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: cfg.Server.JWTSecret,
		Users:     store,
	},
		// control modules
		adminapi.ScheduleModule(schedules),
		adminapi.PlaylistModule(store, schedules),
		// session endpoints that require auth
		authapi.AuthSessionModule(cfg.Server.JWTSecret, cfg.Server.TokenTTL(), store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/tv",
	},
		clientapi.PlaylistModule(schedules),
	)

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}
}

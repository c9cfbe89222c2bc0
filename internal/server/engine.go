package server

import (
	"log/slog"

	"github.com/gatherly/event-manager/internal/middleware"
	"github.com/gatherly/event-manager/pkg/event"
	"github.com/gatherly/event-manager/pkg/health"
	"github.com/gatherly/event-manager/pkg/realtime"
	"github.com/gatherly/event-manager/pkg/task"
	"github.com/gatherly/event-manager/pkg/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func GetEngine(
	logger *slog.Logger,
	basePath string,
	authenticationMiddleware middleware.AuthenticationMiddleware,
	authorizationMiddleware middleware.AuthorizationMiddleware,
	userHandler user.Handler,
	eventHandler event.Handler,
	taskHandler task.Handler,
	realtimeHandler realtime.Handler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.CorrelationID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.ErrorHandler())

	router := r.Group(basePath)

	router.GET("/health", health.Health)

	user.Routes(router, authenticationMiddleware, authorizationMiddleware, userHandler)
	event.Routes(router, authenticationMiddleware, eventHandler)
	task.Routes(router, authenticationMiddleware, taskHandler)
	realtime.Routes(router, authenticationMiddleware, realtimeHandler)

	return r
}

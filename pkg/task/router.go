package task

import (
	"github.com/gatherly/event-manager/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)

	tokenAuthenticationRouter.POST("/tasks", handler.Create)
	tokenAuthenticationRouter.GET("/tasks/event/:eventId", handler.FindAllByEvent)
	tokenAuthenticationRouter.PUT("/tasks/:id", handler.UpdateStatus)
	tokenAuthenticationRouter.GET("/tasks/progress/:eventId", handler.Progress)
}

package event

import (
	"github.com/gatherly/event-manager/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)

	tokenAuthenticationRouter.POST("/events", handler.Create)
	tokenAuthenticationRouter.GET("/events", handler.FindAll)
	tokenAuthenticationRouter.GET("/events/:id", handler.FindById)
	tokenAuthenticationRouter.PUT("/events/:id", handler.Update)
	tokenAuthenticationRouter.DELETE("/events/:id", handler.Delete)
	tokenAuthenticationRouter.POST("/events/:id/attendees", handler.AddAttendee)
	tokenAuthenticationRouter.DELETE("/events/:id/attendees", handler.RemoveAttendee)
}

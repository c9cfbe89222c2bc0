package user

import (
	"github.com/gatherly/event-manager/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, authorizationMiddleware middleware.AuthorizationMiddleware, handler Handler) {
	r.POST("/users", handler.SignUp)
	r.POST("/refresh", handler.RefreshToken)

	basicAuthenticationRouter := r.Group("")
	basicAuthenticationRouter.Use(authenticationMiddleware.BasicAuthentication)
	basicAuthenticationRouter.POST("/tokens", handler.SignIn)

	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.GET("/me", handler.Me)
	tokenAuthenticationRouter.PUT("/profile", handler.UpdateProfile)
	tokenAuthenticationRouter.DELETE("/tokens", handler.SignOut)

	administratorRouter := tokenAuthenticationRouter.Group("")
	administratorRouter.Use(authorizationMiddleware.RequireAdministrator)
	administratorRouter.GET("/users", handler.FindAll)
	administratorRouter.GET("/users/:id", handler.FindById)
}

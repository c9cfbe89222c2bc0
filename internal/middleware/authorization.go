package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gatherly/event-manager/internal/errdef"
	"github.com/gatherly/event-manager/internal/handler"
	"github.com/gatherly/event-manager/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewAuthorization(logger *slog.Logger, userService userService) AuthorizationMiddleware {
	return AuthorizationMiddleware{
		logger:      logger,
		userService: userService,
	}
}

type AuthorizationMiddleware struct {
	logger      *slog.Logger
	userService userService
}

type userService interface {
	FindById(id uint) (*model.User, error)
}

// RequireAdministrator guards routes only administrators may call. The role is
// re-read from storage rather than trusted from the token so a demoted user is
// locked out as soon as the change is persisted.
func (m AuthorizationMiddleware) RequireAdministrator(c *gin.Context) {
	u, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.AbortWithError(http.StatusUnauthorized, err)
		return
	}

	user, err := m.userService.FindById(u.ID)
	if err != nil {
		if errdef.IsNotFound(err) {
			_ = c.AbortWithError(http.StatusUnauthorized, err)
		} else {
			_ = c.Error(err)
		}
		return
	}

	if !user.IsAdministrator() {
		m.logger.ErrorContext(c.Request.Context(), "User tried to access administrator restricted endpoint", "user", u.ID)
		_ = c.AbortWithError(http.StatusUnauthorized, errors.New("administrator access denied"))
		return
	}

	// Extra precaution to ensure that no errors has occurred, and it's safe to call c.Next()
	if len(c.Errors.Errors()) > 0 {
		c.Abort()
	} else {
		c.Next()
	}
}

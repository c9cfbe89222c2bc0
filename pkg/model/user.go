package model

import (
	"context"
	"time"
)

const (
	RoleUser          = "user"
	RoleAdministrator = "admin"
)

// User domain object defining a user
// swagger:model
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `json:"name"`
	Email     string    `gorm:"index;unique" json:"email"`
	Password  string    `json:"-"`
	Role      string    `gorm:"default:user" json:"role"`
}

func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}

type ctxKey int

var userKey ctxKey

// NewContextWithUser returns a new [context.Context] that carries the authenticated user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the authenticated user stored in ctx, if any. It had to have been
// set by the authentication middleware before.
func GetUserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey).(*User)
	return user, ok
}

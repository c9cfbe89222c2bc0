package user

import (
	"fmt"

	"github.com/gatherly/event-manager/pkg/model"
)

type adminUserService interface {
	FindOrCreate(name, email, password, role string) (*model.User, error)
	Save(user *model.User) error
}

// CreateAdminUser seeds the administrator account on startup. Signing up
// through the API always yields a regular user, this is the only path that
// grants the admin role.
func CreateAdminUser(name, email, password string, userService adminUserService) error {
	u, err := userService.FindOrCreate(name, email, password, model.RoleAdministrator)
	if err != nil {
		return fmt.Errorf("error creating admin user: %v", err)
	}

	if u.Role != model.RoleAdministrator {
		u.Role = model.RoleAdministrator
		if err := userService.Save(u); err != nil {
			return fmt.Errorf("error saving admin user: %v", err)
		}
	}

	return nil
}

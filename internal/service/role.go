package service

import (
	"fmt"

	"github.com/dtroode/contacts-server/internal/model"
)

// RequireRole returns user when its role satisfies required. Admins satisfy
// every role; users satisfy only RoleUser.
func RequireRole(user model.User, required model.Role) (model.User, error) {
	switch required {
	case model.RoleUser:
		switch user.Role {
		case model.RoleUser, model.RoleAdmin:
			return user, nil
		}
	case model.RoleAdmin:
		switch user.Role {
		case model.RoleAdmin:
			return user, nil
		case model.RoleUser:
		}
	}

	return model.User{}, fmt.Errorf("%w: role %q does not satisfy %q", model.ErrForbidden, user.Role, required)
}

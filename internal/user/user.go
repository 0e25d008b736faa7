package user

import (
	userDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/user"
)

type User = userDatamodel.User

func IsApproved(u *User) bool {
	return u != nil && u.Status == userDatamodel.StatusApproved
}

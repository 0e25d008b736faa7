package user

import (
	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/user"
	"github.com/frahmantamala/office-management/internal/store"
)

type CreateUserRequest struct {
	EmailAddress string `json:"emailAddress"`
	FullName     string `json:"fullName"`
	UserRole     string `json:"userRole"`
	Status       string `json:"status"`
	Phone        string `json:"phone"`
	PhotoURL     string `json:"photoURL"`
}

func (r *CreateUserRequest) Validate() error {
	v := validation.NewValidator()
	v.Field("emailAddress", r.EmailAddress).Required()
	if err := v.ValidateAs(internal.ErrEmailAddressRequired); err != nil {
		return err
	}
	return nil
}

// ToDataModel fills the onboarding defaults: a new user waits for approval.
func (r *CreateUserRequest) ToDataModel() *User {
	u := &User{
		EmailAddress: r.EmailAddress,
		FullName:     r.FullName,
		UserRole:     r.UserRole,
		Status:       r.Status,
		Phone:        r.Phone,
		PhotoURL:     r.PhotoURL,
	}
	if u.Status == "" {
		u.Status = userDatamodel.StatusPending
	}
	if u.UserRole == "" {
		u.UserRole = userDatamodel.RoleUser
	}
	return u
}

// UpdateUserRequest carries only the fields present in the body.
type UpdateUserRequest struct {
	EmailAddress *string `json:"emailAddress"`
	FullName     *string `json:"fullName"`
	UserRole     *string `json:"userRole"`
	Status       *string `json:"status"`
	Phone        *string `json:"phone"`
	PhotoURL     *string `json:"photoURL"`
}

func (r *UpdateUserRequest) Fields() store.Fields {
	set := store.Fields{}
	put := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	put("email_address", r.EmailAddress)
	put("full_name", r.FullName)
	put("user_role", r.UserRole)
	put("status", r.Status)
	put("phone", r.Phone)
	put("photo_url", r.PhotoURL)
	return set
}

func (r *UpdateUserRequest) ToDataModel() *User {
	deref := func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	}
	return &User{
		EmailAddress: deref(r.EmailAddress),
		FullName:     deref(r.FullName),
		UserRole:     deref(r.UserRole),
		Status:       deref(r.Status),
		Phone:        deref(r.Phone),
		PhotoURL:     deref(r.PhotoURL),
	}
}

type ApproveRequest struct {
	UserRole string `json:"userRole"`
}

type UpsertResult struct {
	Acknowledged  bool   `json:"acknowledged"`
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedCount int64  `json:"upsertedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

package user

import "github.com/frahmantamala/office-management/internal/store"

const Collection = "users"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"

	RoleUser = "user"
)

var Indexes = []store.Index{
	{Keys: []string{"email_address"}, Unique: true},
}

type User struct {
	store.Model  `bson:",inline"`
	EmailAddress string `json:"emailAddress" bson:"email_address" gorm:"column:email_address;size:255"`
	FullName     string `json:"fullName" bson:"full_name" gorm:"column:full_name"`
	UserRole     string `json:"userRole" bson:"user_role" gorm:"column:user_role"`
	Status       string `json:"status" bson:"status" gorm:"column:status"`
	Phone        string `json:"phone,omitempty" bson:"phone,omitempty" gorm:"column:phone"`
	PhotoURL     string `json:"photoURL,omitempty" bson:"photo_url,omitempty" gorm:"column:photo_url"`
}

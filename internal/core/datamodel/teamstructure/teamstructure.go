package teamstructure

import "github.com/frahmantamala/office-management/internal/store"

const Collection = "team_structure"

const RoleASM = "asm"

var Indexes = []store.Index{
	{Keys: []string{"user_email"}, Unique: true},
	{Keys: []string{"manager_email"}},
}

// Member places one user under a manager.
type Member struct {
	store.Model  `bson:",inline"`
	UserEmail    string `json:"userEmail" bson:"user_email" gorm:"column:user_email;size:255"`
	UserName     string `json:"userName" bson:"user_name" gorm:"column:user_name"`
	UserRole     string `json:"userRole" bson:"user_role" gorm:"column:user_role"`
	ManagerEmail string `json:"managerEmail" bson:"manager_email" gorm:"column:manager_email;size:255"`
	ManagerName  string `json:"managerName" bson:"manager_name" gorm:"column:manager_name"`
	ManagerRole  string `json:"managerRole" bson:"manager_role" gorm:"column:manager_role"`
}

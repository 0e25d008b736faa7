package leave

import "github.com/frahmantamala/office-management/internal/store"

const Collection = "leaves"

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

var Indexes = []store.Index{
	{Keys: []string{"email"}},
	{Keys: []string{"status"}},
}

type Leave struct {
	store.Model  `bson:",inline"`
	Email        string  `json:"email" bson:"email" gorm:"column:email;size:255"`
	Name         string  `json:"name" bson:"name" gorm:"column:name"`
	LeaveType    string  `json:"leaveType" bson:"leave_type" gorm:"column:leave_type"`
	StartDate    string  `json:"startDate" bson:"start_date" gorm:"column:start_date"`
	EndDate      string  `json:"endDate" bson:"end_date" gorm:"column:end_date"`
	Days         float64 `json:"days" bson:"days" gorm:"column:days"`
	Reason       string  `json:"reason" bson:"reason" gorm:"column:reason"`
	ManagerEmail string  `json:"managerEmail" bson:"manager_email" gorm:"column:manager_email"`
	Status       string  `json:"status" bson:"status" gorm:"column:status"`
}

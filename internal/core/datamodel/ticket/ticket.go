package ticket

import "github.com/frahmantamala/office-management/internal/store"

const Collection = "tickets"

var Indexes = []store.Index{
	{Keys: []string{"raised_by_email"}},
	{Keys: []string{"status"}},
}

type Ticket struct {
	store.Model   `bson:",inline"`
	Subject       string `json:"subject" bson:"subject" gorm:"column:subject"`
	Description   string `json:"description" bson:"description" gorm:"column:description"`
	Category      string `json:"category" bson:"category" gorm:"column:category"`
	Priority      string `json:"priority" bson:"priority" gorm:"column:priority"`
	Status        string `json:"status" bson:"status" gorm:"column:status"`
	RaisedBy      string `json:"raisedBy" bson:"raised_by" gorm:"column:raised_by"`
	RaisedByEmail string `json:"raisedByEmail" bson:"raised_by_email" gorm:"column:raised_by_email;size:255"`
	AssignedTo    string `json:"assignedTo" bson:"assigned_to" gorm:"column:assigned_to"`
	Resolution    string `json:"resolution" bson:"resolution" gorm:"column:resolution"`
}

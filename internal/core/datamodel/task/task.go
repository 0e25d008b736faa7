package task

import "github.com/frahmantamala/office-management/internal/store"

const (
	CollectionTasks            = "tasks"
	CollectionAgentBranchTasks = "agent_branch_tasks"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var Indexes = []store.Index{
	{Keys: []string{"assignee_id"}},
	{Keys: []string{"assigner_id"}},
	{Keys: []string{"status"}},
}

// Task is stored in both the tasks and agent_branch_tasks collections.
type Task struct {
	store.Model  `bson:",inline"`
	Title        string `json:"title" bson:"title" gorm:"column:title"`
	Description  string `json:"description" bson:"description" gorm:"column:description"`
	AssigneeID   string `json:"assigneeId" bson:"assignee_id" gorm:"column:assignee_id;size:255"`
	Assignee     string `json:"assignee" bson:"assignee" gorm:"column:assignee"`
	AssigneeRole string `json:"assigneeRole" bson:"assignee_role" gorm:"column:assignee_role"`
	AssignerID   string `json:"assignerId" bson:"assigner_id" gorm:"column:assigner_id;size:255"`
	Assigner     string `json:"assigner" bson:"assigner" gorm:"column:assigner"`
	AssignerRole string `json:"assignerRole" bson:"assigner_role" gorm:"column:assigner_role"`
	DueDate      string `json:"dueDate" bson:"due_date" gorm:"column:due_date"`
	Priority     string `json:"priority" bson:"priority" gorm:"column:priority"`
	Status       string `json:"status" bson:"status" gorm:"column:status"`
}

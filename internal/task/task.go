package task

import (
	"net/url"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/common/validation"
	taskDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/task"
	"github.com/frahmantamala/office-management/internal/crud"
	"github.com/frahmantamala/office-management/internal/store"
)

type Task = taskDatamodel.Task

// Resource describes tasks for the crud layer. Agent-branch tasks share it
// under their own collection.
func Resource(name string) crud.Resource[Task] {
	return crud.Resource[Task]{
		Name:        name,
		Filter:      Filter,
		Prepare:     Prepare,
		StatusField: "status",
		NotFound:    internal.ErrTaskNotFound,
	}
}

// Filter matches assigneeId OR assignerId when both are given, otherwise
// whichever one is present. Results are ordered by status, then due date.
func Filter(params url.Values) *store.Query {
	assignee, assigner := params.Get("assigneeId"), params.Get("assignerId")

	q := store.NewQuery()
	if assignee != "" && assigner != "" {
		q.Or(
			store.NewQuery().Eq("assignee_id", assignee),
			store.NewQuery().Eq("assigner_id", assigner),
		)
	} else {
		q.EqIf("assignee_id", assignee).EqIf("assigner_id", assigner)
	}
	return q.EqIf("status", params.Get("status")).
		Asc("status").
		Asc("due_date")
}

// Prepare requires the assignment fields; a new task is always pending.
func Prepare(t *Task) error {
	v := validation.NewValidator()
	v.Field("title", t.Title).Required()
	v.Field("assigneeId", t.AssigneeID).Required()
	v.Field("assignerId", t.AssignerID).Required()
	v.Field("dueDate", t.DueDate).Required()
	if err := v.ValidateAs(internal.ErrRequiredFields); err != nil {
		return err
	}

	if t.Priority == "" {
		t.Priority = taskDatamodel.PriorityMedium
	}
	t.Status = taskDatamodel.StatusPending
	return nil
}

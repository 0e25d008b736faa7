package ticket

import (
	"net/url"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/common/validation"
	ticketDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/ticket"
	"github.com/frahmantamala/office-management/internal/crud"
	"github.com/frahmantamala/office-management/internal/store"
)

type Ticket = ticketDatamodel.Ticket

const (
	StatusOpen      = "open"
	DefaultPriority = "medium"
)

func Resource() crud.Resource[Ticket] {
	return crud.Resource[Ticket]{
		Name: "tickets",
		Filter: func(params url.Values) *store.Query {
			return store.NewQuery().
				EqIf("status", params.Get("status")).
				EqIf("priority", params.Get("priority")).
				EqIf("raised_by_email", params.Get("raisedByEmail")).
				EqIf("assigned_to", params.Get("assignedTo")).
				Desc("created_at")
		},
		Prepare: func(t *Ticket) error {
			v := validation.NewValidator()
			v.Field("subject", t.Subject).Required()
			v.Field("raisedByEmail", t.RaisedByEmail).Required()
			if err := v.ValidateAs(internal.ErrRequiredFields); err != nil {
				return err
			}
			if t.Status == "" {
				t.Status = StatusOpen
			}
			if t.Priority == "" {
				t.Priority = DefaultPriority
			}
			return nil
		},
		StatusField: "status",
		NotFound:    internal.ErrTicketNotFound,
	}
}

package teamstructure

import (
	teamDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/teamstructure"
	"github.com/frahmantamala/office-management/internal/store"
)

type Member = teamDatamodel.Member

// Manager is who a member reports to. All three fields may be empty.
type Manager struct {
	Email string
	Name  string
	Role  string
}

func (m Manager) fields() store.Fields {
	return store.Fields{
		"manager_email": m.Email,
		"manager_name":  m.Name,
		"manager_role":  m.Role,
	}
}

package leave

import (
	leaveDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/leave"
)

type Leave = leaveDatamodel.Leave

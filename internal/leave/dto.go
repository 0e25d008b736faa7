package leave

import (
	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/common/validation"
	leaveDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/leave"
)

type CreateLeaveRequest struct {
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	LeaveType    string  `json:"leaveType"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Days         float64 `json:"days"`
	Reason       string  `json:"reason"`
	ManagerEmail string  `json:"managerEmail"`
}

func (r *CreateLeaveRequest) Validate() error {
	v := validation.NewValidator()
	v.Field("email", r.Email).Required()
	if err := v.ValidateAs(internal.ErrEmailRequired); err != nil {
		return err
	}
	return nil
}

// ToDataModel always files the request as pending.
func (r *CreateLeaveRequest) ToDataModel() *Leave {
	return &Leave{
		Email:        r.Email,
		Name:         r.Name,
		LeaveType:    r.LeaveType,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Days:         r.Days,
		Reason:       r.Reason,
		ManagerEmail: r.ManagerEmail,
		Status:       leaveDatamodel.StatusPending,
	}
}

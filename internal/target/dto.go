package target

import (
	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/common/lenient"
	"github.com/frahmantamala/office-management/internal/core/common/validation"
	"github.com/frahmantamala/office-management/internal/store"
)

type CreateTargetRequest struct {
	UserEmail    string `json:"userEmail"`
	UserName     string `json:"userName"`
	UserRole     string `json:"userRole"`
	ManagerEmail string `json:"managerEmail"`
	ManagerName  string `json:"managerName"`
	Month        int    `json:"month"`
	Year         int    `json:"year"`
	Goals
	Notes string `json:"notes"`
}

func (r *CreateTargetRequest) UnmarshalJSON(data []byte) error {
	type plain CreateTargetRequest
	return lenient.Unmarshal(data, (*plain)(r))
}

func (r *CreateTargetRequest) Validate() error {
	v := validation.NewValidator()
	v.Field("userEmail", r.UserEmail).Required()
	v.Field("month", r.Month).Required()
	v.Field("year", r.Year).Required()
	if err := v.ValidateAs(internal.ErrRequiredFields); err != nil {
		return err
	}

	v = validation.NewValidator()
	v.Field("month", r.Month).MinInt(1).MaxInt(12)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (r *CreateTargetRequest) ToDataModel() *Target {
	return &Target{
		UserEmail:    r.UserEmail,
		UserName:     r.UserName,
		UserRole:     r.UserRole,
		ManagerEmail: r.ManagerEmail,
		ManagerName:  r.ManagerName,
		Month:        r.Month,
		Year:         r.Year,
		Goals:        r.Goals,
		Notes:        r.Notes,
	}
}

// UpdateTargetRequest replaces all goals; omitted goals become zero.
type UpdateTargetRequest struct {
	Goals
	Notes string `json:"notes"`
}

func (r *UpdateTargetRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateTargetRequest
	return lenient.Unmarshal(data, (*plain)(r))
}

func (r *UpdateTargetRequest) Fields() store.Fields {
	set := goalFields(r.Goals)
	set["notes"] = r.Notes
	return set
}

type Filter struct {
	UserEmail    string
	ManagerEmail string
	Month        string
	Year         string
}

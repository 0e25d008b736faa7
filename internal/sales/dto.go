package sales

import (
	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/common/lenient"
	"github.com/frahmantamala/office-management/internal/core/common/validation"
	"github.com/frahmantamala/office-management/internal/store"
)

// EntryRequest is the body of create and update. Identity fields are ignored
// on update.
type EntryRequest struct {
	Entry
}

// UnmarshalJSON accepts metrics sent as strings; unparsable values become 0.
func (r *EntryRequest) UnmarshalJSON(data []byte) error {
	return lenient.Unmarshal(data, &r.Entry)
}

func (r *EntryRequest) Validate() error {
	v := validation.NewValidator()
	v.Field("userEmail", r.UserEmail).Required()
	v.Field("date", r.Date).Required()
	if err := v.ValidateAs(internal.ErrRequiredFields); err != nil {
		return err
	}

	v = validation.NewValidator()
	v.Field("date", r.Date).DayKey()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ToDataModel drops any client supplied id or timestamps.
func (r *EntryRequest) ToDataModel() *Entry {
	e := r.Entry
	e.Model = store.Model{}
	ApplyDefaults(&e)
	return &e
}

type Filter struct {
	UserEmail string
	UserRole  string
	StartDate string
	EndDate   string
}

type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Message  string       `json:"message"`
	Imported int          `json:"imported"`
	Skipped  []SkippedRow `json:"skipped"`
}

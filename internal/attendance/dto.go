package attendance

import (
	"time"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/common/validation"
	attendanceDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/attendance"
	"github.com/frahmantamala/office-management/internal/store"
)

type CheckInRequest struct {
	UserEmail       string     `json:"userEmail"`
	UserName        string     `json:"userName"`
	UserRole        string     `json:"userRole"`
	CheckInTime     *time.Time `json:"checkInTime"`
	Location        string     `json:"location"`
	LocationType    string     `json:"locationType"`
	IsOutsideOffice bool       `json:"isOutsideOffice"`
	Notes           string     `json:"notes"`
	Status          string     `json:"status"`
}

func (r *CheckInRequest) Validate() error {
	v := validation.NewValidator()
	v.Field("userEmail", r.UserEmail).Required()
	v.Field("userName", r.UserName).Required()
	v.Field("checkInTime", r.CheckInTime).Required()
	if err := v.ValidateAs(internal.ErrRequiredFields); err != nil {
		return err
	}
	return nil
}

func (r *CheckInRequest) convertsToAbsent() bool {
	return r.Status == attendanceDatamodel.StatusAbsent
}

type CheckOutRequest struct {
	UserEmail    string     `json:"userEmail"`
	CheckOutTime *time.Time `json:"checkOutTime"`
	Date         string     `json:"date"`
	Location     string     `json:"location"`
	LocationType string     `json:"locationType"`
	Notes        string     `json:"notes"`
}

func (r *CheckOutRequest) Validate() error {
	v := validation.NewValidator()
	v.Field("userEmail", r.UserEmail).Required()
	v.Field("checkOutTime", r.CheckOutTime).Required()
	v.Field("date", r.Date).DayKey()
	if err := v.ValidateAs(internal.ErrRequiredFields); err != nil {
		return err
	}
	return nil
}

type LocationChangeRequest struct {
	UserEmail       string     `json:"userEmail"`
	UserName        string     `json:"userName"`
	Timestamp       *time.Time `json:"timestamp"`
	Location        string     `json:"location"`
	LocationType    string     `json:"locationType"`
	IsOutsideOffice bool       `json:"isOutsideOffice"`
	Notes           string     `json:"notes"`
}

func (r *LocationChangeRequest) Validate() error {
	v := validation.NewValidator()
	v.Field("userEmail", r.UserEmail).Required()
	v.Field("timestamp", r.Timestamp).Required()
	v.Field("location", r.Location).Required()
	if err := v.ValidateAs(internal.ErrRequiredFields); err != nil {
		return err
	}
	return nil
}

type MarkAbsentRequest struct {
	Date string `json:"date"`
}

type AutoOutRequest struct {
	UserEmail string `json:"userEmail"`
	Date      string `json:"date"`
}

// CheckInResult is an insert result, or an update result when an existing
// record was converted to an absence.
type CheckInResult struct {
	Acknowledged  bool   `json:"acknowledged"`
	InsertedID    string `json:"insertedId,omitempty"`
	MatchedCount  int64  `json:"matchedCount,omitempty"`
	ModifiedCount int64  `json:"modifiedCount,omitempty"`
	Message       string `json:"message,omitempty"`
}

// StatusView is the merged view of today's record and its location events.
type StatusView struct {
	IsCheckedIn      bool              `json:"isCheckedIn"`
	ID               string            `json:"_id,omitempty"`
	Date             string            `json:"date,omitempty"`
	UserEmail        string            `json:"userEmail,omitempty"`
	UserName         string            `json:"userName,omitempty"`
	CheckInTime      *time.Time        `json:"checkInTime,omitempty"`
	CheckOutTime     *time.Time        `json:"checkOutTime"`
	IsCheckedOut     bool              `json:"isCheckedOut"`
	Location         string            `json:"location,omitempty"`
	Notes            string            `json:"notes,omitempty"`
	IsOutsideOffice  bool              `json:"isOutsideOffice"`
	Status           string            `json:"status,omitempty"`
	AutoAbsent       bool              `json:"autoAbsent,omitempty"`
	AutoCheckOut     bool              `json:"autoCheckOut,omitempty"`
	WorkHours        string            `json:"workHours,omitempty"`
	LocationChanges  []*LocationChange `json:"locationChanges"`
	LastLocation     string            `json:"lastLocation,omitempty"`
	CheckOutLocation string            `json:"checkOutLocation,omitempty"`
}

func newStatusView(st State) *StatusView {
	if st.Record == nil {
		return &StatusView{LocationChanges: []*LocationChange{}}
	}
	rec := st.Record
	return &StatusView{
		IsCheckedIn:      true,
		ID:               rec.ID,
		Date:             rec.Date,
		UserEmail:        rec.UserEmail,
		UserName:         rec.UserName,
		CheckInTime:      rec.CheckInTime,
		CheckOutTime:     rec.CheckOutTime,
		IsCheckedOut:     st.IsCheckedOut,
		Location:         rec.Location,
		Notes:            rec.Notes,
		IsOutsideOffice:  rec.IsOutsideOffice,
		Status:           rec.Status,
		AutoAbsent:       rec.AutoAbsent,
		AutoCheckOut:     rec.AutoCheckOut,
		WorkHours:        rec.WorkHours,
		LocationChanges:  st.Events,
		LastLocation:     st.LastLocation,
		CheckOutLocation: rec.CheckOutLocation,
	}
}

type AutoAbsentResult struct {
	Marked  bool    `json:"marked"`
	Message string  `json:"message,omitempty"`
	Record  *Record `json:"record,omitempty"`
}

// RecordView is a stored record with that day's location events attached.
type RecordView struct {
	*Record
	LocationChanges []*LocationChange `json:"locationChanges"`
}

type MonthSummary struct {
	Month    string `json:"month"`
	Year     int    `json:"year"`
	MonthNum int    `json:"monthNum"`
	Present  int    `json:"present"`
	Absent   int    `json:"absent"`
	Late     int    `json:"late"`
	Total    int    `json:"total"`
}

type MarkedUser struct {
	User   string              `json:"user"`
	Result *store.InsertResult `json:"result"`
}

type MarkAbsentResult struct {
	Message string        `json:"message"`
	Results []*MarkedUser `json:"results"`
}

type AutoOutResult struct {
	Message           string              `json:"message"`
	AlreadyCheckedOut bool                `json:"alreadyCheckedOut,omitempty"`
	Result            *store.UpdateResult `json:"result,omitempty"`
}

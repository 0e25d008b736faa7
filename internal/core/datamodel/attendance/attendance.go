package attendance

import (
	"time"

	"github.com/frahmantamala/office-management/internal/store"
)

var (
	RecordIndexes = []store.Index{
		{Keys: []string{"user_email", "date"}, Unique: true},
		{Keys: []string{"date"}},
	}
	LocationChangeIndexes = []store.Index{
		{Keys: []string{"user_email", "date"}},
	}
)

const (
	CollectionRecords         = "attendance"
	CollectionLocationChanges = "location_changes"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

const (
	EventCheckIn        = "check-in"
	EventCheckOut       = "check-out"
	EventLocationChange = "location-change"
)

// Record is one user's attendance for one day. Absent records carry no check-in time.
type Record struct {
	store.Model          `bson:",inline"`
	UserEmail            string     `json:"userEmail" bson:"user_email" gorm:"column:user_email;size:255"`
	UserName             string     `json:"userName" bson:"user_name" gorm:"column:user_name"`
	UserRole             string     `json:"userRole" bson:"user_role" gorm:"column:user_role"`
	Date                 string     `json:"date" bson:"date" gorm:"column:date;size:10"`
	CheckInTime          *time.Time `json:"checkInTime,omitempty" bson:"check_in_time,omitempty" gorm:"column:check_in_time"`
	CheckOutTime         *time.Time `json:"checkOutTime,omitempty" bson:"check_out_time,omitempty" gorm:"column:check_out_time"`
	Status               string     `json:"status" bson:"status" gorm:"column:status"`
	Location             string     `json:"location" bson:"location" gorm:"column:location"`
	LocationType         string     `json:"locationType,omitempty" bson:"location_type,omitempty" gorm:"column:location_type"`
	LastLocation         string     `json:"lastLocation,omitempty" bson:"last_location,omitempty" gorm:"column:last_location"`
	LastLocationType     string     `json:"lastLocationType,omitempty" bson:"last_location_type,omitempty" gorm:"column:last_location_type"`
	IsOutsideOffice      bool       `json:"isOutsideOffice" bson:"is_outside_office" gorm:"column:is_outside_office"`
	CheckOutLocation     string     `json:"checkOutLocation,omitempty" bson:"check_out_location,omitempty" gorm:"column:check_out_location"`
	CheckOutLocationType string     `json:"checkOutLocationType,omitempty" bson:"check_out_location_type,omitempty" gorm:"column:check_out_location_type"`
	CheckOutNotes        string     `json:"checkOutNotes,omitempty" bson:"check_out_notes,omitempty" gorm:"column:check_out_notes"`
	WorkHours            string     `json:"workHours,omitempty" bson:"work_hours,omitempty" gorm:"column:work_hours"`
	AutoCheckOut         bool       `json:"autoCheckOut" bson:"auto_check_out" gorm:"column:auto_check_out"`
	AutoAbsent           bool       `json:"autoAbsent" bson:"auto_absent" gorm:"column:auto_absent"`
	Notes                string     `json:"notes" bson:"notes" gorm:"column:notes"`
}

// LocationChange is an append-only movement event within a day.
type LocationChange struct {
	store.Model     `bson:",inline"`
	UserEmail       string    `json:"userEmail" bson:"user_email" gorm:"column:user_email;size:255"`
	UserName        string    `json:"userName" bson:"user_name" gorm:"column:user_name"`
	Date            string    `json:"date" bson:"date" gorm:"column:date;size:10"`
	Timestamp       time.Time `json:"timestamp" bson:"timestamp" gorm:"column:timestamp"`
	Location        string    `json:"location" bson:"location" gorm:"column:location"`
	LocationType    string    `json:"locationType" bson:"location_type" gorm:"column:location_type"`
	IsOutsideOffice bool      `json:"isOutsideOffice" bson:"is_outside_office" gorm:"column:is_outside_office"`
	Notes           string    `json:"notes" bson:"notes" gorm:"column:notes"`
	Type            string    `json:"type" bson:"type" gorm:"column:type"`
}

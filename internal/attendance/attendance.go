package attendance

import (
	"fmt"
	"sort"
	"time"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/common/validation"
	attendanceDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/attendance"
)

type (
	Record         = attendanceDatamodel.Record
	LocationChange = attendanceDatamodel.LocationChange
)

const (
	DefaultLocation     = "Office"
	DefaultLocationType = "office"
	OtherLocationType   = "other"
	NoLocation          = "N/A"

	// LateHour is the local hour from which a present check-in counts as late.
	LateHour = 10
)

// Policy pins the attendance day to a time zone and a workday end.
type Policy struct {
	Location   *time.Location
	WorkdayEnd time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Location: time.UTC, WorkdayEnd: 17 * time.Hour}
}

// NewPolicy builds a policy from configuration.
func NewPolicy(cfg internal.AttendanceConfig) (Policy, error) {
	loc, err := cfg.Location()
	if err != nil {
		return Policy{}, err
	}
	end, err := cfg.WorkdayEndOffset()
	if err != nil {
		return Policy{}, err
	}
	return Policy{Location: loc, WorkdayEnd: end}, nil
}

func (p Policy) loc() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// Day returns the YYYY-MM-DD key of t in the policy's zone.
func (p Policy) Day(t time.Time) string {
	return t.In(p.loc()).Format(validation.DayLayout)
}

func (p Policy) startOf(day string) (time.Time, error) {
	t, err := time.ParseInLocation(validation.DayLayout, day, p.loc())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", day, err)
	}
	return t, nil
}

// Cutoff is the end of the working day.
func (p Policy) Cutoff(day string) (time.Time, error) {
	start, err := p.startOf(day)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(p.WorkdayEnd), nil
}

// EndOfDay is the last millisecond of day.
func (p Policy) EndOfDay(day string) (time.Time, error) {
	start, err := p.startOf(day)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(start.Year(), start.Month(), start.Day(), 23, 59, 59, int(999*time.Millisecond), p.loc()), nil
}

// IsLate reports whether a check-in happened at or after LateHour local time.
func (p Policy) IsLate(checkIn time.Time) bool {
	return checkIn.In(p.loc()).Hour() >= LateHour
}

type Phase string

const (
	PhaseNoRecord   Phase = "no-record"
	PhasePresent    Phase = "present"
	PhaseCheckedOut Phase = "checked-out"
	PhaseAbsent     Phase = "absent"
)

// State is the attendance of one user on one day as seen at a given instant.
type State struct {
	Day              string
	Phase            Phase
	Record           *Record
	IsCheckedIn      bool
	IsCheckedOut     bool
	PastCutoff       bool
	ShouldMarkAbsent bool
	Events           []*LocationChange
	LastLocation     string
}

// ComputeState derives the state for day from the stored record (nil when
// there is none) and its location events. It does not read the clock.
func ComputeState(now time.Time, policy Policy, day string, record *Record, events []*LocationChange) State {
	st := State{
		Day:    day,
		Phase:  PhaseNoRecord,
		Record: record,
		Events: sortedEvents(events),
	}

	if cutoff, err := policy.Cutoff(day); err == nil {
		end, _ := policy.EndOfDay(day)
		st.PastCutoff = day == policy.Day(now) && now.After(cutoff) && now.Before(end)
	}

	if record == nil {
		st.ShouldMarkAbsent = st.PastCutoff
		return st
	}

	st.IsCheckedIn = true
	st.IsCheckedOut = record.CheckOutTime != nil
	st.LastLocation = record.LastLocation
	if st.LastLocation == "" {
		st.LastLocation = record.Location
	}

	switch {
	case record.Status == attendanceDatamodel.StatusAbsent:
		st.Phase = PhaseAbsent
	case st.IsCheckedOut:
		st.Phase = PhaseCheckedOut
	default:
		st.Phase = PhasePresent
	}
	return st
}

func sortedEvents(events []*LocationChange) []*LocationChange {
	out := make([]*LocationChange, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// CanCheckIn allows a second check-in on the same day only when it turns the
// existing record into an absence.
func (s State) CanCheckIn(convertToAbsent bool) error {
	if s.Phase == PhaseNoRecord || convertToAbsent {
		return nil
	}
	return internal.ErrAlreadyCheckedIn
}

func (s State) CanCheckOut() error {
	switch s.Phase {
	case PhaseNoRecord:
		return internal.ErrNoCheckIn
	case PhaseAbsent:
		return internal.ErrAbsentCheckout
	case PhaseCheckedOut:
		return internal.ErrAlreadyCheckedOut
	}
	return nil
}

func (s State) CanChangeLocation() error {
	if s.Phase == PhaseNoRecord {
		return internal.ErrCheckInFirst
	}
	if s.IsCheckedOut {
		return internal.ErrLocationAfterOut
	}
	return nil
}

// WorkHours formats the time between in and out as "Xh Ym", truncating both parts.
func WorkHours(in, out time.Time) string {
	ms := out.Sub(in).Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%dh %dm", ms/3600000, (ms%3600000)/60000)
}

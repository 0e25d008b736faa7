package attendance

import (
	"context"
	"time"

	attendanceDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/attendance"
	userDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/user"
	"github.com/frahmantamala/office-management/internal/core/events"
	"github.com/frahmantamala/office-management/internal/store"
)

// AutoAbsentSweep marks every approved user without a record for now's day as
// absent. Running it again the same day marks nobody.
func (s *Service) AutoAbsentSweep(ctx context.Context, now time.Time) (int, error) {
	day := s.policy.Day(now)

	users, err := s.repos.Users.Find(ctx, store.NewQuery().Eq("status", userDatamodel.StatusApproved))
	if err != nil {
		return 0, err
	}

	marked := 0
	err = s.insertAbsences(ctx, users, day, notesAutoAbsent, true, func(*userDatamodel.User, *store.InsertResult) {
		marked++
	})
	if err != nil {
		return marked, err
	}

	s.logger.Info("auto-absent sweep finished", "date", day, "checked", len(users), "marked", marked)
	return marked, nil
}

// AutoCheckoutSweep closes every open present record of now's day at the
// workday end.
func (s *Service) AutoCheckoutSweep(ctx context.Context, now time.Time) (int, error) {
	day := s.policy.Day(now)
	cutoff, err := s.policy.Cutoff(day)
	if err != nil {
		return 0, err
	}
	checkOut := cutoff.UTC()

	open, err := s.repos.Records.Find(ctx, store.NewQuery().
		Eq("date", day).
		Eq("status", attendanceDatamodel.StatusPresent).
		Ne("check_in_time", nil).
		Eq("check_out_time", nil))
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, rec := range open {
		if rec.CheckInTime == nil || rec.CheckOutTime != nil {
			continue
		}
		if _, err := s.repos.Records.Update(ctx, rec.ID, store.Fields{
			"check_out_time":     checkOut,
			"work_hours":         WorkHours(*rec.CheckInTime, checkOut),
			"auto_check_out":     true,
			"check_out_location": firstNonEmpty(rec.LastLocation, rec.Location, DefaultLocation),
		}); err != nil {
			return closed, err
		}
		closed++
		s.publish(ctx, events.EventTypeCheckedOut, rec.UserEmail, day, true)
	}

	s.logger.Info("auto-checkout sweep finished", "date", day, "closed", closed)
	return closed, nil
}

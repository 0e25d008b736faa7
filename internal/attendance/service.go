package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/common/validation"
	attendanceDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/attendance"
	userDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/user"
	"github.com/frahmantamala/office-management/internal/core/events"
	"github.com/frahmantamala/office-management/internal/store"
)

const (
	notesAutoAbsent      = "Automatically marked absent"
	notesLazyAbsent      = "Automatically marked absent (end of day)"
	notesMarkedAbsent    = "Marked absent"
	notesInitialCheckIn  = "Initial check-in"
	notesCheckOut        = "Check-out"
	notesAbsentAutoOut   = "Auto checkout for absent user"
	zeroWorkHours        = "0h 0m"
	messageConvertAbsent = "Updated existing record to absent"
)

type Repositories struct {
	Records store.Repository[attendanceDatamodel.Record]
	Events  store.Repository[attendanceDatamodel.LocationChange]
	Users   store.Repository[userDatamodel.User]
}

type Service struct {
	repos  Repositories
	policy Policy
	bus    *events.EventBus
	now    func() time.Time
	logger *slog.Logger
}

func NewService(repos Repositories, policy Policy, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repos:  repos,
		policy: policy,
		bus:    bus,
		now:    store.Now,
		logger: logger,
	}
}

// WithClock replaces the service clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Policy() Policy {
	return s.policy
}

func (s *Service) today() string {
	return s.policy.Day(s.now())
}

func (s *Service) dayEvents(ctx context.Context, email, day string) ([]*LocationChange, error) {
	return s.repos.Events.Find(ctx, store.NewQuery().
		Eq("user_email", email).
		Eq("date", day).
		Asc("timestamp"))
}

func (s *Service) state(ctx context.Context, email, day string) (State, error) {
	rec, err := s.repos.Records.FindOne(ctx, store.NewQuery().Eq("user_email", email).Eq("date", day))
	if err != nil {
		return State{}, err
	}
	var evs []*LocationChange
	if rec != nil {
		if evs, err = s.dayEvents(ctx, email, day); err != nil {
			return State{}, err
		}
	}
	return ComputeState(s.now(), s.policy, day, rec, evs), nil
}

func (s *Service) publish(ctx context.Context, eventType, email, day string, automatic bool) {
	if err := s.bus.Publish(ctx, events.NewAttendanceEvent(eventType, email, day, automatic)); err != nil {
		s.logger.Warn("failed to publish attendance event", "event_type", eventType, "error", err)
	}
}

func (s *Service) CheckIn(ctx context.Context, req *CheckInRequest) (*CheckInResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	checkIn := req.CheckInTime.UTC()
	day := s.policy.Day(checkIn)

	st, err := s.state(ctx, req.UserEmail, day)
	if err != nil {
		return nil, err
	}
	if err := st.CanCheckIn(req.convertsToAbsent()); err != nil {
		return nil, err
	}

	if st.Record != nil {
		res, err := s.repos.Records.Update(ctx, st.Record.ID, store.Fields{
			"status":      attendanceDatamodel.StatusAbsent,
			"notes":       orDefault(req.Notes, notesAutoAbsent),
			"auto_absent": true,
		})
		if err != nil {
			return nil, err
		}
		s.logger.Info("attendance converted to absent", "user_email", req.UserEmail, "date", day)
		s.publish(ctx, events.EventTypeMarkedAbsent, req.UserEmail, day, false)
		return &CheckInResult{
			Acknowledged:  res.Acknowledged,
			MatchedCount:  res.MatchedCount,
			ModifiedCount: res.ModifiedCount,
			Message:       messageConvertAbsent,
		}, nil
	}

	location := orDefault(req.Location, DefaultLocation)
	rec := &Record{
		UserEmail:       req.UserEmail,
		UserName:        req.UserName,
		UserRole:        req.UserRole,
		Date:            day,
		CheckInTime:     &checkIn,
		Status:          orDefault(req.Status, attendanceDatamodel.StatusPresent),
		Location:        location,
		LocationType:    orDefault(req.LocationType, DefaultLocationType),
		LastLocation:    location,
		IsOutsideOffice: req.IsOutsideOffice,
		Notes:           req.Notes,
	}
	rec.LastLocationType = rec.LocationType

	res, err := s.repos.Records.Insert(ctx, rec)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, internal.ErrAlreadyCheckedIn
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.repos.Events.Insert(ctx, &LocationChange{
		UserEmail:       rec.UserEmail,
		UserName:        rec.UserName,
		Date:            day,
		Timestamp:       checkIn,
		Location:        location,
		LocationType:    rec.LocationType,
		IsOutsideOffice: req.IsOutsideOffice,
		Notes:           orDefault(req.Notes, notesInitialCheckIn),
		Type:            attendanceDatamodel.EventCheckIn,
	}); err != nil {
		s.logger.Error("check-in recorded without its location event", "user_email", rec.UserEmail, "date", day, "error", err)
		return nil, err
	}

	s.logger.Info("user checked in", "user_email", rec.UserEmail, "date", day, "location", location)
	s.publish(ctx, events.EventTypeCheckedIn, rec.UserEmail, day, false)

	return &CheckInResult{Acknowledged: res.Acknowledged, InsertedID: res.InsertedID}, nil
}

func (s *Service) CheckOut(ctx context.Context, req *CheckOutRequest) (*store.UpdateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	checkOut := req.CheckOutTime.UTC()
	day := orDefault(req.Date, s.policy.Day(checkOut))

	st, err := s.state(ctx, req.UserEmail, day)
	if err != nil {
		return nil, err
	}
	if err := st.CanCheckOut(); err != nil {
		return nil, err
	}

	rec := st.Record
	workHours := zeroWorkHours
	if rec.CheckInTime != nil {
		workHours = WorkHours(*rec.CheckInTime, checkOut)
	}
	location := firstNonEmpty(req.Location, rec.LastLocation, rec.Location)
	locationType := firstNonEmpty(req.LocationType, rec.LocationType, DefaultLocationType)

	res, err := s.repos.Records.Update(ctx, rec.ID, store.Fields{
		"check_out_time":          checkOut,
		"work_hours":              workHours,
		"check_out_location":      location,
		"check_out_location_type": locationType,
		"check_out_notes":         req.Notes,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.repos.Events.Insert(ctx, &LocationChange{
		UserEmail:       rec.UserEmail,
		UserName:        rec.UserName,
		Date:            day,
		Timestamp:       checkOut,
		Location:        location,
		LocationType:    locationType,
		IsOutsideOffice: location != DefaultLocation,
		Notes:           orDefault(req.Notes, notesCheckOut),
		Type:            attendanceDatamodel.EventCheckOut,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("user checked out", "user_email", rec.UserEmail, "date", day, "work_hours", workHours)
	s.publish(ctx, events.EventTypeCheckedOut, rec.UserEmail, day, false)
	return res, nil
}

func (s *Service) ChangeLocation(ctx context.Context, req *LocationChangeRequest) (*store.InsertResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ts := req.Timestamp.UTC()
	day := s.policy.Day(ts)

	st, err := s.state(ctx, req.UserEmail, day)
	if err != nil {
		return nil, err
	}
	if err := st.CanChangeLocation(); err != nil {
		return nil, err
	}

	locationType := orDefault(req.LocationType, OtherLocationType)
	res, err := s.repos.Events.Insert(ctx, &LocationChange{
		UserEmail:       req.UserEmail,
		UserName:        orDefault(req.UserName, st.Record.UserName),
		Date:            day,
		Timestamp:       ts,
		Location:        req.Location,
		LocationType:    locationType,
		IsOutsideOffice: req.IsOutsideOffice || req.Location != DefaultLocation,
		Notes:           req.Notes,
		Type:            attendanceDatamodel.EventLocationChange,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.repos.Records.Update(ctx, st.Record.ID, store.Fields{
		"last_location":      req.Location,
		"last_location_type": locationType,
	}); err != nil {
		return nil, err
	}

	s.logger.Debug("location changed", "user_email", req.UserEmail, "date", day, "location", req.Location)
	return res, nil
}

// Status returns the user's view of a day. Past the workday end of today an
// approved user with no record is marked absent on the spot.
func (s *Service) Status(ctx context.Context, email, day string) (*StatusView, error) {
	if email == "" {
		return nil, internal.ErrEmailRequired
	}
	if day == "" {
		day = s.today()
	}

	st, err := s.state(ctx, email, day)
	if err != nil {
		return nil, err
	}

	if st.ShouldMarkAbsent {
		rec, err := s.markLazyAbsent(ctx, email, day)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			st = ComputeState(s.now(), s.policy, day, rec, nil)
		}
	}
	return newStatusView(st), nil
}

func (s *Service) CheckAutoAbsent(ctx context.Context, email string) (*AutoAbsentResult, error) {
	if email == "" {
		return nil, internal.ErrEmailRequired
	}

	day := s.today()
	st, err := s.state(ctx, email, day)
	if err != nil {
		return nil, err
	}
	if !st.ShouldMarkAbsent {
		return &AutoAbsentResult{Marked: false}, nil
	}

	rec, err := s.markLazyAbsent(ctx, email, day)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return &AutoAbsentResult{Marked: false}, nil
	}
	return &AutoAbsentResult{Marked: true, Message: "User automatically marked as absent", Record: rec}, nil
}

func (s *Service) markLazyAbsent(ctx context.Context, email, day string) (*Record, error) {
	u, err := s.repos.Users.FindOne(ctx, store.NewQuery().
		Eq("email_address", email).
		Eq("status", userDatamodel.StatusApproved))
	if err != nil || u == nil {
		return nil, err
	}

	rec := absentRecord(u, day, notesLazyAbsent, true)
	if _, err := s.repos.Records.Insert(ctx, rec); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return s.repos.Records.FindOne(ctx, store.NewQuery().Eq("user_email", email).Eq("date", day))
		}
		return nil, err
	}

	s.logger.Info("user marked absent after workday end", "user_email", email, "date", day)
	s.publish(ctx, events.EventTypeMarkedAbsent, email, day, true)
	return rec, nil
}

func absentRecord(u *userDatamodel.User, day, notes string, automatic bool) *Record {
	return &Record{
		UserEmail:  u.EmailAddress,
		UserName:   orDefault(u.FullName, "Unknown"),
		UserRole:   u.UserRole,
		Date:       day,
		Status:     attendanceDatamodel.StatusAbsent,
		Location:   NoLocation,
		Notes:      notes,
		AutoAbsent: automatic,
	}
}

func (s *Service) LocationChanges(ctx context.Context, email, day string) ([]*LocationChange, error) {
	if email == "" || day == "" {
		return nil, internal.ErrEmailDateRequired
	}
	return s.dayEvents(ctx, email, day)
}

func (s *Service) History(ctx context.Context, email, from, to string) ([]*RecordView, error) {
	if email == "" {
		return nil, internal.ErrEmailRequired
	}
	records, err := s.repos.Records.Find(ctx, store.NewQuery().
		Eq("user_email", email).
		Between("date", from, to).
		Desc("date"))
	if err != nil {
		return nil, err
	}
	return s.withEvents(ctx, records)
}

// All lists every record, optionally for one day. A status of "remote"
// selects records flagged outside the office.
func (s *Service) All(ctx context.Context, day, status string) ([]*RecordView, error) {
	q := store.NewQuery().EqIf("date", day)
	switch status {
	case "", "all":
	case "remote":
		q.Eq("is_outside_office", true)
	default:
		q.Eq("status", status)
	}

	records, err := s.repos.Records.Find(ctx, q.Desc("date").Desc("check_in_time"))
	if err != nil {
		return nil, err
	}
	return s.withEvents(ctx, records)
}

func (s *Service) withEvents(ctx context.Context, records []*Record) ([]*RecordView, error) {
	views := make([]*RecordView, 0, len(records))
	if len(records) == 0 {
		return views, nil
	}

	var emails, days []any
	seenEmail, seenDay := map[string]bool{}, map[string]bool{}
	for _, rec := range records {
		if !seenEmail[rec.UserEmail] {
			seenEmail[rec.UserEmail] = true
			emails = append(emails, rec.UserEmail)
		}
		if !seenDay[rec.Date] {
			seenDay[rec.Date] = true
			days = append(days, rec.Date)
		}
	}

	evs, err := s.repos.Events.Find(ctx, store.NewQuery().
		In("user_email", emails...).
		In("date", days...).
		Asc("timestamp"))
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]*LocationChange)
	for _, ev := range evs {
		key := ev.UserEmail + "|" + ev.Date
		grouped[key] = append(grouped[key], ev)
	}

	for _, rec := range records {
		changes := grouped[rec.UserEmail+"|"+rec.Date]
		if changes == nil {
			changes = []*LocationChange{}
		}
		views = append(views, &RecordView{Record: rec, LocationChanges: changes})
	}
	return views, nil
}

// ByMonth summarizes attendance per calendar month over a six month window
// ending at to (default today).
func (s *Service) ByMonth(ctx context.Context, from, to string) ([]*MonthSummary, error) {
	v := validation.NewValidator()
	v.Field("startDate", from).DayKey()
	v.Field("endDate", to).DayKey()
	if err := v.Validate(); err != nil {
		return nil, err
	}

	loc := s.policy.loc()
	end := s.now().In(loc)
	if to != "" {
		end, _ = time.ParseInLocation(validation.DayLayout, to, loc)
	}
	start := end
	if from != "" {
		start, _ = time.ParseInLocation(validation.DayLayout, from, loc)
	}
	start = start.AddDate(0, -5, 0)

	records, err := s.repos.Records.Find(ctx, store.NewQuery().
		Between("date", start.Format(validation.DayLayout), end.Format(validation.DayLayout)))
	if err != nil {
		return nil, err
	}

	months := make(map[string]*MonthSummary)
	for _, rec := range records {
		monthStart, err := time.Parse("2006-01", firstN(rec.Date, 7))
		if err != nil {
			continue
		}
		key := monthStart.Format("2006-01")
		m, ok := months[key]
		if !ok {
			m = &MonthSummary{
				Month:    monthStart.Month().String()[:3],
				Year:     monthStart.Year(),
				MonthNum: int(monthStart.Month()),
			}
			months[key] = m
		}

		m.Total++
		switch rec.Status {
		case attendanceDatamodel.StatusPresent:
			m.Present++
			if rec.CheckInTime != nil && s.policy.IsLate(*rec.CheckInTime) {
				m.Late++
			}
		case attendanceDatamodel.StatusAbsent:
			m.Absent++
		}
	}

	out := make([]*MonthSummary, 0, len(months))
	for _, m := range months {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].MonthNum < out[j].MonthNum
	})
	return out, nil
}

// MarkAbsent records an absence for every approved staff member (any role but
// plain user) who has no record on day.
func (s *Service) MarkAbsent(ctx context.Context, day string) (*MarkAbsentResult, error) {
	if day == "" {
		day = s.today()
	}

	users, err := s.repos.Users.Find(ctx, store.NewQuery().
		Ne("user_role", userDatamodel.RoleUser).
		Eq("status", userDatamodel.StatusApproved))
	if err != nil {
		return nil, err
	}

	results := make([]*MarkedUser, 0)
	err = s.insertAbsences(ctx, users, day, notesMarkedAbsent, false, func(u *userDatamodel.User, res *store.InsertResult) {
		results = append(results, &MarkedUser{User: u.EmailAddress, Result: res})
	})
	if err != nil {
		return nil, err
	}

	return &MarkAbsentResult{
		Message: fmt.Sprintf("Marked %d users as absent", len(results)),
		Results: results,
	}, nil
}

func (s *Service) insertAbsences(ctx context.Context, users []*userDatamodel.User, day, notes string, automatic bool, done func(*userDatamodel.User, *store.InsertResult)) error {
	existing, err := s.repos.Records.Find(ctx, store.NewQuery().Eq("date", day))
	if err != nil {
		return err
	}
	has := make(map[string]bool, len(existing))
	for _, rec := range existing {
		has[rec.UserEmail] = true
	}

	for _, u := range users {
		if has[u.EmailAddress] {
			continue
		}
		res, err := s.repos.Records.Insert(ctx, absentRecord(u, day, notes, automatic))
		if errors.Is(err, store.ErrDuplicate) {
			continue
		}
		if err != nil {
			return err
		}
		has[u.EmailAddress] = true
		s.publish(ctx, events.EventTypeMarkedAbsent, u.EmailAddress, day, automatic)
		done(u, res)
	}
	return nil
}

// AutoOut closes an absent record with zero work hours.
func (s *Service) AutoOut(ctx context.Context, req *AutoOutRequest) (*AutoOutResult, error) {
	if req.UserEmail == "" {
		return nil, internal.ErrUserEmailRequired
	}
	day := orDefault(req.Date, s.today())

	rec, err := s.repos.Records.FindOne(ctx, store.NewQuery().
		Eq("user_email", req.UserEmail).
		Eq("date", day).
		Eq("status", attendanceDatamodel.StatusAbsent))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, internal.ErrNoAbsentRecord
	}
	if rec.CheckOutTime != nil {
		return &AutoOutResult{Message: "User already checked out", AlreadyCheckedOut: true}, nil
	}

	now := s.now().UTC()
	location := orDefault(rec.Location, NoLocation)
	res, err := s.repos.Records.Update(ctx, rec.ID, store.Fields{
		"check_out_time":     now,
		"work_hours":         zeroWorkHours,
		"check_out_location": location,
		"check_out_notes":    notesAbsentAutoOut,
		"auto_check_out":     true,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.repos.Events.Insert(ctx, &LocationChange{
		UserEmail:    rec.UserEmail,
		UserName:     rec.UserName,
		Date:         day,
		Timestamp:    now,
		Location:     location,
		LocationType: orDefault(rec.LocationType, OtherLocationType),
		Notes:        notesAbsentAutoOut,
		Type:         attendanceDatamodel.EventCheckOut,
	}); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTypeCheckedOut, rec.UserEmail, day, true)
	return &AutoOutResult{Message: "Auto checkout completed", Result: res}, nil
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

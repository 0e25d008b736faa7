package attendance_test

import (
	"context"
	"time"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/attendance"
	userDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/user"
	"github.com/frahmantamala/office-management/internal/store"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Attendance Service", func() {
	var (
		ctx     context.Context
		repos   attendance.Repositories
		service *attendance.Service
		now     time.Time
	)

	const day = "2024-03-04"

	BeforeEach(func() {
		ctx = context.Background()
		repos = openRepositories()
		now = at(12, 0)
		service = attendance.NewService(repos, attendance.DefaultPolicy(), nil, testLogger()).
			WithClock(func() time.Time { return now })
	})

	checkIn := func(email string, t time.Time) *attendance.CheckInResult {
		res, err := service.CheckIn(ctx, &attendance.CheckInRequest{
			UserEmail:   email,
			UserName:    "Rahim",
			UserRole:    "sales",
			CheckInTime: ptr(t),
		})
		Expect(err).NotTo(HaveOccurred())
		return res
	}

	record := func(email string) *attendance.Record {
		rec, err := repos.Records.FindOne(ctx, store.NewQuery().Eq("user_email", email).Eq("date", day))
		Expect(err).NotTo(HaveOccurred())
		return rec
	}

	Describe("CheckIn", func() {
		It("should create the record with defaults and an initial event", func() {
			res := checkIn("a@office.com", at(9, 0))
			Expect(res.Acknowledged).To(BeTrue())
			Expect(res.InsertedID).To(HaveLen(24))

			rec := record("a@office.com")
			Expect(rec).NotTo(BeNil())
			Expect(rec.Status).To(Equal(attendanceDatamodel.StatusPresent))
			Expect(rec.Location).To(Equal("Office"))
			Expect(rec.LocationType).To(Equal("office"))
			Expect(rec.LastLocation).To(Equal("Office"))
			Expect(*rec.CheckInTime).To(BeTemporally("==", at(9, 0)))

			evs, err := service.LocationChanges(ctx, "a@office.com", day)
			Expect(err).NotTo(HaveOccurred())
			Expect(evs).To(HaveLen(1))
			Expect(evs[0].Type).To(Equal(attendanceDatamodel.EventCheckIn))
			Expect(evs[0].Notes).To(Equal("Initial check-in"))
		})

		It("should reject missing fields", func() {
			_, err := service.CheckIn(ctx, &attendance.CheckInRequest{UserEmail: "a@office.com"})
			Expect(err).To(MatchError(internal.ErrRequiredFields))
		})

		It("should reject a second check-in on the same day", func() {
			checkIn("a@office.com", at(9, 0))
			_, err := service.CheckIn(ctx, &attendance.CheckInRequest{
				UserEmail: "a@office.com", UserName: "Rahim", CheckInTime: ptr(at(10, 0)),
			})
			Expect(err).To(MatchError(internal.ErrAlreadyCheckedIn))

			n, err := repos.Records.Count(ctx, store.NewQuery().Eq("user_email", "a@office.com"))
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(1)))
		})

		It("should convert an existing record to absent in place", func() {
			checkIn("a@office.com", at(9, 0))
			res, err := service.CheckIn(ctx, &attendance.CheckInRequest{
				UserEmail: "a@office.com", UserName: "Rahim", CheckInTime: ptr(at(10, 0)), Status: "absent",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Message).To(Equal("Updated existing record to absent"))
			Expect(res.ModifiedCount).To(Equal(int64(1)))

			rec := record("a@office.com")
			Expect(rec.Status).To(Equal(attendanceDatamodel.StatusAbsent))
			Expect(rec.AutoAbsent).To(BeTrue())
			Expect(rec.Notes).To(Equal("Automatically marked absent"))
		})
	})

	Describe("CheckOut", func() {
		It("should fail before check-in", func() {
			_, err := service.CheckOut(ctx, &attendance.CheckOutRequest{UserEmail: "a@office.com", CheckOutTime: ptr(at(17, 0))})
			Expect(err).To(MatchError(internal.ErrNoCheckIn))
		})

		It("should compute work hours and close at the last location", func() {
			checkIn("a@office.com", at(9, 0))
			_, err := service.ChangeLocation(ctx, &attendance.LocationChangeRequest{
				UserEmail: "a@office.com", Timestamp: ptr(at(11, 0)), Location: "Client Site",
			})
			Expect(err).NotTo(HaveOccurred())

			res, err := service.CheckOut(ctx, &attendance.CheckOutRequest{UserEmail: "a@office.com", CheckOutTime: ptr(at(17, 30))})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.MatchedCount).To(Equal(int64(1)))

			rec := record("a@office.com")
			Expect(rec.WorkHours).To(Equal("8h 30m"))
			Expect(rec.CheckOutLocation).To(Equal("Client Site"))
			Expect(rec.CheckOutLocationType).To(Equal("office"))

			evs, err := service.LocationChanges(ctx, "a@office.com", day)
			Expect(err).NotTo(HaveOccurred())
			Expect(evs).To(HaveLen(3))
			Expect(evs[2].Type).To(Equal(attendanceDatamodel.EventCheckOut))
			Expect(evs[2].IsOutsideOffice).To(BeTrue())
			Expect(evs[2].Notes).To(Equal("Check-out"))
		})

		It("should refuse a second check-out", func() {
			checkIn("a@office.com", at(9, 0))
			_, err := service.CheckOut(ctx, &attendance.CheckOutRequest{UserEmail: "a@office.com", CheckOutTime: ptr(at(17, 0))})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CheckOut(ctx, &attendance.CheckOutRequest{UserEmail: "a@office.com", CheckOutTime: ptr(at(17, 5))})
			Expect(err).To(MatchError(internal.ErrAlreadyCheckedOut))
		})
	})

	Describe("ChangeLocation", func() {
		It("should fail before check-in", func() {
			_, err := service.ChangeLocation(ctx, &attendance.LocationChangeRequest{
				UserEmail: "a@office.com", Timestamp: ptr(at(11, 0)), Location: "Client Site",
			})
			Expect(err).To(MatchError(internal.ErrCheckInFirst))
		})

		It("should fail after check-out", func() {
			checkIn("a@office.com", at(9, 0))
			_, err := service.CheckOut(ctx, &attendance.CheckOutRequest{UserEmail: "a@office.com", CheckOutTime: ptr(at(15, 0))})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ChangeLocation(ctx, &attendance.LocationChangeRequest{
				UserEmail: "a@office.com", Timestamp: ptr(at(16, 0)), Location: "Client Site",
			})
			Expect(err).To(MatchError(internal.ErrLocationAfterOut))
		})

		It("should record the move and update the last location", func() {
			checkIn("a@office.com", at(9, 0))
			res, err := service.ChangeLocation(ctx, &attendance.LocationChangeRequest{
				UserEmail: "a@office.com", Timestamp: ptr(at(11, 0)), Location: "Branch 7",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.InsertedID).NotTo(BeEmpty())

			rec := record("a@office.com")
			Expect(rec.LastLocation).To(Equal("Branch 7"))
			Expect(rec.LastLocationType).To(Equal("other"))
		})
	})

	Describe("Status", func() {
		It("should require an email", func() {
			_, err := service.Status(ctx, "", "")
			Expect(err).To(MatchError(internal.ErrEmailRequired))
		})

		It("should report the merged view of today", func() {
			checkIn("a@office.com", at(9, 0))
			view, err := service.Status(ctx, "a@office.com", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(view.IsCheckedIn).To(BeTrue())
			Expect(view.IsCheckedOut).To(BeFalse())
			Expect(view.Status).To(Equal("present"))
			Expect(view.LocationChanges).To(HaveLen(1))
			Expect(view.LastLocation).To(Equal("Office"))
		})

		It("should not mark anyone absent before the workday ends", func() {
			seedUser(repos, "b@office.com", "sales", userDatamodel.StatusApproved)
			view, err := service.Status(ctx, "b@office.com", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(view.IsCheckedIn).To(BeFalse())
			Expect(record("b@office.com")).To(BeNil())
		})

		It("should lazily mark an approved user absent after the workday ends", func() {
			seedUser(repos, "b@office.com", "sales", userDatamodel.StatusApproved)
			now = at(18, 0)

			view, err := service.Status(ctx, "b@office.com", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(view.IsCheckedIn).To(BeTrue())
			Expect(view.Status).To(Equal("absent"))
			Expect(view.AutoAbsent).To(BeTrue())
			Expect(view.CheckInTime).To(BeNil())

			rec := record("b@office.com")
			Expect(rec.Notes).To(Equal("Automatically marked absent (end of day)"))
			Expect(rec.Location).To(Equal("N/A"))
		})

		It("should leave users that are not approved alone", func() {
			seedUser(repos, "c@office.com", "sales", userDatamodel.StatusPending)
			now = at(18, 0)

			view, err := service.Status(ctx, "c@office.com", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(view.IsCheckedIn).To(BeFalse())
		})
	})

	Describe("CheckAutoAbsent", func() {
		It("should mark only once", func() {
			seedUser(repos, "b@office.com", "sales", userDatamodel.StatusApproved)
			now = at(18, 0)

			first, err := service.CheckAutoAbsent(ctx, "b@office.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Marked).To(BeTrue())
			Expect(first.Record.ID).NotTo(BeEmpty())

			second, err := service.CheckAutoAbsent(ctx, "b@office.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Marked).To(BeFalse())
		})
	})

	Describe("History and All", func() {
		It("should attach each day's location events", func() {
			checkIn("a@office.com", at(9, 0))
			checkIn("b@office.com", at(9, 30))
			_, err := service.ChangeLocation(ctx, &attendance.LocationChangeRequest{
				UserEmail: "b@office.com", Timestamp: ptr(at(11, 0)), Location: "Market", IsOutsideOffice: true,
			})
			Expect(err).NotTo(HaveOccurred())

			history, err := service.History(ctx, "b@office.com", "2024-03-01", "2024-03-31")
			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(HaveLen(1))
			Expect(history[0].LocationChanges).To(HaveLen(2))

			all, err := service.All(ctx, day, "all")
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))

			present, err := service.All(ctx, day, "present")
			Expect(err).NotTo(HaveOccurred())
			Expect(present).To(HaveLen(2))

			remote, err := service.All(ctx, day, "remote")
			Expect(err).NotTo(HaveOccurred())
			Expect(remote).To(BeEmpty())
		})
	})

	Describe("ByMonth", func() {
		It("should count present, late and absent per month", func() {
			checkIn("a@office.com", at(9, 0))
			checkIn("b@office.com", at(10, 15))
			_, err := repos.Records.Insert(ctx, &attendance.Record{
				UserEmail: "c@office.com", Date: "2024-02-10", Status: attendanceDatamodel.StatusAbsent,
			})
			Expect(err).NotTo(HaveOccurred())

			months, err := service.ByMonth(ctx, "", "2024-03-31")
			Expect(err).NotTo(HaveOccurred())
			Expect(months).To(HaveLen(2))
			Expect(months[0].Month).To(Equal("Feb"))
			Expect(months[0].Absent).To(Equal(1))
			Expect(months[1].Month).To(Equal("Mar"))
			Expect(months[1].MonthNum).To(Equal(3))
			Expect(months[1].Present).To(Equal(2))
			Expect(months[1].Late).To(Equal(1))
			Expect(months[1].Total).To(Equal(2))
		})

		It("should reject a malformed date", func() {
			_, err := service.ByMonth(ctx, "March", "")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("MarkAbsent", func() {
		It("should skip plain users and anyone already recorded", func() {
			seedUser(repos, "mgr@office.com", "manager", userDatamodel.StatusApproved)
			seedUser(repos, "asm@office.com", "asm", userDatamodel.StatusApproved)
			seedUser(repos, "new@office.com", "user", userDatamodel.StatusApproved)
			checkIn("asm@office.com", at(9, 0))

			res, err := service.MarkAbsent(ctx, day)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Message).To(Equal("Marked 1 users as absent"))
			Expect(res.Results).To(HaveLen(1))
			Expect(res.Results[0].User).To(Equal("mgr@office.com"))
			Expect(record("mgr@office.com").Notes).To(Equal("Marked absent"))
		})
	})

	Describe("AutoOut", func() {
		It("should require an email", func() {
			_, err := service.AutoOut(ctx, &attendance.AutoOutRequest{})
			Expect(err).To(MatchError(internal.ErrUserEmailRequired))
		})

		It("should fail without an absent record", func() {
			checkIn("a@office.com", at(9, 0))
			_, err := service.AutoOut(ctx, &attendance.AutoOutRequest{UserEmail: "a@office.com", Date: day})
			Expect(err).To(MatchError(internal.ErrNoAbsentRecord))
		})

		It("should close an absent record with zero hours once", func() {
			seedUser(repos, "b@office.com", "sales", userDatamodel.StatusApproved)
			_, err := service.MarkAbsent(ctx, day)
			Expect(err).NotTo(HaveOccurred())

			res, err := service.AutoOut(ctx, &attendance.AutoOutRequest{UserEmail: "b@office.com", Date: day})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Message).To(Equal("Auto checkout completed"))

			rec := record("b@office.com")
			Expect(rec.WorkHours).To(Equal("0h 0m"))
			Expect(rec.AutoCheckOut).To(BeTrue())
			Expect(rec.CheckOutLocation).To(Equal("N/A"))

			again, err := service.AutoOut(ctx, &attendance.AutoOutRequest{UserEmail: "b@office.com", Date: day})
			Expect(err).NotTo(HaveOccurred())
			Expect(again.AlreadyCheckedOut).To(BeTrue())
		})
	})

	Describe("sweeps", func() {
		It("should mark every approved user without a record, once", func() {
			seedUser(repos, "a@office.com", "sales", userDatamodel.StatusApproved)
			seedUser(repos, "b@office.com", "user", userDatamodel.StatusApproved)
			seedUser(repos, "c@office.com", "sales", userDatamodel.StatusPending)
			checkIn("a@office.com", at(9, 0))

			marked, err := service.AutoAbsentSweep(ctx, at(17, 1))
			Expect(err).NotTo(HaveOccurred())
			Expect(marked).To(Equal(1))
			Expect(record("b@office.com").AutoAbsent).To(BeTrue())

			marked, err = service.AutoAbsentSweep(ctx, at(17, 2))
			Expect(err).NotTo(HaveOccurred())
			Expect(marked).To(BeZero())

			n, err := repos.Records.Count(ctx, store.NewQuery().Eq("date", day))
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(2)))
		})

		It("should close open records at the workday end, once", func() {
			checkIn("a@office.com", at(9, 0))
			checkIn("b@office.com", at(8, 0))
			_, err := service.CheckOut(ctx, &attendance.CheckOutRequest{UserEmail: "b@office.com", CheckOutTime: ptr(at(12, 0))})
			Expect(err).NotTo(HaveOccurred())

			closed, err := service.AutoCheckoutSweep(ctx, at(17, 1))
			Expect(err).NotTo(HaveOccurred())
			Expect(closed).To(Equal(1))

			rec := record("a@office.com")
			Expect(rec.AutoCheckOut).To(BeTrue())
			Expect(rec.WorkHours).To(Equal("8h 0m"))
			Expect(*rec.CheckOutTime).To(BeTemporally("==", at(17, 0)))
			Expect(rec.CheckOutLocation).To(Equal("Office"))

			closed, err = service.AutoCheckoutSweep(ctx, at(17, 5))
			Expect(err).NotTo(HaveOccurred())
			Expect(closed).To(BeZero())
			Expect(record("b@office.com").WorkHours).To(Equal("4h 0m"))
		})
	})
})

package performance_test

import (
	"context"

	"github.com/frahmantamala/office-management/internal"
	salesDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/sales"
	targetDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/target"
	teamDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/teamstructure"
	"github.com/frahmantamala/office-management/internal/performance"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Performance Service", func() {
	var (
		ctx     context.Context
		repos   performance.Repositories
		service *performance.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		repos = openRepositories()
		service = performance.NewService(repos, testLogger())
	})

	addTarget := func(email, manager string, loans float64) string {
		res, err := repos.Targets.Insert(ctx, &targetDatamodel.Target{
			UserEmail:    email,
			UserName:     "Staff " + email,
			UserRole:     "sales",
			ManagerEmail: manager,
			Month:        3,
			Year:         2024,
			Goals:        targetDatamodel.Goals{LoansTarget: loans},
		})
		Expect(err).NotTo(HaveOccurred())
		return res.InsertedID
	}

	addSales := func(email, date string, loans int) {
		_, err := repos.Sales.Insert(ctx, &salesDatamodel.Entry{UserEmail: email, Date: date, Loans: loans})
		Expect(err).NotTo(HaveOccurred())
	}

	addMember := func(email, role, manager string) {
		_, err := repos.Team.Insert(ctx, &teamDatamodel.Member{UserEmail: email, UserRole: role, ManagerEmail: manager})
		Expect(err).NotTo(HaveOccurred())
	}

	Describe("Performance", func() {
		It("should score the month and ignore entries outside it", func() {
			addTarget("a@office.com", "m@office.com", 10)
			addSales("a@office.com", "2024-03-01", 4)
			addSales("a@office.com", "2024-03-31", 3)
			addSales("a@office.com", "2024-04-01", 9)

			report, err := service.Performance(ctx, "a@office.com", "3", "2024")
			Expect(err).NotTo(HaveOccurred())
			Expect(report.SalesCount).To(Equal(2))
			Expect(report.Achievements.Loans).To(Equal(7))
			Expect(report.Percentages.Loans).To(Equal(70))
			Expect(report.OverallPercentage).To(Equal(70))
			Expect(report.Target.UserEmail).To(Equal("a@office.com"))
		})

		It("should report a missing target", func() {
			_, err := service.Performance(ctx, "a@office.com", "3", "2024")
			Expect(err).To(MatchError(internal.ErrNoMonthTarget))
		})

		It("should require every parameter", func() {
			_, err := service.Performance(ctx, "a@office.com", "", "2024")
			Expect(err).To(MatchError(internal.ErrPerformanceParams))
			_, err = service.Performance(ctx, "a@office.com", "march", "2024")
			Expect(err).To(MatchError(internal.ErrPerformanceParams))
		})

		It("should reject a month outside the calendar", func() {
			_, err := service.Performance(ctx, "a@office.com", "13", "2024")
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})
	})

	Describe("TeamPerformance", func() {
		It("should rank the manager's targets from best to worst", func() {
			lowID := addTarget("low@office.com", "m@office.com", 10)
			addTarget("high@office.com", "m@office.com", 10)
			addSales("low@office.com", "2024-03-05", 2)
			addSales("high@office.com", "2024-03-05", 9)

			reports, err := service.TeamPerformance(ctx, "m@office.com", "3", "2024")
			Expect(err).NotTo(HaveOccurred())
			Expect(reports).To(HaveLen(2))
			Expect(reports[0].UserEmail).To(Equal("high@office.com"))
			Expect(reports[0].OverallPercentage).To(Equal(90))
			Expect(reports[1].UserID).To(Equal(lowID))
			Expect(reports[1].OverallPercentage).To(Equal(20))
		})

		It("should include team members and ASM reports with targets set elsewhere", func() {
			addMember("asm@office.com", "ASM", "m@office.com")
			addMember("rep@office.com", "sales", "asm@office.com")
			addMember("idle@office.com", "sales", "m@office.com")
			addTarget("asm@office.com", "m@office.com", 10)
			addTarget("rep@office.com", "asm@office.com", 10)
			addSales("rep@office.com", "2024-03-10", 5)

			reports, err := service.TeamPerformance(ctx, "m@office.com", "3", "2024")
			Expect(err).NotTo(HaveOccurred())

			emails := make([]string, len(reports))
			for i, r := range reports {
				emails[i] = r.UserEmail
			}
			Expect(emails).To(Equal([]string{"rep@office.com", "asm@office.com"}))
		})

		It("should report a manager without targets", func() {
			addMember("idle@office.com", "sales", "m@office.com")
			_, err := service.TeamPerformance(ctx, "m@office.com", "3", "2024")
			Expect(err).To(MatchError(internal.ErrNoTeamTargets))
		})

		It("should require every parameter", func() {
			_, err := service.TeamPerformance(ctx, "", "3", "2024")
			Expect(err).To(MatchError(internal.ErrTeamPerformanceParams))
		})
	})
})

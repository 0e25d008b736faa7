package performance_test

import (
	targetDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/target"
	"github.com/frahmantamala/office-management/internal/performance"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Performance", func() {
	DescribeTable("MonthRange",
		func(month, year int, from, to string) {
			f, t := performance.MonthRange(month, year)
			Expect(f).To(Equal(from))
			Expect(t).To(Equal(to))
		},
		Entry("january", 1, 2024, "2024-01-01", "2024-01-31"),
		Entry("leap february", 2, 2024, "2024-02-01", "2024-02-29"),
		Entry("plain february", 2, 2023, "2023-02-01", "2023-02-28"),
		Entry("december", 12, 2024, "2024-12-01", "2024-12-31"),
	)

	DescribeTable("Percentage",
		func(achieved, target float64, expected int) {
			Expect(performance.Percentage(achieved, target)).To(Equal(expected))
		},
		Entry("exact", 7.0, 10.0, 70),
		Entry("rounds half up", 1.0, 8.0, 13),
		Entry("rounds down", 1.0, 3.0, 33),
		Entry("over achieved", 15.0, 10.0, 150),
		Entry("zero target", 5.0, 0.0, 0),
		Entry("nothing achieved", 0.0, 10.0, 0),
	)

	It("should add up every entry and use today's deposit as the total", func() {
		a := performance.Accumulate([]*performance.SalesEntry{
			{SavingsAccountOpened: 2, SavingsAccountDeposit: 100, Loans: 1, TodayDeposit: 500, TotalDeposit: 9999},
			{SavingsAccountOpened: 3, DpsDeposit: 50, Loans: 2, Apps: 4, TodayDeposit: 250},
		})
		Expect(a.SavingsAccountOpened).To(Equal(5))
		Expect(a.SavingsDeposit).To(Equal(100.0))
		Expect(a.DpsDeposit).To(Equal(50.0))
		Expect(a.Loans).To(Equal(3))
		Expect(a.Apps).To(Equal(4))
		Expect(a.TotalDeposit).To(Equal(750.0))
	})

	It("should average only the nonzero percentages", func() {
		Expect(performance.Overall(performance.Percentages{Loans: 70, Apps: 81})).To(Equal(76))
		Expect(performance.Overall(performance.Percentages{})).To(Equal(0))
	})

	It("should build a report from a target and its entries", func() {
		t := &performance.Target{Goals: targetDatamodel.Goals{LoansTarget: 10, DepositsTarget: 1000}}
		report := performance.BuildReport(t, []*performance.SalesEntry{
			{Loans: 4, TodayDeposit: 300},
			{Loans: 3, TodayDeposit: 200},
		})
		Expect(report.SalesCount).To(Equal(2))
		Expect(report.Percentages.Loans).To(Equal(70))
		Expect(report.Percentages.Deposits).To(Equal(50))
		Expect(report.Percentages.Apps).To(Equal(0))
		Expect(report.OverallPercentage).To(Equal(60))
	})
})

package jobpost_test

import (
	"time"

	"github.com/frahmantamala/office-management/internal"
	jobDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/jobpost"
	"github.com/frahmantamala/office-management/internal/jobpost"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CanApply", func() {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	DescribeTable("deciding whether a post takes applications",
		func(status string, deadline time.Time, expected error) {
			err := jobpost.CanApply(&jobpost.Post{Status: status, Deadline: deadline}, now)
			if expected == nil {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(err).To(MatchError(expected))
			}
		},
		Entry("open post", jobDatamodel.PostActive, now.Add(time.Hour), nil),
		Entry("closed post", jobDatamodel.PostClosed, now.Add(time.Hour), internal.ErrJobPostClosed),
		Entry("archived post", jobDatamodel.PostArchived, now.Add(time.Hour), internal.ErrJobPostClosed),
		Entry("deadline passed", jobDatamodel.PostActive, now.Add(-time.Hour), internal.ErrDeadlinePassed),
	)
})

var _ = Describe("ParseDeadline", func() {
	It("should read a bare date as midnight UTC", func() {
		t, err := jobpost.ParseDeadline("2024-03-31")
		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))
	})

	It("should normalise timestamps to UTC", func() {
		t, err := jobpost.ParseDeadline("2024-03-31T17:00:00+07:00")
		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC)))
	})

	It("should reject anything else", func() {
		_, err := jobpost.ParseDeadline("next friday")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("SortApplications", func() {
	apps := func() []*jobpost.Application {
		return []*jobpost.Application{
			{ContactNumber: "a", PersonalInfo: map[string]any{"gender": "male"}, AdditionalInfo: map[string]any{"expectedSalary": 9000.0}},
			{ContactNumber: "b", PersonalInfo: map[string]any{"gender": "female"}, AdditionalInfo: map[string]any{"expectedSalary": 5000.0}},
			{ContactNumber: "c", PersonalInfo: map[string]any{}, AdditionalInfo: map[string]any{}},
		}
	}
	order := func(list []*jobpost.Application) []string {
		out := make([]string, len(list))
		for i, a := range list {
			out[i] = a.ContactNumber
		}
		return out
	}

	It("should order numbers with missing values first", func() {
		list := apps()
		Expect(jobpost.SortApplications(list, "expectedSalary", "asc")).To(BeTrue())
		Expect(order(list)).To(Equal([]string{"c", "b", "a"}))
	})

	It("should reverse for desc", func() {
		list := apps()
		Expect(jobpost.SortApplications(list, "gender", "desc")).To(BeTrue())
		Expect(order(list)).To(Equal([]string{"a", "b", "c"}))
	})

	It("should sort on the first employment entry", func() {
		list := []*jobpost.Application{
			{ContactNumber: "x", EmploymentHistory: []map[string]any{{"companyName": "Zeta"}}},
			{ContactNumber: "y", EmploymentHistory: []map[string]any{{"companyName": "Acme"}, {"companyName": "Zeta"}}},
		}
		Expect(jobpost.SortApplications(list, "prevCompany", "")).To(BeTrue())
		Expect(order(list)).To(Equal([]string{"y", "x"}))
	})

	It("should leave the list alone for an unknown key", func() {
		list := apps()
		Expect(jobpost.SortApplications(list, "shoeSize", "asc")).To(BeFalse())
		Expect(order(list)).To(Equal([]string{"a", "b", "c"}))
	})
})

package sales_test

import (
	"bytes"
	"context"

	"github.com/frahmantamala/office-management/internal"
	salesDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/sales"
	"github.com/frahmantamala/office-management/internal/sales"
	"github.com/frahmantamala/office-management/internal/store"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
)

var _ = Describe("Sales Service", func() {
	var (
		ctx     context.Context
		repo    store.Repository[salesDatamodel.Entry]
		service *sales.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = openRepository()
		service = sales.NewService(repo, testLogger())
	})

	request := func(email, date string) *sales.EntryRequest {
		return &sales.EntryRequest{Entry: sales.Entry{
			UserEmail:             email,
			UserRole:              "sales",
			Date:                  date,
			SavingsAccountOpened:  2,
			SavingsAccountDeposit: 1000,
			DpsAccountOpened:      1,
			DpsDeposit:            250,
			Loans:                 1,
		}}
	}

	Describe("Create", func() {
		It("should derive the daily totals", func() {
			res, err := service.Create(ctx, request("a@office.com", "2024-03-04"))
			Expect(err).NotTo(HaveOccurred())

			e, err := repo.FindByID(ctx, res.InsertedID)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.TodayDeposit).To(Equal(1250.0))
			Expect(e.TotalAccounts).To(Equal(3))
		})

		It("should keep explicit totals", func() {
			req := request("a@office.com", "2024-03-04")
			req.TodayDeposit = 99
			req.TotalAccounts = 7
			res, err := service.Create(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			e, err := repo.FindByID(ctx, res.InsertedID)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.TodayDeposit).To(Equal(99.0))
			Expect(e.TotalAccounts).To(Equal(7))
		})

		It("should reject a second entry for the same day", func() {
			_, err := service.Create(ctx, request("a@office.com", "2024-03-04"))
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, request("a@office.com", "2024-03-04"))
			Expect(err).To(MatchError(internal.ErrSalesExists))
		})

		It("should require the user and the date", func() {
			_, err := service.Create(ctx, request("", "2024-03-04"))
			Expect(err).To(MatchError(internal.ErrRequiredFields))
			_, err = service.Create(ctx, request("a@office.com", "04/03/2024"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			for _, d := range []string{"2024-03-01", "2024-03-15", "2024-04-01"} {
				_, err := service.Create(ctx, request("a@office.com", d))
				Expect(err).NotTo(HaveOccurred())
			}
			_, err := service.Create(ctx, request("b@office.com", "2024-03-02"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should require the user", func() {
			_, err := service.List(ctx, sales.Filter{})
			Expect(err).To(MatchError(internal.ErrUserEmailRequired))
		})

		It("should filter by range and sort newest first", func() {
			entries, err := service.List(ctx, sales.Filter{UserEmail: "a@office.com", StartDate: "2024-03-01", EndDate: "2024-03-31"})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
			Expect(entries[0].Date).To(Equal("2024-03-15"))
			Expect(entries[1].Date).To(Equal("2024-03-01"))
		})

		It("should honor a single bound", func() {
			entries, err := service.List(ctx, sales.Filter{UserEmail: "a@office.com", StartDate: "2024-03-10"})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
		})

		It("should list every user for admins", func() {
			entries, err := service.All(ctx, sales.Filter{UserRole: "sales", EndDate: "2024-03-31"})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(3))
		})
	})

	Describe("Update", func() {
		It("should replace the metrics and keep the identity", func() {
			res, err := service.Create(ctx, request("a@office.com", "2024-03-04"))
			Expect(err).NotTo(HaveOccurred())

			upd := &sales.EntryRequest{Entry: sales.Entry{UserEmail: "other@office.com", PraAccountOpened: 4, PraAccountDeposit: 40}}
			_, err = service.Update(ctx, res.InsertedID, upd)
			Expect(err).NotTo(HaveOccurred())

			e, err := repo.FindByID(ctx, res.InsertedID)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.UserEmail).To(Equal("a@office.com"))
			Expect(e.Date).To(Equal("2024-03-04"))
			Expect(e.SavingsAccountOpened).To(Equal(0))
			Expect(e.TotalAccounts).To(Equal(4))
			Expect(e.TodayDeposit).To(Equal(40.0))
		})

		It("should report a missing entry", func() {
			_, err := service.Update(ctx, store.NewID(), &sales.EntryRequest{})
			Expect(err).To(MatchError(internal.ErrSalesNotFound))
		})
	})

	Describe("Import", func() {
		workbook := func(rows ...[]interface{}) *bytes.Buffer {
			f := excelize.NewFile()
			defer func() { _ = f.Close() }()
			for i, row := range rows {
				cell, err := excelize.CoordinatesToCellName(1, i+1)
				Expect(err).NotTo(HaveOccurred())
				Expect(f.SetSheetRow("Sheet1", cell, &row)).To(Succeed())
			}
			buf, err := f.WriteToBuffer()
			Expect(err).NotTo(HaveOccurred())
			return buf
		}

		It("should create valid rows and report the rest", func() {
			_, err := service.Create(ctx, request("dup@office.com", "2024-03-04"))
			Expect(err).NotTo(HaveOccurred())

			buf := workbook(
				[]interface{}{"userEmail", "date", "loans", "savingsAccountDeposit", "notes"},
				[]interface{}{"a@office.com", "2024-03-04", 3, 500, "walk-in"},
				[]interface{}{"dup@office.com", "2024-03-04", 1, 0, ""},
				[]interface{}{"", "2024-03-05", 1, 0, ""},
				[]interface{}{"b@office.com", "2024-03-05", "many", 0, ""},
			)

			res, err := service.Import(ctx, buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Imported).To(Equal(1))
			Expect(res.Skipped).To(HaveLen(3))
			Expect(res.Skipped[0]).To(Equal(sales.SkippedRow{Row: 3, Reason: "Sales entry already exists for this date"}))
			Expect(res.Skipped[1].Row).To(Equal(4))
			Expect(res.Skipped[2].Row).To(Equal(5))

			entries, err := service.List(ctx, sales.Filter{UserEmail: "a@office.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].Loans).To(Equal(3))
			Expect(entries[0].TodayDeposit).To(Equal(500.0))
			Expect(entries[0].Notes).To(Equal("walk-in"))
		})

		It("should refuse something that is not a workbook", func() {
			_, err := service.Import(ctx, bytes.NewBufferString("not a spreadsheet"))
			Expect(err).To(MatchError(internal.ErrInvalidFile))
		})
	})
})

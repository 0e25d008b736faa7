package crud_test

import (
	"context"
	"net/url"
	"time"

	"github.com/frahmantamala/office-management/internal"
	noticeDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/notice"
	ticketDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/ticket"
	"github.com/frahmantamala/office-management/internal/crud"
	"github.com/frahmantamala/office-management/internal/notice"
	"github.com/frahmantamala/office-management/internal/store"
	"github.com/frahmantamala/office-management/internal/ticket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Crud Service", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("notices", func() {
		var service *crud.Service[notice.Notice]

		BeforeEach(func() {
			repo, err := store.NewRepository[noticeDatamodel.Notice](ctx, openStore(), noticeDatamodel.Collection, noticeDatamodel.Indexes...)
			Expect(err).NotTo(HaveOccurred())
			service = crud.NewService(repo, notice.Resource(), testLogger())
		})

		It("should require a title and content", func() {
			_, err := service.Create(ctx, &notice.Notice{Title: "Holiday"})
			Expect(err).To(MatchError(internal.ErrRequiredFields))
		})

		It("should list newest first with filters", func() {
			clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
			restore := store.Now
			DeferCleanup(func() { store.Now = restore })

			for _, n := range []notice.Notice{
				{Title: "old", Content: "x", Audience: "all"},
				{Title: "sales only", Content: "x", Audience: "sales"},
				{Title: "new", Content: "x", Audience: "all"},
			} {
				clock = clock.Add(time.Hour)
				now := clock
				store.Now = func() time.Time { return now }
				doc := n
				_, err := service.Create(ctx, &doc)
				Expect(err).NotTo(HaveOccurred())
			}

			docs, err := service.List(ctx, url.Values{"audience": {"all"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(docs).To(HaveLen(2))
			Expect(docs[0].Title).To(Equal("new"))
			Expect(docs[1].Title).To(Equal("old"))
		})

		It("should merge updates and keep the id", func() {
			res, err := service.Create(ctx, &notice.Notice{Title: "Holiday", Content: "Office closed", Audience: "all"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Update(ctx, res.InsertedID, []byte(`{"content":"Office closed Friday","_id":"ignored"}`))
			Expect(err).NotTo(HaveOccurred())

			n, err := service.Get(ctx, res.InsertedID)
			Expect(err).NotTo(HaveOccurred())
			Expect(n.ID).To(Equal(res.InsertedID))
			Expect(n.Title).To(Equal("Holiday"))
			Expect(n.Content).To(Equal("Office closed Friday"))
		})

		It("should report missing notices", func() {
			id := store.NewID()
			_, err := service.Get(ctx, id)
			Expect(err).To(MatchError(internal.ErrNoticeNotFound))
			_, err = service.Update(ctx, id, []byte(`{}`))
			Expect(err).To(MatchError(internal.ErrNoticeNotFound))
			_, err = service.Delete(ctx, id)
			Expect(err).To(MatchError(internal.ErrNoticeNotFound))
		})
	})

	Describe("tickets", func() {
		var service *crud.Service[ticket.Ticket]

		BeforeEach(func() {
			repo, err := store.NewRepository[ticketDatamodel.Ticket](ctx, openStore(), ticketDatamodel.Collection, ticketDatamodel.Indexes...)
			Expect(err).NotTo(HaveOccurred())
			service = crud.NewService(repo, ticket.Resource(), testLogger())
		})

		It("should open tickets with defaults and move their status", func() {
			res, err := service.Create(ctx, &ticket.Ticket{Subject: "Printer", RaisedByEmail: "a@office.com"})
			Expect(err).NotTo(HaveOccurred())

			t, err := service.Get(ctx, res.InsertedID)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Status).To(Equal(ticket.StatusOpen))
			Expect(t.Priority).To(Equal("medium"))

			_, err = service.SetStatus(ctx, res.InsertedID, "")
			Expect(err).To(MatchError(internal.ErrStatusRequired))

			_, err = service.SetStatus(ctx, res.InsertedID, "resolved")
			Expect(err).NotTo(HaveOccurred())

			docs, err := service.List(ctx, url.Values{"status": {"resolved"}, "raisedByEmail": {"a@office.com"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(docs).To(HaveLen(1))
		})
	})
})

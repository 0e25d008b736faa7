package jobpost_test

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/frahmantamala/office-management/internal"
	jobDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/jobpost"
	"github.com/frahmantamala/office-management/internal/core/events"
	"github.com/frahmantamala/office-management/internal/jobpost"
	"github.com/frahmantamala/office-management/internal/store"
	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/frahmantamala/office-management/internal/transport/transporttest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Service", func() {
	var (
		ctx     context.Context
		bus     *events.EventBus
		service *jobpost.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		bus = events.NewEventBus(testLogger())
		service = jobpost.NewService(openRepositories(), bus, testLogger())
	})

	post := func(title, deadline string) string {
		res, err := service.CreatePost(ctx, &jobpost.CreatePostRequest{
			Title:         title,
			Description:   "We are hiring",
			Deadline:      deadline,
			PostedByEmail: "hr@office.com",
		})
		Expect(err).NotTo(HaveOccurred())
		return res.InsertedID
	}

	apply := func(postID string, info map[string]any) (string, error) {
		res, err := service.Submit(ctx, &jobpost.SubmitApplicationRequest{JobPostID: postID, PersonalInfo: info})
		if err != nil {
			return "", err
		}
		return res.InsertedID, nil
	}

	Describe("posts", func() {
		It("should default status and custom fields", func() {
			id := post("Engineer", "2999-12-31")

			p, err := service.GetPost(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Status).To(Equal(jobDatamodel.PostActive))
			Expect(p.CustomFields).To(BeEmpty())
			Expect(p.Applications).To(BeZero())
		})

		It("should require the core fields", func() {
			_, err := service.CreatePost(ctx, &jobpost.CreatePostRequest{Title: "Engineer"})
			Expect(err).To(MatchError(internal.ErrRequiredFields))
		})

		It("should filter by status, with all meaning any", func() {
			a := post("Engineer", "2999-12-31")
			post("Designer", "2999-12-31")
			_, err := service.ArchivePost(ctx, a)
			Expect(err).NotTo(HaveOccurred())

			active, err := service.ListPosts(ctx, jobpost.PostFilter{Status: jobDatamodel.PostActive})
			Expect(err).NotTo(HaveOccurred())
			Expect(active).To(HaveLen(1))
			Expect(active[0].Title).To(Equal("Designer"))

			all, err := service.ListPosts(ctx, jobpost.PostFilter{Status: "all"})
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
		})

		It("should update only the given fields", func() {
			id := post("Engineer", "2999-12-31")
			title := "Senior Engineer"
			_, err := service.UpdatePost(ctx, id, &jobpost.UpdatePostRequest{
				Title:        &title,
				CustomFields: []map[string]any{{"label": "Portfolio"}},
			})
			Expect(err).NotTo(HaveOccurred())

			p, err := service.GetPost(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Title).To(Equal(title))
			Expect(p.Description).To(Equal("We are hiring"))
			Expect(p.CustomFields).To(HaveLen(1))
		})

		It("should report unknown posts", func() {
			_, err := service.GetPost(ctx, store.NewID())
			Expect(err).To(MatchError(internal.ErrJobPostNotFound))
			_, err = service.ArchivePost(ctx, store.NewID())
			Expect(err).To(MatchError(internal.ErrJobPostNotFound))
			_, err = service.DeletePost(ctx, store.NewID())
			Expect(err).To(MatchError(internal.ErrJobPostNotFound))
		})

		It("should refuse to delete a post with applications", func() {
			id := post("Engineer", "2999-12-31")
			_, err := apply(id, map[string]any{"name": "Rina"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.DeletePost(ctx, id)
			Expect(err).To(MatchError(internal.ErrJobPostHasApplications))

			empty := post("Designer", "2999-12-31")
			res, err := service.DeletePost(ctx, empty)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.DeletedCount).To(BeEquivalentTo(1))
		})

		It("should close active posts past their deadline", func() {
			expired := post("Engineer", "2000-01-01")
			post("Designer", "2999-12-31")

			n, err := service.CloseExpired(ctx, time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(1))

			p, err := service.GetPost(ctx, expired)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Status).To(Equal(jobDatamodel.PostClosed))

			n, err = service.CloseExpired(ctx, time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())
		})
	})

	Describe("applications", func() {
		It("should store defaults and count the submission", func() {
			postID := post("Engineer", "2999-12-31")
			id, err := apply(postID, map[string]any{"name": "Rina"})
			Expect(err).NotTo(HaveOccurred())

			app, err := service.GetApplication(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(app.Status).To(Equal(jobDatamodel.ApplicationPending))
			Expect(app.JobTitle).To(Equal("Engineer"))
			Expect(app.EmploymentHistory).To(BeEmpty())
			Expect(app.AppliedAt).NotTo(BeZero())

			p, err := service.GetPost(ctx, postID)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Applications).To(Equal(1))
		})

		It("should notify other subscribers of submissions", func() {
			seen := make(chan string, 1)
			bus.Subscribe(events.EventTypeApplicationSubmitted, func(_ context.Context, e events.Event) error {
				seen <- e.(*events.ApplicationSubmittedEvent).ApplicationID
				return nil
			})

			id, err := apply(post("Engineer", "2999-12-31"), map[string]any{"name": "Rina"})
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(Receive(Equal(id)))
		})

		It("should refuse closed posts and passed deadlines", func() {
			_, err := apply(store.NewID(), map[string]any{"name": "Rina"})
			Expect(err).To(MatchError(internal.ErrJobPostNotFound))

			archived := post("Engineer", "2999-12-31")
			_, err = service.ArchivePost(ctx, archived)
			Expect(err).NotTo(HaveOccurred())
			_, err = apply(archived, map[string]any{"name": "Rina"})
			Expect(err).To(MatchError(internal.ErrJobPostClosed))

			_, err = apply(post("Designer", "2000-01-01"), map[string]any{"name": "Rina"})
			Expect(err).To(MatchError(internal.ErrDeadlinePassed))

			_, err = apply(archived, nil)
			Expect(err).To(MatchError(internal.ErrRequiredFields))
		})

		It("should list by post and sort on request", func() {
			postID := post("Engineer", "2999-12-31")
			for _, applicant := range [][2]string{{"Budi", "1990-05-01"}, {"Ayu", "1995-01-20"}, {"Citra", "1988-11-11"}} {
				_, err := apply(postID, map[string]any{"name": applicant[0], "dateOfBirth": applicant[1]})
				Expect(err).NotTo(HaveOccurred())
			}

			_, err := service.ListApplications(ctx, jobpost.ApplicationFilter{})
			Expect(err).To(MatchError(internal.ErrJobPostIDRequired))

			apps, err := service.ListApplications(ctx, jobpost.ApplicationFilter{JobPostID: postID, Sort: "age"})
			Expect(err).NotTo(HaveOccurred())
			names := []any{}
			for _, a := range apps {
				names = append(names, a.PersonalInfo["name"])
			}
			Expect(names).To(Equal([]any{"Citra", "Budi", "Ayu"}))
		})

		It("should validate status changes", func() {
			id, err := apply(post("Engineer", "2999-12-31"), map[string]any{"name": "Rina"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.SetApplicationStatus(ctx, id, &jobpost.StatusRequest{Status: "hired"})
			Expect(err).To(MatchError(internal.ErrInvalidStatus))
			_, err = service.SetApplicationStatus(ctx, store.NewID(), &jobpost.StatusRequest{Status: "shortlisted"})
			Expect(err).To(MatchError(internal.ErrApplicationNotFound))

			_, err = service.SetApplicationStatus(ctx, id, &jobpost.StatusRequest{Status: "shortlisted"})
			Expect(err).NotTo(HaveOccurred())
			bus.Wait()

			shortlisted, err := service.ListApplications(ctx, jobpost.ApplicationFilter{JobPostID: mustPostID(ctx, service, id), Status: "shortlisted"})
			Expect(err).NotTo(HaveOccurred())
			Expect(shortlisted).To(HaveLen(1))
		})

		It("should announce status changes", func() {
			id, err := apply(post("Engineer", "2999-12-31"), map[string]any{"name": "Rina"})
			Expect(err).NotTo(HaveOccurred())

			changed := make(chan *events.ApplicationStatusEvent, 1)
			bus.Subscribe(events.EventTypeApplicationStatus, func(_ context.Context, e events.Event) error {
				changed <- e.(*events.ApplicationStatusEvent)
				return nil
			})

			_, err = service.SetApplicationStatus(ctx, id, &jobpost.StatusRequest{Status: "rejected"})
			Expect(err).NotTo(HaveOccurred())
			bus.Wait()

			var got *events.ApplicationStatusEvent
			Eventually(changed).Should(Receive(&got))
			Expect(got.ApplicationID).To(Equal(id))
			Expect(got.Status).To(Equal("rejected"))
		})

		It("should acknowledge report requests", func() {
			res, err := service.GenerateReport(ctx, &jobpost.ReportRequest{JobPostID: "abc"})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Status).To(Equal("processing"))
			Expect(res.ReportURL).To(HavePrefix("/reports/abc_"))
			Expect(res.ReportURL).To(HaveSuffix(".pdf"))

			_, err = service.GenerateReport(ctx, &jobpost.ReportRequest{})
			Expect(err).To(MatchError(internal.ErrJobPostIDRequired))
		})
	})

	Describe("handler", func() {
		var handler *jobpost.Handler

		BeforeEach(func() {
			handler = jobpost.NewHandler(transport.NewBaseHandler(testLogger()), service)
		})

		It("should answer 201 on create", func() {
			body := `{"title":"Engineer","description":"d","deadline":"2999-12-31","postedByEmail":"hr@office.com"}`
			w, res := transporttest.Serve(handler.CreatePost, transporttest.NewRequest(http.MethodPost, "/job-posts", body))
			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(res["insertedId"]).NotTo(BeEmpty())
		})

		It("should answer 400 for a post with applications", func() {
			id := post("Engineer", "2999-12-31")
			_, err := apply(id, map[string]any{"name": "Rina"})
			Expect(err).NotTo(HaveOccurred())

			w, res := transporttest.Serve(handler.DeletePost, transporttest.NewRequest(http.MethodDelete, "/job-posts/"+id, "", "id", id))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(res["message"]).To(ContainSubstring("Archive it instead"))
		})

		It("should answer 404 for an unknown application", func() {
			id := store.NewID()
			w, _ := transporttest.Serve(handler.GetApplication, transporttest.NewRequest(http.MethodGet, "/job-applications/"+id, "", "id", id))
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should list applications for a post", func() {
			id := post("Engineer", "2999-12-31")
			_, err := apply(id, map[string]any{"name": "Rina"})
			Expect(err).NotTo(HaveOccurred())

			w, _ := transporttest.Serve(handler.GetApplications, transporttest.NewRequest(http.MethodGet, "/job-applications?jobPostId="+id, ""))
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(transporttest.DecodeList(w)).To(HaveLen(1))
			Expect(strings.Contains(w.Body.String(), "Rina")).To(BeTrue())
		})
	})
})

func mustPostID(ctx context.Context, service *jobpost.Service, applicationID string) string {
	app, err := service.GetApplication(ctx, applicationID)
	Expect(err).NotTo(HaveOccurred())
	return app.JobPostID
}

package leave_test

import (
	"context"
	"net/http"

	"github.com/frahmantamala/office-management/internal"
	leaveDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/leave"
	"github.com/frahmantamala/office-management/internal/leave"
	"github.com/frahmantamala/office-management/internal/store"
	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/frahmantamala/office-management/internal/transport/transporttest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Leave", func() {
	var (
		ctx     context.Context
		service *leave.Service
		handler *leave.Handler
	)

	BeforeEach(func() {
		ctx = context.Background()
		service = leave.NewService(openRepository(), testLogger())
		handler = leave.NewHandler(transport.NewBaseHandler(testLogger()), service)
	})

	file := func(email string) string {
		res, err := service.Create(ctx, &leave.CreateLeaveRequest{Email: email, LeaveType: "casual", Days: 2})
		Expect(err).NotTo(HaveOccurred())
		return res.InsertedID
	}

	It("should file pending requests", func() {
		file("a@office.com")
		file("b@office.com")

		pending, err := service.Pending(ctx, "a@office.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(pending).To(HaveLen(1))
		Expect(pending[0].Status).To(Equal(leaveDatamodel.StatusPending))

		all, err := service.Pending(ctx, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(2))
	})

	It("should approve and reject", func() {
		a := file("a@office.com")
		b := file("a@office.com")

		_, err := service.Approve(ctx, a)
		Expect(err).NotTo(HaveOccurred())
		_, err = service.Reject(ctx, b)
		Expect(err).NotTo(HaveOccurred())

		mine, err := service.ByEmail(ctx, "a@office.com")
		Expect(err).NotTo(HaveOccurred())
		statuses := []string{mine[0].Status, mine[1].Status}
		Expect(statuses).To(ConsistOf(leaveDatamodel.StatusApproved, leaveDatamodel.StatusRejected))

		pending, err := service.Pending(ctx, "a@office.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(pending).To(BeEmpty())
	})

	It("should report an unknown request", func() {
		_, err := service.Approve(ctx, store.NewID())
		Expect(err).To(MatchError(internal.ErrLeaveNotFound))
	})

	It("should answer 400 without an email and 404 for an unknown id", func() {
		w, body := transporttest.Serve(handler.AddLeave, transporttest.NewRequest(http.MethodPost, "/add-leave", `{"leaveType":"sick"}`))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(body["message"]).To(Equal("Email is required"))

		id := store.NewID()
		w, body = transporttest.Serve(handler.RejectLeave, transporttest.NewRequest(http.MethodPatch, "/reject-leaves/"+id, "", "id", id))
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(body["message"]).To(Equal("Leave request not found"))
	})
})

package user_test

import (
	"context"

	"github.com/frahmantamala/office-management/internal"
	userDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/user"
	"github.com/frahmantamala/office-management/internal/store"
	"github.com/frahmantamala/office-management/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("User Service", func() {
	var (
		ctx     context.Context
		service *user.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		service = user.NewService(openRepository(), testLogger())
	})

	create := func(email string) string {
		res, err := service.Create(ctx, &user.CreateUserRequest{EmailAddress: email, FullName: "Karim"})
		Expect(err).NotTo(HaveOccurred())
		return res.InsertedID
	}

	It("should onboard a pending user", func() {
		id := create("a@office.com")

		u, err := service.Get(ctx, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(u.Status).To(Equal(userDatamodel.StatusPending))
		Expect(u.UserRole).To(Equal(userDatamodel.RoleUser))
		Expect(user.IsApproved(u)).To(BeFalse())
	})

	It("should reject a missing email and a duplicate email", func() {
		_, err := service.Create(ctx, &user.CreateUserRequest{FullName: "Karim"})
		Expect(err).To(MatchError(internal.ErrEmailAddressRequired))

		create("a@office.com")
		_, err = service.Create(ctx, &user.CreateUserRequest{EmailAddress: "a@office.com"})
		Expect(err).To(MatchError(internal.ErrUserExists))
	})

	It("should filter the listing by email", func() {
		create("a@office.com")
		create("b@office.com")

		all, err := service.List(ctx, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(2))

		one, err := service.List(ctx, "b@office.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(one).To(HaveLen(1))
		Expect(one[0].EmailAddress).To(Equal("b@office.com"))
	})

	It("should find by email and report unknown users", func() {
		create("a@office.com")

		u, err := service.ByEmail(ctx, "a@office.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(u.FullName).To(Equal("Karim"))

		_, err = service.ByEmail(ctx, "nobody@office.com")
		Expect(err).To(MatchError(internal.ErrUserNotFound))
		_, err = service.ByEmail(ctx, "")
		Expect(err).To(MatchError(internal.ErrEmailRequired))
		_, err = service.Get(ctx, store.NewID())
		Expect(err).To(MatchError(internal.ErrUserNotFound))
	})

	It("should merge updates and keep untouched fields", func() {
		id := create("a@office.com")
		phone := "0171"

		res, err := service.Upsert(ctx, id, &user.UpdateUserRequest{Phone: &phone})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.MatchedCount).To(BeNumerically("==", 1))

		u, err := service.Get(ctx, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(u.Phone).To(Equal("0171"))
		Expect(u.FullName).To(Equal("Karim"))
	})

	It("should create the user when the id is unknown", func() {
		id := store.NewID()
		email := "new@office.com"

		res, err := service.Upsert(ctx, id, &user.UpdateUserRequest{EmailAddress: &email})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.UpsertedCount).To(BeNumerically("==", 1))
		Expect(res.UpsertedID).To(Equal(id))

		u, err := service.Get(ctx, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(u.EmailAddress).To(Equal(email))
	})

	It("should approve with a role", func() {
		id := create("a@office.com")

		_, err := service.Approve(ctx, id, &user.ApproveRequest{UserRole: "sales"})
		Expect(err).NotTo(HaveOccurred())

		u, err := service.Get(ctx, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(u.UserRole).To(Equal("sales"))
		Expect(user.IsApproved(u)).To(BeTrue())
	})

	It("should delete", func() {
		id := create("a@office.com")

		res, err := service.Delete(ctx, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.DeletedCount).To(BeNumerically("==", 1))

		_, err = service.Get(ctx, id)
		Expect(err).To(MatchError(internal.ErrUserNotFound))
	})
})

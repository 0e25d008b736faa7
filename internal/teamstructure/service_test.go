package teamstructure_test

import (
	"context"

	"github.com/frahmantamala/office-management/internal"
	userDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/user"
	"github.com/frahmantamala/office-management/internal/store"
	"github.com/frahmantamala/office-management/internal/teamstructure"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Team Structure Service", func() {
	var (
		ctx     context.Context
		repos   teamstructure.Repositories
		service *teamstructure.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		repos = openRepositories()
		service = teamstructure.NewService(repos, testLogger())
	})

	seedUser := func(email, role string) string {
		res, err := repos.Users.Insert(ctx, &userDatamodel.User{EmailAddress: email, FullName: "Staff", UserRole: role})
		Expect(err).NotTo(HaveOccurred())
		return res.InsertedID
	}

	member := func(email string) *teamstructure.Member {
		m, err := repos.Members.FindOne(ctx, store.NewQuery().Eq("user_email", email))
		Expect(err).NotTo(HaveOccurred())
		return m
	}

	Describe("BatchUpdate", func() {
		It("should create new members and move existing ones", func() {
			a := seedUser("a@office.com", "sales")
			b := seedUser("b@office.com", "asm")
			_, err := service.Update(ctx, &teamstructure.UpdateMemberRequest{
				UserEmail: "b@office.com", UserName: "B", UserRole: "asm", ManagerEmail: "old@office.com",
			})
			Expect(err).NotTo(HaveOccurred())

			manager := "rsm@office.com"
			res, err := service.BatchUpdate(ctx, &teamstructure.BatchUpdateRequest{
				UserIDs:      []string{a, b, store.NewID()},
				ManagerEmail: &manager,
				ManagerName:  "Regional",
				ManagerRole:  "rsm",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Results.Created).To(Equal(1))
			Expect(res.Results.Updated).To(Equal(1))
			Expect(res.Results.Errors).To(BeEmpty())
			Expect(res.Message).To(Equal("Batch update completed. Updated: 1, Created: 1, Errors: 0"))

			Expect(member("a@office.com").ManagerEmail).To(Equal(manager))
			Expect(member("a@office.com").UserRole).To(Equal("sales"))
			Expect(member("b@office.com").ManagerRole).To(Equal("rsm"))
		})

		It("should accept an empty manager email", func() {
			a := seedUser("a@office.com", "sales")
			none := ""
			res, err := service.BatchUpdate(ctx, &teamstructure.BatchUpdateRequest{UserIDs: []string{a}, ManagerEmail: &none})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Results.Created).To(Equal(1))
		})

		It("should validate the request", func() {
			manager := "m@office.com"
			_, err := service.BatchUpdate(ctx, &teamstructure.BatchUpdateRequest{ManagerEmail: &manager})
			Expect(err).To(MatchError(internal.ErrUserIDsRequired))

			_, err = service.BatchUpdate(ctx, &teamstructure.BatchUpdateRequest{UserIDs: []string{"x"}})
			Expect(err).To(MatchError(internal.ErrManagerEmail))

			_, err = service.BatchUpdate(ctx, &teamstructure.BatchUpdateRequest{UserIDs: []string{store.NewID()}, ManagerEmail: &manager})
			Expect(err).To(MatchError(internal.ErrNoValidUsers))
		})
	})

	Describe("Update", func() {
		It("should insert then update the manager only", func() {
			req := &teamstructure.UpdateMemberRequest{UserEmail: "a@office.com", UserName: "A", UserRole: "sales", ManagerEmail: "m1@office.com"}
			res, err := service.Update(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.InsertedID).NotTo(BeEmpty())

			req.ManagerEmail = "m2@office.com"
			req.UserName = "Renamed"
			res, err = service.Update(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.MatchedCount).To(BeNumerically("==", 1))

			m := member("a@office.com")
			Expect(m.ManagerEmail).To(Equal("m2@office.com"))
			Expect(m.UserName).To(Equal("A"))
		})

		It("should require the member identity", func() {
			_, err := service.Update(ctx, &teamstructure.UpdateMemberRequest{UserEmail: "a@office.com"})
			Expect(err).To(MatchError(internal.ErrRequiredFields))
		})
	})

	Describe("Remove", func() {
		It("should remove a member once", func() {
			_, err := service.Update(ctx, &teamstructure.UpdateMemberRequest{UserEmail: "a@office.com", UserName: "A", UserRole: "sales"})
			Expect(err).NotTo(HaveOccurred())

			res, err := service.Remove(ctx, "a@office.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Message).To(Equal("User removed from team structure"))
			Expect(res.Result.DeletedCount).To(BeNumerically("==", 1))

			_, err = service.Remove(ctx, "a@office.com")
			Expect(err).To(MatchError(internal.ErrTeamMemberMissing))
		})
	})
})

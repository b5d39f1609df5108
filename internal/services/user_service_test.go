package services_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/backoffice/internal/domain/entities"
	domainerrors "github.com/rafabene/backoffice/internal/domain/errors"
	"github.com/rafabene/backoffice/internal/domain/repositories"
	"github.com/rafabene/backoffice/internal/domain/valueobjects"
	"github.com/rafabene/backoffice/internal/services"
)

var _ = Describe("UserService", func() {
	var (
		e     *env
		admin *entities.User
	)

	BeforeEach(func() {
		e = newEnv()
		admin = e.seedAdmin()
	})

	Describe("CreateUser", func() {
		input := func() services.CreateUserInput {
			return services.CreateUserInput{
				FirstName: "Duda",
				LastName:  "Rocha",
				Phone:     "555-0102",
				Email:     "duda@example.com",
				Password:  "secret123",
				Role:      "admin",
			}
		}

		It("creates the user and records an audit entry", func() {
			user, err := e.users.CreateUser(e.ctx, admin, input())

			Expect(err).NotTo(HaveOccurred())
			Expect(user.Role).To(Equal(entities.RoleAdmin))

			page, err := e.activity.List(e.ctx, 1, 10, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))

			entry := page.Items[0]
			Expect(entry.Entry.Action).To(Equal(entities.ActionUserCreated))
			Expect(*entry.Entry.ActorUserID).To(Equal(admin.ID))
			Expect(*entry.Entry.TargetUserID).To(Equal(user.ID))
			Expect(entry.Entry.Description).To(Equal("User Duda Rocha (duda@example.com) created"))
			Expect(e.publisher.Count()).To(Equal(1))
		})

		It("maps unknown roles to user", func() {
			in := input()
			in.Role = "superuser"
			user, err := e.users.CreateUser(e.ctx, admin, in)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Role).To(Equal(entities.RoleUser))
		})

		It("rejects an existing email", func() {
			in := input()
			in.Email = "admin@example.com"
			_, err := e.users.CreateUser(e.ctx, admin, in)
			Expect(err).To(MatchError(domainerrors.ErrEmailAlreadyExists))
			Expect(e.activityCount()).To(BeZero())
		})

		It("validates required fields and password length", func() {
			in := input()
			in.LastName = ""
			_, err := e.users.CreateUser(e.ctx, admin, in)
			Expect(err).To(MatchError(domainerrors.ErrMissingRequiredField))

			in = input()
			in.Password = "123"
			_, err = e.users.CreateUser(e.ctx, admin, in)
			Expect(err).To(MatchError(domainerrors.ErrPasswordTooShort))
		})
	})

	Describe("GetUser", func() {
		It("distinguishes malformed and unknown ids", func() {
			_, err := e.users.GetUser(e.ctx, "not-a-uuid")
			Expect(err).To(MatchError(domainerrors.ErrInvalidID))

			_, err = e.users.GetUser(e.ctx, valueobjects.NewID())
			Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
		})
	})

	Describe("UpdateUser", func() {
		var target *entities.User

		BeforeEach(func() {
			target = e.seedUser("Edu", "Melo", "edu@example.com", "secret123", entities.RoleUser)
		})

		It("updates profile fields and role without touching the password", func() {
			updated, err := e.users.UpdateUser(e.ctx, admin, target.ID, services.UpdateUserInput{
				FirstName: "Eduardo",
				LastName:  "Melo",
				Phone:     "555-0199",
				Email:     "eduardo@example.com",
				Role:      "admin",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.FirstName).To(Equal("Eduardo"))
			Expect(updated.Role).To(Equal(entities.RoleAdmin))

			stored, err := e.userRepo.FindByID(e.ctx, target.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Email.String()).To(Equal("eduardo@example.com"))
			Expect(stored.PasswordHash).To(Equal(target.PasswordHash))
			Expect(stored.CreatedAt.Equal(target.CreatedAt)).To(BeTrue())
		})

		It("rejects an email owned by another user", func() {
			_, err := e.users.UpdateUser(e.ctx, admin, target.ID, services.UpdateUserInput{
				FirstName: "Edu",
				LastName:  "Melo",
				Phone:     "555-0100",
				Email:     "admin@example.com",
			})
			Expect(err).To(MatchError(domainerrors.ErrEmailAlreadyExists))
		})

		It("requires all profile fields", func() {
			_, err := e.users.UpdateUser(e.ctx, admin, target.ID, services.UpdateUserInput{FirstName: "Edu"})
			Expect(err).To(MatchError(domainerrors.ErrAllFieldsRequired))
		})
	})

	Describe("DeleteUser", func() {
		It("removes the user and keeps the audit reference", func() {
			target := e.seedUser("Fabi", "Nunes", "fabi@example.com", "secret123", entities.RoleUser)

			Expect(e.users.DeleteUser(e.ctx, admin, target.ID)).To(Succeed())

			_, err := e.users.GetUser(e.ctx, target.ID)
			Expect(err).To(MatchError(domainerrors.ErrUserNotFound))

			page, err := e.activity.List(e.ctx, 1, 10, string(entities.ActionUserDeleted))
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))
			Expect(*page.Items[0].Entry.TargetUserID).To(Equal(target.ID))
			Expect(page.Items[0].Target).To(BeNil())
			Expect(page.Items[0].Actor.Email).To(Equal("admin@example.com"))
		})

		It("reports unknown users", func() {
			err := e.users.DeleteUser(e.ctx, admin, valueobjects.NewID())
			Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
		})
	})

	Describe("BulkDeleteUsers", func() {
		It("deletes the existing ids, audits each and reports the requested count", func() {
			a := e.seedUser("Gabi", "Alves", "gabi@example.com", "secret123", entities.RoleUser)
			b := e.seedUser("Hugo", "Reis", "hugo@example.com", "secret123", entities.RoleUser)
			missing := valueobjects.NewID()

			count, err := e.users.BulkDeleteUsers(e.ctx, admin, []string{a.ID, b.ID, missing})

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(3))

			remaining, err := e.userRepo.Count(e.ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(remaining).To(Equal(int64(1)))

			page, err := e.activity.List(e.ctx, 1, 10, string(entities.ActionUserDeleted))
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(2)))
			for _, item := range page.Items {
				Expect(item.Entry.Description).To(HaveSuffix("deleted via bulk delete"))
			}
		})

		It("ignores malformed ids", func() {
			a := e.seedUser("Gabi", "Alves", "gabi@example.com", "secret123", entities.RoleUser)

			count, err := e.users.BulkDeleteUsers(e.ctx, admin, []string{a.ID, "garbage"})
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
			Expect(e.activityCount()).To(Equal(int64(1)))
		})

		It("requires at least one id", func() {
			_, err := e.users.BulkDeleteUsers(e.ctx, admin, nil)
			Expect(err).To(MatchError(domainerrors.ErrNoIDsProvided))
		})
	})

	Describe("ListUsers", func() {
		BeforeEach(func() {
			for i := 1; i <= 14; i++ {
				e.seedUser(fmt.Sprintf("User%02d", i), "Test", fmt.Sprintf("user%02d@example.com", i), "secret123", entities.RoleUser)
			}
		})

		It("paginates the matching set", func() {
			page, err := e.users.ListUsers(e.ctx, repositories.ListQuery{Page: 2, Limit: 10})

			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(15)))
			Expect(page.Items).To(HaveLen(5))
			Expect(page.Pages()).To(Equal(2))
		})

		It("returns an empty page past the last one with the real total", func() {
			page, err := e.users.ListUsers(e.ctx, repositories.ListQuery{Page: 3, Limit: 10})

			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(BeEmpty())
			Expect(page.Total).To(Equal(int64(15)))
			Expect(page.Page).To(Equal(3))
			Expect(page.Pages()).To(Equal(2))
		})

		It("searches case-insensitively", func() {
			page, err := e.users.ListUsers(e.ctx, repositories.ListQuery{Search: "USER01", Limit: 10})

			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(1)))
			Expect(page.Items[0].Email.String()).To(Equal("user01@example.com"))
		})

		It("sorts by an allowed field", func() {
			page, err := e.users.ListUsers(e.ctx, repositories.ListQuery{
				Limit:     1,
				SortField: "firstName",
				SortOrder: repositories.SortAsc,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items[0].FirstName).To(Equal("Root"))
		})

		It("counts every user", func() {
			count, err := e.users.CountUsers(e.ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(15)))
		})
	})
})

package services_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/backoffice/internal/domain/entities"
	domainerrors "github.com/rafabene/backoffice/internal/domain/errors"
	"github.com/rafabene/backoffice/internal/infrastructure/security"
	"github.com/rafabene/backoffice/internal/services"
)

var _ = Describe("AuthService", func() {
	var e *env

	BeforeEach(func() {
		e = newEnv()
	})

	Describe("Register", func() {
		validInput := func() services.RegisterInput {
			return services.RegisterInput{
				FirstName: "Ana",
				LastName:  "Silva",
				Phone:     "555-0101",
				Email:     "ana@example.com",
				Password:  "secret123",
			}
		}

		It("creates a regular user with a hashed password", func() {
			user, err := e.auth.Register(e.ctx, validInput())

			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).NotTo(BeEmpty())
			Expect(user.Role).To(Equal(entities.RoleUser))
			Expect(user.PasswordHash).NotTo(Equal("secret123"))
			Expect(e.credentials.Verify("secret123", user.PasswordHash)).To(BeTrue())
		})

		It("rejects a duplicate email", func() {
			_, err := e.auth.Register(e.ctx, validInput())
			Expect(err).NotTo(HaveOccurred())

			_, err = e.auth.Register(e.ctx, validInput())
			Expect(err).To(MatchError(domainerrors.ErrEmailRegistered))

			count, err := e.userRepo.Count(e.ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})

		It("rejects missing fields and short passwords", func() {
			input := validInput()
			input.Phone = "  "
			_, err := e.auth.Register(e.ctx, input)
			Expect(err).To(MatchError(domainerrors.ErrRegistrationInvalid))

			input = validInput()
			input.Password = "12345"
			_, err = e.auth.Register(e.ctx, input)
			Expect(err).To(MatchError(domainerrors.ErrRegistrationInvalid))
		})

		It("rejects a malformed email", func() {
			input := validInput()
			input.Email = "not-an-email"
			_, err := e.auth.Register(e.ctx, input)
			Expect(err).To(MatchError(domainerrors.ErrInvalidEmail))
		})

		It("does not write to the audit log", func() {
			_, err := e.auth.Register(e.ctx, validInput())
			Expect(err).NotTo(HaveOccurred())
			Expect(e.activityCount()).To(BeZero())
		})
	})

	Describe("Login", func() {
		var user *entities.User

		BeforeEach(func() {
			user = e.seedUser("Bia", "Costa", "bia@example.com", "secret123", entities.RoleUser)
		})

		It("issues a token that resolves to the user", func() {
			session, err := e.auth.Login(e.ctx, "bia@example.com", "secret123")

			Expect(err).NotTo(HaveOccurred())
			Expect(session.User.ID).To(Equal(user.ID))
			Expect(session.ExpiresIn).To(Equal(time.Hour))

			claims, err := e.tokens.Verify(session.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(user.ID))
		})

		It("returns the same error for unknown email and wrong password", func() {
			_, errUnknown := e.auth.Login(e.ctx, "nobody@example.com", "secret123")
			_, errWrong := e.auth.Login(e.ctx, "bia@example.com", "wrong-password")

			Expect(errUnknown).To(MatchError(domainerrors.ErrInvalidCredentials))
			Expect(errWrong).To(MatchError(domainerrors.ErrInvalidCredentials))
		})

		It("requires email and password", func() {
			_, err := e.auth.Login(e.ctx, "", "secret123")
			Expect(err).To(MatchError(domainerrors.ErrCredentialsRequired))
		})
	})

	Describe("Me", func() {
		It("returns the user behind a valid token", func() {
			user := e.seedAdmin()
			token, err := e.tokens.Issue(user.ID)
			Expect(err).NotTo(HaveOccurred())

			me, err := e.auth.Me(e.ctx, token)
			Expect(err).NotTo(HaveOccurred())
			Expect(me.Email.String()).To(Equal("admin@example.com"))
		})

		It("distinguishes missing and invalid tokens", func() {
			_, err := e.auth.Me(e.ctx, "")
			Expect(err).To(MatchError(domainerrors.ErrNoSessionToken))

			_, err = e.auth.Me(e.ctx, "garbage")
			Expect(err).To(MatchError(domainerrors.ErrInvalidSession))
		})

		It("reports a deleted user as not found", func() {
			user := e.seedAdmin()
			token, err := e.tokens.Issue(user.ID)
			Expect(err).NotTo(HaveOccurred())
			_, err = e.userRepo.Delete(e.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = e.auth.Me(e.ctx, token)
			Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
		})
	})
})

var _ = Describe("AuthorizationGuard", func() {
	var e *env

	BeforeEach(func() {
		e = newEnv()
	})

	It("rejects a missing or invalid token with 401", func() {
		decision := e.guard.RequireAdmin(e.ctx, "")
		Expect(decision.OK).To(BeFalse())
		Expect(decision.Status).To(Equal(401))
		Expect(decision.Message).To(Equal("Not authenticated"))

		decision = e.guard.RequireAdmin(e.ctx, "not-a-jwt")
		Expect(decision.Status).To(Equal(401))
	})

	It("rejects a token signed with another secret", func() {
		user := e.seedAdmin()
		other, err := security.NewTokenService("another-secret-key-with-32-chars-min", time.Hour)
		Expect(err).NotTo(HaveOccurred())
		token, err := other.Issue(user.ID)
		Expect(err).NotTo(HaveOccurred())

		Expect(e.guard.RequireAdmin(e.ctx, token).Status).To(Equal(401))
	})

	It("rejects a non-admin with 403", func() {
		user := e.seedUser("Caio", "Lima", "caio@example.com", "secret123", entities.RoleUser)
		token, err := e.tokens.Issue(user.ID)
		Expect(err).NotTo(HaveOccurred())

		decision := e.guard.RequireAdmin(e.ctx, token)
		Expect(decision.OK).To(BeFalse())
		Expect(decision.Status).To(Equal(403))
		Expect(decision.Message).To(Equal("Admin only"))
		Expect(decision.User.ID).To(Equal(user.ID))
	})

	It("uses the current role from the database", func() {
		user := e.seedUser("Caio", "Lima", "caio@example.com", "secret123", entities.RoleUser)
		token, err := e.tokens.Issue(user.ID)
		Expect(err).NotTo(HaveOccurred())

		user.Role = entities.RoleAdmin
		Expect(e.userRepo.Update(e.ctx, user)).To(Succeed())

		decision := e.guard.RequireAdmin(e.ctx, token)
		Expect(decision.OK).To(BeTrue())
		Expect(decision.User.IsAdmin()).To(BeTrue())
	})

	It("rejects a token whose user was deleted", func() {
		user := e.seedAdmin()
		token, err := e.tokens.Issue(user.ID)
		Expect(err).NotTo(HaveOccurred())
		_, err = e.userRepo.Delete(e.ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())

		Expect(e.guard.RequireAdmin(e.ctx, token).Status).To(Equal(401))
	})
})

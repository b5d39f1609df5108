package services_test

import (
	"errors"
	"net/url"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/backoffice/internal/domain/entities"
	domainerrors "github.com/rafabene/backoffice/internal/domain/errors"
	"github.com/rafabene/backoffice/internal/domain/repositories"
	"github.com/rafabene/backoffice/internal/services"
)

var _ = Describe("PasswordResetService", func() {
	var (
		e    *env
		user *entities.User
	)

	BeforeEach(func() {
		e = newEnv()
		user = e.seedUser("Iris", "Dias", "iris@example.com", "old-password", entities.RoleUser)
	})

	tokenFromMail := func() string {
		sent := e.mailer.Sent()
		Expect(sent).NotTo(BeEmpty())

		link, err := url.Parse(sent[len(sent)-1].ResetURL)
		Expect(err).NotTo(HaveOccurred())
		Expect(link.Path).To(Equal("/reset-password"))
		return link.Query().Get("token")
	}

	Describe("RequestReset", func() {
		It("stores a token and mails the link", func() {
			Expect(e.reset.RequestReset(e.ctx, "iris@example.com")).To(Succeed())

			token := tokenFromMail()
			Expect(token).To(HaveLen(64))
			Expect(e.mailer.Sent()[0].To).To(Equal("iris@example.com"))

			stored, err := e.userRepo.FindByID(e.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*stored.ResetToken).To(Equal(token))
			Expect(stored.ResetTokenExpiry.After(time.Now())).To(BeTrue())
		})

		It("answers the same way for an unknown email and stores no token", func() {
			e.seedAdmin()

			Expect(e.reset.RequestReset(e.ctx, "nobody@example.com")).To(Succeed())
			Expect(e.mailer.Sent()).To(BeEmpty())

			all, err := e.users.ListUsers(e.ctx, repositories.ListQuery{Limit: repositories.MaxLimit})
			Expect(err).NotTo(HaveOccurred())
			Expect(all.Items).To(HaveLen(2))
			for _, u := range all.Items {
				Expect(u.ResetToken).To(BeNil(), "user %s got a reset token", u.Email)
				Expect(u.ResetTokenExpiry).To(BeNil())
			}
		})

		It("swallows mail failures and counts them", func() {
			e.mailer.err = errors.New("smtp down")

			Expect(e.reset.RequestReset(e.ctx, "iris@example.com")).To(Succeed())
			Expect(e.metrics.Failures(services.ChannelMail)).To(Equal(1))
		})

		It("requires an email", func() {
			Expect(e.reset.RequestReset(e.ctx, " ")).To(MatchError(domainerrors.ErrEmailRequired))
		})
	})

	Describe("ConsumeReset", func() {
		It("changes the password once", func() {
			Expect(e.reset.RequestReset(e.ctx, "iris@example.com")).To(Succeed())
			token := tokenFromMail()

			Expect(e.reset.ConsumeReset(e.ctx, token, "new-password")).To(Succeed())

			_, err := e.auth.Login(e.ctx, "iris@example.com", "new-password")
			Expect(err).NotTo(HaveOccurred())
			_, err = e.auth.Login(e.ctx, "iris@example.com", "old-password")
			Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))

			err = e.reset.ConsumeReset(e.ctx, token, "another-password")
			Expect(err).To(MatchError(domainerrors.ErrInvalidResetToken))

			stored, err := e.userRepo.FindByID(e.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.ResetToken).To(BeNil())
			Expect(stored.ResetTokenExpiry).To(BeNil())
		})

		It("rejects an expired token", func() {
			Expect(e.userRepo.SetResetToken(e.ctx, user.ID, "expired-token", time.Now().Add(-time.Minute))).To(Succeed())

			err := e.reset.ConsumeReset(e.ctx, "expired-token", "new-password")
			Expect(err).To(MatchError(domainerrors.ErrInvalidResetToken))

			_, err = e.auth.Login(e.ctx, "iris@example.com", "old-password")
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects an unknown token", func() {
			err := e.reset.ConsumeReset(e.ctx, "unknown", "new-password")
			Expect(err).To(MatchError(domainerrors.ErrInvalidResetToken))
		})

		It("validates the input before touching the database", func() {
			Expect(e.reset.ConsumeReset(e.ctx, "", "new-password")).To(MatchError(domainerrors.ErrResetInputInvalid))
			Expect(e.reset.ConsumeReset(e.ctx, "token", "123")).To(MatchError(domainerrors.ErrResetInputInvalid))
		})
	})
})

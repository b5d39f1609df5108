package services_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/domain/repositories"
	"github.com/rafabene/backoffice/internal/services"
	"github.com/rafabene/backoffice/internal/testutil"
)

// failingActivityRepo simula um banco de auditoria fora do ar
type failingActivityRepo struct {
	repositories.ActivityRepository
}

func (failingActivityRepo) Create(context.Context, *entities.ActivityLog) error {
	return errors.New("audit store unavailable")
}

var _ = Describe("ActivityService", func() {
	var (
		e     *env
		admin *entities.User
	)

	BeforeEach(func() {
		e = newEnv()
		admin = e.seedAdmin()
	})

	It("resolves actor and target names in one page", func() {
		target, err := e.users.CreateUser(e.ctx, admin, services.CreateUserInput{
			FirstName: "Juca",
			LastName:  "Prado",
			Phone:     "555-0103",
			Email:     "juca@example.com",
			Password:  "secret123",
		})
		Expect(err).NotTo(HaveOccurred())

		page, err := e.activity.List(e.ctx, 1, 0, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(page.Limit).To(Equal(50))
		Expect(page.Items).To(HaveLen(1))
		Expect(page.Items[0].Actor).To(Equal(&services.UserRef{Name: "Root Admin", Email: "admin@example.com"}))
		Expect(page.Items[0].Target).To(Equal(&services.UserRef{Name: "Juca Prado", Email: target.Email.String()}))
	})

	It("filters by action", func() {
		_, err := e.blogs.CreateBlog(e.ctx, admin, services.BlogInput{Title: "Filtered"})
		Expect(err).NotTo(HaveOccurred())
		_, err = e.users.CreateUser(e.ctx, admin, services.CreateUserInput{
			FirstName: "Lia", LastName: "Rosa", Phone: "1", Email: "lia@example.com", Password: "secret123",
		})
		Expect(err).NotTo(HaveOccurred())

		page, err := e.activity.List(e.ctx, 1, 10, string(entities.ActionBlogCreated))
		Expect(err).NotTo(HaveOccurred())
		Expect(page.Total).To(Equal(int64(1)))
		Expect(page.Items[0].Target).To(BeNil())
	})
})

var _ = Describe("ActivityRecorder", func() {
	It("never fails the caller when the audit store is down", func() {
		e := newEnv()
		recorder := services.NewActivityRecorder(failingActivityRepo{}, e.publisher, e.metrics, testutil.NopLogger())

		Expect(func() {
			recorder.Record(e.ctx, services.ActivityInput{Action: entities.ActionUserCreated})
		}).NotTo(Panic())
		Expect(e.metrics.Failures(services.ChannelAudit)).To(Equal(1))
		Expect(e.publisher.Count()).To(BeZero())
	})
})

var _ = Describe("DashboardService", func() {
	It("summarizes counts and recent activity", func() {
		e := newEnv()
		admin := e.seedAdmin()
		for _, title := range []string{"One", "Two", "Three", "Four", "Five", "Six"} {
			_, err := e.blogs.CreateBlog(e.ctx, admin, services.BlogInput{Title: title})
			Expect(err).NotTo(HaveOccurred())
		}

		summary, err := e.dashboard.Summary(e.ctx, admin)
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.UserCount).To(Equal(int64(1)))
		Expect(summary.BlogCount).To(Equal(int64(6)))
		Expect(summary.BlogsByStatus[entities.BlogStatusDraft]).To(Equal(int64(6)))
		Expect(summary.RecentActivity).To(HaveLen(5))
	})

	It("hides the audit log from non-admin viewers", func() {
		e := newEnv()
		admin := e.seedAdmin()
		_, err := e.blogs.CreateBlog(e.ctx, admin, services.BlogInput{Title: "Visible count"})
		Expect(err).NotTo(HaveOccurred())

		member := &entities.User{Role: entities.RoleUser}
		summary, err := e.dashboard.Summary(e.ctx, member)
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.BlogCount).To(Equal(int64(1)))
		Expect(summary.RecentActivity).To(BeNil())

		summary, err = e.dashboard.Summary(e.ctx, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.RecentActivity).To(BeNil())
	})
})

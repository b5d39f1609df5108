package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/backoffice/internal/domain/entities"
	domainerrors "github.com/rafabene/backoffice/internal/domain/errors"
	"github.com/rafabene/backoffice/internal/domain/repositories"
	"github.com/rafabene/backoffice/internal/domain/valueobjects"
	"github.com/rafabene/backoffice/internal/services"
)

var _ = Describe("Slugify", func() {
	DescribeTable("derives URL-safe slugs",
		func(title, expected string) {
			Expect(services.Slugify(title)).To(Equal(expected))
		},
		Entry("plain title", "Hello World", "hello-world"),
		Entry("punctuation", "Hello, World!", "hello-world"),
		Entry("accents", "Ação Rápida", "acao-rapida"),
		Entry("already a slug", "hello-world", "hello-world"),
		Entry("nothing usable", "!!!", "post"),
	)
})

var _ = Describe("BlogService", func() {
	var (
		e     *env
		admin *entities.User
	)

	BeforeEach(func() {
		e = newEnv()
		admin = e.seedAdmin()
	})

	create := func(input services.BlogInput) *entities.BlogPost {
		post, err := e.blogs.CreateBlog(e.ctx, admin, input)
		Expect(err).NotTo(HaveOccurred())
		return post
	}

	Describe("CreateBlog", func() {
		It("derives unique slugs from the title", func() {
			first := create(services.BlogInput{Title: "Hello World"})
			second := create(services.BlogInput{Title: "Hello World"})
			third := create(services.BlogInput{Title: "Hello, World!"})

			Expect(first.Slug).To(Equal("hello-world"))
			Expect(second.Slug).To(Equal("hello-world-1"))
			Expect(third.Slug).To(Equal("hello-world-2"))
		})

		It("normalizes a requested slug", func() {
			post := create(services.BlogInput{Title: "Anything", Slug: "My Custom Slug"})
			Expect(post.Slug).To(Equal("my-custom-slug"))
		})

		It("applies defaults", func() {
			post := create(services.BlogInput{Title: "Draft post", Tags: []string{" go ", "", "go", "web"}})

			Expect(post.Status).To(Equal(entities.BlogStatusDraft))
			Expect(post.PublishedAt).To(BeNil())
			Expect(post.AuthorName).To(Equal("Admin"))
			Expect(post.AuthorID).To(Equal(admin.ID))
			Expect(post.Tags).To(Equal([]string{"go", "web"}))
		})

		It("stamps publishedAt when created as published", func() {
			post := create(services.BlogInput{Title: "Live", Status: "published"})
			Expect(post.PublishedAt).NotTo(BeNil())
		})

		It("records an audit entry for the blog", func() {
			post := create(services.BlogInput{Title: "Audited"})

			page, err := e.activity.List(e.ctx, 1, 10, string(entities.ActionBlogCreated))
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))
			Expect(page.Items[0].Entry.ResourceType).To(Equal(entities.ResourceBlog))
			Expect(page.Items[0].Entry.ResourceID).To(Equal(post.ID))
			Expect(page.Items[0].Entry.TargetUserID).To(BeNil())
			Expect(page.Items[0].Entry.Description).To(Equal("Blog Audited (audited) created"))
		})

		It("requires a title", func() {
			_, err := e.blogs.CreateBlog(e.ctx, admin, services.BlogInput{Title: "   "})
			Expect(err).To(MatchError(domainerrors.ErrTitleRequired))
		})
	})

	Describe("UpdateBlog", func() {
		var post *entities.BlogPost

		fullInput := func(title string) services.BlogInput {
			return services.BlogInput{
				Title:           title,
				Content:         "Body",
				MetaTitle:       "Meta",
				MetaDescription: "Description",
				Status:          "published",
			}
		}

		BeforeEach(func() {
			post = create(services.BlogInput{Title: "Original"})
		})

		It("keeps its own slug when the title is unchanged", func() {
			updated, err := e.blogs.UpdateBlog(e.ctx, admin, post.ID, fullInput("Original"))

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Slug).To(Equal("original"))
			Expect(updated.PublishedAt).NotTo(BeNil())
		})

		It("reallocates the slug when the title changes", func() {
			create(services.BlogInput{Title: "Renamed"})

			updated, err := e.blogs.UpdateBlog(e.ctx, admin, post.ID, fullInput("Renamed"))
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Slug).To(Equal("renamed-1"))
		})

		It("preserves the first publication date", func() {
			first, err := e.blogs.UpdateBlog(e.ctx, admin, post.ID, fullInput("Original"))
			Expect(err).NotTo(HaveOccurred())
			publishedAt := *first.PublishedAt

			again, err := e.blogs.UpdateBlog(e.ctx, admin, post.ID, fullInput("Original"))
			Expect(err).NotTo(HaveOccurred())
			Expect(again.PublishedAt.Equal(publishedAt)).To(BeTrue())
		})

		It("requires the editable fields", func() {
			_, err := e.blogs.UpdateBlog(e.ctx, admin, post.ID, services.BlogInput{Title: "Only title"})
			Expect(err).To(MatchError(domainerrors.ErrAllFieldsRequired))
		})

		It("reports unknown posts", func() {
			_, err := e.blogs.UpdateBlog(e.ctx, admin, valueobjects.NewID(), fullInput("Ghost"))
			Expect(err).To(MatchError(domainerrors.ErrBlogNotFound))
		})
	})

	Describe("deleting", func() {
		It("deletes a single post", func() {
			post := create(services.BlogInput{Title: "Doomed"})

			Expect(e.blogs.DeleteBlog(e.ctx, admin, post.ID)).To(Succeed())
			_, err := e.blogs.GetBlog(e.ctx, post.ID)
			Expect(err).To(MatchError(domainerrors.ErrBlogNotFound))
		})

		It("bulk deletes and reports the requested count", func() {
			a := create(services.BlogInput{Title: "A"})
			b := create(services.BlogInput{Title: "B"})

			count, err := e.blogs.BulkDeleteBlogs(e.ctx, admin, []string{a.ID, b.ID, valueobjects.NewID()})
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(3))

			total, err := e.blogs.CountBlogs(e.ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(BeZero())

			page, err := e.activity.List(e.ctx, 1, 10, string(entities.ActionBlogDeleted))
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(2)))
		})
	})

	Describe("ListBlogs", func() {
		BeforeEach(func() {
			create(services.BlogInput{Title: "Go generics", Tags: []string{"golang"}})
			create(services.BlogInput{Title: "Gin routing", Tags: []string{"web"}, Status: "published"})
			create(services.BlogInput{Title: "Cooking", Excerpt: "Nothing technical"})
		})

		It("searches titles and tags", func() {
			byTitle, err := e.blogs.ListBlogs(e.ctx, repositories.ListQuery{Search: "gin"})
			Expect(err).NotTo(HaveOccurred())
			Expect(byTitle.Total).To(Equal(int64(1)))

			byTag, err := e.blogs.ListBlogs(e.ctx, repositories.ListQuery{Search: "golang"})
			Expect(err).NotTo(HaveOccurred())
			Expect(byTag.Total).To(Equal(int64(1)))
			Expect(byTag.Items[0].Title).To(Equal("Go generics"))
		})

		It("counts by status", func() {
			counts, err := e.blogs.CountByStatus(e.ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(counts[entities.BlogStatusDraft]).To(Equal(int64(2)))
			Expect(counts[entities.BlogStatusPublished]).To(Equal(int64(1)))
		})
	})
})

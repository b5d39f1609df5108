package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/domain/repositories"
	"github.com/rafabene/backoffice/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/backoffice/internal/testutil"
)

func newPost(title, slug string, tags ...string) *entities.BlogPost {
	return &entities.BlogPost{
		Title:      title,
		Slug:       slug,
		Excerpt:    "excerpt of " + title,
		Content:    "content",
		Status:     entities.BlogStatusDraft,
		Tags:       tags,
		AuthorName: entities.DefaultAuthorName,
	}
}

func TestBlogRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewBlogRepository(testutil.NewDatabase(t))

	post := newPost("Hello World", "hello-world", "go", "web")
	post.SEO = entities.SEO{MetaTitle: "Hello", MetaDescription: "A post"}
	require.NoError(t, repo.Create(ctx, post))

	found, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, []string{"go", "web"}, found.Tags)
	assert.Equal(t, "Hello", found.SEO.MetaTitle)
	assert.Nil(t, found.PublishedAt)

	published := time.Now().UTC()
	found.ApplyStatus(entities.BlogStatusPublished, published)
	found.Title = "Hello Again"
	require.NoError(t, repo.Update(ctx, found))

	again, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello Again", again.Title)
	assert.Equal(t, entities.BlogStatusPublished, again.Status)
	require.NotNil(t, again.PublishedAt)
	assert.Equal(t, published.UnixNano(), again.PublishedAt.UnixNano())

	deleted, err := repo.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	gone, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestBlogRepository_Slugs(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewBlogRepository(testutil.NewDatabase(t))

	post := newPost("Hello", "hello")
	require.NoError(t, repo.Create(ctx, post))

	exists, err := repo.ExistsBySlug(ctx, "hello", "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySlug(ctx, "hello", post.ID)
	require.NoError(t, err)
	assert.False(t, exists, "o próprio post não conta")

	err = repo.Create(ctx, newPost("Other", "hello"))
	assert.ErrorIs(t, err, repositories.ErrDuplicateKey)
}

func TestBlogRepository_ListAndCounts(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewBlogRepository(testutil.NewDatabase(t))

	posts := []*entities.BlogPost{
		newPost("Alpha", "alpha", "golang"),
		newPost("Beta", "beta", "rust"),
		newPost("Gamma", "gamma", "golang", "db"),
	}
	posts[1].Status = entities.BlogStatusPublished
	for _, p := range posts {
		require.NoError(t, repo.Create(ctx, p))
	}

	result, err := repo.List(ctx, repositories.ListQuery{Search: "GOLANG"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, 1, result.Pages())

	// a busca em tags olha cada elemento, não o JSON serializado
	for _, punct := range []string{",", `"`, "[", `","`} {
		result, err = repo.List(ctx, repositories.ListQuery{Search: punct})
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Total, "search %q matched JSON punctuation", punct)
	}
	result, err = repo.List(ctx, repositories.ListQuery{Search: "US"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Beta", result.Items[0].Title)

	result, err = repo.List(ctx, repositories.ListQuery{SortField: "title", SortOrder: repositories.SortAsc, Limit: 2})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Alpha", result.Items[0].Title)
	assert.Equal(t, 2, result.Pages())

	// mais recente primeiro por padrão
	result, err = repo.List(ctx, repositories.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Gamma", result.Items[0].Title)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[entities.BlogStatusDraft])
	assert.Equal(t, int64(1), counts[entities.BlogStatusPublished])

	n, err := repo.DeleteByIDs(ctx, []string{posts[0].ID, posts[1].ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

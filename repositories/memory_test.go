package repositories

import (
	"context"
	"testing"

	"blog-engagement/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newArticle(name string) *models.Article {
	return &models.Article{
		Name:      name,
		Title:     "Title " + name,
		Content:   "Content",
		Thumbnail: "t.png",
		AuthorID:  1,
	}
}

func TestMemoryArticleCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	db := NewMemoryDB()
	repo := NewMemoryArticleRepository(db)

	article := newArticle("intro-go")
	require.NoError(t, repo.Create(ctx, article))
	assert.NotZero(t, article.ID)
	assert.False(t, article.CreatedAt.IsZero())

	byName, err := repo.GetByName(ctx, "intro-go")
	require.NoError(t, err)
	assert.Equal(t, article.ID, byName.ID)

	_, err = repo.GetByID(ctx, article.ID+1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Create(ctx, newArticle("intro-go"))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.Len(t, db.articles, 1)
}

func TestMemoryArticleSnapshotsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryArticleRepository(NewMemoryDB())

	article := newArticle("intro-go")
	require.NoError(t, repo.Create(ctx, article))

	first, err := repo.GetByID(ctx, article.ID)
	require.NoError(t, err)
	first.Title = "changed"

	second, err := repo.GetByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "Title intro-go", second.Title)
}

func TestMemoryArticleUpdateKeepsName(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryArticleRepository(NewMemoryDB())

	article := newArticle("intro-go")
	require.NoError(t, repo.Create(ctx, article))

	article.Name = "renamed"
	article.Title = "New title"
	require.NoError(t, repo.Update(ctx, article))

	stored, err := repo.GetByName(ctx, "intro-go")
	require.NoError(t, err)
	assert.Equal(t, "New title", stored.Title)

	_, err = repo.GetByName(ctx, "renamed")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMemoryDeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := NewMemoryDB()
	articles := NewMemoryArticleRepository(db)
	comments := NewMemoryCommentRepository(db)
	likes := NewMemoryLikeRepository(db)

	article := newArticle("intro-go")
	require.NoError(t, articles.Create(ctx, article))

	comment := &models.Comment{ArticleID: article.ID, UserID: 2, Username: "bob", Text: "hi"}
	require.NoError(t, comments.Append(ctx, comment))
	_, _, err := likes.Toggle(ctx, article.ID, 2)
	require.NoError(t, err)

	require.NoError(t, articles.Delete(ctx, article.ID))

	_, err = comments.GetByID(ctx, comment.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	likers, err := likes.LikedBy(ctx, article.ID)
	require.NoError(t, err)
	assert.Empty(t, likers)
	assert.Empty(t, db.names)

	assert.ErrorIs(t, articles.Delete(ctx, article.ID), gorm.ErrRecordNotFound)
}

func TestMemoryCommentAppendRequiresArticle(t *testing.T) {
	ctx := context.Background()
	db := NewMemoryDB()
	comments := NewMemoryCommentRepository(db)

	err := comments.Append(ctx, &models.Comment{ArticleID: 9, UserID: 2, Text: "orphan"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, db.comments)
}

func TestMemoryCommentsKeepOrder(t *testing.T) {
	ctx := context.Background()
	db := NewMemoryDB()
	articles := NewMemoryArticleRepository(db)
	comments := NewMemoryCommentRepository(db)

	article := newArticle("intro-go")
	require.NoError(t, articles.Create(ctx, article))
	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, comments.Append(ctx, &models.Comment{ArticleID: article.ID, UserID: 2, Text: text}))
	}

	listed, err := comments.ListByArticle(ctx, article.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "one", listed[0].Text)
	assert.Equal(t, "three", listed[2].Text)

	stored, err := articles.GetByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Comments, 3)
}

func TestMemoryLikeToggle(t *testing.T) {
	ctx := context.Background()
	db := NewMemoryDB()
	articles := NewMemoryArticleRepository(db)
	likes := NewMemoryLikeRepository(db)

	article := newArticle("intro-go")
	require.NoError(t, articles.Create(ctx, article))

	count, liked, err := likes.Toggle(ctx, article.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, liked)

	count, liked, err = likes.Toggle(ctx, article.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.True(t, liked)

	count, liked, err = likes.Toggle(ctx, article.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.False(t, liked)

	likers, err := likes.LikedBy(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{3}, likers)

	_, _, err = likes.Toggle(ctx, 99, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMemoryLikeReconcile(t *testing.T) {
	ctx := context.Background()
	db := NewMemoryDB()
	articles := NewMemoryArticleRepository(db)
	likes := NewMemoryLikeRepository(db)

	article := newArticle("intro-go")
	require.NoError(t, articles.Create(ctx, article))
	_, _, err := likes.Toggle(ctx, article.ID, 2)
	require.NoError(t, err)

	fixed, err := likes.Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, fixed)

	db.articles[article.ID].Likes = 5

	fixed, err = likes.Reconcile(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, fixed)
	assert.Equal(t, 1, db.articles[article.ID].Likes)
}

func TestMemoryGetListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryArticleRepository(NewMemoryDB())

	published := newArticle("published")
	published.Tag = "Gaming"
	draft := newArticle("draft")
	draft.IsDraft = true
	other := newArticle("other")
	other.AuthorID = 2
	for _, a := range []*models.Article{published, draft, other} {
		require.NoError(t, repo.Create(ctx, a))
	}

	params := models.ArticleListParams{Page: 1, Limit: 10}

	list, total, err := repo.GetList(ctx, params, true)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, list, 2)

	params.AuthorID = 1
	list, total, err = repo.GetList(ctx, params, false)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, list, 2)

	params = models.ArticleListParams{Tag: "Gaming", Page: 1, Limit: 10}
	list, _, err = repo.GetList(ctx, params, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "published", list[0].Name)

	params = models.ArticleListParams{Page: 5, Limit: 10}
	list, total, err = repo.GetList(ctx, params, true)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Empty(t, list)
}

func TestMemoryGetListCountsLedger(t *testing.T) {
	ctx := context.Background()
	db := NewMemoryDB()
	articles := NewMemoryArticleRepository(db)
	likes := NewMemoryLikeRepository(db)

	article := newArticle("intro-go")
	require.NoError(t, articles.Create(ctx, article))
	for _, userID := range []uint{2, 3} {
		_, _, err := likes.Toggle(ctx, article.ID, userID)
		require.NoError(t, err)
	}
	db.articles[article.ID].Likes = 40

	list, _, err := articles.GetList(ctx, models.ArticleListParams{Page: 1, Limit: 10}, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Likes)
}

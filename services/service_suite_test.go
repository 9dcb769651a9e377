package services_test

import (
	"context"
	"sync/atomic"
	"time"

	"blog-engagement/cache"
	"blog-engagement/helper"
	"blog-engagement/models"
	"blog-engagement/repositories"
	"blog-engagement/services"

	"github.com/stretchr/testify/suite"
)

var (
	alice = &models.Identity{UserID: 1, Username: "alice"}
	bob   = &models.Identity{UserID: 2, Username: "bob"}
	carol = &models.Identity{UserID: 3, Username: "carol"}
)

// interleavingRepository runs a one-shot hook after a lookup has loaded its
// row and before the caller sees it.
type interleavingRepository struct {
	repositories.ArticleRepository
	afterGetByName atomic.Pointer[func()]
	afterGetByID   atomic.Pointer[func()]
}

func (r *interleavingRepository) GetByName(ctx context.Context, name string) (*models.Article, error) {
	article, err := r.ArticleRepository.GetByName(ctx, name)
	if hook := r.afterGetByName.Swap(nil); hook != nil {
		(*hook)()
	}
	return article, err
}

func (r *interleavingRepository) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	article, err := r.ArticleRepository.GetByID(ctx, id)
	if hook := r.afterGetByID.Swap(nil); hook != nil {
		(*hook)()
	}
	return article, err
}

// serviceSuite wires both services on top of a fresh in-memory store. With
// cached set, both services share one ristretto cache as in production.
type serviceSuite struct {
	suite.Suite
	cached bool

	ctx         context.Context
	articleRepo *interleavingRepository
	commentRepo repositories.CommentRepository
	likeRepo    repositories.LikeRepository
	articles    services.ArticleService
	engagement  services.EngagementService
}

func (s *serviceSuite) SetupTest() {
	s.ctx = context.Background()

	db := repositories.NewMemoryDB()
	s.articleRepo = &interleavingRepository{ArticleRepository: repositories.NewMemoryArticleRepository(db)}
	s.commentRepo = repositories.NewMemoryCommentRepository(db)
	s.likeRepo = repositories.NewMemoryLikeRepository(db)

	var articleCache cache.ArticleCache
	if s.cached {
		var err error
		articleCache, err = cache.NewArticleCache(time.Minute, 1000)
		s.Require().NoError(err)
	}

	validate := helper.NewValidator()
	s.articles = services.NewArticleService(s.articleRepo, articleCache, validate)
	s.engagement = services.NewEngagementService(s.articleRepo, s.commentRepo, s.likeRepo, articleCache, validate)
}

func (s *serviceSuite) createArticle(name string, author *models.Identity, isDraft bool) *models.ArticleView {
	article, err := s.articles.CreateArticle(s.ctx, models.CreateArticleRequest{
		Name:      name,
		Title:     "Intro to Go",
		Content:   "Go is a small language.",
		Thumbnail: "https://cdn.example.com/go.png",
		Tag:       "Technology",
		IsDraft:   isDraft,
	}, author)
	s.Require().NoError(err)
	return article
}

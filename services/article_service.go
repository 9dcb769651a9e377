package services

import (
	"context"
	"strings"

	"blog-engagement/cache"
	"blog-engagement/logging"
	"blog-engagement/metrics"
	"blog-engagement/models"
	"blog-engagement/repositories"

	"github.com/samber/lo"
	"gopkg.in/go-playground/validator.v9"
)

type ArticleService interface {
	CreateArticle(ctx context.Context, req models.CreateArticleRequest, identity *models.Identity) (*models.ArticleView, error)
	GetArticle(ctx context.Context, name string, identity *models.Identity) (*models.ArticleView, error)
	GetArticleByID(ctx context.Context, id uint, identity *models.Identity) (*models.ArticleView, error)
	GetArticles(ctx context.Context, params models.ArticleListParams) ([]models.ArticleSummary, int64, error)
	GetMyArticles(ctx context.Context, params models.ArticleListParams, identity *models.Identity) ([]models.ArticleSummary, int64, error)
	UpdateArticle(ctx context.Context, id uint, req models.UpdateArticleRequest, identity *models.Identity) (*models.ArticleView, error)
	DeleteArticle(ctx context.Context, id uint, identity *models.Identity) error
}

type articleService struct {
	articleRepo repositories.ArticleRepository
	cache       cache.ArticleCache
	reader      articleReader
	validate    *validator.Validate
}

func NewArticleService(articleRepo repositories.ArticleRepository, articleCache cache.ArticleCache, validate *validator.Validate) ArticleService {
	if articleCache == nil {
		articleCache = cache.NewNoopArticleCache()
	}
	return &articleService{
		articleRepo: articleRepo,
		cache:       articleCache,
		reader:      articleReader{articleRepo: articleRepo, cache: articleCache},
		validate:    validate,
	}
}

func (s *articleService) CreateArticle(ctx context.Context, req models.CreateArticleRequest, identity *models.Identity) (*models.ArticleView, error) {
	if err := RequireIdentity(identity); err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Title = strings.TrimSpace(req.Title)
	req.Thumbnail = strings.TrimSpace(req.Thumbnail)
	req.Tag = strings.TrimSpace(req.Tag)

	// Content is stored as sent; only a blank body is rejected.
	checked := req
	checked.Content = strings.TrimSpace(req.Content)
	if err := s.validate.Struct(checked); err != nil {
		return nil, models.NewValidationError("invalid article", err)
	}

	// AuthorName is a snapshot; later display name changes are not followed.
	article := &models.Article{
		Name:       req.Name,
		Title:      req.Title,
		Content:    req.Content,
		Thumbnail:  req.Thumbnail,
		AuthorID:   identity.UserID,
		AuthorName: identity.Username,
		Tag:        req.Tag,
		IsDraft:    req.IsDraft,
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, translateArticleError(err, "create article")
	}

	metrics.ArticlesCreated.Inc()
	logging.Debug().Uint("article_id", article.ID).Str("name", article.Name).Uint("author_id", article.AuthorID).Msg("Article created")

	return models.NewArticleView(article, identity), nil
}

func (s *articleService) GetArticle(ctx context.Context, name string, identity *models.Identity) (*models.ArticleView, error) {
	article, err := s.reader.byName(ctx, strings.TrimSpace(name), identity)
	if err != nil {
		return nil, err
	}
	return models.NewArticleView(article, identity), nil
}

func (s *articleService) GetArticleByID(ctx context.Context, id uint, identity *models.Identity) (*models.ArticleView, error) {
	article, err := s.reader.byID(ctx, id, identity)
	if err != nil {
		return nil, err
	}
	return models.NewArticleView(article, identity), nil
}

// GetArticles lists published articles only, whoever is asking.
func (s *articleService) GetArticles(ctx context.Context, params models.ArticleListParams) ([]models.ArticleSummary, int64, error) {
	params.Normalize()
	params.AuthorID = 0

	return s.list(ctx, params, true)
}

// GetMyArticles lists the caller's own articles, drafts included.
func (s *articleService) GetMyArticles(ctx context.Context, params models.ArticleListParams, identity *models.Identity) ([]models.ArticleSummary, int64, error) {
	if err := RequireIdentity(identity); err != nil {
		return nil, 0, err
	}
	params.Normalize()
	params.AuthorID = identity.UserID

	return s.list(ctx, params, false)
}

func (s *articleService) UpdateArticle(ctx context.Context, id uint, req models.UpdateArticleRequest, identity *models.Identity) (*models.ArticleView, error) {
	if err := RequireIdentity(identity); err != nil {
		return nil, err
	}

	req.Title = trimPtr(req.Title)
	req.Thumbnail = trimPtr(req.Thumbnail)
	req.Tag = trimPtr(req.Tag)

	checked := req
	checked.Content = trimPtr(req.Content)
	if err := s.validate.Struct(checked); err != nil {
		return nil, models.NewValidationError("invalid article update", err)
	}
	if req.IsEmpty() {
		return nil, models.NewValidationError("no fields to update", nil)
	}

	article, err := s.reader.fresh(ctx, id, identity)
	if err != nil {
		return nil, err
	}
	if err := RequireAuthor(article, identity); err != nil {
		return nil, err
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Thumbnail != nil {
		article.Thumbnail = *req.Thumbnail
	}
	if req.Tag != nil {
		article.Tag = *req.Tag
	}
	if req.IsDraft != nil {
		article.IsDraft = *req.IsDraft
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, translateArticleError(err, "update article")
	}
	s.cache.Evict(ctx, article)

	logging.Debug().Uint("article_id", article.ID).Bool("is_draft", article.IsDraft).Msg("Article updated")

	updated, err := s.reader.fresh(ctx, id, identity)
	if err != nil {
		return nil, err
	}
	return models.NewArticleView(updated, identity), nil
}

func (s *articleService) DeleteArticle(ctx context.Context, id uint, identity *models.Identity) error {
	if err := RequireIdentity(identity); err != nil {
		return err
	}

	article, err := s.reader.fresh(ctx, id, identity)
	if err != nil {
		return err
	}
	if err := RequireAuthor(article, identity); err != nil {
		return err
	}

	if err := s.articleRepo.Delete(ctx, id); err != nil {
		return translateArticleError(err, "delete article")
	}
	s.cache.Evict(ctx, article)

	metrics.ArticlesDeleted.Inc()
	logging.Debug().Uint("article_id", id).Int("comments", len(article.Comments)).Msg("Article deleted")
	return nil
}

func (s *articleService) list(ctx context.Context, params models.ArticleListParams, isPublic bool) ([]models.ArticleSummary, int64, error) {
	articles, total, err := s.articleRepo.GetList(ctx, params, isPublic)
	if err != nil {
		return nil, 0, translateArticleError(err, "list articles")
	}
	return lo.Map(articles, func(article models.Article, _ int) models.ArticleSummary {
		return models.NewArticleSummary(article)
	}), total, nil
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	return lo.ToPtr(strings.TrimSpace(*value))
}

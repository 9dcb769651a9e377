package services

import (
	"context"
	"strings"

	"blog-engagement/cache"
	"blog-engagement/logging"
	"blog-engagement/metrics"
	"blog-engagement/models"
	"blog-engagement/repositories"

	"gopkg.in/go-playground/validator.v9"
)

// EngagementService covers the operations any signed-in reader may perform
// on a visible article: commenting and liking.
type EngagementService interface {
	AddComment(ctx context.Context, articleID uint, req models.AddCommentRequest, identity *models.Identity) (*models.ArticleView, error)
	ToggleLike(ctx context.Context, articleID uint, identity *models.Identity) (*models.LikeResult, error)
}

type engagementService struct {
	commentRepo repositories.CommentRepository
	likeRepo    repositories.LikeRepository
	cache       cache.ArticleCache
	reader      articleReader
	validate    *validator.Validate
}

func NewEngagementService(
	articleRepo repositories.ArticleRepository,
	commentRepo repositories.CommentRepository,
	likeRepo repositories.LikeRepository,
	articleCache cache.ArticleCache,
	validate *validator.Validate,
) EngagementService {
	if articleCache == nil {
		articleCache = cache.NewNoopArticleCache()
	}
	return &engagementService{
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		cache:       articleCache,
		reader:      articleReader{articleRepo: articleRepo, cache: articleCache},
		validate:    validate,
	}
}

func (s *engagementService) AddComment(ctx context.Context, articleID uint, req models.AddCommentRequest, identity *models.Identity) (*models.ArticleView, error) {
	if err := RequireIdentity(identity); err != nil {
		return nil, err
	}

	req.Text = strings.TrimSpace(req.Text)
	if err := s.validate.Struct(req); err != nil {
		return nil, models.NewValidationError("invalid comment", err)
	}

	article, err := s.reader.fresh(ctx, articleID, identity)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ArticleID: article.ID,
		UserID:    identity.UserID,
		Username:  identity.Username,
		Text:      req.Text,
	}
	if err := s.commentRepo.Append(ctx, comment); err != nil {
		return nil, translateArticleError(err, "add comment")
	}
	s.cache.Evict(ctx, article)

	metrics.CommentsAdded.Inc()
	logging.Debug().Uint("article_id", article.ID).Uint("comment_id", comment.ID).Uint("user_id", identity.UserID).Msg("Comment added")

	updated, err := s.reader.fresh(ctx, articleID, identity)
	if err != nil {
		return nil, err
	}
	return models.NewArticleView(updated, identity), nil
}

func (s *engagementService) ToggleLike(ctx context.Context, articleID uint, identity *models.Identity) (*models.LikeResult, error) {
	if err := RequireIdentity(identity); err != nil {
		return nil, err
	}

	article, err := s.reader.fresh(ctx, articleID, identity)
	if err != nil {
		return nil, err
	}

	likes, liked, err := s.likeRepo.Toggle(ctx, article.ID, identity.UserID)
	if err != nil {
		return nil, translateArticleError(err, "toggle like")
	}
	s.cache.Evict(ctx, article)

	metrics.RecordLikeToggle(liked)
	logging.Debug().Uint("article_id", article.ID).Uint("user_id", identity.UserID).Bool("liked", liked).Int("likes", likes).Msg("Like toggled")

	return &models.LikeResult{Likes: likes, Liked: liked}, nil
}

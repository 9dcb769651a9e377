package services

import (
	"context"

	"blog-engagement/cache"
	"blog-engagement/metrics"
	"blog-engagement/models"
	"blog-engagement/repositories"
)

// articleReader resolves articles through the cache and applies the draft
// gate. Hidden drafts look exactly like missing articles. The cache ticket is
// taken before the repository read so a concurrent eviction wins.
type articleReader struct {
	articleRepo repositories.ArticleRepository
	cache       cache.ArticleCache
}

func (r articleReader) byID(ctx context.Context, id uint, identity *models.Identity) (*models.Article, error) {
	if article, ok := r.cache.GetByID(ctx, id); ok {
		metrics.RecordCacheLookup(true)
		return article, nil
	}
	metrics.RecordCacheLookup(false)

	ticket := r.cache.Ticket()
	article, err := r.fresh(ctx, id, identity)
	if err != nil {
		return nil, err
	}
	r.cache.Set(ctx, article, ticket)
	return article, nil
}

func (r articleReader) byName(ctx context.Context, name string, identity *models.Identity) (*models.Article, error) {
	if article, ok := r.cache.GetByName(ctx, name); ok {
		metrics.RecordCacheLookup(true)
		return article, nil
	}
	metrics.RecordCacheLookup(false)

	ticket := r.cache.Ticket()
	article, err := r.articleRepo.GetByName(ctx, name)
	if err != nil {
		return nil, translateArticleError(err, "get article")
	}
	if !CanView(article, identity) {
		return nil, articleNotFound()
	}
	r.cache.Set(ctx, article, ticket)
	return article, nil
}

// fresh bypasses the cache. Writers use it so they never act on stale data.
func (r articleReader) fresh(ctx context.Context, id uint, identity *models.Identity) (*models.Article, error) {
	article, err := r.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateArticleError(err, "get article")
	}
	if !CanView(article, identity) {
		return nil, articleNotFound()
	}
	return article, nil
}

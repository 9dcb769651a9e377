package repositories

import (
	"context"
	"errors"

	"blog-engagement/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

const listColumns = `articles.id, articles.name, articles.title, articles.content, articles.thumbnail,
	articles.author_id, articles.author_name, articles.tag, articles.is_draft,
	articles.created_at, articles.updated_at,
	(SELECT COUNT(*) FROM article_likes al WHERE al.article_id = articles.id) AS likes`

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id uint) (*models.Article, error)
	GetByName(ctx context.Context, name string) (*models.Article, error)
	GetList(ctx context.Context, params models.ArticleListParams, isPublic bool) ([]models.Article, int64, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id uint) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	err := r.db.WithContext(ctx).Omit("LikedBy", "Comments").Create(article).Error
	if isUniqueViolation(err) {
		return gorm.ErrDuplicatedKey
	}
	return err
}

func (r *articleRepository) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := r.withRelations(ctx).First(&article, id).Error
	return &article, err
}

func (r *articleRepository) GetByName(ctx context.Context, name string) (*models.Article, error) {
	var article models.Article
	err := r.withRelations(ctx).Where("name = ?", name).First(&article).Error
	return &article, err
}

func (r *articleRepository) GetList(ctx context.Context, params models.ArticleListParams, isPublic bool) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Article{})

	if isPublic {
		query = query.Where("is_draft = ?", false)
	}
	if params.AuthorID > 0 {
		query = query.Where("author_id = ?", params.AuthorID)
	}
	if params.Tag != "" {
		query = query.Where("tag = ?", params.Tag)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Likes is counted from the ledger rather than read from the stored counter.
	offset := (params.Page - 1) * params.Limit
	err := query.Select(listColumns).
		Order("created_at desc").Order("id desc").
		Offset(offset).Limit(params.Limit).
		Find(&articles).Error

	return articles, total, err
}

// Update writes the author-editable columns only. Likes and name are never
// touched here.
func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	res := r.db.WithContext(ctx).Model(article).
		Select("title", "content", "thumbnail", "tag", "is_draft", "updated_at").
		Updates(article)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the article together with its comments and likes in one
// transaction.
func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteCommentsByArticleID(tx, id); err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.ArticleLike{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Article{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *articleRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.id asc")
		}).
		Preload("LikedBy", func(db *gorm.DB) *gorm.DB {
			return db.Order("article_likes.id asc")
		})
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

package repositories

import (
	"context"
	"time"

	"blog-engagement/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	// Append stores the comment and touches its article in a single
	// transaction. It fails with gorm.ErrRecordNotFound if the article is gone.
	Append(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID uint) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Append(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Updating the article row takes its lock, so concurrent appends to
		// the same article are ordered by arrival.
		res := tx.Model(&models.Article{}).
			Where("id = ?", comment.ArticleID).
			UpdateColumn("updated_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(comment).Error
	})
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	return &comment, err
}

func (r *commentRepository) ListByArticle(ctx context.Context, articleID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("id asc").
		Find(&comments).Error
	return comments, err
}

func deleteCommentsByArticleID(tx *gorm.DB, articleID uint) error {
	return tx.Where("article_id = ?", articleID).Delete(&models.Comment{}).Error
}

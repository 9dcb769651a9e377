package repositories

import (
	"context"

	"blog-engagement/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository interface {
	// Toggle flips userID's membership in the article's like ledger and
	// returns the recomputed count and the resulting membership.
	Toggle(ctx context.Context, articleID, userID uint) (likes int, liked bool, err error)
	LikedBy(ctx context.Context, articleID uint) ([]uint, error)
	// Reconcile rewrites every stored like counter that disagrees with the
	// ledger and reports how many articles were fixed.
	Reconcile(ctx context.Context) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Toggle(ctx context.Context, articleID, userID uint) (int, bool, error) {
	var likes int
	var liked bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&article, articleID).Error; err != nil {
			return err
		}

		res := tx.Where("article_id = ? AND user_id = ?", articleID, userID).Delete(&models.ArticleLike{})
		if res.Error != nil {
			return res.Error
		}
		liked = res.RowsAffected == 0
		if liked {
			like := models.ArticleLike{ArticleID: articleID, UserID: userID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
		}

		var count int64
		if err := tx.Model(&models.ArticleLike{}).Where("article_id = ?", articleID).Count(&count).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Article{}).Where("id = ?", articleID).UpdateColumn("likes", count).Error; err != nil {
			return err
		}
		likes = int(count)
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return likes, liked, nil
}

func (r *likeRepository) LikedBy(ctx context.Context, articleID uint) ([]uint, error) {
	var userIDs []uint
	err := r.db.WithContext(ctx).Model(&models.ArticleLike{}).
		Where("article_id = ?", articleID).
		Order("id asc").
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

func (r *likeRepository) Reconcile(ctx context.Context) (int64, error) {
	query := `
		UPDATE articles a
		SET likes = counted.total
		FROM (
			SELECT ar.id, COUNT(al.id) AS total
			FROM articles ar
			LEFT JOIN article_likes al ON al.article_id = ar.id
			GROUP BY ar.id
		) counted
		WHERE a.id = counted.id AND a.likes <> counted.total
	`
	res := r.db.WithContext(ctx).Exec(query)
	return res.RowsAffected, res.Error
}

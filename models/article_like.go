package models

import "time"

// ArticleLike is one membership of the like ledger. The (ArticleID, UserID)
// pair is unique; Article.Likes is derived from the number of rows.
type ArticleLike struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ArticleID uint      `json:"article_id" gorm:"not null;uniqueIndex:idx_article_likes_article_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_article_likes_article_user"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/samber/lo"
)

// Article is the aggregate root of the engagement subsystem. Comments and
// likes live in their own tables and are attached when the article is loaded.
type Article struct {
	ID         uint          `json:"id" gorm:"primarykey"`
	Name       string        `json:"name" gorm:"uniqueIndex;not null"`
	Title      string        `json:"title" gorm:"not null"`
	Content    string        `json:"content" gorm:"type:text;not null"`
	Thumbnail  string        `json:"thumbnail" gorm:"not null"`
	AuthorID   uint          `json:"author_id" gorm:"not null;index"`
	AuthorName string        `json:"author_name"`
	Tag        string        `json:"tag" gorm:"index"`
	IsDraft    bool          `json:"is_draft" gorm:"not null"`
	Likes      int           `json:"likes" gorm:"not null;default:0"`
	LikedBy    []ArticleLike `json:"-" gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
	Comments   []Comment     `json:"comments" gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// LikerIDs returns the user ids in the like ledger.
func (a *Article) LikerIDs() []uint {
	return lo.Map(a.LikedBy, func(like ArticleLike, _ int) uint {
		return like.UserID
	})
}

func (a *Article) IsLikedBy(userID uint) bool {
	return lo.ContainsBy(a.LikedBy, func(like ArticleLike) bool {
		return like.UserID == userID
	})
}

func (a *Article) IsAuthor(userID uint) bool {
	return a.AuthorID == userID
}

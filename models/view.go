package models

import (
	"time"

	"github.com/samber/lo"
)

type CommentView struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ArticleView is the aggregate returned by the engagement endpoints.
type ArticleView struct {
	ID         uint          `json:"id"`
	Name       string        `json:"name"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	Thumbnail  string        `json:"thumbnail"`
	AuthorID   uint          `json:"author_id"`
	AuthorName string        `json:"author_name"`
	Tag        string        `json:"tag"`
	IsDraft    bool          `json:"is_draft"`
	Likes      int           `json:"likes"`
	LikedBy    []uint        `json:"liked_by"`
	Liked      bool          `json:"liked"`
	Comments   []CommentView `json:"comments"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// ArticleSummary is the list representation; comments are not expanded.
type ArticleSummary struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Title      string    `json:"title"`
	Thumbnail  string    `json:"thumbnail"`
	AuthorID   uint      `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Tag        string    `json:"tag"`
	IsDraft    bool      `json:"is_draft"`
	Likes      int       `json:"likes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

// NewArticleView builds a fresh view of article for viewer. The article is
// not modified, so it is safe to call on shared (cached) values. Likes is
// taken from the ledger rather than from the stored counter.
func NewArticleView(article *Article, viewer *Identity) *ArticleView {
	likedBy := article.LikerIDs()
	view := &ArticleView{
		ID:         article.ID,
		Name:       article.Name,
		Title:      article.Title,
		Content:    article.Content,
		Thumbnail:  article.Thumbnail,
		AuthorID:   article.AuthorID,
		AuthorName: article.AuthorName,
		Tag:        article.Tag,
		IsDraft:    article.IsDraft,
		Likes:      len(likedBy),
		LikedBy:    likedBy,
		Comments: lo.Map(article.Comments, func(c Comment, _ int) CommentView {
			return CommentView{
				ID:        c.ID,
				UserID:    c.UserID,
				Username:  c.Username,
				Text:      c.Text,
				CreatedAt: c.CreatedAt,
			}
		}),
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}
	if viewer != nil {
		view.Liked = article.IsLikedBy(viewer.UserID)
	}
	return view
}

// NewArticleSummary expects Likes to be counted from the like ledger, as the
// repositories' list queries do.
func NewArticleSummary(article Article) ArticleSummary {
	return ArticleSummary{
		ID:         article.ID,
		Name:       article.Name,
		Title:      article.Title,
		Thumbnail:  article.Thumbnail,
		AuthorID:   article.AuthorID,
		AuthorName: article.AuthorName,
		Tag:        article.Tag,
		IsDraft:    article.IsDraft,
		Likes:      article.Likes,
		CreatedAt:  article.CreatedAt,
		UpdatedAt:  article.UpdatedAt,
	}
}

package models

type CreateArticleRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Title     string `json:"title" validate:"required,max=255"`
	Content   string `json:"content" validate:"required"`
	Thumbnail string `json:"thumbnail" validate:"required,max=2048"`
	Tag       string `json:"tag" validate:"max=100"`
	IsDraft   bool   `json:"is_draft"`
}

// UpdateArticleRequest carries a partial update. Nil fields are left as they
// are; the article name cannot be changed.
type UpdateArticleRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content   *string `json:"content" validate:"omitempty,min=1"`
	Thumbnail *string `json:"thumbnail" validate:"omitempty,min=1,max=2048"`
	Tag       *string `json:"tag" validate:"omitempty,max=100"`
	IsDraft   *bool   `json:"is_draft"`
}

func (r UpdateArticleRequest) IsEmpty() bool {
	return r.Title == nil && r.Content == nil && r.Thumbnail == nil && r.Tag == nil && r.IsDraft == nil
}

type AddCommentRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

type ArticleListParams struct {
	Tag      string `form:"tag"`
	AuthorID uint   `form:"-"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=10"`
}

// Normalize clamps paging values into a usable range.
func (p *ArticleListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

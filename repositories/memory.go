package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"blog-engagement/models"

	"gorm.io/gorm"
)

// MemoryDB is an in-process store with the same semantics as the postgres
// repositories. Every mutation runs under one lock, which gives the same
// atomicity the database transactions provide.
type MemoryDB struct {
	mu sync.RWMutex

	nextArticleID uint
	nextCommentID uint
	nextLikeID    uint

	articles map[uint]*models.Article
	names    map[string]uint
	comments map[uint]*models.Comment
	// article id -> comment ids in append order
	commentRefs map[uint][]uint
	// article id -> likes in insertion order
	likes map[uint][]models.ArticleLike

	now func() time.Time
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		articles:    make(map[uint]*models.Article),
		names:       make(map[string]uint),
		comments:    make(map[uint]*models.Comment),
		commentRefs: make(map[uint][]uint),
		likes:       make(map[uint][]models.ArticleLike),
		now:         time.Now,
	}
}

// snapshot returns a deep copy of the article with comments and likes
// attached. Callers must hold at least the read lock.
func (m *MemoryDB) snapshot(id uint) *models.Article {
	stored := m.articles[id]
	article := *stored

	refs := m.commentRefs[id]
	article.Comments = make([]models.Comment, 0, len(refs))
	for _, ref := range refs {
		article.Comments = append(article.Comments, *m.comments[ref])
	}
	article.LikedBy = append([]models.ArticleLike(nil), m.likes[id]...)
	return &article
}

type memoryArticleRepository struct {
	db *MemoryDB
}

func NewMemoryArticleRepository(db *MemoryDB) ArticleRepository {
	return &memoryArticleRepository{db: db}
}

func (r *memoryArticleRepository) Create(_ context.Context, article *models.Article) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, taken := r.db.names[article.Name]; taken {
		return gorm.ErrDuplicatedKey
	}

	r.db.nextArticleID++
	now := r.db.now()
	article.ID = r.db.nextArticleID
	article.Likes = 0
	article.CreatedAt = now
	article.UpdatedAt = now

	stored := *article
	stored.Comments = nil
	stored.LikedBy = nil
	r.db.articles[stored.ID] = &stored
	r.db.names[stored.Name] = stored.ID
	return nil
}

func (r *memoryArticleRepository) GetByID(_ context.Context, id uint) (*models.Article, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if _, ok := r.db.articles[id]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.db.snapshot(id), nil
}

func (r *memoryArticleRepository) GetByName(_ context.Context, name string) (*models.Article, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	id, ok := r.db.names[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.db.snapshot(id), nil
}

func (r *memoryArticleRepository) GetList(_ context.Context, params models.ArticleListParams, isPublic bool) ([]models.Article, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	matched := make([]models.Article, 0)
	for _, stored := range r.db.articles {
		if isPublic && stored.IsDraft {
			continue
		}
		if params.AuthorID > 0 && stored.AuthorID != params.AuthorID {
			continue
		}
		if params.Tag != "" && stored.Tag != params.Tag {
			continue
		}
		article := *stored
		article.Likes = len(r.db.likes[stored.ID])
		matched = append(matched, article)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	start := (params.Page - 1) * params.Limit
	if start < 0 || start >= len(matched) {
		return []models.Article{}, total, nil
	}
	end := start + params.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *memoryArticleRepository) Update(_ context.Context, article *models.Article) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.articles[article.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Title = article.Title
	stored.Content = article.Content
	stored.Thumbnail = article.Thumbnail
	stored.Tag = article.Tag
	stored.IsDraft = article.IsDraft
	stored.UpdatedAt = r.db.now()
	article.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *memoryArticleRepository) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.articles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, ref := range r.db.commentRefs[id] {
		delete(r.db.comments, ref)
	}
	delete(r.db.commentRefs, id)
	delete(r.db.likes, id)
	delete(r.db.names, stored.Name)
	delete(r.db.articles, id)
	return nil
}

type memoryCommentRepository struct {
	db *MemoryDB
}

func NewMemoryCommentRepository(db *MemoryDB) CommentRepository {
	return &memoryCommentRepository{db: db}
}

func (r *memoryCommentRepository) Append(_ context.Context, comment *models.Comment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	article, ok := r.db.articles[comment.ArticleID]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	r.db.nextCommentID++
	now := r.db.now()
	comment.ID = r.db.nextCommentID
	comment.CreatedAt = now
	comment.UpdatedAt = now

	stored := *comment
	r.db.comments[stored.ID] = &stored
	r.db.commentRefs[stored.ArticleID] = append(r.db.commentRefs[stored.ArticleID], stored.ID)
	article.UpdatedAt = now
	return nil
}

func (r *memoryCommentRepository) GetByID(_ context.Context, id uint) (*models.Comment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	stored, ok := r.db.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	comment := *stored
	return &comment, nil
}

func (r *memoryCommentRepository) ListByArticle(_ context.Context, articleID uint) ([]models.Comment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	refs := r.db.commentRefs[articleID]
	comments := make([]models.Comment, 0, len(refs))
	for _, ref := range refs {
		comments = append(comments, *r.db.comments[ref])
	}
	return comments, nil
}

type memoryLikeRepository struct {
	db *MemoryDB
}

func NewMemoryLikeRepository(db *MemoryDB) LikeRepository {
	return &memoryLikeRepository{db: db}
}

func (r *memoryLikeRepository) Toggle(_ context.Context, articleID, userID uint) (int, bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	article, ok := r.db.articles[articleID]
	if !ok {
		return 0, false, gorm.ErrRecordNotFound
	}

	ledger := r.db.likes[articleID]
	liked := true
	for i, like := range ledger {
		if like.UserID == userID {
			ledger = append(ledger[:i:i], ledger[i+1:]...)
			liked = false
			break
		}
	}
	if liked {
		r.db.nextLikeID++
		ledger = append(ledger, models.ArticleLike{
			ID:        r.db.nextLikeID,
			ArticleID: articleID,
			UserID:    userID,
			CreatedAt: r.db.now(),
		})
	}

	r.db.likes[articleID] = ledger
	article.Likes = len(ledger)
	return article.Likes, liked, nil
}

func (r *memoryLikeRepository) LikedBy(_ context.Context, articleID uint) ([]uint, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	ledger := r.db.likes[articleID]
	userIDs := make([]uint, 0, len(ledger))
	for _, like := range ledger {
		userIDs = append(userIDs, like.UserID)
	}
	return userIDs, nil
}

func (r *memoryLikeRepository) Reconcile(_ context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var fixed int64
	for id, article := range r.db.articles {
		if count := len(r.db.likes[id]); article.Likes != count {
			article.Likes = count
			fixed++
		}
	}
	return fixed, nil
}

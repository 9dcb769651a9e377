package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"blog-engagement/logging"
	"blog-engagement/models"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristrettostore "github.com/eko/gocache/store/ristretto/v4"
	"github.com/samber/lo"
)

const (
	// Tickets older than this are refused by Set, which lets the eviction
	// ledger forget entries of the same age.
	defaultTicketLifetime = time.Minute
	pruneEvery            = 256
)

// Ticket is taken before a repository read whose result will be cached. Set
// refuses the result if the article was evicted after the ticket was issued.
type Ticket struct {
	gen    uint64
	issued time.Time
}

// ArticleCache holds published article aggregates by id and by name.
type ArticleCache interface {
	GetByID(ctx context.Context, id uint) (*models.Article, bool)
	GetByName(ctx context.Context, name string) (*models.Article, bool)
	Ticket() Ticket
	Set(ctx context.Context, article *models.Article, ticket Ticket)
	Evict(ctx context.Context, article *models.Article)
}

type ristrettoArticleCache struct {
	client  *ristretto.Cache
	manager *cache.Cache[*models.Article]
	ttl     time.Duration

	// mu orders Set against Evict. evicted maps a key to the generation of
	// its last eviction.
	mu             sync.Mutex
	gen            uint64
	evicted        map[string]evictionMark
	sincePrune     int
	ticketLifetime time.Duration
	now            func() time.Time
}

type evictionMark struct {
	gen uint64
	at  time.Time
}

func NewArticleCache(ttl time.Duration, maxCost int64) (ArticleCache, error) {
	// Cost is counted in entries, not bytes.
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        maxCost * 10,
		MaxCost:            maxCost,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("ristretto cache: %w", err)
	}

	return &ristrettoArticleCache{
		client:         client,
		manager:        cache.New[*models.Article](ristrettostore.NewRistretto(client)),
		ttl:            ttl,
		evicted:        make(map[string]evictionMark),
		ticketLifetime: defaultTicketLifetime,
		now:            time.Now,
	}, nil
}

func (c *ristrettoArticleCache) GetByID(ctx context.Context, id uint) (*models.Article, bool) {
	return c.get(ctx, idKey(id))
}

func (c *ristrettoArticleCache) GetByName(ctx context.Context, name string) (*models.Article, bool) {
	return c.get(ctx, nameKey(name))
}

func (c *ristrettoArticleCache) Ticket() Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Ticket{gen: c.gen, issued: c.now()}
}

// Set stores a published article. Drafts are never cached, and neither is an
// article that was evicted after ticket was issued.
func (c *ristrettoArticleCache) Set(ctx context.Context, article *models.Article, ticket Ticket) {
	if article.IsDraft {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.now().Sub(ticket.issued) >= c.ticketLifetime {
		return
	}
	keys := []string{idKey(article.ID), nameKey(article.Name)}
	for _, key := range keys {
		if mark, ok := c.evicted[key]; ok && mark.gen > ticket.gen {
			logging.Debug().Str("key", key).Msg("Article cache set skipped after eviction")
			return
		}
	}
	for _, key := range keys {
		if err := c.manager.Set(ctx, key, article, store.WithExpiration(c.ttl), store.WithCost(1)); err != nil {
			logging.Debug().Err(err).Str("key", key).Msg("Article cache set dropped")
		}
	}
}

func (c *ristrettoArticleCache) Evict(ctx context.Context, article *models.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	mark := evictionMark{gen: c.gen, at: c.now()}
	for _, key := range []string{idKey(article.ID), nameKey(article.Name)} {
		c.evicted[key] = mark
		_ = c.manager.Delete(ctx, key)
	}
	// Flush ristretto's write buffer so a pending Set cannot land after the delete.
	c.client.Wait()

	c.sincePrune++
	if c.sincePrune >= pruneEvery {
		c.sincePrune = 0
		cutoff := c.now().Add(-c.ticketLifetime)
		c.evicted = lo.OmitBy(c.evicted, func(_ string, mark evictionMark) bool {
			return mark.at.Before(cutoff)
		})
	}
}

func (c *ristrettoArticleCache) get(ctx context.Context, key string) (*models.Article, bool) {
	article, err := c.manager.Get(ctx, key)
	if err != nil || article == nil {
		return nil, false
	}
	return article, true
}

func idKey(id uint) string {
	return fmt.Sprintf("article#id:%d", id)
}

func nameKey(name string) string {
	return "article#name:" + name
}

type noopArticleCache struct{}

// NewNoopArticleCache returns a cache that never stores anything.
func NewNoopArticleCache() ArticleCache {
	return noopArticleCache{}
}

func (noopArticleCache) GetByID(context.Context, uint) (*models.Article, bool)     { return nil, false }
func (noopArticleCache) GetByName(context.Context, string) (*models.Article, bool) { return nil, false }
func (noopArticleCache) Ticket() Ticket                                            { return Ticket{} }
func (noopArticleCache) Set(context.Context, *models.Article, Ticket)              {}
func (noopArticleCache) Evict(context.Context, *models.Article)                    {}

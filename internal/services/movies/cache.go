package movies

import (
	"context"
	"log/slog"
	"sync"

	"moviehub/proj/internal/domain/models"
)

const DefaultBatchWindow = 5

// Fetcher resolves a movie id at the source of truth.
type Fetcher interface {
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
}

// Cache is a read-through cache over a Fetcher: a miss fetches the record,
// stores it and returns it. Entries are never evicted or refreshed; upstream
// data for a given id is treated as immutable for the cache's lifetime.
// Construct one per client/session and discard it with the session, so tests
// and callers get isolated instances.
//
// Concurrent misses for the same id may each fetch upstream; there is no
// in-flight de-duplication, the last insert wins and every caller still gets
// a valid record.
type Cache struct {
	log     *slog.Logger
	fetcher Fetcher
	window  int

	mu      sync.Mutex
	entries map[int64]*models.Movie
}

func NewCache(log *slog.Logger, fetcher Fetcher, window int) *Cache {
	if window < 1 {
		window = DefaultBatchWindow
	}
	return &Cache{
		log:     log,
		fetcher: fetcher,
		window:  window,
		entries: make(map[int64]*models.Movie),
	}
}

// Get returns the cached record for id, fetching and storing it on a miss.
// A failed fetch leaves the cache unchanged, so the next Get for the same id
// tries upstream again.
func (c *Cache) Get(ctx context.Context, id int64) (*models.Movie, error) {
	c.mu.Lock()
	movie, ok := c.entries[id]
	c.mu.Unlock()
	if ok {
		return movie, nil
	}
	movie, err := c.fetcher.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.entries[id] = movie
	c.mu.Unlock()
	return movie, nil
}

// GetBatch resolves ids in groups of the configured window size, fetching a
// whole group concurrently and waiting for it before starting the next, so no
// more than window fetches are ever in flight. Ids whose fetch fails are
// dropped from the result; successes keep their input order.
func (c *Cache) GetBatch(ctx context.Context, ids []int64) []*models.Movie {
	resolved := make([]*models.Movie, len(ids))
	for start := 0; start < len(ids); start += c.window {
		end := min(start+c.window, len(ids))
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				movie, err := c.Get(ctx, ids[i])
				if err != nil {
					c.log.Warn("dropping movie from batch", "movie_id", ids[i], "err", err.Error())
					return
				}
				resolved[i] = movie
			}(i)
		}
		wg.Wait()
	}
	movies := make([]*models.Movie, 0, len(ids))
	for _, movie := range resolved {
		if movie != nil {
			movies = append(movies, movie)
		}
	}
	return movies
}

// Len reports how many records are cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

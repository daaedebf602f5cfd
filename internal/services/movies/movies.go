package movies

import (
	"context"
	"errors"
	"log/slog"

	"moviehub/proj/internal/clients/tmdb"
	"moviehub/proj/internal/domain/models"
)

// MovieProvider is the upstream movie data API.
type MovieProvider interface {
	SearchMovies(ctx context.Context, query string, page int) (*models.MoviePage, error)
	DiscoverMovies(ctx context.Context, filters tmdb.DiscoverFilters, page int) (*models.MoviePage, error)
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
}

// MovieService proxies search and discovery straight to the provider and
// serves single records and batches through a read-through cache.
type MovieService struct {
	log      *slog.Logger
	provider MovieProvider
	cache    *Cache
}

func New(log *slog.Logger, provider MovieProvider, batchWindow int) *MovieService {
	return &MovieService{
		log:      log,
		provider: provider,
		cache:    NewCache(log, provider, batchWindow),
	}
}

func (s *MovieService) Search(ctx context.Context, query string, page int) (*models.MoviePage, error) {
	const op = "movies.MovieService.Search"
	log := s.log.With("op", op, "query", query, "page", page)
	results, err := s.provider.SearchMovies(ctx, query, page)
	if err != nil {
		log.Error(err.Error())
		return nil, ErrUpstream
	}
	return results, nil
}

func (s *MovieService) Discover(ctx context.Context, filters tmdb.DiscoverFilters, page int) (*models.MoviePage, error) {
	const op = "movies.MovieService.Discover"
	log := s.log.With("op", op, "filters", filters, "page", page)
	results, err := s.provider.DiscoverMovies(ctx, filters, page)
	if err != nil {
		log.Error(err.Error())
		return nil, ErrUpstream
	}
	return results, nil
}

func (s *MovieService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	const op = "movies.MovieService.Get"
	log := s.log.With("op", op, "id", id)
	movie, err := s.cache.Get(ctx, id)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, ErrUpstream
	}
	return movie, nil
}

// GetBatch resolves ids to display records, silently dropping ids the
// upstream could not serve.
func (s *MovieService) GetBatch(ctx context.Context, ids []int64) []*models.Movie {
	return s.cache.GetBatch(ctx, ids)
}

package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"moviehub/proj/internal/config"
	"moviehub/proj/internal/domain/models"

	gobreaker "github.com/sony/gobreaker/v2"
)

var (
	// ErrNotFound means the upstream knows no movie with that id.
	ErrNotFound = errors.New("movie not found upstream")
	// ErrUnavailable covers transport failures, non-2xx responses and an
	// open circuit breaker.
	ErrUnavailable = errors.New("movie data provider unavailable")
)

// Client talks to the TMDB HTTP API. Requests go through a circuit breaker so
// a struggling upstream is not hammered, and transport errors are retried a
// bounded number of times.
type Client struct {
	log          *slog.Logger
	baseURL      string
	apiKey       string
	retriesCount int
	http         *http.Client
	cb           *gobreaker.CircuitBreaker[[]byte]
}

func New(log *slog.Logger, cfg *config.TMDB) *Client {
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "tmdb",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 10 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return &Client{
		log:          log,
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		retriesCount: cfg.RetriesCount,
		http:         &http.Client{Timeout: cfg.Timeout},
		cb:           cb,
	}
}

// DiscoverFilters are all optional; zero values are left out of the query.
type DiscoverFilters struct {
	Genre     string
	Year      int
	MinRating float64
}

func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*models.MoviePage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(normalizePage(page)))
	body, err := c.get(ctx, "/search/movie", params)
	if err != nil {
		return nil, err
	}
	return decodePage(body)
}

func (c *Client) DiscoverMovies(ctx context.Context, filters DiscoverFilters, page int) (*models.MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(normalizePage(page)))
	if filters.Genre != "" {
		params.Set("with_genres", filters.Genre)
	}
	if filters.Year != 0 {
		params.Set("primary_release_year", strconv.Itoa(filters.Year))
	}
	if filters.MinRating != 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(filters.MinRating, 'f', -1, 64))
	}
	body, err := c.get(ctx, "/discover/movie", params)
	if err != nil {
		return nil, err
	}
	return decodePage(body)
}

func (c *Client) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	body, err := c.get(ctx, fmt.Sprintf("/movie/%d", id), url.Values{})
	if err != nil {
		return nil, err
	}
	var movie models.Movie
	if err := json.Unmarshal(body, &movie); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return &movie, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()
	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.do(ctx, reqURL)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.log.Warn("tmdb request rejected by circuit breaker", "path", path)
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	var resp *http.Response
	for i := 0; ; i++ {
		resp, err = c.http.Do(req)
		if err == nil {
			break
		}
		if i >= c.retriesCount || ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		time.Sleep(500 * time.Millisecond)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}
	return body, nil
}

func decodePage(body []byte) (*models.MoviePage, error) {
	var page models.MoviePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return &page, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

package movies

import "errors"

var (
	ErrMovieNotFound = errors.New("movie not found")
	ErrUpstream      = errors.New("error fetching movies")
)

package collections

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrWatchlistNotFound  = errors.New("watchlist not found")
	ErrWatchlistExists    = errors.New("watchlist name already exists")
	ErrEmptyWatchlistName = errors.New("watchlist name is required")
	ErrEmptyReview        = errors.New("movie id, rating and text are required")
	ErrEmptyProfileUpdate = errors.New("username or email is required")
	ErrEmailTaken         = errors.New("email is already taken")
)

package models

import "time"

// User is the whole per-user document. Every collection mutation re-reads it,
// changes it in memory and writes it back as a whole.
type User struct {
	ID           int64       `json:"id"`
	Email        string      `json:"email"` // unique, stored lowercase
	Username     string      `json:"username"`
	PasswordHash []byte      `json:"-"`
	Favorites    []int64     `json:"favorites"`  // de-duplicated movie ids
	Watchlists   []Watchlist `json:"watchlists"` // unique by name
	Reviews      []Review    `json:"reviews"`
	CreatedAt    time.Time   `json:"-"`
	UpdatedAt    time.Time   `json:"-"`
}

type Watchlist struct {
	Name   string  `json:"name"`
	Movies []int64 `json:"movies"` // de-duplicated, insertion order kept
}

// Review is append-only: no update or delete exists for it.
type Review struct {
	MovieID   int64     `json:"movie_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is the public projection of a User. It never carries credentials.
type Profile struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Movie is the display projection of an upstream record. Upstream content for
// a given id is treated as immutable for the lifetime of a client session.
type Movie struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	ReleaseDate  string  `json:"release_date"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Genres       []Genre `json:"genres,omitempty"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MoviePage is one page of upstream search or discover results.
type MoviePage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

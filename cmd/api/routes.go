package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/movies", func(r chi.Router) {
			r.Get("/search", app.searchMovies)
			r.Get("/discover", app.discoverMovies)
			r.Post("/batch", app.getMoviesBatch)
			r.Get("/{id}", app.getMovie)
		})
		r.Route("/users/me", func(r chi.Router) {
			r.Use(app.requireAuthenticatedUser)
			r.Get("/favorites", app.listFavorites)
			r.Post("/favorites", app.addFavorite)
			r.Get("/watchlists", app.listWatchlists)
			r.Post("/watchlists", app.createWatchlist)
			r.Post("/watchlists/{name}", app.addToWatchlist)
			r.Delete("/watchlists/{name}/{movieId}", app.removeFromWatchlist)
			r.Delete("/watchlists/{name}", app.deleteWatchlist)
			r.Get("/reviews", app.listReviews)
			r.Post("/reviews", app.addReview)
			r.Get("/profile", app.getProfile)
			r.Put("/profile", app.updateProfile)
		})
	})
	return router
}

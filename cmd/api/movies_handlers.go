package main

import (
	"errors"
	"net/http"

	"moviehub/proj/internal/clients/tmdb"
	"moviehub/proj/internal/lib/validator"
	"moviehub/proj/internal/services/movies"
)

type searchMoviesInput struct {
	Query string `schema:"query"`
	Page  int    `schema:"page"`
}

func (app *Application) searchMovies(w http.ResponseWriter, r *http.Request) {
	var input searchMoviesInput
	if !app.decodeQuery(w, r, &input) {
		return
	}
	if input.Query == "" {
		app.Http.BadRequest(w, r, "Query is required")
		return
	}
	page, err := app.services.Movies.Search(r.Context(), input.Query, input.Page)
	if err != nil {
		app.Http.ServerError(w, r, err, "Error fetching movies")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": page}, "")
}

type discoverMoviesInput struct {
	Genre  string  `schema:"genre"`
	Year   int     `schema:"year"`
	Rating float64 `schema:"rating"`
	Page   int     `schema:"page"`
}

func (app *Application) discoverMovies(w http.ResponseWriter, r *http.Request) {
	var input discoverMoviesInput
	if !app.decodeQuery(w, r, &input) {
		return
	}
	filters := tmdb.DiscoverFilters{
		Genre:     input.Genre,
		Year:      input.Year,
		MinRating: input.Rating,
	}
	page, err := app.services.Movies.Discover(r.Context(), filters, input.Page)
	if err != nil {
		app.Http.ServerError(w, r, err, "Error fetching movies")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": page}, "")
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	movie, err := app.services.Movies.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "Error fetching movie details")
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

type moviesBatchInput struct {
	IDs []int64 `json:"ids" validate:"required,min=1,max=100,dive,gt=0"`
}

func (app *Application) getMoviesBatch(w http.ResponseWriter, r *http.Request) {
	var input moviesBatchInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	resolved := app.services.Movies.GetBatch(r.Context(), input.IDs)
	app.Http.Ok(w, r, envelop{"movies": resolved}, "")
}

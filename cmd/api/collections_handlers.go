package main

import (
	"errors"
	"net/http"

	"moviehub/proj/internal/lib/validator"
	"moviehub/proj/internal/services/collections"

	"github.com/go-chi/chi/v5"
)

// handleCollectionsError maps the collection service's error kinds to the
// documented status classes: invalid input 400, missing resources 404,
// name/email collisions 409, everything else 500.
func (app *Application) handleCollectionsError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, collections.ErrEmptyWatchlistName),
		errors.Is(err, collections.ErrEmptyReview),
		errors.Is(err, collections.ErrEmptyProfileUpdate):
		app.Http.BadRequest(w, r, err.Error())
	case errors.Is(err, collections.ErrUserNotFound),
		errors.Is(err, collections.ErrWatchlistNotFound):
		app.Http.NotFound(w, r, err.Error())
	case errors.Is(err, collections.ErrWatchlistExists),
		errors.Is(err, collections.ErrEmailTaken):
		app.Http.Conflict(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

type addFavoriteInput struct {
	MovieID int64 `json:"movie_id" validate:"required,gt=0" errorMsg:"Movie ID is required"`
}

func (app *Application) addFavorite(w http.ResponseWriter, r *http.Request) {
	var input addFavoriteInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	favorites, err := app.services.Collections.AddFavorite(r.Context(), app.contextUserID(r), input.MovieID)
	if err != nil {
		app.handleCollectionsError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"favorites": favorites}, "")
}

func (app *Application) listFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := app.services.Collections.ListFavorites(r.Context(), app.contextUserID(r))
	if err != nil {
		app.handleCollectionsError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"favorites": favorites}, "")
}

func (app *Application) listWatchlists(w http.ResponseWriter, r *http.Request) {
	watchlists, err := app.services.Collections.ListWatchlists(r.Context(), app.contextUserID(r))
	if err != nil {
		app.handleCollectionsError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"watchlists": watchlists}, "")
}

type createWatchlistInput struct {
	Name string `json:"name" validate:"required" errorMsg:"Watchlist name is required"`
}

func (app *Application) createWatchlist(w http.ResponseWriter, r *http.Request) {
	var input createWatchlistInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	watchlists, err := app.services.Collections.CreateWatchlist(r.Context(), app.contextUserID(r), input.Name)
	if err != nil {
		app.handleCollectionsError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"watchlists": watchlists}, "")
}

func (app *Application) addToWatchlist(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var input addFavoriteInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	watchlists, err := app.services.Collections.AddToWatchlist(r.Context(), app.contextUserID(r), name, input.MovieID)
	if err != nil {
		app.handleCollectionsError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"watchlists": watchlists}, "")
}

func (app *Application) removeFromWatchlist(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	watchlists, err := app.services.Collections.RemoveFromWatchlist(r.Context(), app.contextUserID(r), name, movieID)
	if err != nil {
		app.handleCollectionsError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"watchlists": watchlists}, "")
}

func (app *Application) deleteWatchlist(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	watchlists, err := app.services.Collections.DeleteWatchlist(r.Context(), app.contextUserID(r), name)
	if err != nil {
		app.handleCollectionsError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"watchlists": watchlists}, "")
}

type addReviewInput struct {
	MovieID int64  `json:"movie_id" validate:"required,gt=0" errorMsg:"Movie ID is required"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=10"`
	Text    string `json:"text" validate:"required" errorMsg:"Review text is required"`
}

func (app *Application) addReview(w http.ResponseWriter, r *http.Request) {
	var input addReviewInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	reviews, err := app.services.Collections.AddReview(r.Context(), app.contextUserID(r), input.MovieID, input.Rating, input.Text)
	if err != nil {
		app.handleCollectionsError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"reviews": reviews}, "")
}

func (app *Application) listReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := app.services.Collections.ListReviews(r.Context(), app.contextUserID(r))
	if err != nil {
		app.handleCollectionsError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"reviews": reviews}, "")
}

func (app *Application) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := app.services.Collections.GetProfile(r.Context(), app.contextUserID(r))
	if err != nil {
		app.handleCollectionsError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"profile": profile}, "")
}

type updateProfileInput struct {
	Username string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func (app *Application) updateProfile(w http.ResponseWriter, r *http.Request) {
	var input updateProfileInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return
	}
	profile, err := app.services.Collections.UpdateProfile(r.Context(), app.contextUserID(r), input.Username, input.Email)
	if err != nil {
		app.handleCollectionsError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"profile": profile}, "")
}

package collections

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"moviehub/proj/internal/domain/models"
	"moviehub/proj/internal/storage"
)

// UserStorage reads and writes the whole user document. Save is a full
// document write, so concurrent mutations of the same user are
// last-writer-wins; see UserModel.Save.
type UserStorage interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
}

// CollectionService owns the per-user state: favorites, named watchlists,
// append-only reviews and the public profile. Every mutation validates its
// input first and leaves stored state untouched on failure.
type CollectionService struct {
	log     *slog.Logger
	storage UserStorage
}

func New(log *slog.Logger, storage UserStorage) *CollectionService {
	return &CollectionService{
		log:     log,
		storage: storage,
	}
}

func (s *CollectionService) getUser(ctx context.Context, log *slog.Logger, userID int64) (*models.User, error) {
	user, err := s.storage.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return user, nil
}

// AddFavorite appends movieID to the user's favorites unless it is already
// there. Repeated calls with the same id succeed and change nothing.
func (s *CollectionService) AddFavorite(ctx context.Context, userID, movieID int64) ([]int64, error) {
	const op = "collections.CollectionService.AddFavorite"
	log := s.log.With("op", op, "user_id", userID, "movie_id", movieID)
	user, err := s.getUser(ctx, log, userID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(user.Favorites, movieID) {
		user.Favorites = append(user.Favorites, movieID)
		if err := s.saveUser(ctx, log, user); err != nil {
			return nil, err
		}
	}
	return user.Favorites, nil
}

func (s *CollectionService) ListFavorites(ctx context.Context, userID int64) ([]int64, error) {
	const op = "collections.CollectionService.ListFavorites"
	log := s.log.With("op", op, "user_id", userID)
	user, err := s.getUser(ctx, log, userID)
	if err != nil {
		return nil, err
	}
	return user.Favorites, nil
}

func (s *CollectionService) ListWatchlists(ctx context.Context, userID int64) ([]models.Watchlist, error) {
	const op = "collections.CollectionService.ListWatchlists"
	log := s.log.With("op", op, "user_id", userID)
	user, err := s.getUser(ctx, log, userID)
	if err != nil {
		return nil, err
	}
	return user.Watchlists, nil
}

// CreateWatchlist appends a new empty watchlist. The name must be non-empty
// after trimming and unique among the user's watchlists.
func (s *CollectionService) CreateWatchlist(ctx context.Context, userID int64, name string) ([]models.Watchlist, error) {
	const op = "collections.CollectionService.CreateWatchlist"
	log := s.log.With("op", op, "user_id", userID, "name", name)
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyWatchlistName
	}
	user, err := s.getUser(ctx, log, userID)
	if err != nil {
		return nil, err
	}
	if s.findWatchlist(user, name) != nil {
		log.Info("watchlist already exists")
		return nil, ErrWatchlistExists
	}
	user.Watchlists = append(user.Watchlists, models.Watchlist{Name: name, Movies: []int64{}})
	if err := s.saveUser(ctx, log, user); err != nil {
		return nil, err
	}
	return user.Watchlists, nil
}

// AddToWatchlist idempotently appends movieID to the named watchlist, using
// the same de-duplication rule as favorites.
func (s *CollectionService) AddToWatchlist(ctx context.Context, userID int64, name string, movieID int64) ([]models.Watchlist, error) {
	const op = "collections.CollectionService.AddToWatchlist"
	log := s.log.With("op", op, "user_id", userID, "name", name, "movie_id", movieID)
	user, err := s.getUser(ctx, log, userID)
	if err != nil {
		return nil, err
	}
	watchlist := s.findWatchlist(user, name)
	if watchlist == nil {
		log.Info("watchlist not found")
		return nil, ErrWatchlistNotFound
	}
	if !slices.Contains(watchlist.Movies, movieID) {
		watchlist.Movies = append(watchlist.Movies, movieID)
		if err := s.saveUser(ctx, log, user); err != nil {
			return nil, err
		}
	}
	return user.Watchlists, nil
}

// RemoveFromWatchlist removes every occurrence of movieID from the named
// watchlist. Removing an absent id succeeds and changes nothing.
func (s *CollectionService) RemoveFromWatchlist(ctx context.Context, userID int64, name string, movieID int64) ([]models.Watchlist, error) {
	const op = "collections.CollectionService.RemoveFromWatchlist"
	log := s.log.With("op", op, "user_id", userID, "name", name, "movie_id", movieID)
	user, err := s.getUser(ctx, log, userID)
	if err != nil {
		return nil, err
	}
	watchlist := s.findWatchlist(user, name)
	if watchlist == nil {
		log.Info("watchlist not found")
		return nil, ErrWatchlistNotFound
	}
	kept := slices.DeleteFunc(slices.Clone(watchlist.Movies), func(id int64) bool { return id == movieID })
	if len(kept) != len(watchlist.Movies) {
		watchlist.Movies = kept
		if err := s.saveUser(ctx, log, user); err != nil {
			return nil, err
		}
	}
	return user.Watchlists, nil
}

// DeleteWatchlist removes the named watchlist if present. Deleting an absent
// name succeeds and changes nothing.
func (s *CollectionService) DeleteWatchlist(ctx context.Context, userID int64, name string) ([]models.Watchlist, error) {
	const op = "collections.CollectionService.DeleteWatchlist"
	log := s.log.With("op", op, "user_id", userID, "name", name)
	user, err := s.getUser(ctx, log, userID)
	if err != nil {
		return nil, err
	}
	kept := slices.DeleteFunc(slices.Clone(user.Watchlists), func(wl models.Watchlist) bool { return wl.Name == name })
	if len(kept) != len(user.Watchlists) {
		user.Watchlists = kept
		if err := s.saveUser(ctx, log, user); err != nil {
			return nil, err
		}
	}
	return user.Watchlists, nil
}

// AddReview appends a review with a server-assigned timestamp. Reviews only
// accumulate: there is no de-duplication, no edit and no delete.
func (s *CollectionService) AddReview(ctx context.Context, userID, movieID int64, rating int, text string) ([]models.Review, error) {
	const op = "collections.CollectionService.AddReview"
	log := s.log.With("op", op, "user_id", userID, "movie_id", movieID, "rating", rating)
	if movieID == 0 || rating == 0 || text == "" {
		return nil, ErrEmptyReview
	}
	user, err := s.getUser(ctx, log, userID)
	if err != nil {
		return nil, err
	}
	user.Reviews = append(user.Reviews, models.Review{
		MovieID:   movieID,
		Rating:    rating,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	if err := s.saveUser(ctx, log, user); err != nil {
		return nil, err
	}
	return user.Reviews, nil
}

func (s *CollectionService) ListReviews(ctx context.Context, userID int64) ([]models.Review, error) {
	const op = "collections.CollectionService.ListReviews"
	log := s.log.With("op", op, "user_id", userID)
	user, err := s.getUser(ctx, log, userID)
	if err != nil {
		return nil, err
	}
	return user.Reviews, nil
}

func (s *CollectionService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	const op = "collections.CollectionService.GetProfile"
	log := s.log.With("op", op, "user_id", userID)
	user, err := s.getUser(ctx, log, userID)
	if err != nil {
		return nil, err
	}
	return profileOf(user), nil
}

// UpdateProfile sets whichever of username/email is non-empty, leaving the
// other unchanged. At least one must be provided. Emails are stored lowercase.
func (s *CollectionService) UpdateProfile(ctx context.Context, userID int64, username, email string) (*models.Profile, error) {
	const op = "collections.CollectionService.UpdateProfile"
	log := s.log.With("op", op, "user_id", userID)
	if username == "" && email == "" {
		return nil, ErrEmptyProfileUpdate
	}
	user, err := s.getUser(ctx, log, userID)
	if err != nil {
		return nil, err
	}
	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = strings.ToLower(email)
	}
	if err := s.storage.Save(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("email already taken", "email", email)
			return nil, ErrEmailTaken
		}
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return profileOf(user), nil
}

func (s *CollectionService) saveUser(ctx context.Context, log *slog.Logger, user *models.User) error {
	if err := s.storage.Save(ctx, user); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return ErrUserNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}

func (s *CollectionService) findWatchlist(user *models.User, name string) *models.Watchlist {
	for i := range user.Watchlists {
		if user.Watchlists[i].Name == name {
			return &user.Watchlists[i]
		}
	}
	return nil
}

func profileOf(user *models.User) *models.Profile {
	return &models.Profile{ID: user.ID, Email: user.Email, Username: user.Username}
}

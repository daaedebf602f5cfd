package collections_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"moviehub/proj/internal/domain/models"
	"moviehub/proj/internal/services/collections"
	"moviehub/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserStorage is a mock implementation of collections.UserStorage
type MockUserStorage struct {
	mock.Mock
}

func (m *MockUserStorage) Get(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStorage) Save(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestService(t *testing.T) (*collections.CollectionService, *MockUserStorage) {
	t.Helper()
	mockStorage := new(MockUserStorage)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return collections.New(log, mockStorage), mockStorage
}

func testUser() *models.User {
	return &models.User{
		ID:        1,
		Email:     "test@example.com",
		Username:  "test",
		Favorites: []int64{10, 20},
		Watchlists: []models.Watchlist{
			{Name: "Action", Movies: []int64{100, 200}},
		},
	}
}

func TestAddFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("appends new id", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		mockStorage.On("Get", ctx, int64(1)).Return(testUser(), nil).Once()
		mockStorage.On("Save", ctx, mock.Anything).Return(nil).Once()

		favorites, err := service.AddFavorite(ctx, 1, 30)

		require.NoError(t, err)
		assert.Equal(t, []int64{10, 20, 30}, favorites)
		mockStorage.AssertExpectations(t)
	})

	t.Run("idempotent on duplicate", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		mockStorage.On("Get", ctx, int64(1)).Return(testUser(), nil).Once()

		favorites, err := service.AddFavorite(ctx, 1, 20)

		require.NoError(t, err)
		assert.Equal(t, []int64{10, 20}, favorites)
		mockStorage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("repeated adds keep the id unique", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		user := testUser()
		mockStorage.On("Get", ctx, int64(1)).Return(user, nil)
		mockStorage.On("Save", ctx, mock.Anything).Return(nil)

		for i := 0; i < 3; i++ {
			_, err := service.AddFavorite(ctx, 1, 30)
			require.NoError(t, err)
		}

		assert.Equal(t, []int64{10, 20, 30}, user.Favorites)
		mockStorage.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("user not found", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		mockStorage.On("Get", ctx, int64(42)).Return(nil, storage.ErrNotFound).Once()

		favorites, err := service.AddFavorite(ctx, 42, 30)

		assert.ErrorIs(t, err, collections.ErrUserNotFound)
		assert.Nil(t, favorites)
	})
}

func TestListFavorites(t *testing.T) {
	ctx := context.Background()
	service, mockStorage := newTestService(t)
	mockStorage.On("Get", ctx, int64(1)).Return(testUser(), nil).Once()

	favorites, err := service.ListFavorites(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20}, favorites)
}

func TestCreateWatchlist(t *testing.T) {
	ctx := context.Background()

	t.Run("empty name", func(t *testing.T) {
		service, mockStorage := newTestService(t)

		watchlists, err := service.CreateWatchlist(ctx, 1, "")

		assert.ErrorIs(t, err, collections.ErrEmptyWatchlistName)
		assert.Nil(t, watchlists)
		mockStorage.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("whitespace-only name", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.CreateWatchlist(ctx, 1, "   \t ")

		assert.ErrorIs(t, err, collections.ErrEmptyWatchlistName)
	})

	t.Run("duplicate name conflicts and changes nothing", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		user := testUser()
		mockStorage.On("Get", ctx, int64(1)).Return(user, nil).Once()

		watchlists, err := service.CreateWatchlist(ctx, 1, "Action")

		assert.ErrorIs(t, err, collections.ErrWatchlistExists)
		assert.Nil(t, watchlists)
		assert.Len(t, user.Watchlists, 1)
		mockStorage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("appends a new empty watchlist", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		user := &models.User{ID: 1}
		mockStorage.On("Get", ctx, int64(1)).Return(user, nil).Once()
		mockStorage.On("Save", ctx, user).Return(nil).Once()

		watchlists, err := service.CreateWatchlist(ctx, 1, "Favorites 2024")

		require.NoError(t, err)
		require.Len(t, watchlists, 1)
		assert.Equal(t, "Favorites 2024", watchlists[0].Name)
		assert.Empty(t, watchlists[0].Movies)
		assert.NotNil(t, watchlists[0].Movies)
		mockStorage.AssertExpectations(t)
	})
}

func TestAddToWatchlist(t *testing.T) {
	ctx := context.Background()

	t.Run("watchlist not found", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		mockStorage.On("Get", ctx, int64(1)).Return(testUser(), nil).Once()

		watchlists, err := service.AddToWatchlist(ctx, 1, "Horror", 300)

		assert.ErrorIs(t, err, collections.ErrWatchlistNotFound)
		assert.Nil(t, watchlists)
		mockStorage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("adding twice results in one occurrence", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		user := testUser()
		mockStorage.On("Get", ctx, int64(1)).Return(user, nil)
		mockStorage.On("Save", ctx, user).Return(nil)

		_, err := service.AddToWatchlist(ctx, 1, "Action", 300)
		require.NoError(t, err)
		watchlists, err := service.AddToWatchlist(ctx, 1, "Action", 300)
		require.NoError(t, err)

		assert.Equal(t, []int64{100, 200, 300}, watchlists[0].Movies)
		mockStorage.AssertNumberOfCalls(t, "Save", 1)
	})
}

func TestRemoveFromWatchlist(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the id", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		user := testUser()
		mockStorage.On("Get", ctx, int64(1)).Return(user, nil).Once()
		mockStorage.On("Save", ctx, user).Return(nil).Once()

		watchlists, err := service.RemoveFromWatchlist(ctx, 1, "Action", 100)

		require.NoError(t, err)
		assert.Equal(t, []int64{200}, watchlists[0].Movies)
	})

	t.Run("absent id is a silent no-op", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		mockStorage.On("Get", ctx, int64(1)).Return(testUser(), nil).Once()

		watchlists, err := service.RemoveFromWatchlist(ctx, 1, "Action", 999)

		require.NoError(t, err)
		assert.Equal(t, []int64{100, 200}, watchlists[0].Movies)
		mockStorage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("watchlist not found", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		mockStorage.On("Get", ctx, int64(1)).Return(testUser(), nil).Once()

		_, err := service.RemoveFromWatchlist(ctx, 1, "Horror", 100)

		assert.ErrorIs(t, err, collections.ErrWatchlistNotFound)
	})
}

func TestDeleteWatchlist(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the entry", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		user := testUser()
		mockStorage.On("Get", ctx, int64(1)).Return(user, nil).Once()
		mockStorage.On("Save", ctx, user).Return(nil).Once()

		watchlists, err := service.DeleteWatchlist(ctx, 1, "Action")

		require.NoError(t, err)
		assert.Empty(t, watchlists)
	})

	t.Run("absent name is a silent no-op", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		mockStorage.On("Get", ctx, int64(1)).Return(testUser(), nil).Once()

		watchlists, err := service.DeleteWatchlist(ctx, 1, "Horror")

		require.NoError(t, err)
		assert.Len(t, watchlists, 1)
		mockStorage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAddReview(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields", func(t *testing.T) {
		service, mockStorage := newTestService(t)

		_, err := service.AddReview(ctx, 1, 0, 8, "great")
		assert.ErrorIs(t, err, collections.ErrEmptyReview)
		_, err = service.AddReview(ctx, 1, 10, 0, "great")
		assert.ErrorIs(t, err, collections.ErrEmptyReview)
		_, err = service.AddReview(ctx, 1, 10, 8, "")
		assert.ErrorIs(t, err, collections.ErrEmptyReview)
		mockStorage.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("appends with a server-assigned timestamp", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		user := testUser()
		mockStorage.On("Get", ctx, int64(1)).Return(user, nil).Once()
		mockStorage.On("Save", ctx, user).Return(nil).Once()

		before := time.Now().UTC()
		reviews, err := service.AddReview(ctx, 1, 10, 8, "great movie")

		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, int64(10), reviews[0].MovieID)
		assert.Equal(t, 8, reviews[0].Rating)
		assert.Equal(t, "great movie", reviews[0].Text)
		assert.False(t, reviews[0].CreatedAt.Before(before))
	})

	t.Run("reviews only accumulate", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		user := testUser()
		mockStorage.On("Get", ctx, int64(1)).Return(user, nil)
		mockStorage.On("Save", ctx, user).Return(nil)

		_, err := service.AddReview(ctx, 1, 10, 8, "first take")
		require.NoError(t, err)
		reviews, err := service.AddReview(ctx, 1, 10, 6, "second take")
		require.NoError(t, err)

		assert.Len(t, reviews, 2)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("both fields missing", func(t *testing.T) {
		service, mockStorage := newTestService(t)

		_, err := service.UpdateProfile(ctx, 1, "", "")

		assert.ErrorIs(t, err, collections.ErrEmptyProfileUpdate)
		mockStorage.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("updates only the provided field", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		user := testUser()
		mockStorage.On("Get", ctx, int64(1)).Return(user, nil).Once()
		mockStorage.On("Save", ctx, user).Return(nil).Once()

		profile, err := service.UpdateProfile(ctx, 1, "newname", "")

		require.NoError(t, err)
		assert.Equal(t, "newname", profile.Username)
		assert.Equal(t, "test@example.com", profile.Email)
	})

	t.Run("lowercases the email", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		user := testUser()
		mockStorage.On("Get", ctx, int64(1)).Return(user, nil).Once()
		mockStorage.On("Save", ctx, user).Return(nil).Once()

		profile, err := service.UpdateProfile(ctx, 1, "", "New@Example.COM")

		require.NoError(t, err)
		assert.Equal(t, "new@example.com", profile.Email)
		assert.Equal(t, "test", profile.Username)
	})

	t.Run("email collision", func(t *testing.T) {
		service, mockStorage := newTestService(t)
		mockStorage.On("Get", ctx, int64(1)).Return(testUser(), nil).Once()
		mockStorage.On("Save", ctx, mock.Anything).Return(storage.ErrConflict).Once()

		_, err := service.UpdateProfile(ctx, 1, "", "taken@example.com")

		assert.ErrorIs(t, err, collections.ErrEmailTaken)
	})
}

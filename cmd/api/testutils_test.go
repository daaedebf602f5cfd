package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"moviehub/proj/internal/config"
	"moviehub/proj/internal/domain/models"
	"moviehub/proj/internal/services"
	"moviehub/proj/internal/services/collections"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"
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

func NewTestApplication(storage collections.UserStorage, t *testing.T) *Application {
	t.Helper()
	cfg := &config.Config{AppSecret: "test-secret"}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := &Application{
		cfg:       cfg,
		log:       log,
		validator: govalidator.New(govalidator.WithRequiredStructEnabled()),
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
	if storage != nil {
		app.services = &services.Services{
			Collections: collections.New(log, storage),
		}
	}
	return app
}

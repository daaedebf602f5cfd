package models

import (
	"context"
	"errors"

	"moviehub/proj/internal/domain/models"
	"moviehub/proj/internal/storage"
	"moviehub/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserModel struct {
	DB *pgxpool.Pool
}

func (m *UserModel) Get(ctx context.Context, id int64) (*models.User, error) {
	rows, err := m.DB.Query(
		ctx,
		`SELECT id, email, username, password_hash, favorites, watchlists, reviews, created_at, updated_at
		FROM users WHERE id = $1`,
		id,
	)
	if err != nil {
		return nil, err
	}
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Save writes the whole user document back. There is no per-field update and
// no row lock: two concurrent mutations of the same user race on
// read-modify-write and the later write wins. Callers accept that tradeoff.
func (m *UserModel) Save(ctx context.Context, user *models.User) error {
	status, err := m.DB.Exec(
		ctx,
		`UPDATE users SET email = $1, username = $2, favorites = $3, watchlists = $4, reviews = $5, updated_at = now()
		WHERE id = $6`,
		user.Email,
		user.Username,
		user.Favorites,
		user.Watchlists,
		user.Reviews,
		user.ID,
	)
	if err != nil {
		var pgxErr *pgconn.PgError
		if errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrConflictCode {
			return storage.ErrConflict
		}
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

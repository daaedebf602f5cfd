package services

import (
	"log/slog"

	"moviehub/proj/internal/clients/tmdb"
	"moviehub/proj/internal/config"
	"moviehub/proj/internal/services/collections"
	"moviehub/proj/internal/services/movies"
	"moviehub/proj/internal/storage/postgres"
	dbmodels "moviehub/proj/internal/storage/postgres/models"
)

type Services struct {
	Collections *collections.CollectionService
	Movies      *movies.MovieService
}

func New(log *slog.Logger, cfg *config.Config, storage *postgres.Storage) *Services {
	db := dbmodels.New(storage)
	provider := tmdb.New(log, &cfg.TMDB)
	return &Services{
		Collections: collections.New(log, db.User),
		Movies:      movies.New(log, provider, cfg.TMDB.BatchWindow),
	}
}

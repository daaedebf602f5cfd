package main

import (
	"log/slog"

	"moviehub/proj/internal/config"
	"moviehub/proj/internal/services"
	"moviehub/proj/internal/storage/postgres"

	govalidator "github.com/go-playground/validator/v10"
)

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	services  *services.Services
	validator *govalidator.Validate
}

func NewApplication(cfg *config.Config, log *slog.Logger, storage *postgres.Storage) *Application {
	return &Application{
		cfg:       cfg,
		log:       log,
		validator: govalidator.New(govalidator.WithRequiredStructEnabled()),
		services:  services.New(log, cfg, storage),
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}

package main

import (
	"context"
	"flag"
	"os"
	"time"

	"moviehub/proj/internal/config"
	"moviehub/proj/internal/lib/logger"
	"moviehub/proj/internal/storage/postgres"

	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()

	godotenv.Load()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	storage, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	if err != nil {
		panic(err)
	}
	defer storage.Conn.Close()
	log.Info("database connection established")

	app := NewApplication(cfg, log, storage)
	if err := app.serve(); err != nil {
		log.Error("shutting down the server", "reason", err.Error())
		os.Exit(1)
	}
}

package main

import (
	"log"

	"github.com/devjunayed/online-nursery-website-server/cmd/server"
	"github.com/devjunayed/online-nursery-website-server/internal/config"
	"github.com/devjunayed/online-nursery-website-server/internal/storage"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("failed to build logger: ", err)
	}
	defer logger.Sync()

	client, err := storage.NewMongoDB(cfg.MongoURI)
	if err != nil {
		logger.Fatal("failed to set up mongodb", zap.Error(err))
	}

	srv := server.NewServer(&server.ServerConfig{
		Cfg:    cfg,
		Logger: logger,
		Client: client,
		DB:     client.Database(cfg.MongoDatabase),
	})
	srv.Run()
}

func newLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = lvl

	return zapCfg.Build()
}

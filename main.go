package main

import (
	"context"
	"log"

	"naturehatch-backend/cmd"
	"naturehatch-backend/internal/data/repository"
	"naturehatch-backend/internal/wire"
	"naturehatch-backend/pkg/database"
	"naturehatch-backend/pkg/mailer"
	"naturehatch-backend/pkg/storage"
	"naturehatch-backend/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("env", config.App.Env),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database, config.App.Env)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close(context.Background())

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Upload storage for product and blog images
	store, err := storage.NewLocal(config.App.UploadDir, logger)
	if err != nil {
		logger.Fatal("Failed to init upload storage", zap.Error(err))
	}

	// Outbound email
	mail := mailer.New(config.Email, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, mail, store, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

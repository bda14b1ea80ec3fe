// main.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/SinanUlusan/call-reservation-tool/cmd"
	"github.com/SinanUlusan/call-reservation-tool/internal/data/repository"
	"github.com/SinanUlusan/call-reservation-tool/internal/scheduler"
	"github.com/SinanUlusan/call-reservation-tool/internal/wire"
	"github.com/SinanUlusan/call-reservation-tool/pkg/database"
	"github.com/SinanUlusan/call-reservation-tool/pkg/notifier"
	"github.com/SinanUlusan/call-reservation-tool/pkg/utils"

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
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize repositories and notifiers
	repos := repository.NewRepository(db, logger)
	notif := notifier.NewNotifier(logger)

	// Wire all dependencies
	app := wire.Wiring(repos, notif, config, logger)

	// Start the reminder scheduler
	if config.Reminder.Enabled {
		interval := time.Duration(config.Reminder.IntervalSeconds) * time.Second
		reminderScheduler := scheduler.New(interval, app.Service.Reminder, logger)
		go reminderScheduler.Run(context.Background())
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

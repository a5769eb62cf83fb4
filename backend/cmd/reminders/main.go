// The reminders daemon scans for due important-date reminders and delivers
// them as Discord direct messages. It runs alongside the API server and
// shares the same database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/daddyparodz/nametag/backend/internal/reminders"
	"github.com/daddyparodz/nametag/backend/internal/store"
	"github.com/daddyparodz/nametag/backend/pkg/config"
	pkgerrors "github.com/daddyparodz/nametag/backend/pkg/errors"
	"github.com/daddyparodz/nametag/backend/pkg/logger"
)

func main() {
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting reminder daemon...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity",
			zap.Error(pkgerrors.NewStoreConnectionFailed(cfg.Neo4jURI, err)))
	}

	notifier, err := reminders.NewDiscordNotifier(cfg.DiscordBotToken)
	if err != nil {
		log.Fatal("Failed to create Discord notifier", zap.Error(err))
	}

	repo := store.NewRepository(driver)
	scheduler := reminders.NewScheduler(repo, notifier, cfg.ReminderInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := scheduler.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal("Scheduler stopped unexpectedly", zap.Error(err))
	}

	log.Info("Reminder daemon exited")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/naekun/naebot/internal/bot"
	"github.com/naekun/naebot/internal/config"
	"github.com/naekun/naebot/internal/discord"
	"github.com/naekun/naebot/internal/logging"
	"github.com/naekun/naebot/pkg/repositories/history"
	"github.com/naekun/naebot/pkg/repositories/stats"
	"github.com/naekun/naebot/pkg/scheduler"
	"github.com/naekun/naebot/pkg/services/janken"
	"github.com/naekun/naebot/pkg/services/minigames"
	"github.com/naekun/naebot/pkg/services/slot"
	"github.com/naekun/naebot/pkg/services/statistics"
)

// nameCacheTTL is how long a resolved username is reused by the rankings
const nameCacheTTL = 10 * time.Minute

func main() {
	log := logging.Default

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	log.SetLevel(logging.ParseLevel(cfg.LogLevel))

	ctx := context.Background()

	// Initialize repository
	locations := map[string]string{
		config.StorageJSON:     cfg.StatsFile,
		config.StorageSQLite:   cfg.SQLitePath,
		config.StoragePostgres: cfg.DatabaseURL,
	}
	repo, err := stats.Open(ctx, cfg.StorageType, locations[cfg.StorageType])
	if err != nil {
		log.Error("Failed to open %s stats storage: %v", cfg.StorageType, err)
		os.Exit(1)
	}
	defer repo.Close()
	log.Info("Using %s stats storage", cfg.StorageType)

	// Round history is optional; without Elasticsearch rounds are not kept
	var recorder history.Recorder = history.Nop{}
	var pruner scheduler.HistoryPruner
	if cfg.HistoryEnabled() {
		indexer, err := history.NewElasticsearchIndexer(ctx, history.ElasticsearchConfig{
			URL:         cfg.ElasticsearchURL,
			Username:    cfg.ElasticsearchUsername,
			Password:    cfg.ElasticsearchPassword,
			IndexPrefix: cfg.ElasticsearchIndex,
		})
		if err != nil {
			log.Warn("Round history disabled: %v", err)
		} else {
			recorder = indexer
			pruner = indexer
			log.Info("Recording janken rounds to %s", indexer.Index())
		}
	}

	session, err := discord.NewSession(cfg.Token)
	if err != nil {
		log.Error("Failed to create Discord session: %v", err)
		os.Exit(1)
	}

	games, err := minigames.NewService(cfg.KitsPath)
	if err != nil {
		log.Error("Failed to load minigames: %v", err)
		os.Exit(1)
	}

	names := statistics.NewNameCache(nameCacheTTL)
	rankings := statistics.NewService(repo, discord.NewDirectory(session), names)
	slots := slot.NewSessions(cfg.SlotTimeout, slot.DefaultRedraws)

	registry, err := bot.NewRegistry(bot.Services{
		Janken:         janken.NewService(repo, recorder),
		Statistics:     rankings,
		Minigames:      games,
		Slots:          slots,
		SlotFrameDelay: cfg.SlotFrameDelay,
	})
	if err != nil {
		log.Error("Failed to register commands: %v", err)
		os.Exit(1)
	}

	maintenanceConfig := scheduler.DefaultMaintenanceConfig()
	maintenanceConfig.HistoryRetention = cfg.HistoryRetention
	maintenance := scheduler.NewMaintenance(maintenanceConfig, slots, rankings, pruner)

	b := bot.New(cfg, session, registry, maintenance)
	if err := b.Start(); err != nil {
		log.Error("Failed to start bot: %v", err)
		os.Exit(1)
	}

	log.Info("Bot is running. Press Ctrl+C to exit")

	// Wait for interrupt signal to gracefully shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	b.Shutdown()
}

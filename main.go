package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ObiAU/prospectpulse/internal/ai"
	"github.com/ObiAU/prospectpulse/internal/api"
	"github.com/ObiAU/prospectpulse/internal/config"
	"github.com/ObiAU/prospectpulse/internal/handler"
	"github.com/ObiAU/prospectpulse/internal/logger"
	"github.com/ObiAU/prospectpulse/internal/monitor"
	"github.com/ObiAU/prospectpulse/internal/search"
	"github.com/ObiAU/prospectpulse/internal/telegram"
	"github.com/ObiAU/prospectpulse/internal/telemetry"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	searcher := search.NewClient(cfg.BraveAPIKey, cfg.UpstreamTimeout)
	analyzer := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	var alerter monitor.Alerter
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		notifier, notifierErr := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID, log)
		if notifierErr != nil {
			log.Error("failed to create telegram notifier", zap.Error(notifierErr))
			return 1
		}
		alerter = notifier
		log.Info("telegram alerts enabled", zap.Int64("chat_id", cfg.TelegramChatID))
	}

	monitorService := monitor.NewService(searcher, analyzer, alerter, cfg.QueryYear, cfg.BatchDelay, log)

	metrics := telemetry.NewMetrics()
	monitorHandler := handler.NewMonitorHandler(searcher, analyzer, monitorService, metrics, log)
	healthHandler := handler.NewHealthHandler(cfg.BraveAPIKey != "", cfg.OpenAIAPIKey != "")

	server := api.NewServer(cfg.ServerPort, log)
	api.SetupRoutes(server.Engine(), monitorHandler, healthHandler, metrics)

	log.Info("ProspectPulse starting", zap.String("port", cfg.ServerPort))

	if err := server.Run(ctx); err != nil {
		log.Error("server error", zap.Error(err))
		return 1
	}

	log.Info("ProspectPulse stopped gracefully")
	return 0
}

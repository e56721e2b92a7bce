package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/drflex-app/drflex-proxy/internal/action"
	"github.com/drflex-app/drflex-proxy/internal/api"
	"github.com/drflex-app/drflex-proxy/internal/chat"
	"github.com/drflex-app/drflex-proxy/internal/config"
	"github.com/drflex-app/drflex-proxy/internal/google"
	"github.com/drflex-app/drflex-proxy/internal/llm"
	"github.com/drflex-app/drflex-proxy/internal/search"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// A missing .env is fine; real deployments configure the environment
	// directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	provider, err := llm.NewProvider(llm.Config{
		Provider:         cfg.LLMProvider,
		Model:            cfg.LLMModel,
		BaseURL:          cfg.LLMBaseURL,
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		OpenRouterAPIKey: cfg.OpenRouterAPIKey,
	})
	if err != nil {
		return err
	}

	braveClient := search.NewBraveClient(search.BraveConfig{
		APIKey:  cfg.BraveAPIKey,
		BaseURL: cfg.BraveBaseURL,
		Timeout: time.Duration(cfg.SearchTimeoutSec) * time.Second,
	})
	checker := search.NewChecker(time.Duration(cfg.ReachTimeoutSec) * time.Second)
	resolver := search.NewResolver(search.ResolverConfig{
		Client:  braveClient,
		Checker: checker,
		Logger:  logger.Named("resolver"),
	})

	expander := action.NewExpander(resolver, cfg.ResolveTarget, logger.Named("expander"))
	orchestrator := chat.New(chat.Config{
		Provider:     provider,
		Expander:     expander,
		HistoryLimit: cfg.HistoryLimit,
		Logger:       logger.Named("chat"),
	})

	googleClient := google.NewClient(google.Config{
		ClientID:         cfg.GoogleClientID,
		ClientSecret:     cfg.GoogleClientSecret,
		TokenURL:         cfg.GoogleTokenURL,
		CalendarEndpoint: cfg.CalendarEndpoint,
		KeepEndpoint:     cfg.KeepEndpoint,
	})

	server := api.NewServer(cfg, orchestrator, resolver, googleClient, logger.Named("api"))

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("drflex proxy listening", zap.String("addr", addr))
	if err := server.Start(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

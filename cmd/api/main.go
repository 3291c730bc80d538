package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"roomcraft/internal/agent"
	"roomcraft/internal/bootstrap"
	"roomcraft/internal/config"
	apihttp "roomcraft/internal/http"
	"roomcraft/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	repo, cleanup, err := bootstrap.NewSnapshotRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("store init", zap.Error(err))
	}
	defer cleanup()

	store := service.NewSessionStore(repo, logger)
	if err := store.Load(ctx); err != nil {
		logger.Fatal("store load", zap.Error(err))
	}
	if warn := store.Warning(); warn != nil {
		logger.Warn("sessions kept in memory only", zap.Error(warn))
	}

	agentClient := agent.NewHTTPClient(cfg.AgentURL, cfg.AgentAPIKey, logger)
	conv := service.NewConversationController(store, agentClient, cfg.AgentID, cfg.AgentTimeout(), logger)

	chatHandler := apihttp.NewChatHandler(logger, store, conv)
	router := apihttp.NewRouter(logger, chatHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("store_backend", cfg.StoreBackend),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

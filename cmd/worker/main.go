package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"partnerbridge/internal/config"
	"partnerbridge/internal/database"
	"partnerbridge/internal/logger"
	"partnerbridge/internal/notify"
	"partnerbridge/internal/pricing"
	"partnerbridge/internal/store"
	"partnerbridge/internal/sync"
	"partnerbridge/internal/worker"
	"partnerbridge/internal/worker/processors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	// Wire the catalog importer
	partnerStore := store.NewPartnerStore(db.DB, logger)
	productStore := store.NewProductStore(db.DB, logger)
	pricingEngine := pricing.NewEngine(cfg.DefaultMargin)
	importer := sync.NewImporter(partnerStore, productStore, pricingEngine, logger)
	processor := processors.NewSyncProcessor(importer, notify.NewNoop(), cfg.NotifyEmail, logger)

	// Initialize worker
	w := worker.New(cfg, logger, processor)

	// Start worker
	logger.Info("Starting worker...")
	go w.Start()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	w.Stop()
}

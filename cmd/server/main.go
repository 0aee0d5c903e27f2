package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/config"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/db"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/handlers"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/scheduler"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/services"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/store"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/websocket"
)

func main() {
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	users := store.NewUserStore(database)
	accounts := store.NewAccountStore(database)
	operations := store.NewOperationStore(database)
	credits := store.NewCreditStore(database)
	orders := store.NewOrderStore(database)
	stocks := store.NewStockStore(database)
	securities := store.NewSecurityStore(database)
	settings := store.NewSettingStore(database)
	audit := store.NewAuditStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()

	operationService := services.NewOperationService(txRunner, accounts, operations, hub)
	creditService := services.NewCreditService(txRunner, credits, operations)
	interestService := services.NewInterestService(txRunner, accounts, operations, settings, hub)
	marketService := services.NewMarketService(txRunner, accounts, operations, orders, stocks, securities, settings, hub)

	jobs := scheduler.New(cfg, creditService, interestService)
	jobs.Start()

	handler := handlers.New(cfg, txRunner, users, accounts, orders, stocks, securities, settings, audit, operationService, creditService, marketService, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("banking API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
	<-jobs.Stop().Done()
}

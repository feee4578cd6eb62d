package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"nearmart/internal/config"
	"nearmart/internal/db"
	"nearmart/internal/geocode"
	"nearmart/internal/httpserver"
	"nearmart/internal/logger"
	inventoryrepo "nearmart/internal/repository/inventory"
	orderrepo "nearmart/internal/repository/order"
	sequencerepo "nearmart/internal/repository/sequence"
	storerepo "nearmart/internal/repository/store"
	locatorsvc "nearmart/internal/service/locator"
	ordersvc "nearmart/internal/service/order"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		zlog.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	storeRepo := storerepo.NewPostgres(dbpool, zlog)
	inventoryRepo := inventoryrepo.NewPostgres(dbpool, zlog)
	orderRepo := orderrepo.NewPostgres(dbpool, zlog)
	sequenceRepo := sequencerepo.NewPostgres(dbpool)
	geocoder := geocode.NewClient(cfg.GeocoderBaseURL, zlog)

	locator := locatorsvc.New(storeRepo, cfg.DeliveryRadiusKm, zlog)
	orderService := ordersvc.New(orderRepo, locator, inventoryRepo, sequenceRepo, geocoder, cfg.OrderCodePrefix, zlog)

	srv := httpserver.New(cfg.HTTPAddr, zlog, dbpool, httpserver.Deps{
		OrderSvc: orderService,
	})

	serverErr := make(chan error, 1)
	go func() {
		zlog.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		zlog.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		zlog.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	} else {
		zlog.Info("server stopped")
	}
}

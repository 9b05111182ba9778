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

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/config"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/events"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/httpserver"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/logging"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/middleware"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/repo"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/respond"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/search"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/service"
)

func main() {
	configuration, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(configuration.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(configuration.JWTSecret, "JWT_SECRET")

	logger := logging.New(configuration.LogLevel)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	producer := events.NewProducer(configuration.KafkaBrokers)
	if producer == nil {
		logger.Info("kafka disabled, no brokers configured")
	}

	searchSvc, err := search.New(configuration)
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}
	if searchSvc == nil {
		logger.Info("search disabled, ES_URL not configured")
	}

	gormRepo := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{
		Repo:      gormRepo,
		JWTSecret: configuration.JWTSecret,
		TokenTTL:  time.Duration(configuration.TokenTTLH) * time.Hour,
	}
	catalogSvc := &service.CatalogService{Repo: gormRepo}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = respond.ErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		ProductHandler: &httpserver.ProductHTTP{Svc: catalogSvc, Search: searchSvc, Producer: producer},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", configuration.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "port", configuration.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	} else {
		logger.Error("db handle error", "error", err)
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}

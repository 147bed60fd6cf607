package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/minishop/internal/assets"
	"github.com/Skotchmaster/minishop/internal/config"
	"github.com/Skotchmaster/minishop/internal/db"
	"github.com/Skotchmaster/minishop/internal/events"
	"github.com/Skotchmaster/minishop/internal/httpserver"
	"github.com/Skotchmaster/minishop/internal/logging"
	loggingmw "github.com/Skotchmaster/minishop/internal/middleware/logging"
	"github.com/Skotchmaster/minishop/internal/middleware/metrics"
	"github.com/Skotchmaster/minishop/internal/repo"
	"github.com/Skotchmaster/minishop/internal/search"
	"github.com/Skotchmaster/minishop/internal/service"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	store, err := assets.NewDiskStore(cfg.UploadDir, cfg.UploadURLPrefix)
	if err != nil {
		log.Fatalf("asset store: %v", err)
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := events.NewProducer(cfg.KafkaBrokers, events.Topics)
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
		publisher = producer
	} else {
		logger.Info("events disabled", "reason", "KAFKA_BROKERS is empty")
	}

	var index search.Index
	if cfg.ESURL != "" {
		esIndex, err := search.NewESIndex(search.Config{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		if err != nil {
			logger.Warn("search index unavailable, using database search", "error", err)
		} else {
			index = esIndex
		}
	}

	r := &repo.GormRepo{DB: gdb}
	m := metrics.NewServerMetrics(cfg.ServiceName)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(m.Middleware())
	e.Use(echomw.BodyLimit(cfg.MaxBodySize))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc: &service.AuthService{Repo: r, Events: publisher},
		},
		CatalogHandler: &httpserver.CatalogHTTP{
			Svc:            &service.CatalogService{Repo: r, Assets: store, Search: index, Events: publisher},
			CurrencySymbol: cfg.CurrencySymbol,
		},
		CartHandler: &httpserver.CartHTTP{
			Svc: &service.CartService{Repo: r, Events: publisher},
		},
		CheckoutHandler: &httpserver.CheckoutHTTP{
			Svc: &service.CheckoutService{Repo: r, Events: publisher},
		},
		DB:              gdb,
		Metrics:         m,
		UploadDir:       cfg.UploadDir,
		UploadURLPrefix: cfg.UploadURLPrefix,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "db_driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("close events", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("close db", "error", err)
	}

	logger.Info("server stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"restaurant/cmd"
	httpadapter "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/in/kds"
	"restaurant/internal/adapters/out/rabbitmq"

	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	db, err := cmd.OpenDatabase(config)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.MenuSeedPath != "" {
		n, err := cmd.SeedMenu(ctx, db, config.MenuSeedPath)
		if err != nil {
			log.Fatalf("Error seeding menu: %v", err)
		}
		logger.Info("menu seeded", "items", n, "path", config.MenuSeedPath)
	}

	app := cmd.NewCompositionRoot(config, db, logger)
	bus := app.EventBus()
	var consumers sync.WaitGroup

	hub := kds.NewHub(logger)
	hubEvents, unsubscribeHub := bus.Subscribe(0)
	consumers.Add(1)
	go func() {
		defer consumers.Done()
		hub.Run(ctx, hubEvents)
	}()
	defer unsubscribeHub()

	if config.RabbitMQURL != "" {
		forwarder, err := rabbitmq.Dial(config.RabbitMQURL, logger)
		if err != nil {
			log.Fatalf("Error connecting to RabbitMQ: %v", err)
		}
		defer func() { _ = forwarder.Close() }()

		brokerEvents, unsubscribeBroker := bus.Subscribe(0)
		defer unsubscribeBroker()
		consumers.Add(1)
		go func() {
			defer consumers.Done()
			forwarder.Run(ctx, brokerEvents)
		}()
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	e, err := httpadapter.NewRouter(httpadapter.NewServer(app.HTTPHandlers()), hub, httpadapter.RouterConfig{
		RateLimitRPS:     config.RateLimitRPS,
		ValidateRequests: config.OpenAPIValidation,
	}, logger)
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	go func() {
		logger.Info("http server starting", "port", config.HTTPPort, "driver", config.DBDriver)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
	jobManager.StopAll()
	bus.Close()
	consumers.Wait()
}

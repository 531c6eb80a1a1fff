package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"bistro-boss/internal/auth"
	"bistro-boss/internal/config"
	"bistro-boss/internal/database"
	"bistro-boss/internal/gateway"
	"bistro-boss/internal/logger"
	"bistro-boss/internal/messaging"
	"bistro-boss/internal/notification"
	"bistro-boss/internal/repository"
	"bistro-boss/internal/server"
	"bistro-boss/internal/services/bookings"
	"bistro-boss/internal/services/carts"
	"bistro-boss/internal/services/menu"
	"bistro-boss/internal/services/payments"
	"bistro-boss/internal/services/reviews"
	"bistro-boss/internal/services/stats"
	"bistro-boss/internal/services/users"
)

const requeueDelay = 5 * time.Second

func main() {
	var (
		mode       = flag.String("mode", "api", "Service mode (api, notifier)")
		configPath = flag.String("config", "config.yaml", "Path to the YAML config file")
		port       = flag.Int("port", 0, "HTTP port, overrides server.port")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New("bistro-" + *mode)
	requestID := logger.GenerateRequestID()

	if err := cfg.Validate(*mode); err != nil {
		log.Error("validation_failed", "Invalid configuration", requestID, err, nil)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("service_starting", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": cfg.Server.Port,
	})

	switch *mode {
	case "api":
		err = runAPI(ctx, cfg, log)
	case "notifier":
		err = runNotifier(ctx, cfg, log)
	}
	if err != nil {
		log.Error("service_failed", fmt.Sprintf("%s failed", *mode), requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

type dispatcher interface {
	payments.Dispatcher
	Wait()
}

func runAPI(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	mongo, err := database.NewMongo(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize mongo: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := mongo.Close(closeCtx); err != nil {
			log.Error("db_close_failed", "Failed to close mongo client", requestID, err, nil)
		}
	}()

	if err := mongo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	var notifications dispatcher
	if cfg.QueueEnabled() {
		conn, err := messaging.Dial(cfg.RabbitMQURL(), log)
		if err != nil {
			return fmt.Errorf("failed to initialize messaging: %w", err)
		}
		defer conn.Close()
		log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

		notifications = notification.NewQueueDispatcher(messaging.NewPublisher(conn, log), log)
	} else {
		senders, err := buildSenders(cfg)
		if err != nil {
			return err
		}
		log.Warn("notifications_direct", "RabbitMQ not configured, sending confirmations in-process", requestID, map[string]interface{}{
			"senders": len(senders),
		})
		notifications = notification.NewDirectDispatcher(log, senders...)
	}
	defer notifications.Wait()

	userRepo := repository.NewUserRepository(mongo)
	tokens := auth.NewTokens(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	gate := auth.NewGate(userRepo)

	handlers := server.Handlers{
		Auth:    auth.NewHandler(tokens, log),
		Users:   users.NewHandler(users.NewService(userRepo, log), log),
		Menu:    menu.NewHandler(repository.NewMenuRepository(mongo), log),
		Reviews: reviews.NewHandler(repository.NewReviewRepository(mongo), log),
		Carts:   carts.NewHandler(repository.NewCartRepository(mongo), log),
		Payments: payments.NewHandler(payments.NewService(
			repository.NewPaymentRepository(mongo),
			gateway.NewStripe(cfg.Stripe.SecretKey),
			notifications,
			cfg.Stripe.Currency,
			log,
		), log),
		Bookings: bookings.NewHandler(bookings.NewService(repository.NewBookingRepository(mongo), gate, log), log),
		Stats:    stats.NewHandler(stats.NewService(repository.NewStatsRepository(mongo)), log),
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.NewRouter(log, auth.NewMiddleware(tokens, gate), handlers, mongo),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("service_started", fmt.Sprintf("Bistro API started on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("graceful_shutdown", "Shutting down HTTP server", requestID, nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runNotifier(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	senders, err := buildSenders(cfg)
	if err != nil {
		return err
	}
	if len(senders) == 0 {
		return errors.New("notifier needs mailgun or telegram configured")
	}

	db, err := database.NewPostgres(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.Dial(cfg.RabbitMQURL(), log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	consumer := messaging.NewConsumer(conn, log, messaging.QueuePaymentConfirmations, "bistro-notifier", cfg.Notifier.Prefetch, requeueDelay)
	subscriber := notification.NewSubscriber(consumer, notification.NewPostgresLedger(db), cfg.Notifier.MaxAttempts, log, senders...)

	return subscriber.Start(ctx)
}

// buildSenders returns the channels that have credentials configured
func buildSenders(cfg *config.Config) ([]notification.Sender, error) {
	var senders []notification.Sender
	if cfg.Mailgun.Domain != "" && cfg.Mailgun.APIKey != "" {
		senders = append(senders, notification.NewMailgunSender(cfg.Mailgun))
	}
	if cfg.Telegram.Token != "" && cfg.Telegram.AdminChatID != 0 {
		tg, err := notification.NewTelegramSender(cfg.Telegram.Token, cfg.Telegram.AdminChatID)
		if err != nil {
			return nil, err
		}
		senders = append(senders, tg)
	}
	return senders, nil
}

package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mart/internal/clients"
	"mart/internal/config"
	"mart/internal/database"
	"mart/internal/handlers"
	"mart/internal/models"
	"mart/internal/repositories"
	"mart/internal/services"
	"mart/pkg/events"
)

func main() {
	cfg := config.Load(":8083")

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	db, err := database.Open(cfg.DatabaseURL, "orders.db")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderLine{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Order events are best-effort; the service runs without a broker.
	var publisher services.EventPublisher
	mqClient, err := events.NewClient(events.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Warn().Err(err).Msg("RabbitMQ unavailable, order events disabled")
	} else {
		defer mqClient.Close()
		publisher = mqClient
	}

	orderRepo := repositories.NewGORMOrderRepository(db)
	users := clients.NewHTTPUserDirectory(cfg.UserServiceURL)
	catalog := clients.NewHTTPProductCatalog(cfg.ProductServiceURL)
	orderService := services.NewOrderService(orderRepo, users, catalog, publisher)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New()
	app.Use(logger.New()) // Request logger

	api := app.Group("/api")
	orderHandler.RegisterRoutes(api)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"service": "order-service",
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	log.Info().Str("port", cfg.Port).Msg("starting order-service")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down order-service")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("order-service stopped")
}

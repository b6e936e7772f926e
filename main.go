package main

import (
	"log"
	"time"

	"github.com/courtly/courtly/config"
	"github.com/courtly/courtly/internal/handler"
	"github.com/courtly/courtly/internal/middleware"
	"github.com/courtly/courtly/internal/payment"
	"github.com/courtly/courtly/internal/repository"
	"github.com/courtly/courtly/internal/service"
	"github.com/courtly/courtly/pkg/database"
	"github.com/courtly/courtly/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("failed to load timezone %q: %v (using UTC)", cfg.Timezone, err)
		location = time.UTC
	}

	db := database.NewPostgresDB(cfg.DSN())
	reservationRepo := repository.NewReservationRepository(db)

	// Slot holds guard the payment window; without Redis the partial unique
	// index still prevents double-booking.
	var holds repository.SlotHoldRepository
	if cfg.RedisAddr != "" {
		holds = repository.NewRedisSlotHoldRepository(redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}))
	}

	var publisher service.EventPublisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	gateway := payment.NewMockGateway(payment.MockGatewayConfig{
		SuccessRate: cfg.PaymentSuccessRate,
		Delay:       cfg.PaymentDelay,
	})

	bookingSvc := service.NewBookingService(reservationRepo, holds, gateway, publisher, location, cfg.HoldTTL)

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "courtly"})
	})

	handler.NewCatalogHandler(bookingSvc, cfg.Timezone, location).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)

	log.Printf("Courtly starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

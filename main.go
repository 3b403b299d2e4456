package main

import (
	"log"

	"github.com/ekoshkina/gearshare/config"
	"github.com/ekoshkina/gearshare/internal/handler"
	"github.com/ekoshkina/gearshare/internal/middleware"
	"github.com/ekoshkina/gearshare/internal/repository"
	"github.com/ekoshkina/gearshare/internal/service"
	"github.com/ekoshkina/gearshare/pkg/database"
	"github.com/ekoshkina/gearshare/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Domain-event publisher is optional: without RABBIT_URL the service
	// runs standalone and skips publishing.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Services
	userSvc := service.NewUserService(userRepo, publisher)
	itemSvc := service.NewItemService(itemRepo, requestRepo, userSvc, publisher)
	requestSvc := service.NewRequestService(requestRepo, userSvc)
	bookingSvc := service.NewBookingService(bookingRepo, itemRepo, userRepo, publisher)

	// Echo
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
		return c.JSON(200, map[string]string{"status": "ok", "service": "gearshare"})
	})

	handler.NewUserHandler(userSvc).RegisterRoutes(e)
	handler.NewItemHandler(itemSvc).RegisterRoutes(e)
	handler.NewRequestHandler(requestSvc).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)

	log.Printf("gearshare starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

package main

import (
	"context"
	"log"
	"math/rand"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"

	"github.com/johnboyce/otel-motel/config"
	"github.com/johnboyce/otel-motel/internal/graph"
	"github.com/johnboyce/otel-motel/internal/handler"
	"github.com/johnboyce/otel-motel/internal/middleware"
	"github.com/johnboyce/otel-motel/internal/models"
	"github.com/johnboyce/otel-motel/internal/repository"
	"github.com/johnboyce/otel-motel/internal/service"
	"github.com/johnboyce/otel-motel/internal/storage"
	"github.com/johnboyce/otel-motel/pkg/database"
	"github.com/johnboyce/otel-motel/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	store := newStore(ctx, cfg)

	// Repositories
	hotelRepo := repository.NewHotelRepository(store)
	roomRepo := repository.NewRoomRepository(store)
	customerRepo := repository.NewCustomerRepository(store)
	bookingRepo := repository.NewBookingRepository(store)

	// RabbitMQ publisher: booking lifecycle events, optional
	var publisher service.EventPublisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	// Services
	bookingSvc := service.NewBookingService(bookingRepo, roomRepo, customerRepo, publisher)
	hotelSvc := service.NewHotelService(hotelRepo, roomRepo, customerRepo, bookingRepo)

	if cfg.SeedData {
		seeder := service.NewSeeder(hotelRepo, roomRepo, customerRepo, bookingRepo,
			rand.New(rand.NewSource(cfg.SeedValue)))
		if err := seeder.Run(ctx, models.Today()); err != nil {
			log.Fatalf("failed to seed data: %v", err)
		}
	}

	schema, err := graph.NewSchema(bookingSvc, hotelSvc)
	if err != nil {
		log.Fatalf("failed to build schema: %v", err)
	}

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
		return c.JSON(200, map[string]string{"status": "ok", "service": "otel-motel"})
	})

	handler.NewGraphQLHandler(schema).RegisterRoutes(e)

	log.Printf("otel-motel starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

func newStore(ctx context.Context, cfg *config.Config) storage.Store {
	if cfg.StorageBackend == "memory" {
		log.Println("using in-memory store")
		return storage.NewMemoryStore()
	}

	client := database.NewDynamoClient(ctx, cfg.AWSRegion, cfg.DynamoEndpoint)
	store := storage.NewDynamoStore(client)

	// Local emulators start without tables; production tables are
	// provisioned by the deploy stack.
	if cfg.DynamoEndpoint != "" {
		err := store.EnsureTables(ctx,
			storage.HotelsTable, storage.RoomsTable,
			storage.CustomersTable, storage.BookingsTable)
		if err != nil {
			log.Fatalf("failed to ensure tables: %v", err)
		}
	}
	return store
}

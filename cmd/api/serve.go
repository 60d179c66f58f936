package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/LuizZonetti1/cafeterias-api/docs"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/auth"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/notification"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/order"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/usecase"
	"github.com/LuizZonetti1/cafeterias-api/internal/infrastructure/cache"
	"github.com/LuizZonetti1/cafeterias-api/internal/infrastructure/messaging"
	"github.com/LuizZonetti1/cafeterias-api/internal/infrastructure/observability"
	infrapdf "github.com/LuizZonetti1/cafeterias-api/internal/infrastructure/pdf"
	"github.com/LuizZonetti1/cafeterias-api/internal/infrastructure/postgres"
	httpRouter "github.com/LuizZonetti1/cafeterias-api/internal/interfaces/http"
	"github.com/LuizZonetti1/cafeterias-api/pkg/config"
	"github.com/LuizZonetti1/cafeterias-api/pkg/logger"
)

func serveCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Arranca el servidor HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Aplica el esquema antes de arrancar")
	return cmd
}

func runServe(ctx context.Context, migrate bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", Version).
		Msg("iniciando aplicación")

	tp, shutdownTracing, err := observability.SetupTracing(ctx, cfg.Telemetry, Version)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	if migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrar esquema: %w", err)
		}
		log.Info().Msg("esquema aplicado")
	}

	restaurantRepo := postgres.NewRestaurantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	ingredientRepo := postgres.NewIngredientRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché del resumen de stock (opcional).
	var overviewCache inventory.OverviewCache = inventory.NopCache{}
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer rdb.Close()
		overviewCache = cache.NewOverviewCache(rdb, cfg.Redis.OverviewTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché Redis activa")
	}

	// Publicación de alertas en Kafka (opcional).
	var publisher notification.Publisher
	if cfg.Kafka.Enabled() {
		producer, err := messaging.NewProducer(cfg.Kafka, cfg.Telemetry.ServiceName, tp)
		if err != nil {
			return fmt.Errorf("kafka: %w", err)
		}
		lowStock := messaging.NewLowStockPublisher(producer)
		defer func() {
			if err := lowStock.Close(); err != nil {
				log.Warn().Err(err).Msg("cerrar productor Kafka")
			}
		}()
		publisher = lowStock
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.NotificationTopic).Msg("publicación Kafka activa")
	}

	metrics := observability.NewMetrics()

	notificationSvc := notification.NewService(notificationRepo, publisher, log.Component("notification"))
	consumer := inventory.NewConsumer(txRunner, notificationSvc, overviewCache, metrics, log.Component("consumer"))
	resolver := inventory.NewResolver(productRepo, ingredientRepo)

	deps := httpRouter.RouterDeps{
		AuthUC: auth.NewAuthUseCase(userRepo, restaurantRepo, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		UserUC:          usecase.NewUserUseCase(userRepo),
		RestaurantUC:    usecase.NewRestaurantUseCase(restaurantRepo),
		WarehouseUC:     usecase.NewWarehouseUseCase(warehouseRepo),
		CategoryUC:      usecase.NewCategoryUseCase(categoryRepo),
		IngredientUC:    usecase.NewIngredientUseCase(txRunner, ingredientRepo, warehouseRepo, overviewCache),
		ProductUC:       usecase.NewProductUseCase(productRepo, ingredientRepo, categoryRepo),
		StockUC:         inventory.NewStockUseCase(txRunner, ingredientRepo, stockRepo, movementRepo, productRepo, notificationSvc, overviewCache, log.Component("stock")),
		ProductionUC:    inventory.NewProductionUseCase(resolver, consumer),
		ReplenishmentUC: inventory.NewReplenishmentUseCase(ingredientRepo),
		OrderUC: order.NewUseCase(orderRepo, productRepo, ingredientRepo, restaurantRepo, resolver, consumer,
			infrapdf.NewTicketGenerator(), log.Component("order")),
		Notifications: notificationSvc,
		JWTSecret:     cfg.JWT.Secret,
		Metrics:       metrics,
	}
	if cfg.HTTP.RateLimit != "" {
		deps.RateLimit, err = httpRouter.RateLimit(cfg.HTTP.RateLimit)
		if err != nil {
			return err
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI: http://localhost:<port>/swagger
	docs.SwaggerInfo.Version = Version
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "swagger",
		Title:       "Cafeterías API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("cerrar exportador de trazas")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}

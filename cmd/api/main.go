package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/stock-core/internal/application/audit"
	"github.com/tu-usuario/stock-core/internal/application/auth"
	"github.com/tu-usuario/stock-core/internal/application/authz"
	"github.com/tu-usuario/stock-core/internal/application/notify"
	"github.com/tu-usuario/stock-core/internal/application/stock"
	"github.com/tu-usuario/stock-core/internal/application/usecase"
	infraamqp "github.com/tu-usuario/stock-core/internal/infrastructure/amqp"
	"github.com/tu-usuario/stock-core/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/stock-core/internal/interfaces/http"
	"github.com/tu-usuario/stock-core/pkg/config"
	"github.com/tu-usuario/stock-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	entryRepo := postgres.NewStockEntryRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	gate := authz.NewGate(userRepo, userRepo)
	recorder := audit.NewRecorder(auditRepo)
	hub := notify.NewHub(log)
	notifier := notify.NewService(inventoryRepo, productRepo, hub)
	stockUC := stock.NewUseCase(entryRepo, inventoryRepo, productRepo, gate, recorder, notifier, log)
	productUC := usecase.NewProductUseCase(productRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Publicador AMQP opcional: un suscriptor más del hub que reenvía las
	// alertas a una cola durable para consumidores externos.
	amqpCtx, amqpCancel := context.WithCancel(ctx)
	defer amqpCancel()
	if cfg.AMQP.URL != "" {
		publisher, err := infraamqp.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Queue, log)
		if err != nil {
			log.Error().Err(err).Msg("conexión AMQP fallida, alertas solo por websocket")
		} else {
			defer publisher.Close()
			amqpSub := hub.Subscribe()
			defer hub.Unsubscribe(amqpSub)
			go publisher.Forward(amqpCtx, amqpSub.Ch())
			log.Info().Str("queue", cfg.AMQP.Queue).Msg("publicador AMQP de alertas activo")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Core API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:   stockUC,
		ProductUC: productUC,
		AuthUC:    authUC,
		Recorder:  recorder,
		Hub:       hub,
		JWTSecret: cfg.JWT.Secret,
	})

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

	log.Info().Msg("aplicación detenida")
}

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/diego1198/inventory-frontend/internal/application/analytics"
	"github.com/diego1198/inventory-frontend/internal/application/checkout"
	"github.com/diego1198/inventory-frontend/internal/application/pages"
	"github.com/diego1198/inventory-frontend/internal/application/query"
	"github.com/diego1198/inventory-frontend/internal/application/resource"
	"github.com/diego1198/inventory-frontend/internal/domain/navigation"
	"github.com/diego1198/inventory-frontend/internal/infrastructure/api"
	infracache "github.com/diego1198/inventory-frontend/internal/infrastructure/cache"
	infrapdf "github.com/diego1198/inventory-frontend/internal/infrastructure/pdf"
	"github.com/diego1198/inventory-frontend/internal/infrastructure/session"
	"github.com/diego1198/inventory-frontend/internal/infrastructure/telemetry"
	httpRouter "github.com/diego1198/inventory-frontend/internal/interfaces/http"
	"github.com/diego1198/inventory-frontend/pkg/config"
	"github.com/diego1198/inventory-frontend/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
		Str("backend", cfg.API.BaseURL).
		Msg("iniciando gateway")
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: el rol se lee del token sin verificar la firma")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	metrics := telemetry.New()
	cacheOpts := []query.Option{
		query.WithMaxAge(cfg.Cache.MaxAge()),
		query.WithLogger(log.Component("cache")),
		query.WithRecorder(metrics),
	}

	// Redis opcional: difunde invalidaciones entre instancias
	var invalidator *infracache.RedisInvalidator
	if cfg.Redis.Enabled() {
		invalidator, err = infracache.NewRedisInvalidator(ctx, infracache.RedisConfig{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Channel:  cfg.Redis.Channel,
		}, log.Component("redis"))
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, invalidaciones solo locales")
			invalidator = nil
		} else {
			cacheOpts = append(cacheOpts, query.WithBroadcaster(invalidator))
		}
	}
	cache := query.New(cacheOpts...)
	if invalidator != nil {
		defer invalidator.Close()
		go func() {
			if err := invalidator.Subscribe(ctx, cache.ApplyRemote); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("suscripción de invalidaciones")
			}
		}()
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout(),
		api.WithLogger(log.Component("api")),
		api.WithRecorder(metrics),
	)

	products := resource.NewProductService(client, cache)
	sales := resource.NewSaleService(client, cache)
	carts := checkout.NewCarts(products, sales)
	if idle := cfg.Cache.Idle(); idle > 0 {
		go sweep(ctx, idle, log.Component("janitor"), cache, carts)
	}

	inventory := resource.NewInventoryService(client, cache)
	pg := pages.New(pages.Services{
		Products:   products,
		Categories: resource.NewCategoryService(client, cache),
		Customers:  resource.NewCustomerService(client, cache),
		Users:      resource.NewUserService(client, cache),
		Inventory:  inventory,
		Sales:      sales,
	}, nil)
	dashboardUC := appanalytics.NewDashboardUseCase(resource.NewReportService(client, cache), time.Now)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (requiere swag init)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventario Web",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		Log:       log,
		Cookies:   session.NewCookieCodec(cfg.Cookie.HashKey, cfg.Cookie.BlockKey, cfg.Cookie.Secure),
		Cache:     cache,
		JWTSecret: cfg.JWT.Secret,
		Table:     navigation.DefaultTable(),
		Landing:   cfg.Routes.LoginDefaultRedirect,
		Fallback:  cfg.Routes.PageFallback,
		Auth:      resource.NewAuthService(client, cache),
		Pages:     pg,
		Inventory: inventory,
		Sales:     sales,
		Carts:     carts,
		Dashboard: dashboardUC,
		Receipts:  infrapdf.NewReceiptGenerator(cfg.App.StoreName),
		Metrics:   metrics.Handler(),
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("gateway detenido")
}

type sweeper interface {
	Sweep(maxIdle time.Duration) int
}

// sweep descarta periódicamente lo que dejaron las sesiones abandonadas sin logout.
func sweep(ctx context.Context, idle time.Duration, log *logger.Logger, targets ...sweeper) {
	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := 0
			for _, t := range targets {
				n += t.Sweep(idle)
			}
			if n > 0 {
				log.Debug().Int("removed", n).Msg("entradas inactivas descartadas")
			}
		}
	}
}

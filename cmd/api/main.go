package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jpcardenas/ordenes-api/internal/application/analytics"
	"github.com/jpcardenas/ordenes-api/internal/application/distorder"
	"github.com/jpcardenas/ordenes-api/internal/application/kitsale"
	"github.com/jpcardenas/ordenes-api/internal/application/orders"
	"github.com/jpcardenas/ordenes-api/internal/application/stock"
	"github.com/jpcardenas/ordenes-api/internal/application/usecase"
	infrapdf "github.com/jpcardenas/ordenes-api/internal/infrastructure/pdf"
	"github.com/jpcardenas/ordenes-api/internal/infrastructure/postgres"
	httpRouter "github.com/jpcardenas/ordenes-api/internal/interfaces/http"
	"github.com/jpcardenas/ordenes-api/pkg/config"
	"github.com/jpcardenas/ordenes-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
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

	// Repositorios atados al pool (lecturas fuera de transacción)
	productRepo := postgres.NewProductRepository(pool)
	varRepo := postgres.NewVariationRepository(pool)
	histRepo := postgres.NewStockHistoryRepository(pool)
	kitRepo := postgres.NewKitRepository(pool)
	saleRepo := postgres.NewKitSaleRepository(pool)
	distRepo := postgres.NewDistributorRepository(pool)
	distOrderRepo := postgres.NewDistributorOrderRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	billingRepo := postgres.NewBillingRepository(pool)
	statsRepo := postgres.NewOrderStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Motores transaccionales
	accessor := stock.NewAccessor(txRunner, varRepo, histRepo)
	kitSaleUC := kitsale.New(txRunner, saleRepo, kitRepo)
	distOrderUC := distorder.New(txRunner, distOrderRepo, distRepo, varRepo)
	orderUC := orders.New(txRunner, orderRepo, billingRepo, statsRepo,
		infrapdf.NewMarotoStatementGenerator())

	// CRUD y reportes
	productUC := usecase.NewProductUseCase(productRepo, varRepo, accessor)
	kitUC := usecase.NewKitUseCase(kitRepo, varRepo)
	distributorUC := usecase.NewDistributorUseCase(distRepo)
	analyticsUC := analytics.New(varRepo, productRepo, kitRepo, saleRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		KitUC:         kitUC,
		DistributorUC: distributorUC,
		StockAccessor: accessor,
		KitSaleUC:     kitSaleUC,
		DistOrderUC:   distOrderUC,
		OrderUC:       orderUC,
		AnalyticsUC:   analyticsUC,
		JWTSecret:     cfg.JWT.Secret,
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

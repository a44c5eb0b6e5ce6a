package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/pharmacy-service/internal/api/http"
	"github.com/spec-kit/pharmacy-service/internal/api/http/handlers"
	"github.com/spec-kit/pharmacy-service/internal/auth"
	"github.com/spec-kit/pharmacy-service/internal/config"
	"github.com/spec-kit/pharmacy-service/internal/events"
	"github.com/spec-kit/pharmacy-service/internal/observability"
	"github.com/spec-kit/pharmacy-service/internal/persistence"
	"github.com/spec-kit/pharmacy-service/internal/repository"
	"github.com/spec-kit/pharmacy-service/internal/repository/memory"
	"github.com/spec-kit/pharmacy-service/internal/service"
	"github.com/spec-kit/pharmacy-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		adminRepo    repository.AdminUserRepository
		doctorRepo   repository.DoctorUserRepository
		supplierRepo repository.SupplierRepository
		drugRepo     repository.DrugRepository
		orderRepo    repository.OrderRepository
		reportRepo   repository.SalesReportRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		adminRepo = repository.NewAdminUserRepository(pool)
		doctorRepo = repository.NewDoctorUserRepository(pool)
		supplierRepo = repository.NewSupplierRepository(pool)
		drugRepo = repository.NewDrugRepository(pool)
		orderRepo = repository.NewOrderRepository(pool)
		reportRepo = repository.NewSalesReportRepository(pool)
	} else {
		store := memory.NewStore()
		adminRepo = store.AdminUsers()
		doctorRepo = store.DoctorUsers()
		supplierRepo = store.Suppliers()
		drugRepo = store.Drugs()
		orderRepo = store.Orders()
		reportRepo = store.SalesReports()
	}

	policies := auth.DefaultPolicies()

	authService := service.NewAuthService(*cfg, adminRepo, doctorRepo)
	if cfg.Auth.BootstrapAdminPassword == "" {
		logger.Warn("AUTH_BOOTSTRAP_ADMIN_PASSWORD not set; no admin will be seeded")
	}
	created, err := authService.EnsureBootstrapAdmin(ctx)
	if err != nil {
		logger.Fatal("failed to seed bootstrap admin", zap.Error(err))
	}
	if created {
		logger.Info("bootstrap admin created", zap.String("username", cfg.Auth.BootstrapAdminUsername))
	}

	inventoryService := service.NewInventoryService(drugRepo, redis.Client, cfg.Cache.DrugTTL(), logger)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartStockAlertWorker(dispatcher, logger)
	orderService := service.NewOrderService(orderRepo, drugRepo, inventoryService, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		AdminUsers:     handlers.NewAdminUsersHandler(adminRepo, cfg.Auth.BcryptCost),
		DoctorUsers:    handlers.NewDoctorUsersHandler(doctorRepo, cfg.Auth.BcryptCost),
		Drugs:          handlers.NewDrugsHandler(inventoryService),
		Suppliers:      handlers.NewSuppliersHandler(supplierRepo),
		SalesReports:   handlers.NewSalesReportsHandler(reportRepo),
		Orders:         handlers.NewOrdersHandler(orderService),
		AuthMiddleware: authMiddleware,
		Policies:       policies,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

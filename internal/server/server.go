// Package server boots the HTTP API: config, Mongo, Redis, storage, routes,
// and a graceful shutdown path.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plantnet-dev/plantnet/app/controllers"
	"github.com/plantnet-dev/plantnet/app/notifications"
	"github.com/plantnet-dev/plantnet/app/repositories"
	"github.com/plantnet-dev/plantnet/app/routes"
	"github.com/plantnet-dev/plantnet/app/services"
	"github.com/plantnet-dev/plantnet/config"
	"github.com/plantnet-dev/plantnet/database/indexes"
	"github.com/plantnet-dev/plantnet/pkg/cache"
	"github.com/plantnet-dev/plantnet/pkg/logger"
	"github.com/plantnet-dev/plantnet/pkg/metrics"
	"github.com/plantnet-dev/plantnet/pkg/middleware"
	"github.com/plantnet-dev/plantnet/pkg/mongodb"
	"github.com/plantnet-dev/plantnet/pkg/notification"
	"github.com/plantnet-dev/plantnet/pkg/reqid"
	"github.com/plantnet-dev/plantnet/pkg/router"
	"github.com/plantnet-dev/plantnet/pkg/schedule"
	"github.com/plantnet-dev/plantnet/pkg/storage"
	"github.com/plantnet-dev/plantnet/pkg/workerpool"
)

// Run boots everything and blocks until SIGINT/SIGTERM, then drains.
func Run() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, config.MongoURI())
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	defer func() {
		discCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client.Disconnect(discCtx) //nolint:errcheck
	}()

	db := client.Database(config.MongoDB())

	// Fan application logs out to Mongo alongside stdout.
	mongoLogs := logger.NewMongoHandler(db.Collection("logs"))
	logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), mongoLogs))
	defer mongoLogs.Close()

	if err := indexes.Ensure(ctx, db); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, catalog cache disabled", "error", err)
	}
	defer cache.Close()

	storage.Connect()
	notification.SetSlackWebhook(config.Get("SLACK_WEBHOOK_URL", ""))

	pool := workerpool.New(8)
	defer pool.Shutdown()

	a := build(db, pool)

	// Keep the public catalog hot in Redis across the cache TTL.
	jobCtx, stopJobs := context.WithCancel(ctx)
	defer stopJobs()
	schedule.Every(time.Minute).Name("catalog:warm").Run(func() {
		warmCtx, cancel := context.WithTimeout(jobCtx, 10*time.Second)
		defer cancel()
		if _, err := a.catalog.List(warmCtx); err != nil {
			logger.Warn("server: catalog warm failed", "error", err)
		}
	})
	schedule.Start(jobCtx)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           a.router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case sig := <-stop:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

// app is the wired object graph behind the HTTP surface.
type app struct {
	router  *router.Router
	catalog *services.CatalogService
}

// BuildRouter constructs the fully wired router for the given database.
// The CLI uses it to inspect routes without starting a listener.
func BuildRouter(db *mongo.Database, pool *workerpool.Pool) *router.Router {
	return build(db, pool).router
}

func build(db *mongo.Database, pool *workerpool.Pool) app {
	userRepo := repositories.NewUserRepository(db)
	plantRepo := repositories.NewPlantRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	dispatcher := notifications.NewDispatcher(pool)

	userSvc := services.NewUserService(userRepo, dispatcher)
	catalogSvc := services.NewCatalogService(plantRepo)
	orderSvc := services.NewOrderService(orderRepo, dispatcher)
	reportSvc := services.NewReportService(userRepo, plantRepo, orderRepo)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.CORSOptionsFor(config.CORSOrigins())),
		middleware.RateLimit(300, time.Minute),
	)

	routes.Register(r, routes.Controllers{
		Auth:   controllers.NewAuthController(),
		Users:  controllers.NewUserController(userSvc),
		Plants: controllers.NewPlantController(catalogSvc),
		Orders: controllers.NewOrderController(orderSvc, reportSvc),
		Admin:  controllers.NewAdminController(userSvc, reportSvc),
		Roles:  userRepo,
	})
	return app{router: r, catalog: catalogSvc}
}

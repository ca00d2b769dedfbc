// Package server boots the application: configuration, logging, database,
// cache, storage, the HTTP stack and the optional gRPC health sidecar.
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

	"github.com/hydroline/hydroline/app/controllers"
	"github.com/hydroline/hydroline/app/repositories"
	"github.com/hydroline/hydroline/app/routes"
	"github.com/hydroline/hydroline/app/services"
	"github.com/hydroline/hydroline/config"
	"github.com/hydroline/hydroline/pkg/cache"
	"github.com/hydroline/hydroline/pkg/database"
	"github.com/hydroline/hydroline/pkg/event"
	hlgrpc "github.com/hydroline/hydroline/pkg/grpc"
	"github.com/hydroline/hydroline/pkg/logger"
	"github.com/hydroline/hydroline/pkg/metrics"
	"github.com/hydroline/hydroline/pkg/middleware"
	"github.com/hydroline/hydroline/pkg/orm"
	"github.com/hydroline/hydroline/pkg/reqid"
	"github.com/hydroline/hydroline/pkg/router"
	"github.com/hydroline/hydroline/pkg/storage"
	"github.com/hydroline/hydroline/pkg/ws"
)

// App holds the booted application and its teardown hooks.
type App struct {
	Router *router.Router
	DB     *database.DB

	closers []func()
}

// Close tears down resources in reverse boot order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Boot builds the full application graph. Redis and the Mongo log sink are
// optional; the database and storage are not.
func Boot() (*App, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	app := &App{}

	closeLogs := logger.EnableMongoSink()
	app.closers = append(app.closers, closeLogs)

	db, err := database.Open(config.DatabaseDriver(), config.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("boot: database: %w", err)
	}
	app.DB = db
	app.closers = append(app.closers, func() { _ = db.Close() })

	store, err := cache.Connect(config.RedisAddr(), config.RedisPassword())
	if err != nil {
		// The app serves without Redis; reads just skip the cache.
		logger.Warn("boot: redis unavailable, caching disabled", "error", err)
		store = nil
	} else {
		app.closers = append(app.closers, func() { _ = store.Close() })
	}

	disks, err := storage.Connect()
	if err != nil {
		return nil, fmt.Errorf("boot: storage: %w", err)
	}

	q := orm.New(db.Gorm, store)

	userRepo := repositories.NewUserRepository(q)
	productRepo := repositories.NewProductRepository(q)
	cartRepo := repositories.NewCartRepository(q)
	orderRepo := repositories.NewOrderRepository(q)
	reviewRepo := repositories.NewReviewRepository(q)
	contentRepo := repositories.NewContentRepository(q)

	bus := event.NewBus()
	hub := ws.NewHub()
	go hub.Run()
	for _, name := range []string{
		services.EventOrderCreated,
		services.EventOrderPaid,
		services.EventItemStatusChanged,
		services.EventItemCancelled,
	} {
		bus.Listen(name, func(payload any) { hub.BroadcastJSON(payload) })
	}

	gateway := services.NewRazorpayGateway()

	authSvc := services.NewAuthService(userRepo)
	addressSvc := services.NewAddressService(userRepo)
	catalogSvc := services.NewCatalogService(productRepo, disks)
	cartSvc := services.NewCartService(cartRepo)
	orderSvc := services.NewOrderService(orderRepo, productRepo, userRepo, gateway, bus)
	reviewSvc := services.NewReviewService(reviewRepo, productRepo, orderRepo, disks)
	contentSvc := services.NewContentService(contentRepo, disks)

	gqlController, err := controllers.NewGraphQLController(catalogSvc)
	if err != nil {
		return nil, fmt.Errorf("boot: graphql schema: %w", err)
	}

	r := router.New()
	r.Use(
		reqid.Middleware(),
		metrics.Middleware,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	routes.RegisterAPI(r, routes.Controllers{
		Auth:     controllers.NewAuthController(authSvc),
		Address:  controllers.NewAddressController(addressSvc),
		Product:  controllers.NewProductController(catalogSvc),
		Category: controllers.NewCategoryController(catalogSvc),
		Cart:     controllers.NewCartController(cartSvc),
		Order:    controllers.NewOrderController(orderSvc),
		Payment:  controllers.NewPaymentController(orderSvc),
		Review:   controllers.NewReviewController(reviewSvc),
		Content:  controllers.NewContentController(contentSvc),
		GraphQL:  gqlController,
		OrderHub: hub,
	})
	app.Router = r

	return app, nil
}

// Start boots the application and serves HTTP (plus gRPC when GRPC_PORT is
// set) until SIGINT/SIGTERM, then shuts down gracefully.
func Start() error {
	app, err := Boot()
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           app.Router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if port := config.GRPCPort(); port != "" {
		grpcSrv, _, err := hlgrpc.Start(port)
		if err != nil {
			return err
		}
		defer hlgrpc.Stop(grpcSrv)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bmartin2011/Fetterman-s-sub000/docs"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/queue"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/ratelimiter"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/service"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/store/mongo"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/upstream"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/worker"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/robfig/cron/v3"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config          config
	logger          *zap.SugaredLogger
	rateLimiter     ratelimiter.Limiter
	storage         *mongo.Storage
	broker          queue.Broker
	catalogService  *service.CatalogService
	discountService *service.DiscountService
	orderService    *service.OrderService
	syncService     *service.SyncService
	syncWorker      *worker.CatalogSyncWorker
	eventsWorker    *worker.OrderEventsWorker
	cron            *cron.Cron
}

type config struct {
	addr        string
	env         string
	apiURL      string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
	upstream    upstream.Config
	cache       cacheConfig
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

type cacheConfig struct {
	TTL           time.Duration
	MaxSize       int
	SweepInterval time.Duration
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Get("/locations", app.getLocationsHandler)
		r.Get("/categories", app.getCategoriesHandler)
		r.Get("/products", app.getProductsHandler)

		r.Post("/discounts/validate", app.validateDiscountHandler)

		r.Post("/orders", app.createOrderHandler)
		r.Get("/orders", app.listOrdersHandler)
		r.Get("/orders/{order_id}", app.getOrderHandler)
		r.Post("/orders/{order_id}/payments", app.createPaymentHandler)

		r.Post("/sync", app.createSyncTaskHandler)
		r.Get("/sync/{task_id}", app.getSyncTaskHandler)

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Fetterman's"
	docs.SwaggerInfo.Description = "Storefront API for Fetterman's sandwich shops"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.syncWorker != nil {
		if err := app.syncWorker.Start(); err != nil {
			return fmt.Errorf("failed to start sync worker: %w", err)
		}
	}
	if app.eventsWorker != nil {
		if err := app.eventsWorker.Start(); err != nil {
			return fmt.Errorf("failed to start order events worker: %w", err)
		}
	}

	if app.cron != nil {
		app.cron.Start()
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.syncWorker != nil {
			app.syncWorker.Stop()
		}
		if app.eventsWorker != nil {
			app.eventsWorker.Stop()
		}

		if app.cron != nil {
			<-app.cron.Stop().Done()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}

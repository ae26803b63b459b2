package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"pvpulse/internal/config"
	apperrors "pvpulse/internal/errors"
	"pvpulse/internal/infrastructure"
	customMiddleware "pvpulse/internal/middleware"
	"pvpulse/internal/services"
	"pvpulse/internal/store"
	handlers "pvpulse/internal/transport/http"
	ws "pvpulse/internal/websocket"
)

const (
	Version = "1.0.0"
	AppName = "PVPulse - Vietnamese Fuel Price Dashboard"
)

// Application wires the pipeline together: source → store → data service →
// HTTP surface, plus the websocket hub for live dashboard refresh.
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Store         *store.Store
	DataService   *services.DataService
	WebSocketHub  *ws.Hub
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
}

// New builds the application from configuration.
func New(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	providers, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: providers,
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}
	app.setupRouter()
	app.createServer()

	return app, nil
}

func (a *Application) initializeServices() error {
	source := a.buildSource()

	var opts []store.Option
	if a.OTelProviders.Meter != nil {
		metrics, err := infrastructure.CreatePipelineMetrics(a.OTelProviders.Meter)
		if err != nil {
			return fmt.Errorf("failed to create pipeline metrics: %w", err)
		}
		opts = append(opts, store.WithMetrics(metrics))
	}

	a.Store = store.New(source, a.Logger, opts...)
	a.DataService = services.NewDataService(a.Store, a.Config.Catalog, a.Logger)
	a.WebSocketHub = ws.NewHub(a.Logger)

	return nil
}

// buildSource prefers the remote URL when configured, falling back to the
// local CSV path.
func (a *Application) buildSource() store.Source {
	if a.Config.Source.URL != "" {
		return store.HTTPSource{
			URL:     a.Config.Source.URL,
			Timeout: a.Config.Source.FetchTimeout,
		}
	}
	return store.FileSource{Path: a.Config.Source.CSVPath}
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
		AllowedOrigins: []string{"*"},
		Logger:         a.Logger,
	}))
	r.Use(customMiddleware.Compress(5))

	errorHandler := apperrors.NewErrorHandler(a.Logger, false)

	otelMW, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
	if err != nil {
		a.Logger.Warn("telemetry middleware disabled", slog.String("error", err.Error()))
	} else {
		r.Use(otelMW.Handler)
	}

	dataHandler := handlers.NewDataHandler(a.DataService, a.WebSocketHub, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(a.DataService, a.Logger)

	rateLimiter := customMiddleware.NewRateLimiter(50, 100, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(rateLimiter.Handler)
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		r.Mount("/data", dataHandler.Routes())
		r.Mount("/health", healthHandler.Routes())

		r.Get("/version", func(w http.ResponseWriter, req *http.Request) {
			render.JSON(w, req, map[string]string{
				"name":    AppName,
				"version": Version,
			})
		})
	})

	r.Get("/ws", ws.ServeWS(a.WebSocketHub, a.Logger))

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run starts the server and blocks until the context is cancelled or a
// termination signal arrives.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.WebSocketHub.Start()

	// Warm the cache so the first dashboard request is fast. A failure is
	// logged, not fatal; the source may come up later.
	warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if _, err := a.Store.Load(warmCtx); err != nil {
		a.Logger.Warn("initial dataset load failed",
			slog.String("error", err.Error()))
	}
	cancel()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening",
			slog.String("addr", a.Server.Addr),
			slog.String("version", Version))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		a.Logger.Info("shutdown signal received")
	}

	return a.Stop()
}

// Stop gracefully shuts down the server, hub, and telemetry providers.
func (a *Application) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	a.WebSocketHub.Stop()

	if err := a.Server.Shutdown(ctx); err != nil {
		a.Logger.Error("server shutdown failed", slog.String("error", err.Error()))
		return err
	}

	if err := a.OTelProviders.Shutdown(ctx); err != nil {
		a.Logger.Warn("telemetry shutdown failed", slog.String("error", err.Error()))
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.Warn("log file close failed", slog.String("error", err.Error()))
	}

	a.Logger.Info("server stopped")
	return nil
}

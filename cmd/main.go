package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gorilla/handlers"

	"github.com/okian/pele/internal/adapters/http/api"
	"github.com/okian/pele/internal/adapters/http/site"
	"github.com/okian/pele/internal/adapters/http/swagger"
	app "github.com/okian/pele/internal/app"
	"github.com/okian/pele/internal/config"
	"github.com/okian/pele/internal/domain/rating"
	"github.com/okian/pele/pkg/logger"
	"github.com/okian/pele/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 30 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
	limiterPruneInterval  = time.Minute
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "pele server failed", logger.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

// run starts the rating service and serves HTTP until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	svc, err := newService(cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	limiter := api.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	if limiter.Enabled() {
		go limiter.Run(ctx, limiterPruneInterval)
	}
	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, svc, limiter, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

// newService builds the rating service from configuration.
func newService(cfg *config.Config, log logger.Logger) (*app.Service, error) {
	var presets map[string]rating.Weights
	if cfg.WeightsFile != "" {
		p, err := config.LoadWeightPresets(cfg.WeightsFile)
		if err != nil {
			return nil, err
		}
		presets = p
	}
	return app.New(
		app.WithLogger(log),
		app.WithDataPaths(cfg.DataPaths...),
		app.WithDedupe(cfg.Dedupe),
		app.WithDefaultGroupBy(cfg.GroupColumns()),
		app.WithDefaultStandardize(cfg.Standardize),
		app.WithDefaultWeights(cfg.Weights),
		app.WithWeightPresets(presets),
		app.WithMaxLimit(cfg.MaxLimit),
		app.WithCacheSize(cfg.CacheSize),
	), nil
}

// newHandler registers every route and wraps the mux, outermost first, in
// panic recovery, proxy header resolution, rate limiting and compression.
func newHandler(ctx context.Context, svc api.Service, limiter *api.RateLimiter, log logger.Logger) http.Handler {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	site.Register(ctx, mux)
	api.NewServer(svc).Register(ctx, mux)

	var h http.Handler = mux
	h = handlers.CompressHandler(h)
	h = limiter.Middleware(h)
	h = handlers.ProxyHeaders(h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLog{log: log}))(h)
	return h
}

// recoveryLog adapts the service logger to handlers.RecoveryHandlerLogger.
type recoveryLog struct {
	log logger.Logger
}

func (r recoveryLog) Println(v ...interface{}) {
	r.log.Error(context.Background(), "recovered from panic", logger.String("panic", fmt.Sprint(v...)))
}

// startSystemMetricsUpdater updates process metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}

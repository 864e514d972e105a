package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/gestura/internal/adapters/device"
	"github.com/okian/gestura/internal/adapters/executor"
	"github.com/okian/gestura/internal/adapters/http/api"
	"github.com/okian/gestura/internal/adapters/http/swagger"
	app "github.com/okian/gestura/internal/app"
	"github.com/okian/gestura/internal/config"
	"github.com/okian/gestura/pkg/logger"
	"github.com/okian/gestura/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 5 * time.Second
	simulatorPause         = time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	for _, ce := range cfg.Sanitize() {
		log.Warn(ctx, "invalid config value replaced", logger.String("key", ce.Key), logger.Error(ce))
	}

	svc := newService(ctx, cfg, log)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}

	go startServiceMetricsUpdater(ctx, svc)

	if cfg.Simulate {
		sim, err := newSimulator(cfg, log)
		if err != nil {
			log.Error(ctx, "simulator disabled", logger.Error(err))
		} else {
			go func() {
				if err := sim.Run(ctx, svc); err != nil && !errors.Is(err, context.Canceled) {
					log.Error(ctx, "simulator stopped", logger.Error(err))
				}
			}()
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	if err := svc.Stop(shutdownCtx); err != nil {
		log.Error(ctx, "service shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// newService builds the service from cfg. Profile problems are logged and
// the offending bindings skipped.
func newService(ctx context.Context, cfg *config.Config, log logger.Logger) *app.Service {
	p, errs := cfg.ActiveProfile()
	for _, err := range errs {
		log.Warn(ctx, "profile binding skipped", logger.String("profile", cfg.ActiveProfileName), logger.Error(err))
	}
	return app.New(
		app.WithLogger(log),
		app.WithFrameQueueSize(cfg.FrameQueueSize),
		app.WithActionQueueSize(cfg.ActionQueueSize),
		app.WithActionWorkers(cfg.ActionWorkers),
		app.WithSweepInterval(cfg.SweepInterval()),
		app.WithClassifier(cfg.Classifier()),
		app.WithRecognizerOptions(cfg.RecognizerOptions()...),
		app.WithProfile(p),
		app.WithExecutor(executor.New(executor.WithLogger(log.Named("executor")))),
	)
}

// newSimulator loads the configured script, or the built-in demo.
func newSimulator(cfg *config.Config, log logger.Logger) (*device.Simulator, error) {
	script := device.DemoScript()
	if cfg.SimulateScript != "" {
		s, err := device.LoadScript(cfg.SimulateScript)
		if err != nil {
			return nil, err
		}
		script = s
	}
	return device.NewSimulator(script,
		device.WithInterval(cfg.SimulateInterval()),
		device.WithLoop(simulatorPause),
		device.WithLogger(log.Named("simulator")),
	), nil
}

// newMux registers the docs and the API routes.
func newMux(ctx context.Context, svc *app.Service, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, api.WithStreamLogger(log.Named("stream"))).Register(ctx, mux)
	return mux
}

// startServiceMetricsUpdater refreshes queue gauges until ctx is done.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateServiceMetrics updates service-level metrics.
func updateServiceMetrics(svc *app.Service) {
	st := svc.GetStats()
	if !st.Started {
		return
	}
	metrics.UpdateQueueSize(app.FrameQueueName, st.FrameQueue.Length)
	metrics.UpdateQueueSize(app.ActionQueueName, st.ActionQueue.Length)
	metrics.UpdateActiveContacts(st.Recognizer.ActiveContacts)
	metrics.UpdateObserverCount(st.Recognizer.Observers)
}

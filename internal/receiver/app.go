package receiver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/docpublish/internal/logging"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *Config
	logger logging.Logger
	server *http.Server
}

// NewApp wires the blob store selected by c into an HTTP server.
func NewApp(ctx context.Context, c *Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	store, err := newBlobStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	return newApp(c, store, logger), nil
}

func newApp(c *Config, store BlobStore, logger logging.Logger) *App {
	h := NewHandler(store, c, logger)
	return &App{
		config: c,
		logger: logger,
		server: &http.Server{
			Addr:              c.Addr,
			Handler:           NewRouter(h, logger),
			ReadHeaderTimeout: 15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

func newBlobStore(ctx context.Context, c *Config) (BlobStore, error) {
	switch c.Backend {
	case BackendS3:
		return NewS3BlobStore(ctx, c)
	case BackendFS:
		return NewDirBlobStore(c.StorageDir), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run listens on the configured address until a termination signal arrives
// or ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	ln, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.config.Addr, err)
	}
	return app.serve(ctx, ln)
}

// serve runs the HTTP server on ln and shuts it down gracefully once ctx is
// done.
func (app *App) serve(ctx context.Context, ln net.Listener) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting receiver...", "addr", ln.Addr().String(), "backend", app.config.Backend)

	var (
		wg       sync.WaitGroup
		serveErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		app.logger.Info(ctx, "shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := app.server.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "forced shutdown", "error", err)
		}
	}()

	wg.Wait()
	app.logger.Info(ctx, "receiver stopped")
	return serveErr
}

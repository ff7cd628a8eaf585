package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/docpublish/internal/client/config"
	"github.com/dmitrijs2005/docpublish/internal/filex"
	"github.com/dmitrijs2005/docpublish/internal/logging"
	"github.com/dmitrijs2005/docpublish/internal/publish"
	"github.com/dmitrijs2005/docpublish/internal/settings"
	"github.com/dmitrijs2005/docpublish/internal/vault"
)

type App struct {
	config   *config.Config
	storage  vault.Storage
	store    *settings.Store
	pipeline *publish.Pipeline
	logger   logging.Logger
	in       io.Reader

	// lines is the REPL scanner over in, set by Run.
	lines *bufio.Scanner

	// inflight tracks publish runs started from the REPL.
	inflight sync.WaitGroup
}

// NewApp opens the vault and the settings backend described by c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	dataDir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	persister, err := openPersister(ctx, c.SettingsBackend, dataDir)
	if err != nil {
		return nil, err
	}

	storage := vault.NewOSStorage(c.VaultDir)
	client := &http.Client{Timeout: c.RequestTimeout}

	return newApp(c, storage, persister, client, logger, os.Stdin), nil
}

func openPersister(ctx context.Context, backend, dataDir string) (settings.Persister, error) {
	switch backend {
	case config.BackendSQLite:
		p, err := settings.OpenSQLitePersister(ctx, filepath.Join(dataDir, settings.DatabaseFileName))
		if err != nil {
			return nil, fmt.Errorf("open settings database: %w", err)
		}
		return p, nil
	case config.BackendJSON:
		return settings.NewJSONFilePersister(dataDir), nil
	default:
		return nil, fmt.Errorf("unknown settings backend %q", backend)
	}
}

func newApp(c *config.Config, storage vault.Storage, p settings.Persister, client *http.Client, l logging.Logger, in io.Reader) *App {
	return &App{
		config:  c,
		storage: storage,
		store:   settings.NewStore(p, l),
		pipeline: publish.NewPipeline(
			publish.NewHTTPUploader(storage, client),
			publish.NewRelocator(storage),
			&terminalNotifier{},
			l,
		),
		logger: l.With("module", "cli"),
		in:     in,
	}
}

// Activate loads the persisted settings. It never fails; unreadable
// settings fall back to the defaults.
func (a *App) Activate(ctx context.Context) {
	s := a.store.Load(ctx)
	a.logger.Debug(ctx, "activated", "vault", a.config.VaultDir, "endpoint_set", s.URL != "")
}

// Deactivate waits for in-flight publishes and releases the settings backend.
func (a *App) Deactivate(ctx context.Context) error {
	a.inflight.Wait()
	if err := a.store.Close(); err != nil {
		a.logger.Error(ctx, "closing settings store", "error", err)
		return err
	}
	return nil
}

// Run activates the app, serves the REPL until exit and deactivates.
func (a *App) Run(ctx context.Context) error {
	a.Activate(ctx)
	printlnFn("docpublish (type 'help' for commands)")
	a.lines = bufio.NewScanner(a.in)
	runREPL(ctx, a, a.lines)
	return a.Deactivate(ctx)
}

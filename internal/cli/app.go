package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/archivekeeper/internal/catalog"
	"github.com/dmitrijs2005/archivekeeper/internal/config"
	"github.com/dmitrijs2005/archivekeeper/internal/legacy"
	"github.com/dmitrijs2005/archivekeeper/internal/logging"
	"github.com/dmitrijs2005/archivekeeper/internal/services"
	"github.com/dmitrijs2005/archivekeeper/internal/store"
	"github.com/dmitrijs2005/archivekeeper/internal/timex"
)

// App is the state shared by all commands of one invocation.
type App struct {
	cfg    *config.Config
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	output string

	log   logging.Logger
	store *store.Store
	svc   *services.Services
	clock timex.Clock

	// newCatalog builds the API client; tests replace it.
	newCatalog func(baseURL, apiKey string) catalog.Client
}

func newApp(cfg *config.Config, in io.Reader, out, errOut io.Writer) *App {
	a := &App{cfg: cfg, in: in, out: out, errOut: errOut, clock: timex.SystemClock}
	a.newCatalog = func(baseURL, apiKey string) catalog.Client {
		return catalog.NewHTTPClient(baseURL, apiKey, a.cfg.RequestTimeout, a.cfg.CacheTTL)
	}
	return a
}

// open validates the config, starts logging and opens the store.
func (a *App) open(ctx context.Context, withCatalog bool) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(a.cfg.LogBackend, a.cfg.LogLevel, a.cfg.LogJSON, a.errOut)
	if err != nil {
		return err
	}
	a.log = log

	st, err := store.Open(ctx, a.cfg.DatabasePath, log, a.clock)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	a.store = st

	// Settings are needed before the catalog client can be built.
	a.svc = services.New(st, nil, a.clock, log)
	if !withCatalog {
		return nil
	}

	client, err := a.catalogClient(ctx)
	if err != nil {
		return err
	}
	a.svc = services.New(st, client, a.clock, log)
	return nil
}

// catalogClient resolves the API base URL (saved setting over config) and
// the API key, prompting for it on a terminal when none is configured.
func (a *App) catalogClient(ctx context.Context) (catalog.Client, error) {
	baseURL, err := a.svc.Settings.GetString(ctx, services.SettingAPIBaseURL, "")
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = a.cfg.APIBaseURL
	}

	key := a.cfg.APIKey
	if key == "" && interactive(a.in) {
		key, err = promptSecret(a.in, a.errOut, "Catalog API key: ")
		if err != nil {
			return nil, fmt.Errorf("failed to read api key: %w", err)
		}
	}
	if key == "" {
		a.log.Warn(ctx, "no catalog api key configured", "env", config.EnvAPIKey)
	}
	return a.newCatalog(baseURL, key), nil
}

func (a *App) migrator() *legacy.Migrator {
	return legacy.NewMigrator(a.svc, a.log)
}

// close releases the store. It is safe to call on a partly opened App.
func (a *App) close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
	}
	if z, ok := a.log.(*logging.ZapLogger); ok {
		// Sync on a terminal stderr may return EINVAL.
		_ = z.Sync()
	}
	return errors.Join(errs...)
}

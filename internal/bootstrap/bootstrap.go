// Package bootstrap arma el grafo de dependencias a partir de la configuración:
// almacén activo, sesión, contenedor de estado y servicios.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockrest/internal/application/auth"
	"github.com/jhoicas/stockrest/internal/application/catalog"
	"github.com/jhoicas/stockrest/internal/application/report"
	"github.com/jhoicas/stockrest/internal/application/state"
	"github.com/jhoicas/stockrest/internal/domain/repository"
	"github.com/jhoicas/stockrest/internal/infrastructure/local"
	"github.com/jhoicas/stockrest/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/stockrest/internal/infrastructure/pdf"
	"github.com/jhoicas/stockrest/internal/infrastructure/postgres"
	"github.com/jhoicas/stockrest/internal/infrastructure/session"
	"github.com/jhoicas/stockrest/internal/infrastructure/supabase"
	"github.com/jhoicas/stockrest/pkg/config"
	"github.com/jhoicas/stockrest/pkg/logger"
)

// Modos del almacén activo.
const (
	ModeSupabase = "supabase"
	ModePostgres = "postgres"
	ModeLocal    = "local"
)

// App dependencias ya construidas y arrancadas.
type App struct {
	Config  *config.Config
	Log     *logger.Logger
	Mode    string
	Metrics *metrics.Metrics
	State   *state.Container
	Catalog *catalog.Service
	Reports *report.Service
	Auth    *auth.AuthUseCase

	closers []func()
}

// Options permite reemplazar el reloj (tests, CLI).
type Options struct {
	Clock func() time.Time
}

// New construye y arranca la aplicación. La ausencia o la caída del remoto no
// es un error: se usa el almacén local.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, opts Options) (*App, error) {
	a := &App{Config: cfg, Log: log, Metrics: metrics.New()}

	store, err := local.Open(cfg.Local.Path, opts.Clock)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: almacén local: %w", err)
	}
	a.closers = append(a.closers, func() { _ = store.Close() })

	remote, mode, closeRemote := OpenRemote(ctx, cfg, log)
	a.Mode = mode
	if closeRemote != nil {
		a.closers = append(a.closers, closeRemote)
	}

	sessions := a.openSession(cfg, log)

	a.State = state.New(state.Deps{
		Remote:   remote,
		Local:    store,
		Session:  sessions,
		Log:      log,
		Recorder: a.Metrics,
		Clock:    opts.Clock,
	})
	a.State.Start(ctx)

	a.Catalog = catalog.NewService(a.State)
	a.Reports = report.NewService(a.State, infrapdf.NewMarotoPDFGenerator())
	a.Auth = auth.NewAuthUseCase(a.State, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	log.Info().
		Str("mode", a.Mode).
		Int("items", len(a.State.Items())).
		Int("categories", len(a.State.Categories())).
		Msg("estado inicial cargado")
	return a, nil
}

// OpenRemote elige el almacén remoto: Supabase REST, luego PostgreSQL, luego
// ninguno (nil, ModeLocal). closeFn no es nil cuando hay conexiones que liberar.
func OpenRemote(ctx context.Context, cfg *config.Config, log *logger.Logger) (store repository.DataStore, mode string, closeFn func()) {
	if cfg.Supabase.Configured() {
		client := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.AnonKey, cfg.Supabase.Timeout)
		return supabase.NewDataStore(client, log.Component("supabase")), ModeSupabase, nil
	}
	if cfg.DB.Configured() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Warn().Err(err).Msg("PostgreSQL inaccesible; se usa el almacén local")
			return nil, ModeLocal, nil
		}
		return postgres.NewDataStore(pool, log.Component("postgres")), ModePostgres, pool.Close
	}
	log.Warn().Msg("sin remoto configurado; modo local con datos de demostración")
	return nil, ModeLocal, nil
}

// openSession Redis si responde, memoria en caso contrario.
func (a *App) openSession(cfg *config.Config, log *logger.Logger) repository.SessionStore {
	if cfg.Redis.Addr != "" {
		if client := session.NewRedisClient(cfg.Redis); client != nil {
			a.closers = append(a.closers, func() { _ = client.Close() })
			return session.NewRedisStore(client, cfg.Session.TTL)
		}
		log.Warn().Str("addr", cfg.Redis.Addr).Msg("Redis inaccesible; sesión en memoria")
	}
	return session.NewMemoryStore(cfg.Session.TTL, nil)
}

// Close libera conexiones en orden inverso.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

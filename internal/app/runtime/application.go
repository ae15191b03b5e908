// Package runtime wires configuration, storage, services, and the HTTP
// server into a runnable application.
package runtime

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/pokecapture/service/internal/app/auth"
	"github.com/pokecapture/service/internal/app/clients/pokeapi"
	"github.com/pokecapture/service/internal/app/httpapi"
	capturesvc "github.com/pokecapture/service/internal/app/services/capture"
	"github.com/pokecapture/service/internal/app/services/collection"
	speciessvc "github.com/pokecapture/service/internal/app/services/species"
	"github.com/pokecapture/service/internal/app/services/traineracct"
	"github.com/pokecapture/service/internal/app/storage/postgres"
	"github.com/pokecapture/service/internal/config"
	"github.com/pokecapture/service/internal/middleware"
	"github.com/pokecapture/service/internal/platform/migrations"
	"github.com/pokecapture/service/pkg/logger"
)

// Application manages the process lifecycle.
type Application struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *sqlx.DB
	server      *http.Server
	cleanupStop chan struct{}
}

// NewApplication loads configuration and wires every component.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New("server", logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})

	db, err := openDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrations.Apply(ctx, db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	store := postgres.New(db)
	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	provider := pokeapi.NewHTTPClient(
		&http.Client{Timeout: cfg.Provider.Timeout},
		cfg.Provider.BaseURL,
		log.Named("pokeapi"),
	)

	resolver := speciessvc.NewResolver(store, provider,
		rand.New(rand.NewSource(time.Now().UnixNano())),
		log.Named("species"))

	handler := httpapi.NewHandler(httpapi.Services{
		Accounts: traineracct.New(store, tokens, log.Named("traineracct")),
		Capture: capturesvc.New(store, store, resolver,
			rand.New(rand.NewSource(time.Now().UnixNano())),
			log.Named("capture")),
		Collection: collection.New(store, store, log.Named("collection")),
		Species:    resolver,
	}, tokens, log)

	app := &Application{cfg: cfg, log: log, db: db}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log.Named("ratelimit"))
		app.cleanupStop = make(chan struct{})
		limiter.StartCleanup(10*time.Minute, app.cleanupStop)
	}

	router := handler.Router(httpapi.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		Limiter:     limiter,
	})

	app.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return app, nil
}

// Run serves HTTP until the context is cancelled or the listener fails.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("listening on %s", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown drains in-flight requests and closes the database.
func (a *Application) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if a.cleanupStop != nil {
		close(a.cleanupStop)
		a.cleanupStop = nil
	}
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := a.db.Close(); err != nil {
		a.log.WithError(err).Warn("close database")
	}
	return nil
}

func openDatabase(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

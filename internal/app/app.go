package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/film-grading/external/espn"
	"github.com/riskibarqy/film-grading/external/feedhttp"
	"github.com/riskibarqy/film-grading/external/kaggle"
	"github.com/riskibarqy/film-grading/external/manual"
	"github.com/riskibarqy/film-grading/external/ncaa"
	"github.com/riskibarqy/film-grading/external/sportsref"
	"github.com/riskibarqy/film-grading/internal/config"
	"github.com/riskibarqy/film-grading/internal/domain/external"
	"github.com/riskibarqy/film-grading/internal/domain/game"
	"github.com/riskibarqy/film-grading/internal/domain/play"
	"github.com/riskibarqy/film-grading/internal/domain/quality"
	"github.com/riskibarqy/film-grading/internal/domain/team"
	"github.com/riskibarqy/film-grading/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/film-grading/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/film-grading/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/film-grading/internal/infrastructure/responsecache"
	"github.com/riskibarqy/film-grading/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/film-grading/internal/platform/cache"
	"github.com/riskibarqy/film-grading/internal/platform/dburl"
	"github.com/riskibarqy/film-grading/internal/platform/id"
	"github.com/riskibarqy/film-grading/internal/platform/logging"
	"github.com/riskibarqy/film-grading/internal/platform/metrics"
	"github.com/riskibarqy/film-grading/internal/usecase"
)

// App owns the HTTP server and every resource that has to be released on shutdown.
type App struct {
	Server  *http.Server
	closers []func() error
}

type repositories struct {
	external external.Repository
	games    game.Repository
	plays    play.Repository
	teams    team.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{}
	repos, err := a.openRepositories(ctx, cfg, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if cfg.CacheEnabled {
		repos.teams = cache.NewTeamRepository(repos.teams, basecache.NewStore[[]team.Team](cfg.CacheTTL))
	}

	m := metrics.New()
	providerCache, err := a.openProviderCache(ctx, cfg, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	registry := buildRegistry(cfg, providerCache, m, logger)

	mapping := usecase.NewTeamMappingService(repos.teams, repos.external, logger)
	importer := usecase.NewPlayImportService(usecase.PlayImportDeps{
		Registry:     registry,
		ExternalRepo: repos.external,
		GameRepo:     repos.games,
		PlayRepo:     repos.plays,
		TeamRepo:     repos.teams,
		Mapping:      mapping,
		IDs:          id.NewUUIDGenerator(),
		Observer:     m,
		Logger:       logger,
	})
	validation := usecase.NewValidationService(repos.external, quality.NewValidator(), m, logger)

	handler := httpapi.NewHandler(importer, mapping, validation, registry, logger)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		ServiceName:         cfg.ServiceName,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		ImportToken:         cfg.ImportToken,
		MaxBodyBytes:        cfg.MaxBodyBytes,
		CaptureRequestBody:  cfg.UptraceEnabled && cfg.UptraceCaptureRequestBody,
		RequestBodyMaxBytes: cfg.UptraceRequestBodyMaxBytes,
		Metrics:             m,
		Logger:              logger,
	})

	a.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
	return a, nil
}

// Close releases the database and redis handles in reverse open order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// openRepositories falls back to the in-memory store when DB_URL is unset.
func (a *App) openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		logger.Warn("DB_URL is empty, using in-memory repositories")
		return repositories{
			external: memory.NewExternalRepository(),
			games:    memory.NewGameRepository(),
			plays:    memory.NewPlayRepository(),
			teams:    memory.NewTeamRepository(memory.SeedTeams()),
		}, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	a.closers = append(a.closers, db.Close)

	if cfg.DBSeedTeams {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			return repositories{}, fmt.Errorf("bootstrap team seed: %w", err)
		}
	}
	logger.Info("postgres repositories ready", "db_name", dburl.Name(cfg.DBURL))

	return repositories{
		external: postgres.NewExternalRepository(db),
		games:    postgres.NewGameRepository(db),
		plays:    postgres.NewPlayRepository(db),
		teams:    postgres.NewTeamRepository(db),
	}, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", dburl.Normalize(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dburl.Name(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// openProviderCache shares provider bodies through Redis when REDIS_URL is
// set, and keeps them in process otherwise.
func (a *App) openProviderCache(ctx context.Context, cfg config.Config, logger *logging.Logger) (feedhttp.ResponseCache, error) {
	if cfg.RedisURL == "" {
		return responsecache.NewMemory(cfg.ProviderCacheTTL), nil
	}
	client, err := responsecache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Close)
	logger.Info("provider response cache on redis", "ttl", cfg.ProviderCacheTTL)
	return responsecache.NewRedis(client, ""), nil
}

func buildRegistry(cfg config.Config, providerCache feedhttp.ResponseCache, m *metrics.Metrics, logger *logging.Logger) *usecase.AdapterRegistry {
	registry := usecase.NewAdapterRegistry(
		espn.NewAdapter(),
		ncaa.NewAdapter(),
		sportsref.NewAdapter(),
		kaggle.NewAdapter(),
		manual.NewAdapter(),
	)

	client := func(name string, p config.ProviderConfig, headers map[string]string) *feedhttp.Client {
		return feedhttp.New(feedhttp.Config{
			Name:           name,
			BaseURL:        p.BaseURL,
			Timeout:        p.Timeout,
			Retry:          p.Retry,
			CircuitBreaker: p.CircuitBreaker,
			Cache:          providerCache,
			CacheTTL:       cfg.ProviderCacheTTL,
			Headers:        headers,
			Logger:         logger,
			Observer:       m,
		})
	}

	if cfg.ESPN.Enabled {
		registry.RegisterFeed(espn.NewFeed(client("espn", cfg.ESPN, nil)))
	}
	if cfg.NCAA.Enabled {
		var headers map[string]string
		if cfg.NCAA.APIKey != "" {
			headers = map[string]string{"Authorization": "Bearer " + cfg.NCAA.APIKey}
		}
		registry.RegisterFeed(ncaa.NewFeed(client("ncaa", cfg.NCAA, headers)))
	}
	if cfg.SportsRef.Enabled {
		registry.RegisterFeed(sportsref.NewFeed(client("sportsref", cfg.SportsRef, map[string]string{"Accept": "text/html"})))
	}
	if cfg.KaggleDatasetPath != "" {
		registry.RegisterFeed(kaggle.NewDataset(cfg.KaggleDatasetPath))
	}

	logger.Info("provider registry ready", "sources", registry.Sources())
	return registry
}

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
	"go.opentelemetry.io/otel/attribute"

	"github.com/L3Technosmith/pkmnFoundations/internal/config"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/facility"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/gts"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/pokedex"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/profile"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/terminal"
	"github.com/L3Technosmith/pkmnFoundations/internal/infrastructure/repository/cache"
	"github.com/L3Technosmith/pkmnFoundations/internal/infrastructure/repository/memory"
	"github.com/L3Technosmith/pkmnFoundations/internal/infrastructure/repository/pokedexgorm"
	"github.com/L3Technosmith/pkmnFoundations/internal/infrastructure/repository/postgres"
	"github.com/L3Technosmith/pkmnFoundations/internal/interfaces/httpapi"
	idgen "github.com/L3Technosmith/pkmnFoundations/internal/platform/id"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
	"github.com/L3Technosmith/pkmnFoundations/internal/usecase"
)

const (
	dbPingTimeout   = 5 * time.Second
	pokedexCacheTTL = 10 * time.Minute
)

// Services is every usecase service built over one storage backend.
type Services struct {
	Trades       *usecase.TradeService
	Leaderboards *usecase.LeaderboardService
	Content      *usecase.ContentService
	Profiles     *usecase.ProfileService
	Pokedex      *usecase.PokedexService
	Stats        *usecase.StatsService

	closers []func() error
}

// Close releases the database handles behind the services.
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type repositories struct {
	trades    gts.Repository
	facility  facility.Repository
	terminal  terminal.Repository
	profiles  profile.Repository
	pokedex   pokedex.Repository
	closers   []func() error
	storageID string
}

// NewServices opens the storage selected by STORAGE_DRIVER and builds the services on it.
func NewServices(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	trades := usecase.NewTradeService(repos.trades, logger.With("service", "trade"))
	content := usecase.NewContentService(repos.terminal, cfg.SerialKey, logger.With("service", "content"))
	svc := &Services{
		Trades:       trades,
		Leaderboards: usecase.NewLeaderboardService(repos.facility, logger.With("service", "leaderboard")),
		Content:      content,
		Profiles:     usecase.NewProfileService(repos.profiles),
		Pokedex:      usecase.NewPokedexService(cache.NewPokedexRepository(repos.pokedex, pokedexCacheTTL)),
		Stats:        usecase.NewStatsService(trades, content, logger.With("service", "stats")),
		closers:      repos.closers,
	}

	logger.Info("services ready", "storage_driver", repos.storageID)
	return svc, nil
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		isolation, err := postgres.ParseIsolation(cfg.DBTxIsolation)
		if err != nil {
			return repositories{}, err
		}
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		gormDB, err := pokedexgorm.Open(NormalizeDBURL(cfg.DBURL, DSNOptions{ApplicationName: cfg.ServiceName + "-pokedex"}))
		if err != nil {
			_ = db.Close()
			return repositories{}, err
		}
		closers := []func() error{db.Close}
		if sqlDB, err := gormDB.DB(); err == nil {
			closers = append(closers, sqlDB.Close)
		} else {
			logger.Warn("gorm pool handle unavailable", "error", err)
		}

		return repositories{
			trades:    postgres.NewGTSRepository(db, isolation),
			facility:  postgres.NewFacilityRepository(db, isolation),
			terminal:  postgres.NewTerminalRepository(db, isolation),
			profiles:  postgres.NewProfileRepository(db),
			pokedex:   pokedexgorm.NewRepository(gormDB),
			closers:   closers,
			storageID: config.StoragePostgres,
		}, nil
	case config.StorageMemory, "":
		return repositories{
			trades:    memory.NewGTSRepository(),
			facility:  memory.NewFacilityRepository(),
			terminal:  memory.NewTerminalRepository(),
			profiles:  memory.NewProfileRepository(),
			pokedex:   memory.NewPokedexRepository(),
			storageID: config.StorageMemory,
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := NormalizeDBURL(cfg.DBURL, DSNOptions{
		ApplicationName:             cfg.ServiceName,
		DisablePreparedBinaryResult: cfg.DBDisablePreparedBinary,
	})
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// NewHTTPServer mounts the JSON API over svc.
func NewHTTPServer(cfg config.Config, svc *Services, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	handler := httpapi.NewHandler(
		svc.Trades,
		svc.Leaderboards,
		svc.Content,
		svc.Profiles,
		svc.Pokedex,
		svc.Stats,
		logger,
	)
	router := httpapi.NewRouter(handler, idgen.NewKSUIDGenerator(), logger, cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

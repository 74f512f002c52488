package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/ogurasousui/codex-employee-records/internal/adapters/http/handler"
	pgrepo "github.com/ogurasousui/codex-employee-records/internal/adapters/repository/postgres"
	sqliterepo "github.com/ogurasousui/codex-employee-records/internal/adapters/repository/sqlite"
	"github.com/ogurasousui/codex-employee-records/internal/core/employee"
	"github.com/ogurasousui/codex-employee-records/internal/platform/config"
	pg "github.com/ogurasousui/codex-employee-records/internal/platform/db/postgres"
	sqlitedb "github.com/ogurasousui/codex-employee-records/internal/platform/db/sqlite"
	"github.com/ogurasousui/codex-employee-records/internal/platform/logging"
	"github.com/ogurasousui/codex-employee-records/internal/platform/migration"
	"github.com/ogurasousui/codex-employee-records/internal/platform/server"
	"github.com/rs/zerolog"
)

type storage struct {
	repo  employee.Repository
	tx    employee.TransactionManager
	ping  handler.PingFunc
	close func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env は任意
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.New(cfg.Log, os.Stdout)

	st, err := openStorage(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to open storage")
	}
	defer st.close()

	if cfg.Database.AutoMigrate {
		if err := migration.Run(migration.ActionUp, cfg.Database.MigrationsDir, cfg.Database.MigrateURL(), logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to apply migrations")
		}
	}

	svc := employee.NewService(st.repo, st.tx)

	if cfg.SeedEnabled() {
		n, err := svc.SeedIfEmpty(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to seed employees")
		}
		if n > 0 {
			logger.Info().Int("count", n).Msg("seeded employees")
		}
	}

	srv := server.New(cfg.Server, server.Dependencies{
		Employees: svc,
		Ping:      st.ping,
		Logger:    logger,
	})

	if err := srv.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server stopped with error")
	}
}

func openStorage(ctx context.Context, cfg config.DatabaseConfig) (*storage, error) {
	if cfg.Driver == config.DriverSQLite {
		db, err := sqlitedb.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &storage{
			repo:  sqliterepo.NewEmployeeRepository(db),
			tx:    sqlitedb.NewTransactionManager(db),
			ping:  db.PingContext,
			close: func() { closeDB(db) },
		}, nil
	}

	pool, err := pg.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &storage{
		repo:  pgrepo.NewEmployeeRepository(pool),
		tx:    pg.NewTransactionManager(pool),
		ping:  pool.Ping,
		close: pool.Close,
	}, nil
}

func closeDB(db *sql.DB) {
	_ = db.Close()
}

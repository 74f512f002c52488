package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/ogurasousui/codex-employee-records/internal/platform/config"
	"github.com/ogurasousui/codex-employee-records/internal/platform/logging"
	"github.com/ogurasousui/codex-employee-records/internal/platform/migration"
	"github.com/rs/zerolog"
)

func main() {
	var (
		configPath    = flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
		migrationsDir = flag.String("dir", "", "directory containing migration files (defaults to database.migrations_dir)")
	)
	flag.Parse()

	action := migration.ActionUp
	if flag.NArg() > 0 {
		action = migration.Action(flag.Arg(0))
	}

	_ = godotenv.Load()

	cfg, err := config.Load(effectiveConfigPath(*configPath))
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.New(cfg.Log, os.Stdout)

	dir := *migrationsDir
	if dir == "" {
		dir = cfg.Database.MigrationsDir
	}

	if err := migration.Run(action, dir, cfg.Database.MigrateURL(), logger); err != nil {
		logger.Fatal().Err(err).Str("action", string(action)).Msg("migration failed")
	}

	logger.Info().Str("action", string(action)).Str("driver", cfg.Database.Driver).Msg("migration completed")
}

func effectiveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "assets/local.yaml"
}

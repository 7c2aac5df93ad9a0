// Command migrate applies the SQL files under migrations/ in lexical order.
package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"

	"github.com/tigersos/tigersos-api/pkg/config"
	"github.com/tigersos/tigersos-api/pkg/database"
	"github.com/tigersos/tigersos-api/pkg/logger"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil || len(files) == 0 {
		logger.Error("No migration files found", "dir", dir, "error", err)
		os.Exit(1)
	}
	sort.Strings(files)

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			logger.Error("Failed to read migration", "file", file, "error", err)
			os.Exit(1)
		}

		if _, err := pool.Exec(ctx, string(sqlBytes)); err != nil {
			logger.Error("Migration failed", "file", file, "error", err)
			os.Exit(1)
		}
		logger.Info("Migration applied", "file", file)
	}

	logger.Info("All migrations applied", "count", len(files))
}

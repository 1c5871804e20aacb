// migrate aplica las migraciones SQL embebidas con goose.
//
// Uso: go run ./cmd/migrate [up|down|status]   (por defecto: up)
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Inventario-ventas/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-ventas/pkg/config"
	"github.com/jhoicas/Inventario-ventas/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error ejecutando migraciones: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	command := postgres.MigrateUp
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	log.Info().Str("command", command).Msg("iniciando migración")
	if err := postgres.Migrate(ctx, pool, command); err != nil {
		return err
	}
	log.Info().Str("command", command).Msg("migración completada")
	return nil
}

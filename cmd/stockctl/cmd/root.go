// Package cmd comandos de stockctl, la CLI de operación de StockRest.
package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stockrest/internal/bootstrap"
	"github.com/jhoicas/stockrest/pkg/config"
	"github.com/jhoicas/stockrest/pkg/logger"
)

// NewRootCmd arma el árbol de comandos. Cada llamada devuelve uno nuevo.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stockctl",
		Short: "StockRest Control CLI",
		Long: `
stockctl opera el inventario de StockRest desde la terminal.

La configuración se lee igual que la API (variables de entorno, .env o
config/config.env): SUPABASE_URL, DATABASE_URL o DB_HOST, LOCAL_DB_PATH...

COMANDOS:
  migrate up|down   Aplica o revierte el esquema en PostgreSQL
  seed              Carga los datos de demostración en el almacén remoto
  alerts            Ítems sin stock, bajo mínimo o por vencer
  export            Lista de compras en CSV o PDF`,
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newAlertsCmd(), newExportCmd())
	return root
}

// loadEnv configuración y logger a stderr para no mezclarlo con la salida.
func loadEnv() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})
	return cfg, log, nil
}

// openApp arranca el grafo completo con el almacén que indique la configuración.
func openApp(ctx context.Context) (*bootstrap.App, error) {
	cfg, log, err := loadEnv()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return bootstrap.New(ctx, cfg, log, bootstrap.Options{})
}

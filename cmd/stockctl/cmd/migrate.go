package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stockrest/internal/infrastructure/postgres"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema PostgreSQL",
		Long: `Aplica (up) o revierte (down) las tablas users, categories, items y logs.
Requiere DATABASE_URL o DB_HOST.`,
	}
	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica las migraciones pendientes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigration(func(m *postgres.Migrator) error { return m.Up() })
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revierte todas las migraciones",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigration(func(m *postgres.Migrator) error { return m.Down() })
			},
		},
	)
	return migrateCmd
}

func runMigration(step func(*postgres.Migrator) error) error {
	cfg, log, err := loadEnv()
	if err != nil {
		return err
	}
	if !cfg.DB.Configured() {
		return errors.New("migrate: defina DATABASE_URL o DB_HOST")
	}
	m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Component("migrate"))
	if err != nil {
		return err
	}
	defer m.Close()
	return step(m)
}

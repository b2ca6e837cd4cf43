package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stockrest/internal/bootstrap"
	"github.com/jhoicas/stockrest/internal/domain"
	"github.com/jhoicas/stockrest/internal/infrastructure/local"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Carga los datos de demostración en el almacén remoto",
		Long: `Inserta categorías, ítems, el administrador de demostración y el log inicial
en Supabase o PostgreSQL. Las filas que ya existen se omiten.
El modo local se siembra solo en el primer arranque.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			store, mode, closeFn := bootstrap.OpenRemote(ctx, cfg, log)
			if closeFn != nil {
				defer closeFn()
			}
			if store == nil {
				return errors.New("seed: no hay almacén remoto accesible")
			}
			data, err := local.SeedDataset(time.Now())
			if err != nil {
				return err
			}

			var inserted, skipped int
			insert := func(what string, err error) error {
				switch {
				case err == nil:
					inserted++
				case errors.Is(err, domain.ErrConflict):
					skipped++
				default:
					return fmt.Errorf("seed %s: %w", what, err)
				}
				return nil
			}
			for i := range data.Categories {
				if err := insert("categoría "+data.Categories[i].Name, store.InsertCategory(ctx, &data.Categories[i])); err != nil {
					return err
				}
			}
			for i := range data.Items {
				if err := insert("ítem "+data.Items[i].Name, store.InsertItem(ctx, &data.Items[i])); err != nil {
					return err
				}
			}
			for i := range data.Users {
				if err := insert("usuario "+data.Users[i].Email, store.InsertUser(ctx, &data.Users[i])); err != nil {
					return err
				}
			}
			for i := range data.Logs {
				if err := insert("log", store.InsertLog(ctx, &data.Logs[i])); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d filas insertadas, %d ya existían\n", mode, inserted, skipped)
			return nil
		},
	}
}

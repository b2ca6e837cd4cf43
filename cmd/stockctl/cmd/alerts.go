package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stockrest/internal/domain/inventory"
)

// errAlerts se devuelve con --exit-code cuando hay algún ítem en alerta.
var errAlerts = errors.New("hay ítems en alerta")

func newAlertsCmd() *cobra.Command {
	var exitCode bool
	alertsCmd := &cobra.Command{
		Use:   "alerts",
		Short: "Ítems sin stock, bajo mínimo o por vencer",
		Long: `Muestra las tres tarjetas de alerta del panel con los umbrales vigentes.
Con --exit-code termina con código 1 si alguna lista no está vacía (cron, CI).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			sections := []struct {
				title  string
				metric string
			}{
				{"SEM ESTOQUE", inventory.MetricOutOfStock},
				{"ESTOQUE BAIXO", inventory.MetricLowStock},
				{"VENCENDO", inventory.MetricExpiring},
			}
			settings := app.Catalog.Settings()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Umbrales: vencimiento %d días, stock bajo +%d%%\n",
				settings.ExpiryThresholdDays, settings.LowStockPercentage)

			total := 0
			for _, s := range sections {
				items, err := app.Catalog.MetricItems(s.metric)
				if err != nil {
					return err
				}
				total += len(items)
				fmt.Fprintf(out, "\n%s (%d)\n", s.title, len(items))
				if len(items) == 0 {
					continue
				}
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNOME\tATUAL\tMÍNIMO\tVALIDADE\tCATEGORIA")
				for _, it := range items {
					fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\t%s\n",
						it.ID, it.Name, it.CurrentStock.String(), it.Unit, it.MinStock.String(), it.ExpiryDate, it.CategoryName)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}
			if exitCode && total > 0 {
				return errAlerts
			}
			return nil
		},
	}
	alertsCmd.Flags().BoolVar(&exitCode, "exit-code", false, "Termina con error si hay ítems en alerta")
	return alertsCmd
}

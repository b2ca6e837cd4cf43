package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stockrest/internal/application/report"
)

func newExportCmd() *cobra.Command {
	var format, outPath string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta la lista de compras (CSV o PDF)",
		Long: `Genera la lista de compras con los ítems sin stock o bajo el mínimo.
Sin --out se usa el nombre sugerido en el directorio actual.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			data, filename, err := app.Reports.Export(cmd.Context(), format)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = filename
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d ítems exportados a %s\n", len(app.Reports.ShoppingList()), outPath)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", report.FormatCSV, "Formato: csv | pdf")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "Archivo de salida")
	return exportCmd
}

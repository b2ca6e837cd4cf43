// Package report genera las exportaciones de la lista de compras (CSV y PDF).
package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockrest/internal/domain"
	"github.com/jhoicas/stockrest/internal/domain/inventory"
)

// Formatos de exportación.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// Service arma la lista de compras a partir del estado actual.
type Service struct {
	src Source
	pdf ShoppingListPDFGenerator
}

// NewService pdf puede ser nil si no se exporta PDF.
func NewService(src Source, pdf ShoppingListPDFGenerator) *Service {
	return &Service{src: src, pdf: pdf}
}

// ShoppingList filas de ítems BAIXO o SEM ESTOQUE.
func (s *Service) ShoppingList() []inventory.ShoppingListRow {
	return inventory.ShoppingList(s.src.Items(), s.src.Categories(), s.src.Settings())
}

// Export genera el archivo en el formato pedido y su nombre sugerido.
// Sin ítems en falta devuelve domain.ErrNothingToExport.
func (s *Service) Export(ctx context.Context, format string) (data []byte, filename string, err error) {
	switch strings.ToLower(format) {
	case FormatCSV, "":
		return s.ShoppingListCSV()
	case FormatPDF:
		return s.ShoppingListPDF(ctx)
	default:
		return nil, "", fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
	}
}

// ShoppingListCSV escribe la lista de compras en CSV.
func (s *Service) ShoppingListCSV() ([]byte, string, error) {
	var buf bytes.Buffer
	if err := inventory.WriteShoppingListCSV(&buf, s.ShoppingList()); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), inventory.ShoppingListFilename, nil
}

// ShoppingListPDF dibuja la lista de compras en PDF.
func (s *Service) ShoppingListPDF(ctx context.Context) ([]byte, string, error) {
	if s.pdf == nil {
		return nil, "", fmt.Errorf("report: generador PDF no configurado")
	}
	rows := s.ShoppingList()
	if len(rows) == 0 {
		return nil, "", domain.ErrNothingToExport
	}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.TotalValue)
	}
	doc := ShoppingListDocument{
		GeneratedAt: s.src.Today(),
		Rows:        rows,
		Total:       total,
		Settings:    s.src.Settings(),
	}
	data, err := s.pdf.GenerateShoppingListPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("report: generación PDF fallida: %w", err)
	}
	return data, strings.TrimSuffix(inventory.ShoppingListFilename, ".csv") + ".pdf", nil
}

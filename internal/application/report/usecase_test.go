package report_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockrest/internal/application/report"
	"github.com/jhoicas/stockrest/internal/domain"
	"github.com/jhoicas/stockrest/internal/domain/entity"
)

type fakeSource struct {
	items      []entity.InventoryItem
	categories []entity.Category
}

func (f fakeSource) Items() []entity.InventoryItem { return f.items }
func (f fakeSource) Categories() []entity.Category { return f.categories }
func (f fakeSource) Settings() entity.AppSettings  { return entity.DefaultSettings() }
func (f fakeSource) Today() time.Time              { return time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC) }

type fakePDF struct {
	got report.ShoppingListDocument
	err error
}

func (f *fakePDF) GenerateShoppingListPDF(_ context.Context, doc report.ShoppingListDocument) ([]byte, error) {
	f.got = doc
	return []byte("%PDF-fake"), f.err
}

func source() fakeSource {
	dec := decimal.RequireFromString
	return fakeSource{
		categories: []entity.Category{{ID: "1", Name: "Grãos"}},
		items: []entity.InventoryItem{
			{ID: "a", Name: "Arroz", Unit: "Kg", MinStock: dec("10"), CurrentStock: dec("2"), CategoryID: "1",
				ValuePerUnit: decimal.NewNullDecimal(dec("6.5"))},
			{ID: "b", Name: "Feijão", Unit: "Kg", MinStock: dec("10"), CurrentStock: dec("0"), CategoryID: "1",
				ValuePerUnit: decimal.NewNullDecimal(dec("8"))},
			{ID: "c", Name: "Sal", Unit: "Kg", MinStock: dec("1"), CurrentStock: dec("5"), CategoryID: "1"},
		},
	}
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", report.FormatBRL(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "R$ 0,00", report.FormatBRL(decimal.Zero))
	assert.Equal(t, "R$ 6,50", report.FormatBRL(decimal.RequireFromString("6.5")))
}

func TestExport_CSV(t *testing.T) {
	svc := report.NewService(source(), nil)

	data, name, err := svc.Export(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "lista_compras_stockrest.csv", name)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Produto,Categoria,Estoque Atual,Estoque Minimo,Unidade,Status,Valor Unit.,Valor Total", lines[0])
	assert.Equal(t, "Arroz,Grãos,2,10,Kg,BAIXO,6.5,13.00", lines[1])
	assert.Equal(t, "Feijão,Grãos,0,10,Kg,SEM ESTOQUE,8,0.00", lines[2])
}

func TestExport_PDFConTotal(t *testing.T) {
	gen := &fakePDF{}
	svc := report.NewService(source(), gen)

	data, name, err := svc.Export(context.Background(), "PDF")
	require.NoError(t, err)
	assert.Equal(t, "lista_compras_stockrest.pdf", name)
	assert.Equal(t, "%PDF-fake", string(data))
	assert.Len(t, gen.got.Rows, 2)
	assert.True(t, decimal.RequireFromString("13").Equal(gen.got.Total))
}

func TestExport_SinFaltantes(t *testing.T) {
	src := source()
	src.items = src.items[2:]
	svc := report.NewService(src, &fakePDF{})

	_, _, err := svc.Export(context.Background(), "csv")
	assert.ErrorIs(t, err, domain.ErrNothingToExport)
	_, _, err = svc.Export(context.Background(), "pdf")
	assert.ErrorIs(t, err, domain.ErrNothingToExport)
}

func TestExport_FormatoDesconocidoYErrorDelGenerador(t *testing.T) {
	_, _, err := report.NewService(source(), nil).Export(context.Background(), "xlsx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	boom := errors.New("boom")
	_, _, err = report.NewService(source(), &fakePDF{err: boom}).Export(context.Background(), "pdf")
	assert.ErrorIs(t, err, boom)
}

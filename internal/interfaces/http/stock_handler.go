package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockrest/internal/application/catalog"
	"github.com/jhoicas/stockrest/internal/application/dto"
)

// StockHandler planilla de conteo (admin y staff).
type StockHandler struct {
	catalog *catalog.Service
}

// NewStockHandler construye el handler.
func NewStockHandler(cat *catalog.Service) *StockHandler {
	return &StockHandler{catalog: cat}
}

// Sheet godoc
// @Summary      Planilla de conteo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Success      200  {array}  dto.StockSheetRow
// @Router       /api/stock/sheet [get]
func (h *StockHandler) Sheet(c *fiber.Ctx) error {
	return c.JSON(h.catalog.StockSheet(c.Query("category_id")))
}

// SaveBatch godoc
// @Summary      Guardar conteo
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockBatchRequest  true  "Filas contadas"
// @Success      200   {object}  dto.StockBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/batch [post]
func (h *StockHandler) SaveBatch(c *fiber.Ctx) error {
	var in dto.StockBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Responsible == "" {
		in.Responsible = GetUserName(c)
	}
	out, err := h.catalog.SaveStockSheet(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

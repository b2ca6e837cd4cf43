package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockrest/internal/application/catalog"
	"github.com/jhoicas/stockrest/internal/application/dto"
	"github.com/jhoicas/stockrest/internal/application/report"
	"github.com/jhoicas/stockrest/internal/application/state"
)

// ItemHandler maneja el CRUD de ítems y la exportación de la lista de compras.
type ItemHandler struct {
	state   *state.Container
	catalog *catalog.Service
	reports *report.Service
}

// NewItemHandler construye el handler.
func NewItemHandler(st *state.Container, cat *catalog.Service, rep *report.Service) *ItemHandler {
	return &ItemHandler{state: st, catalog: cat, reports: rep}
}

// List godoc
// @Summary      Listar ítems
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        search       query  string  false  "Texto en el nombre"
// @Param        category_id  query  string  false  "Categoría"
// @Param        sort_by      query  string  false  "name | unit | valuePerUnit | totalValue | currentStock | minStock | expiryDate | lastCountDate"
// @Param        desc         query  bool    false  "Orden descendente"
// @Success      200  {array}   dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var q dto.ItemListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.catalog.ListItems(q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ítem por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.catalog.Item(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear ítem
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	it, err := h.state.AddItem(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.catalog.ItemResponse(it))
}

// Update godoc
// @Summary      Actualizar ítem
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ítem"
// @Param        body  body  dto.ItemRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	it, err := h.state.UpdateItem(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.catalog.ItemResponse(it))
}

// Delete godoc
// @Summary      Eliminar ítem
// @Tags         items
// @Security     Bearer
// @Param        id   path  string  true  "ID del ítem"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.state.DeleteItem(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export godoc
// @Summary      Exportar lista de compras
// @Description  Ítems sin stock o bajo mínimo, en CSV o PDF.
// @Tags         items
// @Security     Bearer
// @Produce      octet-stream
// @Param        format  query  string  false  "csv | pdf"  default(csv)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/items/export [get]
func (h *ItemHandler) Export(c *fiber.Ctx) error {
	data, filename, err := h.reports.Export(c.UserContext(), c.Query("format", report.FormatCSV))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(filename)
	return c.Send(data)
}

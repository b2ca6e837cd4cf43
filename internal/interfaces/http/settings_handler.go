package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockrest/internal/application/catalog"
	"github.com/jhoicas/stockrest/internal/application/dto"
)

// SettingsHandler umbrales y auditoría (solo admin).
type SettingsHandler struct {
	catalog *catalog.Service
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(cat *catalog.Service) *SettingsHandler {
	return &SettingsHandler{catalog: cat}
}

// Get godoc
// @Summary      Umbrales vigentes
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.catalog.Settings())
}

// Update godoc
// @Summary      Actualizar umbrales
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SettingsRequest  true  "Días de vencimiento y porcentaje de stock bajo"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.SettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.catalog.UpdateSettings(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Logs godoc
// @Summary      Auditoría
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Texto en detalle o nombre de usuario"
// @Param        action  query  string  false  "create | update | delete | stock_update"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.LogPage
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/logs [get]
func (h *SettingsHandler) Logs(c *fiber.Ctx) error {
	var q dto.LogQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.catalog.Logs(q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockrest/internal/application/catalog"
)

// DashboardHandler maneja los endpoints del panel.
type DashboardHandler struct {
	svc *catalog.Service
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(svc *catalog.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GetSummary godoc
// @Summary      Tarjetas del panel
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	return c.JSON(h.svc.Dashboard())
}

// GetMetric godoc
// @Summary      Ítems detrás de una tarjeta
// @Description  metric: total | outOfStock | lowStock | expiring | value
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        metric  path  string  true  "Tarjeta"
// @Success      200  {array}   dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/metrics/{metric} [get]
func (h *DashboardHandler) GetMetric(c *fiber.Ctx) error {
	out, err := h.svc.MetricItems(c.Params("metric"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

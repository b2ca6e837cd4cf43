package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockrest/internal/application/catalog"
	"github.com/jhoicas/stockrest/internal/application/dto"
	"github.com/jhoicas/stockrest/internal/application/state"
)

// CategoryHandler maneja las categorías.
type CategoryHandler struct {
	state   *state.Container
	catalog *catalog.Service
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(st *state.Container, cat *catalog.Service) *CategoryHandler {
	return &CategoryHandler{state: st, catalog: cat}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.catalog.Categories())
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Nombre"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	cat, err := h.state.AddCategory(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CategoryResponse{ID: cat.ID, Name: cat.Name})
}

// Delete godoc
// @Summary      Eliminar categoría
// @Description  Rechaza con 409 si algún ítem la referencia.
// @Tags         categories
// @Security     Bearer
// @Param        id   path  string  true  "ID de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCategory(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

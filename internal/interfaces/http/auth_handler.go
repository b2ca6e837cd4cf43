package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockrest/internal/application/auth"
	"github.com/jhoicas/stockrest/internal/application/dto"
	"github.com/jhoicas/stockrest/internal/application/state"
)

// AuthHandler maneja login, logout y el usuario autenticado.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	state *state.Container
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, st *state.Container) *AuthHandler {
	return &AuthHandler{uc: uc, state: st}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.uc.Logout(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id := GetUserID(c)
	for _, u := range h.state.Users() {
		if u.ID == id {
			return c.JSON(auth.ToUserResponse(u))
		}
	}
	// Cuenta ausente de la lista cargada: se responde con los claims del token.
	return c.JSON(dto.UserResponse{ID: id, Name: GetUserName(c), Role: GetRole(c)})
}

package auth

import (
	"context"

	"github.com/jhoicas/stockrest/internal/application/dto"
	"github.com/jhoicas/stockrest/internal/domain"
	"github.com/jhoicas/stockrest/internal/domain/entity"
	"github.com/jhoicas/stockrest/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SessionManager contenedor de estado que valida credenciales y guarda la sesión.
type SessionManager interface {
	Login(ctx context.Context, email, password string) (entity.User, bool)
	Logout(ctx context.Context)
	CurrentUser() *entity.User
}

// AuthUseCase login/logout sobre el contenedor más emisión de JWT.
type AuthUseCase struct {
	sessions SessionManager
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(sessions SessionManager, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{sessions: sessions, jwtCfg: jwtCfg}
}

// Login verifica credenciales y genera el token. Cualquier rechazo (cuenta
// inexistente, inactiva o contraseña incorrecta) es domain.ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, ok := uc.sessions.Login(ctx, in.Email, in.Password)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  ToUserResponse(user),
	}, nil
}

// Logout limpia la sesión del contenedor. El token emitido sigue siendo
// válido hasta que expira.
func (uc *AuthUseCase) Logout(ctx context.Context) {
	uc.sessions.Logout(ctx)
}

// ToUserResponse salida pública de un usuario (sin password).
func ToUserResponse(u entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

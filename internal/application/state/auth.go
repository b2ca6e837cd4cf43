package state

import (
	"context"

	"github.com/jhoicas/stockrest/internal/domain/entity"
	"github.com/jhoicas/stockrest/internal/domain/repository"
)

// Login valida credenciales y, si son correctas, guarda el usuario en la
// ranura de sesión. Primero consulta el remoto; si el remoto falla o no está
// configurado, usa las cuentas del almacén local. Un "no existe" del remoto
// no cae al local. El email se compara tal cual, igual que en el remoto.
// Nunca devuelve error: false cubre cuenta inexistente, inactiva o
// contraseña incorrecta.
func (c *Container) Login(ctx context.Context, email, password string) (entity.User, bool) {
	if email == "" || password == "" {
		return entity.User{}, false
	}
	u, ok := c.authenticate(ctx, email, password)
	if !ok {
		return entity.User{}, false
	}
	clean := u.WithoutPassword()

	c.mu.Lock()
	c.currentUser = &clean
	c.mu.Unlock()

	if c.session != nil {
		if err := c.session.Set(ctx, clean); err != nil {
			c.log.Warn().Err(err).Msg("no se pudo guardar la sesión")
		}
	}
	return clean, true
}

func (c *Container) authenticate(ctx context.Context, email, password string) (entity.User, bool) {
	if c.remote != nil {
		u, err := c.remote.FindActiveUserByEmail(ctx, email)
		if err == nil {
			if u == nil || !u.IsActive() || !u.CheckPassword(password) {
				return entity.User{}, false
			}
			return *u, true
		}
		c.remoteFailed("find_user", err)
	}

	for _, u := range c.fallbackUsers(ctx) {
		if u.Email == email && u.IsActive() && u.CheckPassword(password) {
			return u, true
		}
	}
	return entity.User{}, false
}

// fallbackUsers cuentas locales: en modo local las de memoria; en modo remoto
// las del almacén local (siembra de demostración incluida).
func (c *Container) fallbackUsers(ctx context.Context) []entity.User {
	if c.remote == nil {
		return c.Users()
	}
	var users []entity.User
	if _, err := c.local.Load(ctx, repository.KeyUsers, &users); err != nil {
		c.log.Warn().Err(err).Msg("no se pudieron leer las cuentas locales")
		return nil
	}
	return users
}

// Logout limpia el usuario en sesión. Siempre termina bien.
func (c *Container) Logout(ctx context.Context) {
	c.mu.Lock()
	c.currentUser = nil
	c.mu.Unlock()

	if c.session != nil {
		if err := c.session.Clear(ctx); err != nil {
			c.log.Warn().Err(err).Msg("no se pudo limpiar la sesión")
		}
	}
}

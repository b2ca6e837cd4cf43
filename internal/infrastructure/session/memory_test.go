package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockrest/internal/domain/entity"
	"github.com/jhoicas/stockrest/internal/infrastructure/session"
	"github.com/jhoicas/stockrest/pkg/config"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestMemoryStore_GuardaSinContrasena(t *testing.T) {
	s := session.NewMemoryStore(0, nil)
	ctx := context.Background()

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Set(ctx, entity.User{ID: "1", Name: "Ana", Password: "secreta", Role: entity.RoleAdmin}))
	got, err = s.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.Name)
	assert.Empty(t, got.Password)

	require.NoError(t, s.Clear(ctx))
	got, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_ExpiraTrasTTL(t *testing.T) {
	c := &clock{t: time.Date(2024, 3, 7, 8, 0, 0, 0, time.UTC)}
	s := session.NewMemoryStore(time.Hour, c.now)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, entity.User{ID: "1", Name: "Ana"}))

	c.t = c.t.Add(59 * time.Minute)
	got, _ := s.Get(ctx)
	assert.NotNil(t, got)

	c.t = c.t.Add(time.Minute)
	got, _ = s.Get(ctx)
	assert.Nil(t, got)
}

func TestMemoryStore_DevuelveCopia(t *testing.T) {
	s := session.NewMemoryStore(0, nil)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, entity.User{ID: "1", Name: "Ana"}))

	got, _ := s.Get(ctx)
	got.Name = "modificado"

	again, _ := s.Get(ctx)
	assert.Equal(t, "Ana", again.Name)
}

func TestNewRedisClient_SinDireccionDevuelveNil(t *testing.T) {
	assert.Nil(t, session.NewRedisClient(config.RedisConfig{}))
}

func TestNewRedisClient_ServidorInalcanzableDevuelveNil(t *testing.T) {
	assert.Nil(t, session.NewRedisClient(config.RedisConfig{Addr: "127.0.0.1:1"}))
}

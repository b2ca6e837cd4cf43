// Package session implementa la ranura del usuario autenticado: Redis cuando
// está disponible y memoria del proceso en caso contrario.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stockrest/internal/domain/entity"
	"github.com/jhoicas/stockrest/internal/domain/repository"
	"github.com/jhoicas/stockrest/pkg/config"
)

var _ repository.SessionStore = (*RedisStore)(nil)

// NewRedisClient conecta con Redis. Devuelve nil si Addr está vacío o el ping
// falla; el llamador usa entonces la sesión en memoria.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

// RedisStore guarda el usuario en una clave con expiración.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore usa repository.SessionKey como clave. ttl <= 0 = sin expiración.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, key: repository.SessionKey, ttl: ttl}
}

// Get devuelve nil si la clave no existe o expiró.
func (s *RedisStore) Get(ctx context.Context) (*entity.User, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: leer %s: %w", s.key, err)
	}
	var u entity.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("session: decodificar %s: %w", s.key, err)
	}
	return &u, nil
}

// Set guarda el usuario sin la contraseña.
func (s *RedisStore) Set(ctx context.Context, u entity.User) error {
	raw, err := json.Marshal(u.WithoutPassword())
	if err != nil {
		return fmt.Errorf("session: serializar: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("session: guardar %s: %w", s.key, err)
	}
	return nil
}

// Clear elimina la ranura.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("session: borrar %s: %w", s.key, err)
	}
	return nil
}

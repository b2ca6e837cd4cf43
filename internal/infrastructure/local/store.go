// Package local implementa el almacenamiento duradero del cliente sobre un
// archivo SQLite (gorm): un valor JSON por clave. Es el almacén activo cuando
// no hay remoto configurado y siempre guarda los ajustes.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/stockrest/internal/domain/repository"
)

var _ repository.DurableStore = (*Store)(nil)

// entry fila de kv_entries.
type entry struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (entry) TableName() string { return "kv_entries" }

// Store almacén clave/valor. Las claves de colecciones se siembran con el
// dataset de demostración la primera vez que se leen.
type Store struct {
	db   *gorm.DB
	now  func() time.Time
	mu   sync.Mutex
	seed map[string]any
}

// Open abre (o crea) el archivo SQLite en path. ":memory:" sirve para tests.
func Open(path string, now func() time.Time) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("local: abrir %s: %w", path, err)
	}
	return New(db, now)
}

// New construye el store sobre una conexión gorm existente y migra la tabla.
func New(db *gorm.DB, now func() time.Time) (*Store, error) {
	if now == nil {
		now = time.Now
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("local: conexión: %w", err)
	}
	// SQLite admite un solo escritor; con :memory: además cada conexión es otra base.
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("local: migrar kv_entries: %w", err)
	}
	return &Store{db: db, now: now}, nil
}

// Load decodifica la clave en dst. Una colección ausente se siembra primero.
func (s *Store) Load(ctx context.Context, key string, dst any) (bool, error) {
	var e entry
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seed, ok, err := s.seedFor(key)
		if err != nil || !ok {
			return false, err
		}
		if err := s.Save(ctx, key, seed); err != nil {
			return false, err
		}
		return s.Load(ctx, key, dst)
	}
	if err != nil {
		return false, fmt.Errorf("local: leer %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(e.Value), dst); err != nil {
		return false, fmt.Errorf("local: decodificar %s: %w", key, err)
	}
	return true, nil
}

// Save reemplaza el valor completo de la clave.
func (s *Store) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("local: serializar %s: %w", key, err)
	}
	e := entry{Key: key, Value: string(raw), UpdatedAt: s.now().UTC()}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&e).Error
	if err != nil {
		return fmt.Errorf("local: guardar %s: %w", key, err)
	}
	return nil
}

// Close cierra la conexión subyacente.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// seedFor devuelve el valor de demostración de una colección.
// El dataset se arma una sola vez (el hash bcrypt es costoso).
func (s *Store) seedFor(key string) (any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seed == nil {
		ds, err := SeedDataset(s.now())
		if err != nil {
			return nil, false, err
		}
		s.seed = map[string]any{
			repository.KeyUsers:      ds.Users,
			repository.KeyCategories: ds.Categories,
			repository.KeyItems:      ds.Items,
			repository.KeyLogs:       ds.Logs,
		}
	}
	v, ok := s.seed[key]
	return v, ok, nil
}

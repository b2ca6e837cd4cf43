//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/stockrest/internal/domain"
	"github.com/jhoicas/stockrest/internal/domain/entity"
	"github.com/jhoicas/stockrest/internal/infrastructure/postgres"
	"github.com/jhoicas/stockrest/pkg/logger"
)

// newStore levanta PostgreSQL, aplica las migraciones y devuelve el adaptador.
func newStore(t *testing.T) *postgres.DataStore {
	t.Helper()
	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("stockrest"),
		tcpostgres.WithUsername("stockrest"),
		tcpostgres.WithPassword("stockrest"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(ctx) })

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := postgres.NewMigrator(dsn, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	pool, err := postgres.NewPoolFromDSN(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return postgres.NewDataStore(pool, logger.Nop())
}

func TestDataStore_CicloCompleto(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertCategory(ctx, &entity.Category{ID: "1", Name: "Grãos"}))
	it := &entity.InventoryItem{
		ID: "101", Name: "Arroz", Unit: "Kg",
		MinStock: decimal.NewFromInt(10), CurrentStock: decimal.RequireFromString("12.5"),
		ValuePerUnit: decimal.NewNullDecimal(decimal.RequireFromString("6.50")),
		LastCountDate: "2024-03-07", ExpiryDate: "2024-05-06", Responsible: "Admin", CategoryID: "1",
	}
	require.NoError(t, s.InsertItem(ctx, it))
	require.NoError(t, s.InsertItem(ctx, &entity.InventoryItem{ID: "100", Name: "Açúcar", CategoryID: "1"}))

	items, err := s.FetchItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Arroz", items[1].Name, "orden por nombre ascendente")
	assert.True(t, decimal.RequireFromString("12.5").Equal(items[1].CurrentStock))
	assert.True(t, items[1].ValuePerUnit.Valid)
	assert.False(t, items[0].ValuePerUnit.Valid)

	require.NoError(t, s.UpdateItemStock(ctx, "101", entity.StockPatch{
		CurrentStock: decimal.NewFromInt(3), ExpiryDate: "2024-04-01", LastCountDate: "2024-03-08", Responsible: "Ana",
	}))
	items, err = s.FetchItems(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3).Equal(items[1].CurrentStock))
	assert.Equal(t, "Ana", items[1].Responsible)

	assert.ErrorIs(t, s.DeleteItem(ctx, "999"), domain.ErrNotFound)
	require.NoError(t, s.DeleteItem(ctx, "100"))
}

func TestDataStore_UsuariosYEmailUnico(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	u := &entity.User{ID: "1", Name: "Admin", Email: "admin@gmail.com", Role: entity.RoleAdmin, Password: "admin", Status: entity.StatusActive, CreatedAt: time.Now()}
	require.NoError(t, s.InsertUser(ctx, u))

	dup := &entity.User{ID: "2", Name: "Otro", Email: "ADMIN@gmail.com", Role: entity.RoleStaff, Status: entity.StatusActive}
	assert.ErrorIs(t, s.InsertUser(ctx, dup), domain.ErrConflict)

	found, err := s.FindActiveUserByEmail(ctx, "admin@gmail.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "1", found.ID)

	u.Status = entity.StatusInactive
	require.NoError(t, s.UpdateUser(ctx, u))
	none, err := s.FindActiveUserByEmail(ctx, "admin@gmail.com")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestDataStore_LogsDescendentes(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)

	for i := range 3 {
		require.NoError(t, s.InsertLog(ctx, &entity.Log{
			ID: string(rune('a' + i)), Action: entity.ActionUpdate, Details: "x",
			UserID: "1", UserName: "Admin", Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	logs, err := s.FetchLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "c", logs[0].ID)
}

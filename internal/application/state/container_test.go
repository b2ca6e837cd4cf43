package state_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockrest/internal/application/dto"
	"github.com/jhoicas/stockrest/internal/application/state"
	"github.com/jhoicas/stockrest/internal/domain"
	"github.com/jhoicas/stockrest/internal/domain/entity"
	"github.com/jhoicas/stockrest/internal/domain/repository"
	"github.com/jhoicas/stockrest/internal/infrastructure/local"
)

// ──────────────────────────────────────────────────────────────────────────────
// Arranque
// ──────────────────────────────────────────────────────────────────────────────

func TestStart_ModoLocalSiembraDatosDeDemostracion(t *testing.T) {
	f := newLocalFixture(t)
	f.c.Start(context.Background())

	assert.False(t, f.c.RemoteMode())
	assert.Len(t, f.c.Items(), 5)
	assert.Len(t, f.c.Categories(), 4)
	assert.Len(t, f.c.Users(), 1)
	assert.Len(t, f.c.Logs(), 1)
	assert.Equal(t, entity.DefaultSettings(), f.c.Settings())
	assert.Nil(t, f.c.CurrentUser())
	assert.False(t, f.c.IsLoading())
}

func TestStart_AjustesGuardadosSeRespetan(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	require.NoError(t, f.local.Save(ctx, repository.KeySettings, entity.AppSettings{ExpiryThresholdDays: 7, LowStockPercentage: 50}))

	f.c.Start(ctx)
	assert.Equal(t, entity.AppSettings{ExpiryThresholdDays: 7, LowStockPercentage: 50}, f.c.Settings())
}

func TestStart_RestauraSesionSinRevalidar(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	require.NoError(t, f.session.Set(ctx, entity.User{ID: "borrado", Name: "Ex empleado", Role: entity.RoleStaff}))

	f.c.Start(ctx)
	u := f.c.CurrentUser()
	require.NotNil(t, u)
	assert.Equal(t, "borrado", u.ID)
}

func TestStart_ModoRemotoCargaTablas(t *testing.T) {
	remote := newFakeRemote()
	remote.items = []entity.InventoryItem{{ID: "1", Name: "Arroz", CurrentStock: decimal.NewFromInt(3)}}
	remote.categories = []entity.Category{{ID: "c", Name: "Grãos"}}
	f := newRemoteFixture(t, remote)

	f.c.Start(context.Background())
	assert.True(t, f.c.RemoteMode())
	assert.Len(t, f.c.Items(), 1)
	assert.Len(t, f.c.Categories(), 1)
	assert.False(t, f.c.IsLoading())
	assert.Equal(t, 1, f.rec.refreshs)
}

func TestRefresh_TablaFallidaConservaValorAnterior(t *testing.T) {
	remote := newFakeRemote()
	remote.items = []entity.InventoryItem{{ID: "1", Name: "Arroz"}}
	remote.categories = []entity.Category{{ID: "c", Name: "Grãos"}}
	f := newRemoteFixture(t, remote)
	ctx := context.Background()
	f.c.Start(ctx)

	remote.items = nil
	remote.categories = nil
	remote.failOn("fetch_items", errRemote)
	f.c.Refresh(ctx)

	assert.Len(t, f.c.Items(), 1, "items falló: se conserva")
	assert.Empty(t, f.c.Categories(), "categories respondió vacío: se reemplaza")
	assert.Equal(t, 1, f.rec.remote["fetch_items"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / Logout
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_AdminDeDemostracion(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	f.c.Start(ctx)

	u, ok := f.c.Login(ctx, local.SeedAdminEmail, local.SeedAdminPassword)
	require.True(t, ok)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.Empty(t, u.Password)

	stored, err := f.session.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, u.ID, stored.ID)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	f.c.Start(ctx)

	cases := [][2]string{
		{local.SeedAdminEmail, "otra"},
		{"nadie@example.com", local.SeedAdminPassword},
		{strings.ToUpper(local.SeedAdminEmail), local.SeedAdminPassword},
		{" " + local.SeedAdminEmail + " ", local.SeedAdminPassword},
		{"", ""},
	}
	for _, tc := range cases {
		_, ok := f.c.Login(ctx, tc[0], tc[1])
		assert.False(t, ok, "%v", tc)
	}
	assert.Nil(t, f.c.CurrentUser())
}

func TestLogin_CuentaInactivaRechazada(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	f.c.Start(ctx)
	_, err := f.c.AddUser(ctx, dto.CreateUserRequest{
		Name: "Bia", Email: "bia@example.com", Password: "1234", Role: entity.RoleStaff, Status: entity.StatusInactive,
	})
	require.NoError(t, err)

	_, ok := f.c.Login(ctx, "bia@example.com", "1234")
	assert.False(t, ok)
}

func TestLogin_RemotoPrimero(t *testing.T) {
	remote := newFakeRemote()
	remote.users = []entity.User{{ID: "r1", Name: "Remota", Email: "ana@example.com", Role: entity.RoleStaff, Password: "plano", Status: entity.StatusActive}}
	f := newRemoteFixture(t, remote)
	ctx := context.Background()
	f.c.Start(ctx)

	u, ok := f.c.Login(ctx, "ana@example.com", "plano")
	require.True(t, ok, "contraseña legada en texto plano")
	assert.Equal(t, "r1", u.ID)

	_, ok = f.c.Login(ctx, local.SeedAdminEmail, local.SeedAdminPassword)
	assert.False(t, ok, "el remoto respondió que no existe: no se usa el local")
}

func TestLogin_RemotoCaidoUsaCuentasLocales(t *testing.T) {
	remote := newFakeRemote()
	remote.failOn("find_user", errRemote)
	f := newRemoteFixture(t, remote)
	ctx := context.Background()
	f.c.Start(ctx)

	u, ok := f.c.Login(ctx, local.SeedAdminEmail, local.SeedAdminPassword)
	require.True(t, ok)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.Equal(t, 1, f.rec.remote["find_user"])
}

func TestLogout_LimpiaSesion(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	f.c.Start(ctx)
	_, ok := f.c.Login(ctx, local.SeedAdminEmail, local.SeedAdminPassword)
	require.True(t, ok)

	f.c.Logout(ctx)
	assert.Nil(t, f.c.CurrentUser())
	stored, err := f.session.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)

	assert.NotPanics(t, func() { f.c.Logout(ctx) })
}

// ──────────────────────────────────────────────────────────────────────────────
// Ítems
// ──────────────────────────────────────────────────────────────────────────────

func TestAddItem_ValoresPorDefectoYAuditoria(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	f.c.Start(ctx)
	_, _ = f.c.Login(ctx, local.SeedAdminEmail, local.SeedAdminPassword)

	it, err := f.c.AddItem(ctx, dto.ItemRequest{Name: " Farinha ", CategoryID: "1", MinStock: decimal.NewFromInt(4)})
	require.NoError(t, err)
	assert.NotEmpty(t, it.ID)
	assert.Equal(t, "Farinha", it.Name)
	assert.Equal(t, entity.DefaultUnit, it.Unit)
	assert.Equal(t, "2024-03-07", it.LastCountDate)
	assert.Equal(t, "2024-04-06", it.ExpiryDate)
	assert.Equal(t, "Administrador", it.Responsible)

	logs := f.c.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, entity.ActionCreate, logs[0].Action)
	assert.Equal(t, "Item criado: Farinha", logs[0].Details)
	assert.Equal(t, "Administrador", logs[0].UserName)
	assert.Equal(t, 1, f.rec.actions[entity.ActionCreate])
}

func TestAddItem_SinUsuarioFirmaAdminYSystem(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	f.c.Start(ctx)

	it, err := f.c.AddItem(ctx, dto.ItemRequest{Name: "Farinha", CategoryID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "Admin", it.Responsible)
	assert.Equal(t, entity.SystemUserID, f.c.Logs()[0].UserID)
	assert.Equal(t, entity.SystemUserName, f.c.Logs()[0].UserName)
}

func TestAddItem_ActorDelContextoFirma(t *testing.T) {
	f := newLocalFixture(t)
	f.c.Start(context.Background())
	ctx := state.WithActor(context.Background(), state.Actor{ID: "u7", Name: "Carla"})

	_, err := f.c.AddItem(ctx, dto.ItemRequest{Name: "Farinha", CategoryID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "u7", f.c.Logs()[0].UserID)
	assert.Equal(t, "Carla", f.c.Logs()[0].UserName)
}

func TestAddItem_ValidacionNoModificaNiAudita(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	f.c.Start(ctx)

	_, err := f.c.AddItem(ctx, dto.ItemRequest{Name: "", CategoryID: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.c.AddItem(ctx, dto.ItemRequest{Name: "X", CategoryID: "1", CurrentStock: decimal.NewFromInt(-2)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Len(t, f.c.Items(), 5)
	assert.Len(t, f.c.Logs(), 1)
}

func TestAddItem_IdaYVueltaPorAlmacenLocal(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	f.c.Start(ctx)

	in := dto.ItemRequest{
		Name: "Café", Unit: "Kg", CategoryID: "1",
		MinStock: decimal.RequireFromString("1.5"), CurrentStock: decimal.RequireFromString("3.25"),
		ValuePerUnit: decimal.NewNullDecimal(decimal.RequireFromString("42.90")),
		LastCountDate: "2024-03-01", ExpiryDate: "2024-09-01", Responsible: "Ana",
	}
	created, err := f.c.AddItem(ctx, in)
	require.NoError(t, err)

	again := state.New(state.Deps{Local: f.local, Clock: clock})
	again.Start(ctx)
	got, ok := findItem(again.Items(), created.ID)
	require.True(t, ok)
	assert.Equal(t, created.Name, got.Name)
	assert.True(t, created.MinStock.Equal(got.MinStock))
	assert.True(t, created.CurrentStock.Equal(got.CurrentStock))
	assert.True(t, created.ValuePerUnit.Decimal.Equal(got.ValuePerUnit.Decimal))
	assert.Equal(t, created.ExpiryDate, got.ExpiryDate)
	assert.Equal(t, created.LastCountDate, got.LastCountDate)
	assert.Equal(t, created.Responsible, got.Responsible)
	assert.Equal(t, created.CategoryID, got.CategoryID)
	assert.Len(t, again.Logs(), 2)
}

func TestUpdateItem_ConservaOpcionalesVacios(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	f.c.Start(ctx)
	before, _ := findItem(f.c.Items(), "101")

	it, err := f.c.UpdateItem(ctx, "101", dto.ItemRequest{Name: "Arroz Integral", CategoryID: "1", CurrentStock: decimal.NewFromInt(8)})
	require.NoError(t, err)
	assert.Equal(t, "Arroz Integral", it.Name)
	assert.Equal(t, before.Unit, it.Unit)
	assert.Equal(t, before.ExpiryDate, it.ExpiryDate)
	assert.Equal(t, "Item atualizado: Arroz Integral", f.c.Logs()[0].Details)

	_, err = f.c.UpdateItem(ctx, "nope", dto.ItemRequest{Name: "X", CategoryID: "1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteItem(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	f.c.Start(ctx)

	require.NoError(t, f.c.DeleteItem(ctx, "105"))
	_, ok := findItem(f.c.Items(), "105")
	assert.False(t, ok)
	assert.Equal(t, "Item excluído: Sal Refinado", f.c.Logs()[0].Details)
	assert.Equal(t, entity.ActionDelete, f.c.Logs()[0].Action)

	assert.ErrorIs(t, f.c.DeleteItem(ctx, "105"), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conteo masivo
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStockBatch_UnItem(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	f.c.Start(ctx)
	before := f.c.Items()

	n, err := f.c.UpdateStockBatch(ctx, dto.StockBatchRequest{
		Updates:     []dto.StockUpdate{{ID: "101", CurrentStock: decimal.NewFromInt(5), ExpiryDate: "2024-04-01"}},
		Responsible: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, _ := findItem(f.c.Items(), "101")
	assert.True(t, decimal.NewFromInt(5).Equal(got.CurrentStock))
	assert.Equal(t, "2024-04-01", got.ExpiryDate)
	assert.Equal(t, "2024-03-07", got.LastCountDate)
	assert.Equal(t, "Ana", got.Responsible)

	for _, b := range before {
		if b.ID == "101" {
			continue
		}
		a, _ := findItem(f.c.Items(), b.ID)
		assert.Equal(t, b, a)
	}

	logs := f.c.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, entity.ActionStockUpdate, logs[0].Action)
	assert.Equal(t, "Estoque atualizado em massa (1 itens)", logs[0].Details)
}

func TestUpdateStockBatch_IdsDesconocidosSeIgnoran(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	f.c.Start(ctx)

	n, err := f.c.UpdateStockBatch(ctx, dto.StockBatchRequest{Updates: []dto.StockUpdate{
		{ID: "101", CurrentStock: decimal.NewFromInt(1)},
		{ID: "999", CurrentStock: decimal.NewFromInt(1)},
		{ID: "102", CurrentStock: decimal.NewFromInt(9)},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "Estoque atualizado em massa (2 itens)", f.c.Logs()[0].Details)

	n, err = f.c.UpdateStockBatch(ctx, dto.StockBatchRequest{Updates: []dto.StockUpdate{{ID: "999"}}})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, f.c.Logs(), 2, "sin coincidencias no hay auditoría")
}

func TestUpdateStockBatch_RemotoSecuencialSinRollback(t *testing.T) {
	remote := newFakeRemote()
	remote.items = []entity.InventoryItem{
		{ID: "a", Name: "A", CurrentStock: decimal.NewFromInt(1)},
		{ID: "b", Name: "B", CurrentStock: decimal.NewFromInt(1)},
	}
	f := newRemoteFixture(t, remote)
	ctx := context.Background()
	f.c.Start(ctx)

	remote.failOn("update_item_stock", errRemote)
	n, err := f.c.UpdateStockBatch(ctx, dto.StockBatchRequest{
		Updates:     []dto.StockUpdate{{ID: "a", CurrentStock: decimal.NewFromInt(7)}, {ID: "b", CurrentStock: decimal.NewFromInt(8)}},
		Responsible: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, remote.count("update_item_stock"))
	assert.Equal(t, 2, f.rec.remote["update_item_stock"])
	assert.Equal(t, 1, remote.count("insert_log"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías, usuarios y ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestCategorias_CrearYEliminar(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	f.c.Start(ctx)

	cat, err := f.c.AddCategory(ctx, dto.CategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)
	assert.Len(t, f.c.Categories(), 5)
	assert.Equal(t, "Categoria criada: Bebidas", f.c.Logs()[0].Details)

	require.NoError(t, f.c.DeleteCategory(ctx, cat.ID))
	assert.Len(t, f.c.Categories(), 4)
	assert.Equal(t, "Categoria excluída: Bebidas", f.c.Logs()[0].Details)

	_, err = f.c.AddCategory(ctx, dto.CategoryRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, f.c.DeleteCategory(ctx, "nope"), domain.ErrNotFound)
}

func TestUsuarios_CrearEditarYEmailRepetido(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	f.c.Start(ctx)

	u, err := f.c.AddUser(ctx, dto.CreateUserRequest{Name: "Bia", Email: "bia@example.com", Password: "1234", Role: entity.RoleStaff})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, u.Status)
	assert.Empty(t, u.Password)
	assert.Equal(t, "Usuário criado: Bia", f.c.Logs()[0].Details)

	// En memoria no se controla la unicidad del email.
	dup, err := f.c.AddUser(ctx, dto.CreateUserRequest{Name: "Otra", Email: local.SeedAdminEmail, Password: "1234", Role: entity.RoleStaff})
	require.NoError(t, err)
	assert.NotEqual(t, "1", dup.ID)
	assert.Len(t, f.c.Users(), 3)

	_, err = f.c.UpdateUser(ctx, u.ID, dto.UpdateUserRequest{Name: "Beatriz", Email: "bia@example.com", Role: entity.RoleAdmin, Status: entity.StatusActive})
	require.NoError(t, err)
	assert.Equal(t, "Usuário atualizado: Beatriz", f.c.Logs()[0].Details)

	got, ok := f.c.Login(ctx, "bia@example.com", "1234")
	require.True(t, ok, "password vacío conserva la anterior")
	assert.Equal(t, entity.RoleAdmin, got.Role)

	_, err = f.c.UpdateUser(ctx, u.ID, dto.UpdateUserRequest{Name: "B", Email: local.SeedAdminEmail, Role: entity.RoleAdmin, Status: entity.StatusActive})
	require.NoError(t, err)
	_, err = f.c.UpdateUser(ctx, "nope", dto.UpdateUserRequest{Name: "B", Email: "b@example.com", Role: entity.RoleAdmin, Status: entity.StatusActive})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuditoria_LocalCreceEnMemoriaYGuardaLas50Recientes(t *testing.T) {
	f := newLocalFixture(t)
	ctx := context.Background()
	f.c.Start(ctx)
	require.Len(t, f.c.Logs(), 1)

	for i := range 60 {
		_, err := f.c.AddCategory(ctx, dto.CategoryRequest{Name: fmt.Sprintf("Cat %02d", i)})
		require.NoError(t, err)
	}
	logs := f.c.Logs()
	require.Len(t, logs, 61)
	assert.Equal(t, "Categoria criada: Cat 59", logs[0].Details)

	var stored []entity.Log
	_, err := f.local.Load(ctx, repository.KeyLogs, &stored)
	require.NoError(t, err)
	require.Len(t, stored, 50)
	assert.Equal(t, logs[0].ID, stored[0].ID)
	assert.Equal(t, logs[49].ID, stored[49].ID)
}

func TestUpdateSettings_SiempreLocalConAuditoria(t *testing.T) {
	remote := newFakeRemote()
	f := newRemoteFixture(t, remote)
	ctx := context.Background()
	f.c.Start(ctx)

	f.c.UpdateSettings(ctx, entity.AppSettings{ExpiryThresholdDays: 10, LowStockPercentage: 150})
	assert.Equal(t, 150, f.c.Settings().LowStockPercentage, "sin control de rango")

	var stored entity.AppSettings
	found, err := f.local.Load(ctx, repository.KeySettings, &stored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 10, stored.ExpiryThresholdDays)

	assert.Equal(t, "Configurações locais atualizadas", f.c.Logs()[0].Details)
	assert.Equal(t, 1, remote.count("insert_log"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Modo remoto
// ──────────────────────────────────────────────────────────────────────────────

func TestModoRemoto_EscrituraAuditoriaYRecarga(t *testing.T) {
	remote := newFakeRemote()
	f := newRemoteFixture(t, remote)
	ctx := context.Background()
	f.c.Start(ctx)

	_, err := f.c.AddItem(ctx, dto.ItemRequest{Name: "Farinha", CategoryID: "1"})
	require.NoError(t, err)

	assert.Equal(t, 1, remote.count("insert_item"))
	assert.Equal(t, 1, remote.count("insert_log"))
	assert.Equal(t, 2, remote.count("fetch_items"))
	assert.Len(t, f.c.Items(), 1)
	require.Len(t, f.c.Logs(), 1)
	assert.Equal(t, "Item criado: Farinha", f.c.Logs()[0].Details)
}

func TestModoRemoto_ErrorDeEscrituraSeRegistraYNoSeRevierte(t *testing.T) {
	remote := newFakeRemote()
	remote.failOn("insert_category", errRemote)
	remote.failOn("fetch_categories", errRemote)
	f := newRemoteFixture(t, remote)
	ctx := context.Background()
	f.c.Start(ctx)

	cat, err := f.c.AddCategory(ctx, dto.CategoryRequest{Name: "Bebidas"})
	require.NoError(t, err, "los errores remotos no llegan al llamador")
	assert.Equal(t, []entity.Category{cat}, f.c.Categories())
	assert.Equal(t, 1, f.rec.remote["insert_category"])
	assert.Equal(t, 1, remote.count("insert_log"))
}

func TestLecturas_DevuelvenCopias(t *testing.T) {
	f := newLocalFixture(t)
	f.c.Start(context.Background())

	items := f.c.Items()
	items[0].Name = "modificado"
	assert.NotEqual(t, "modificado", f.c.Items()[0].Name)
}

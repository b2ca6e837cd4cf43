package state

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/stockrest/internal/application/dto"
	"github.com/jhoicas/stockrest/internal/domain"
	"github.com/jhoicas/stockrest/internal/domain/entity"
	"github.com/jhoicas/stockrest/internal/domain/repository"
)

// defaultResponsible firma de conteos sin usuario identificado.
const defaultResponsible = "Admin"

// ──── Ítems ────

// AddItem da de alta un ítem. Campos opcionales vacíos toman los valores por
// defecto: unidad Kg, conteo hoy, vencimiento a 30 días, responsable el usuario.
func (c *Container) AddItem(ctx context.Context, in dto.ItemRequest) (entity.InventoryItem, error) {
	if err := dto.Validate(c.validate, in); err != nil {
		return entity.InventoryItem{}, err
	}
	today := c.now()
	item := entity.InventoryItem{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		Unit:          orDefault(in.Unit, entity.DefaultUnit),
		MinStock:      in.MinStock,
		CurrentStock:  in.CurrentStock,
		ValuePerUnit:  in.ValuePerUnit,
		LastCountDate: orDefault(in.LastCountDate, today.Format(entity.DateLayout)),
		ExpiryDate:    orDefault(in.ExpiryDate, today.AddDate(0, 0, entity.DefaultExpiryDays).Format(entity.DateLayout)),
		Responsible:   orDefault(in.Responsible, c.responsible(ctx)),
		CategoryID:    in.CategoryID,
	}

	c.mu.Lock()
	c.items = append(c.items, item)
	items := slices.Clone(c.items)
	c.mu.Unlock()

	if c.remote != nil {
		if err := c.remote.InsertItem(ctx, &item); err != nil {
			c.remoteFailed("insert_item", err)
		}
	} else {
		c.saveLocal(ctx, repository.KeyItems, items)
	}
	c.record(ctx, entity.ActionCreate, "Item criado: "+item.Name)
	c.Refresh(ctx)
	return item, nil
}

// UpdateItem reemplaza un ítem existente. Campos opcionales vacíos conservan su valor.
func (c *Container) UpdateItem(ctx context.Context, id string, in dto.ItemRequest) (entity.InventoryItem, error) {
	if err := dto.Validate(c.validate, in); err != nil {
		return entity.InventoryItem{}, err
	}

	c.mu.Lock()
	i := slices.IndexFunc(c.items, func(it entity.InventoryItem) bool { return it.ID == id })
	if i < 0 {
		c.mu.Unlock()
		return entity.InventoryItem{}, domain.ErrNotFound
	}
	prev := c.items[i]
	item := entity.InventoryItem{
		ID:            id,
		Name:          strings.TrimSpace(in.Name),
		Unit:          orDefault(in.Unit, prev.Unit),
		MinStock:      in.MinStock,
		CurrentStock:  in.CurrentStock,
		ValuePerUnit:  in.ValuePerUnit,
		LastCountDate: orDefault(in.LastCountDate, prev.LastCountDate),
		ExpiryDate:    orDefault(in.ExpiryDate, prev.ExpiryDate),
		Responsible:   orDefault(in.Responsible, prev.Responsible),
		CategoryID:    in.CategoryID,
	}
	c.items[i] = item
	items := slices.Clone(c.items)
	c.mu.Unlock()

	if c.remote != nil {
		if err := c.remote.UpdateItem(ctx, &item); err != nil {
			c.remoteFailed("update_item", err)
		}
	} else {
		c.saveLocal(ctx, repository.KeyItems, items)
	}
	c.record(ctx, entity.ActionUpdate, "Item atualizado: "+item.Name)
	c.Refresh(ctx)
	return item, nil
}

// DeleteItem elimina un ítem por id.
func (c *Container) DeleteItem(ctx context.Context, id string) error {
	c.mu.Lock()
	i := slices.IndexFunc(c.items, func(it entity.InventoryItem) bool { return it.ID == id })
	if i < 0 {
		c.mu.Unlock()
		return domain.ErrNotFound
	}
	name := c.items[i].Name
	c.items = slices.Delete(slices.Clone(c.items), i, i+1)
	items := slices.Clone(c.items)
	c.mu.Unlock()

	if c.remote != nil {
		if err := c.remote.DeleteItem(ctx, id); err != nil {
			c.remoteFailed("delete_item", err)
		}
	} else {
		c.saveLocal(ctx, repository.KeyItems, items)
	}
	c.record(ctx, entity.ActionDelete, "Item excluído: "+name)
	c.Refresh(ctx)
	return nil
}

// UpdateStockBatch aplica la planilla de conteo: existencia, vencimiento,
// fecha de conteo (hoy) y responsable. Los ids desconocidos se ignoran.
// Las escrituras remotas van una por una, sin transacción. Devuelve la
// cantidad de ítems modificados; con cero no se registra auditoría.
func (c *Container) UpdateStockBatch(ctx context.Context, in dto.StockBatchRequest) (int, error) {
	if err := dto.Validate(c.validate, in); err != nil {
		return 0, err
	}
	responsible := orDefault(in.Responsible, c.responsible(ctx))
	today := c.now().Format(entity.DateLayout)

	type write struct {
		id    string
		patch entity.StockPatch
	}
	var writes []write
	changed := make(map[string]struct{})

	c.mu.Lock()
	next := slices.Clone(c.items)
	for _, u := range in.Updates {
		i := slices.IndexFunc(next, func(it entity.InventoryItem) bool { return it.ID == u.ID })
		if i < 0 {
			continue
		}
		patch := entity.StockPatch{
			CurrentStock:  u.CurrentStock,
			ExpiryDate:    u.ExpiryDate,
			LastCountDate: today,
			Responsible:   responsible,
		}
		patch.Apply(&next[i])
		writes = append(writes, write{id: u.ID, patch: patch})
		changed[u.ID] = struct{}{}
	}
	if len(writes) > 0 {
		c.items = next
	}
	items := slices.Clone(c.items)
	c.mu.Unlock()

	if len(writes) == 0 {
		return 0, nil
	}

	if c.remote != nil {
		for _, w := range writes {
			if err := c.remote.UpdateItemStock(ctx, w.id, w.patch); err != nil {
				c.remoteFailed("update_item_stock", err)
			}
		}
	} else {
		c.saveLocal(ctx, repository.KeyItems, items)
	}
	c.record(ctx, entity.ActionStockUpdate, fmt.Sprintf("Estoque atualizado em massa (%d itens)", len(changed)))
	c.Refresh(ctx)
	return len(changed), nil
}

// ──── Categorías ────

// AddCategory crea una categoría.
func (c *Container) AddCategory(ctx context.Context, in dto.CategoryRequest) (entity.Category, error) {
	if err := dto.Validate(c.validate, in); err != nil {
		return entity.Category{}, err
	}
	cat := entity.Category{ID: uuid.NewString(), Name: strings.TrimSpace(in.Name)}

	c.mu.Lock()
	c.categories = append(c.categories, cat)
	categories := slices.Clone(c.categories)
	c.mu.Unlock()

	if c.remote != nil {
		if err := c.remote.InsertCategory(ctx, &cat); err != nil {
			c.remoteFailed("insert_category", err)
		}
	} else {
		c.saveLocal(ctx, repository.KeyCategories, categories)
	}
	c.record(ctx, entity.ActionCreate, "Categoria criada: "+cat.Name)
	c.Refresh(ctx)
	return cat, nil
}

// DeleteCategory elimina la categoría sin revisar referencias; ese control
// lo hace el llamador (catalog.Service.DeleteCategory).
func (c *Container) DeleteCategory(ctx context.Context, id string) error {
	c.mu.Lock()
	i := slices.IndexFunc(c.categories, func(cat entity.Category) bool { return cat.ID == id })
	if i < 0 {
		c.mu.Unlock()
		return domain.ErrNotFound
	}
	name := c.categories[i].Name
	c.categories = slices.Delete(slices.Clone(c.categories), i, i+1)
	categories := slices.Clone(c.categories)
	c.mu.Unlock()

	if c.remote != nil {
		if err := c.remote.DeleteCategory(ctx, id); err != nil {
			c.remoteFailed("delete_category", err)
		}
	} else {
		c.saveLocal(ctx, repository.KeyCategories, categories)
	}
	c.record(ctx, entity.ActionDelete, "Categoria excluída: "+name)
	c.Refresh(ctx)
	return nil
}

// ──── Usuarios ────

// AddUser crea una cuenta con la contraseña hasheada. Estado vacío = activo.
func (c *Container) AddUser(ctx context.Context, in dto.CreateUserRequest) (entity.User, error) {
	if err := dto.Validate(c.validate, in); err != nil {
		return entity.User{}, err
	}
	hash, err := entity.HashPassword(in.Password)
	if err != nil {
		return entity.User{}, fmt.Errorf("state: hash de contraseña: %w", err)
	}
	u := entity.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Role:      in.Role,
		Password:  hash,
		Status:    orDefault(in.Status, entity.StatusActive),
		CreatedAt: c.now().UTC(),
	}

	c.mu.Lock()
	c.users = append(c.users, u)
	users := slices.Clone(c.users)
	c.mu.Unlock()

	if c.remote != nil {
		if err := c.remote.InsertUser(ctx, &u); err != nil {
			c.remoteFailed("insert_user", err)
		}
	} else {
		c.saveLocal(ctx, repository.KeyUsers, users)
	}
	c.record(ctx, entity.ActionCreate, "Usuário criado: "+u.Name)
	c.Refresh(ctx)
	return u.WithoutPassword(), nil
}

// UpdateUser edita una cuenta. Password vacío conserva la contraseña actual.
func (c *Container) UpdateUser(ctx context.Context, id string, in dto.UpdateUserRequest) (entity.User, error) {
	if err := dto.Validate(c.validate, in); err != nil {
		return entity.User{}, err
	}
	var hash string
	if in.Password != "" {
		h, err := entity.HashPassword(in.Password)
		if err != nil {
			return entity.User{}, fmt.Errorf("state: hash de contraseña: %w", err)
		}
		hash = h
	}

	c.mu.Lock()
	i := slices.IndexFunc(c.users, func(u entity.User) bool { return u.ID == id })
	if i < 0 {
		c.mu.Unlock()
		return entity.User{}, domain.ErrNotFound
	}
	u := c.users[i]
	u.Name = strings.TrimSpace(in.Name)
	u.Email = strings.TrimSpace(in.Email)
	u.Role = in.Role
	u.Status = in.Status
	if hash != "" {
		u.Password = hash
	}
	c.users = slices.Clone(c.users)
	c.users[i] = u
	users := slices.Clone(c.users)
	c.mu.Unlock()

	if c.remote != nil {
		if err := c.remote.UpdateUser(ctx, &u); err != nil {
			c.remoteFailed("update_user", err)
		}
	} else {
		c.saveLocal(ctx, repository.KeyUsers, users)
	}
	c.record(ctx, entity.ActionUpdate, "Usuário atualizado: "+u.Name)
	c.Refresh(ctx)
	return u.WithoutPassword(), nil
}

// ──── Ajustes ────

// UpdateSettings reemplaza los umbrales y los guarda siempre en el almacén
// local, esté o no activo el remoto. No valida rangos.
func (c *Container) UpdateSettings(ctx context.Context, s entity.AppSettings) {
	c.mu.Lock()
	c.settings = s
	c.mu.Unlock()

	c.saveLocal(ctx, repository.KeySettings, s)
	c.record(ctx, entity.ActionUpdate, "Configurações locais atualizadas")
}

// ──── Auditoría y persistencia ────

// record agrega una entrada de auditoría al principio de la lista y la
// persiste en el almacén activo. En modo local se guardan solo las maxLogs
// más recientes.
func (c *Container) record(ctx context.Context, action, details string) {
	c.mu.RLock()
	a := actorFor(ctx, c.currentUser)
	c.mu.RUnlock()

	entry := entity.Log{
		ID:        uuid.NewString(),
		Action:    action,
		Details:   details,
		UserID:    a.ID,
		UserName:  a.Name,
		Timestamp: c.now().UTC(),
	}

	c.mu.Lock()
	logs := make([]entity.Log, 0, len(c.logs)+1)
	logs = append(logs, entry)
	logs = append(logs, c.logs...)
	c.logs = logs
	saved := slices.Clone(logs[:min(len(logs), maxLogs)])
	c.mu.Unlock()

	c.rec.Action(action)
	c.log.Info().Str("action", action).Str("user", a.Name).Msg(details)

	if c.remote != nil {
		if err := c.remote.InsertLog(ctx, &entry); err != nil {
			c.remoteFailed("insert_log", err)
		}
		return
	}
	c.saveLocal(ctx, repository.KeyLogs, saved)
}

func (c *Container) saveLocal(ctx context.Context, key string, v any) {
	if err := c.local.Save(ctx, key, v); err != nil {
		c.log.Error().Err(err).Str("key", key).Msg("fallo al guardar en el almacén local")
	}
}

// responsible nombre para firmar conteos: autor del contexto, usuario en sesión o "Admin".
func (c *Container) responsible(ctx context.Context) string {
	if a, ok := ActorFrom(ctx); ok && a.Name != "" {
		return a.Name
	}
	if u := c.CurrentUser(); u != nil && u.Name != "" {
		return u.Name
	}
	return defaultResponsible
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

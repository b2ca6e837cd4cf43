// Package state contiene el contenedor de sesión y estado: colecciones en
// memoria, acciones de escritura y persistencia en el almacén activo.
//
// Cada acción sigue los mismos pasos: validar la entrada, calcular el valor
// canónico, aplicarlo en memoria, persistir (remoto + recarga, o colección
// completa en local) y registrar exactamente una entrada de auditoría.
// Los errores del remoto se registran y se cuentan, pero no revierten el
// estado en memoria.
package state

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/stockrest/internal/application/dto"
	"github.com/jhoicas/stockrest/internal/domain/entity"
	"github.com/jhoicas/stockrest/internal/domain/repository"
	"github.com/jhoicas/stockrest/pkg/logger"
)

// maxLogs entradas de auditoría que se guardan en el almacén local (igual que
// la lectura remota). En memoria la lista crece sin tope durante la sesión.
const maxLogs = 50

// Recorder recibe los eventos contables del contenedor (métricas).
type Recorder interface {
	RemoteError(op string)
	Action(action string)
	ObserveRefresh(d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RemoteError(string)           {}
func (nopRecorder) Action(string)                {}
func (nopRecorder) ObserveRefresh(time.Duration) {}

// Deps dependencias explícitas del contenedor. Remote nil = modo local.
type Deps struct {
	Remote   repository.DataStore
	Local    repository.DurableStore
	Session  repository.SessionStore
	Log      *logger.Logger
	Recorder Recorder
	Clock    func() time.Time
}

// Container estado compartido de la aplicación. El mutex protege solo la
// memoria; nunca se mantiene tomado durante I/O, así que dos acciones
// concurrentes pueden intercalarse y gana la última recarga.
type Container struct {
	remote   repository.DataStore
	local    repository.DurableStore
	session  repository.SessionStore
	log      *logger.Logger
	rec      Recorder
	now      func() time.Time
	validate *validator.Validate

	mu          sync.RWMutex
	currentUser *entity.User
	users       []entity.User
	categories  []entity.Category
	items       []entity.InventoryItem
	logs        []entity.Log
	settings    entity.AppSettings
	isLoading   bool
}

// New construye el contenedor vacío (anónimo, umbrales por defecto).
func New(deps Deps) *Container {
	c := &Container{
		remote:   deps.Remote,
		local:    deps.Local,
		session:  deps.Session,
		log:      deps.Log,
		rec:      deps.Recorder,
		now:      deps.Clock,
		validate: dto.NewValidator(),
		settings: entity.DefaultSettings(),
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	c.log = c.log.Component("state")
	if c.rec == nil {
		c.rec = nopRecorder{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// RemoteMode indica si el almacén activo es el remoto.
func (c *Container) RemoteMode() bool { return c.remote != nil }

// Start carga ajustes, restaura la sesión y hace la carga inicial de datos.
// La sesión se restaura sin volver a validar credenciales contra el almacén.
func (c *Container) Start(ctx context.Context) {
	settings := entity.DefaultSettings()
	if found, err := c.local.Load(ctx, repository.KeySettings, &settings); err != nil {
		c.log.Warn().Err(err).Msg("no se pudieron leer los ajustes locales; se usan los valores por defecto")
		settings = entity.DefaultSettings()
	} else if !found {
		settings = entity.DefaultSettings()
	}

	var current *entity.User
	if c.session != nil {
		u, err := c.session.Get(ctx)
		if err != nil {
			c.log.Warn().Err(err).Msg("no se pudo leer la sesión guardada")
		}
		current = u
	}

	c.mu.Lock()
	c.settings = settings
	c.currentUser = current
	c.mu.Unlock()

	if c.remote != nil {
		c.setLoading(true)
		c.Refresh(ctx)
		c.setLoading(false)
		return
	}
	c.loadLocal(ctx)
}

// loadLocal lee (o siembra) las colecciones del almacén local.
func (c *Container) loadLocal(ctx context.Context) {
	var (
		users      []entity.User
		categories []entity.Category
		items      []entity.InventoryItem
		logs       []entity.Log
	)
	load := func(key string, dst any) {
		if _, err := c.local.Load(ctx, key, dst); err != nil {
			c.log.Error().Err(err).Str("key", key).Msg("fallo al leer el almacén local")
		}
	}
	load(repository.KeyUsers, &users)
	load(repository.KeyCategories, &categories)
	load(repository.KeyItems, &items)
	load(repository.KeyLogs, &logs)

	c.mu.Lock()
	c.users, c.categories, c.items, c.logs = users, categories, items, logs
	c.mu.Unlock()
}

// Refresh relee las cuatro tablas del remoto en secuencia. Una tabla que
// falla conserva su valor anterior.
func (c *Container) Refresh(ctx context.Context) {
	if c.remote == nil {
		return
	}
	start := time.Now()
	defer func() { c.rec.ObserveRefresh(time.Since(start)) }()

	if users, err := c.remote.FetchUsers(ctx); err != nil {
		c.remoteFailed("fetch_users", err)
	} else {
		c.mu.Lock()
		c.users = users
		c.mu.Unlock()
	}
	if categories, err := c.remote.FetchCategories(ctx); err != nil {
		c.remoteFailed("fetch_categories", err)
	} else {
		c.mu.Lock()
		c.categories = categories
		c.mu.Unlock()
	}
	if items, err := c.remote.FetchItems(ctx); err != nil {
		c.remoteFailed("fetch_items", err)
	} else {
		c.mu.Lock()
		c.items = items
		c.mu.Unlock()
	}
	if logs, err := c.remote.FetchLogs(ctx); err != nil {
		c.remoteFailed("fetch_logs", err)
	} else {
		c.mu.Lock()
		c.logs = logs
		c.mu.Unlock()
	}
}

func (c *Container) setLoading(v bool) {
	c.mu.Lock()
	c.isLoading = v
	c.mu.Unlock()
}

func (c *Container) remoteFailed(op string, err error) {
	c.rec.RemoteError(op)
	c.log.Error().Err(err).Str("op", op).Msg("error del almacén remoto")
}

// ──── Lecturas (copias) ────

// CurrentUser devuelve el usuario en sesión o nil.
func (c *Container) CurrentUser() *entity.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.currentUser == nil {
		return nil
	}
	u := *c.currentUser
	return &u
}

func (c *Container) Users() []entity.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entity.User(nil), c.users...)
}

func (c *Container) Categories() []entity.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entity.Category(nil), c.categories...)
}

func (c *Container) Items() []entity.InventoryItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entity.InventoryItem(nil), c.items...)
}

func (c *Container) Logs() []entity.Log {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entity.Log(nil), c.logs...)
}

func (c *Container) Settings() entity.AppSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// IsLoading solo es verdadero durante la carga inicial del remoto.
func (c *Container) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isLoading
}

// Today fecha de hoy según el reloj del contenedor.
func (c *Container) Today() time.Time { return c.now() }

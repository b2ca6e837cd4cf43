package state_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockrest/internal/application/state"
	"github.com/jhoicas/stockrest/internal/domain"
	"github.com/jhoicas/stockrest/internal/domain/entity"
	"github.com/jhoicas/stockrest/internal/infrastructure/local"
	"github.com/jhoicas/stockrest/internal/infrastructure/session"
)

var (
	fixedNow  = time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)
	clock     = func() time.Time { return fixedNow }
	errRemote = errors.New("remoto caído")
)

// fakeRemote almacén remoto en memoria con fallos inyectables por operación.
type fakeRemote struct {
	mu         sync.Mutex
	users      []entity.User
	categories []entity.Category
	items      []entity.InventoryItem
	logs       []entity.Log
	fail       map[string]error
	calls      []string
}

func newFakeRemote() *fakeRemote { return &fakeRemote{fail: map[string]error{}} }

func (f *fakeRemote) call(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	return f.fail[op]
}

func (f *fakeRemote) failOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = err
}

func (f *fakeRemote) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *fakeRemote) FetchUsers(context.Context) ([]entity.User, error) {
	if err := f.call("fetch_users"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.users), nil
}

func (f *fakeRemote) FetchCategories(context.Context) ([]entity.Category, error) {
	if err := f.call("fetch_categories"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.categories), nil
}

func (f *fakeRemote) FetchItems(context.Context) ([]entity.InventoryItem, error) {
	if err := f.call("fetch_items"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.items), nil
}

func (f *fakeRemote) FetchLogs(context.Context) ([]entity.Log, error) {
	if err := f.call("fetch_logs"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.logs), nil
}

func (f *fakeRemote) InsertUser(_ context.Context, u *entity.User) error {
	if err := f.call("insert_user"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeRemote) UpdateUser(_ context.Context, u *entity.User) error {
	if err := f.call("update_user"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].ID == u.ID {
			f.users[i] = *u
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeRemote) InsertCategory(_ context.Context, c *entity.Category) error {
	if err := f.call("insert_category"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories = append(f.categories, *c)
	return nil
}

func (f *fakeRemote) DeleteCategory(_ context.Context, id string) error {
	if err := f.call("delete_category"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories = slices.DeleteFunc(f.categories, func(c entity.Category) bool { return c.ID == id })
	return nil
}

func (f *fakeRemote) InsertItem(_ context.Context, it *entity.InventoryItem) error {
	if err := f.call("insert_item"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, *it)
	return nil
}

func (f *fakeRemote) UpdateItem(_ context.Context, it *entity.InventoryItem) error {
	if err := f.call("update_item"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == it.ID {
			f.items[i] = *it
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeRemote) DeleteItem(_ context.Context, id string) error {
	if err := f.call("delete_item"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = slices.DeleteFunc(f.items, func(it entity.InventoryItem) bool { return it.ID == id })
	return nil
}

func (f *fakeRemote) UpdateItemStock(_ context.Context, id string, p entity.StockPatch) error {
	if err := f.call("update_item_stock"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			p.Apply(&f.items[i])
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeRemote) InsertLog(_ context.Context, l *entity.Log) error {
	if err := f.call("insert_log"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append([]entity.Log{*l}, f.logs...)
	return nil
}

func (f *fakeRemote) FindActiveUserByEmail(_ context.Context, email string) (*entity.User, error) {
	if err := f.call("find_user"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email && u.IsActive() {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

// fakeRecorder cuenta los eventos de métricas.
type fakeRecorder struct {
	mu       sync.Mutex
	remote   map[string]int
	actions  map[string]int
	refreshs int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{remote: map[string]int{}, actions: map[string]int{}}
}

func (r *fakeRecorder) RemoteError(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remote[op]++
}

func (r *fakeRecorder) Action(a string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[a]++
}

func (r *fakeRecorder) ObserveRefresh(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshs++
}

// fixture contenedor con almacén local SQLite en memoria y sesión en memoria.
type fixture struct {
	c       *state.Container
	local   *local.Store
	session *session.MemoryStore
	remote  *fakeRemote
	rec     *fakeRecorder
}

func newLocalFixture(t *testing.T) *fixture {
	t.Helper()
	return build(t, nil)
}

func newRemoteFixture(t *testing.T, remote *fakeRemote) *fixture {
	t.Helper()
	return build(t, remote)
}

func build(t *testing.T, remote *fakeRemote) *fixture {
	t.Helper()
	store, err := local.Open(":memory:", clock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	f := &fixture{
		local:   store,
		session: session.NewMemoryStore(0, clock),
		remote:  remote,
		rec:     newFakeRecorder(),
	}
	deps := state.Deps{Local: store, Session: f.session, Recorder: f.rec, Clock: clock}
	if remote != nil {
		deps.Remote = remote
	}
	f.c = state.New(deps)
	return f
}

func findItem(items []entity.InventoryItem, id string) (entity.InventoryItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return entity.InventoryItem{}, false
}

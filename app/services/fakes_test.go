package services_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/pkg/mail"
	"github.com/bistrobuzz/bistro/pkg/payment"
	"github.com/bistrobuzz/bistro/pkg/rbac"
)

var errStore = errors.New("store unavailable")

// journal records store calls in order.
type journal struct {
	mu    sync.Mutex
	calls []string
}

func (j *journal) add(call string) {
	if j == nil {
		return
	}
	j.mu.Lock()
	j.calls = append(j.calls, call)
	j.mu.Unlock()
}

// ─── menu ────────────────────────────────────────────────────────────────────

type memMenu struct {
	items    []models.MenuItem
	allCalls int
}

func (m *memMenu) All(context.Context) ([]models.MenuItem, error) {
	m.allCalls++
	return append([]models.MenuItem{}, m.items...), nil
}

func (m *memMenu) ByCategory(_ context.Context, category string) ([]models.MenuItem, error) {
	out := []models.MenuItem{}
	for _, it := range m.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memMenu) Insert(_ context.Context, item *models.MenuItem) (models.InsertResult, error) {
	item.ID = primitive.NewObjectID()
	m.items = append(m.items, *item)
	return models.InsertResult{Acknowledged: true, InsertedID: item.ID.Hex()}, nil
}

func (m *memMenu) Delete(_ context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	for i, it := range m.items {
		if it.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return models.DeleteResult{Acknowledged: true}, nil
}

// ─── users ───────────────────────────────────────────────────────────────────

type memUsers struct {
	users     []models.User
	insertErr error
	findErr   error
}

func (m *memUsers) All(context.Context) ([]models.User, error) {
	return append([]models.User{}, m.users...), nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Insert(_ context.Context, u *models.User) (models.InsertResult, error) {
	if m.insertErr != nil {
		return models.InsertResult{}, m.insertErr
	}
	u.ID = primitive.NewObjectID()
	m.users = append(m.users, *u)
	return models.InsertResult{Acknowledged: true, InsertedID: u.ID.Hex()}, nil
}

func (m *memUsers) SetRole(_ context.Context, id primitive.ObjectID, role rbac.Role) (models.UpdateResult, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Role = role.String()
			return models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return models.UpdateResult{Acknowledged: true}, nil
}

// ─── carts and payments ──────────────────────────────────────────────────────

type memCarts struct {
	items     []models.CartItem
	deleteErr error
	log       *journal
}

func (m *memCarts) ByEmail(_ context.Context, email string) ([]models.CartItem, error) {
	out := []models.CartItem{}
	for _, it := range m.items {
		if it.Email == email {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memCarts) Insert(_ context.Context, item *models.CartItem) (models.InsertResult, error) {
	item.ID = primitive.NewObjectID()
	m.items = append(m.items, *item)
	return models.InsertResult{Acknowledged: true, InsertedID: item.ID.Hex()}, nil
}

func (m *memCarts) Delete(ctx context.Context, email string, id primitive.ObjectID) (models.DeleteResult, error) {
	return m.DeleteMany(ctx, email, []primitive.ObjectID{id})
}

func (m *memCarts) DeleteMany(_ context.Context, email string, ids []primitive.ObjectID) (models.DeleteResult, error) {
	m.log.add("cart.delete_many")
	if m.deleteErr != nil {
		return models.DeleteResult{}, m.deleteErr
	}
	drop := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := m.items[:0]
	var n int64
	for _, it := range m.items {
		if it.Email == email && drop[it.ID] {
			n++
			continue
		}
		kept = append(kept, it)
	}
	m.items = kept
	return models.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

type memPayments struct {
	payments  []models.Payment
	insertErr error
	log       *journal
}

func (m *memPayments) Insert(_ context.Context, p *models.Payment) (models.InsertResult, error) {
	m.log.add("payment.insert")
	if m.insertErr != nil {
		return models.InsertResult{}, m.insertErr
	}
	p.ID = primitive.NewObjectID()
	m.payments = append(m.payments, *p)
	return models.InsertResult{Acknowledged: true, InsertedID: p.ID.Hex()}, nil
}

func (m *memPayments) ByEmail(_ context.Context, email string) ([]models.Payment, error) {
	out := []models.Payment{}
	for _, p := range m.payments {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeTx emulates a transaction by snapshotting the fakes and restoring them
// when fn fails.
type fakeTx struct {
	enabled  bool
	carts    *memCarts
	payments *memPayments
}

func (t *fakeTx) Enabled() bool { return t.enabled }

func (t *fakeTx) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	if !t.enabled {
		return fn(ctx)
	}
	carts := append([]models.CartItem{}, t.carts.items...)
	payments := append([]models.Payment{}, t.payments.payments...)
	if err := fn(ctx); err != nil {
		t.carts.items = carts
		t.payments.payments = payments
		return err
	}
	return nil
}

// ─── reporting ───────────────────────────────────────────────────────────────

type fixedCount struct {
	n   int64
	err error
}

func (c fixedCount) EstimatedCount(context.Context) (int64, error) { return c.n, c.err }

type memSales struct {
	prices []decimal.Decimal
	sums   []models.CategorySum
	err    error
}

func (m memSales) Prices(context.Context) ([]decimal.Decimal, error) { return m.prices, m.err }

func (m memSales) CategorySums(context.Context) ([]models.CategorySum, error) { return m.sums, m.err }

// ─── cache, gateway, mail ────────────────────────────────────────────────────

type memCache struct {
	data map[string]interface{}
	dels int
}

func newMemCache() *memCache { return &memCache{data: map[string]interface{}{}} }

func (c *memCache) Get(_ context.Context, key string, dest interface{}) bool {
	v, ok := c.data[key]
	if !ok {
		return false
	}
	items, ok := v.([]models.MenuItem)
	if !ok {
		return false
	}
	*(dest.(*[]models.MenuItem)) = items
	return true
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	c.dels++
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type fakeGateway struct {
	cents    int64
	currency string
}

func (g *fakeGateway) CreateIntent(_ context.Context, cents int64, currency string) (payment.Intent, error) {
	g.cents, g.currency = cents, currency
	return payment.Intent{ID: "pi_1", ClientSecret: "pi_1_secret"}, nil
}

type fakeSender struct {
	sent []mail.Message
}

func (s *fakeSender) Send(_ context.Context, m mail.Message) (mail.Receipt, error) {
	s.sent = append(s.sent, m)
	return mail.Receipt{MessageID: "<1@test>"}, nil
}

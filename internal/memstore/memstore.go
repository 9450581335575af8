// Package memstore is an in-memory implementation of the service store
// interfaces, used to exercise the HTTP surface without MongoDB.
package memstore

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/pkg/collection"
	"github.com/bistrobuzz/bistro/pkg/rbac"
)

// Store holds every collection behind one lock.
type Store struct {
	mu       sync.RWMutex
	menu     []models.MenuItem
	users    []models.User
	reviews  []models.Review
	carts    []models.CartItem
	payments []models.Payment
}

func New() *Store { return &Store{} }

func (s *Store) Menu() *Menu         { return &Menu{s} }
func (s *Store) Users() *Users       { return &Users{s} }
func (s *Store) Reviews() *Reviews   { return &Reviews{s} }
func (s *Store) Carts() *Carts       { return &Carts{s} }
func (s *Store) Payments() *Payments { return &Payments{s} }

// Seed helpers assign IDs and return them.

func (s *Store) SeedMenu(items ...models.MenuItem) []primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]primitive.ObjectID, len(items))
	for i := range items {
		items[i].ID = primitive.NewObjectID()
		ids[i] = items[i].ID
		s.menu = append(s.menu, items[i])
	}
	return ids
}

func (s *Store) SeedUsers(users ...models.User) []primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]primitive.ObjectID, len(users))
	for i := range users {
		users[i].ID = primitive.NewObjectID()
		ids[i] = users[i].ID
		s.users = append(s.users, users[i])
	}
	return ids
}

func (s *Store) SeedReviews(reviews ...models.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range reviews {
		reviews[i].ID = primitive.NewObjectID()
		s.reviews = append(s.reviews, reviews[i])
	}
}

func (s *Store) SeedCart(items ...models.CartItem) []primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]primitive.ObjectID, len(items))
	for i := range items {
		items[i].ID = primitive.NewObjectID()
		ids[i] = items[i].ID
		s.carts = append(s.carts, items[i])
	}
	return ids
}

func inserted(id primitive.ObjectID) models.InsertResult {
	return models.InsertResult{Acknowledged: true, InsertedID: id.Hex()}
}

func all[T any](in []T) []T {
	return collection.Filter(in, func(T) bool { return true })
}

// ─── Menu ─────────────────────────────────────────────────────────────────────

type Menu struct{ s *Store }

func (m *Menu) All(context.Context) ([]models.MenuItem, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return all(m.s.menu), nil
}

func (m *Menu) ByCategory(_ context.Context, category string) ([]models.MenuItem, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return collection.Filter(m.s.menu, func(it models.MenuItem) bool { return it.Category == category }), nil
}

func (m *Menu) Insert(_ context.Context, item *models.MenuItem) (models.InsertResult, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	item.ID = primitive.NewObjectID()
	m.s.menu = append(m.s.menu, *item)
	return inserted(item.ID), nil
}

func (m *Menu) Delete(_ context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	before := len(m.s.menu)
	m.s.menu = collection.Reject(m.s.menu, func(it models.MenuItem) bool { return it.ID == id })
	return models.DeleteResult{Acknowledged: true, DeletedCount: int64(before - len(m.s.menu))}, nil
}

func (m *Menu) EstimatedCount(context.Context) (int64, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return int64(len(m.s.menu)), nil
}

// ─── Users ────────────────────────────────────────────────────────────────────

type Users struct{ s *Store }

func (u *Users) All(context.Context) ([]models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	return all(u.s.users), nil
}

func (u *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, usr := range u.s.users {
		if usr.Email == email {
			found := usr
			return &found, nil
		}
	}
	return nil, nil
}

func (u *Users) Insert(_ context.Context, usr *models.User) (models.InsertResult, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, existing := range u.s.users {
		if existing.Email == usr.Email {
			return models.InsertResult{}, models.ErrDuplicate
		}
	}
	usr.ID = primitive.NewObjectID()
	u.s.users = append(u.s.users, *usr)
	return inserted(usr.ID), nil
}

func (u *Users) SetRole(_ context.Context, id primitive.ObjectID, role rbac.Role) (models.UpdateResult, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	res := models.UpdateResult{Acknowledged: true}
	for i := range u.s.users {
		if u.s.users[i].ID != id {
			continue
		}
		res.MatchedCount++
		if u.s.users[i].Role != role.String() {
			u.s.users[i].Role = role.String()
			res.ModifiedCount++
		}
	}
	return res, nil
}

func (u *Users) EstimatedCount(context.Context) (int64, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	return int64(len(u.s.users)), nil
}

// ─── Reviews ──────────────────────────────────────────────────────────────────

type Reviews struct{ s *Store }

func (r *Reviews) All(context.Context) ([]models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return all(r.s.reviews), nil
}

// ─── Carts ────────────────────────────────────────────────────────────────────

type Carts struct{ s *Store }

func (c *Carts) ByEmail(_ context.Context, email string) ([]models.CartItem, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	return collection.Filter(c.s.carts, func(it models.CartItem) bool { return it.Email == email }), nil
}

func (c *Carts) Insert(_ context.Context, item *models.CartItem) (models.InsertResult, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	item.ID = primitive.NewObjectID()
	c.s.carts = append(c.s.carts, *item)
	return inserted(item.ID), nil
}

func (c *Carts) Delete(ctx context.Context, email string, id primitive.ObjectID) (models.DeleteResult, error) {
	return c.DeleteMany(ctx, email, []primitive.ObjectID{id})
}

func (c *Carts) DeleteMany(_ context.Context, email string, ids []primitive.ObjectID) (models.DeleteResult, error) {
	drop := collection.Set(ids)

	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	before := len(c.s.carts)
	c.s.carts = collection.Reject(c.s.carts, func(it models.CartItem) bool { return it.Email == email && drop[it.ID] })
	return models.DeleteResult{Acknowledged: true, DeletedCount: int64(before - len(c.s.carts))}, nil
}

// ─── Payments and sales ───────────────────────────────────────────────────────

type Payments struct{ s *Store }

func (p *Payments) Insert(_ context.Context, pay *models.Payment) (models.InsertResult, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	pay.ID = primitive.NewObjectID()
	p.s.payments = append(p.s.payments, *pay)
	return inserted(pay.ID), nil
}

func (p *Payments) ByEmail(_ context.Context, email string) ([]models.Payment, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	return collection.Filter(p.s.payments, func(pay models.Payment) bool { return pay.Email == email }), nil
}

func (p *Payments) EstimatedCount(context.Context) (int64, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	return int64(len(p.s.payments)), nil
}

func (p *Payments) Prices(context.Context) ([]decimal.Decimal, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	out := make([]decimal.Decimal, 0, len(p.s.payments))
	for _, pay := range p.s.payments {
		out = append(out, decimal.NewFromFloat(pay.Price))
	}
	return out, nil
}

// CategorySums joins each payment's menu items onto the menu, like the
// aggregation pipeline does.
func (p *Payments) CategorySums(context.Context) ([]models.CategorySum, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	menu := collection.KeyBy(p.s.menu, func(it models.MenuItem) primitive.ObjectID { return it.ID })

	sums := map[string]*models.CategorySum{}
	for _, pay := range p.s.payments {
		for _, id := range pay.MenuItems {
			it, ok := menu[id]
			if !ok {
				continue
			}
			row, ok := sums[it.Category]
			if !ok {
				row = &models.CategorySum{Category: it.Category, Total: decimal.Zero}
				sums[it.Category] = row
			}
			row.Count++
			row.Total = row.Total.Add(decimal.NewFromFloat(it.Price))
		}
	}

	out := make([]models.CategorySum, 0, len(sums))
	for _, row := range sums {
		out = append(out, *row)
	}
	return collection.SortBy(out, func(a, b models.CategorySum) bool { return a.Category < b.Category }), nil
}

// ─── Transactions ─────────────────────────────────────────────────────────────

// NoTx runs units of work directly.
type NoTx struct{}

func (NoTx) Enabled() bool { return false }

func (NoTx) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

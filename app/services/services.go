// Package services holds the business rules behind each endpoint. Services
// depend on the small store interfaces below; app/repositories provides the
// MongoDB implementations and tests use in-memory fakes.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/pkg/rbac"
)

var (
	ErrInvalidID  = errors.New("invalid id")
	ErrUserExists = errors.New("user already exist")
)

type MenuStore interface {
	All(ctx context.Context) ([]models.MenuItem, error)
	ByCategory(ctx context.Context, category string) ([]models.MenuItem, error)
	Insert(ctx context.Context, item *models.MenuItem) (models.InsertResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error)
}

type UserStore interface {
	All(ctx context.Context) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) (models.InsertResult, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role rbac.Role) (models.UpdateResult, error)
}

type ReviewStore interface {
	All(ctx context.Context) ([]models.Review, error)
}

type CartStore interface {
	ByEmail(ctx context.Context, email string) ([]models.CartItem, error)
	Insert(ctx context.Context, item *models.CartItem) (models.InsertResult, error)
	// Delete and DeleteMany only match lines owned by email.
	Delete(ctx context.Context, email string, id primitive.ObjectID) (models.DeleteResult, error)
	DeleteMany(ctx context.Context, email string, ids []primitive.ObjectID) (models.DeleteResult, error)
}

type PaymentStore interface {
	Insert(ctx context.Context, p *models.Payment) (models.InsertResult, error)
	ByEmail(ctx context.Context, email string) ([]models.Payment, error)
}

// Transactor runs the payment commit as one unit when enabled.
type Transactor interface {
	Enabled() bool
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Counter reports an approximate collection size.
type Counter interface {
	EstimatedCount(ctx context.Context) (int64, error)
}

// SalesSource feeds the reporting engine.
type SalesSource interface {
	Prices(ctx context.Context) ([]decimal.Decimal, error)
	CategorySums(ctx context.Context) ([]models.CategorySum, error)
}

// Cache is a read-through JSON cache. A miss is not an error.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

func parseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/app/services"
	"github.com/bistrobuzz/bistro/pkg/payment"
)

type paymentFixture struct {
	log      *journal
	carts    *memCarts
	payments *memPayments
	tx       *fakeTx
	gateway  *fakeGateway
	svc      *services.PaymentService
}

func newPaymentFixture(transactions bool) *paymentFixture {
	f := &paymentFixture{log: &journal{}, gateway: &fakeGateway{}}
	f.carts = &memCarts{log: f.log}
	f.payments = &memPayments{log: f.log}
	f.tx = &fakeTx{enabled: transactions, carts: f.carts, payments: f.payments}
	f.svc = services.NewPaymentService(f.payments, f.carts, f.tx, f.gateway, "usd")
	return f
}

func (f *paymentFixture) addCart(t *testing.T, email string) primitive.ObjectID {
	t.Helper()
	item := &models.CartItem{Email: email, MenuItemID: primitive.NewObjectID().Hex(), Price: 5}
	_, err := f.carts.Insert(context.Background(), item)
	require.NoError(t, err)
	return item.ID
}

func TestPaymentService_CommitRemovesExactlyReferencedItems(t *testing.T) {
	f := newPaymentFixture(false)
	a := f.addCart(t, "ann@example.com")
	b := f.addCart(t, "ann@example.com")
	keep := f.addCart(t, "ann@example.com")
	other := f.addCart(t, "bob@example.com")

	res, err := f.svc.Commit(context.Background(), models.Payment{
		Email:     "ann@example.com",
		Price:     10,
		CartItems: []primitive.ObjectID{a, b},
	})
	require.NoError(t, err)

	assert.True(t, res.InsertResult.Acknowledged)
	require.NotNil(t, res.DeleteResult)
	assert.Equal(t, int64(2), res.DeleteResult.DeletedCount)
	assert.Empty(t, res.DeleteError)

	var left []primitive.ObjectID
	for _, it := range f.carts.items {
		left = append(left, it.ID)
	}
	assert.ElementsMatch(t, []primitive.ObjectID{keep, other}, left)

	require.Len(t, f.payments.payments, 1)
	assert.False(t, f.payments.payments[0].Date.IsZero(), "date is stamped")
	assert.Equal(t, []string{"payment.insert", "cart.delete_many"}, f.log.calls)
}

func TestPaymentService_CommitOnlyClearsPayersLines(t *testing.T) {
	f := newPaymentFixture(false)
	mine := f.addCart(t, "ann@example.com")
	theirs := f.addCart(t, "bob@example.com")

	res, err := f.svc.Commit(context.Background(), models.Payment{
		Email:     "ann@example.com",
		Price:     10,
		CartItems: []primitive.ObjectID{mine, theirs},
	})
	require.NoError(t, err)
	require.NotNil(t, res.DeleteResult)
	assert.Equal(t, int64(1), res.DeleteResult.DeletedCount)
	require.Len(t, f.carts.items, 1)
	assert.Equal(t, theirs, f.carts.items[0].ID)
}

func TestPaymentService_CommitPartialFailureIsVisible(t *testing.T) {
	f := newPaymentFixture(false)
	a := f.addCart(t, "ann@example.com")
	f.carts.deleteErr = errStore

	res, err := f.svc.Commit(context.Background(), models.Payment{
		Email:     "ann@example.com",
		Price:     10,
		CartItems: []primitive.ObjectID{a},
	})
	require.NoError(t, err)

	assert.True(t, res.InsertResult.Acknowledged)
	assert.Nil(t, res.DeleteResult)
	assert.Contains(t, res.DeleteError, errStore.Error())
	assert.Len(t, f.payments.payments, 1, "payment stays without rollback")
	assert.Len(t, f.carts.items, 1)
}

func TestPaymentService_CommitTransactionRollsBack(t *testing.T) {
	f := newPaymentFixture(true)
	a := f.addCart(t, "ann@example.com")
	f.carts.deleteErr = errStore

	_, err := f.svc.Commit(context.Background(), models.Payment{
		Email:     "ann@example.com",
		CartItems: []primitive.ObjectID{a},
	})
	assert.ErrorIs(t, err, errStore)
	assert.Empty(t, f.payments.payments)
	assert.Len(t, f.carts.items, 1)
}

func TestPaymentService_CommitInsertFailureSkipsDelete(t *testing.T) {
	f := newPaymentFixture(false)
	a := f.addCart(t, "ann@example.com")
	f.payments.insertErr = errStore

	_, err := f.svc.Commit(context.Background(), models.Payment{
		Email:     "ann@example.com",
		CartItems: []primitive.ObjectID{a},
	})
	assert.ErrorIs(t, err, errStore)
	assert.Equal(t, []string{"payment.insert"}, f.log.calls)
	assert.Len(t, f.carts.items, 1)
}

func TestPaymentService_CommitWithoutCartItems(t *testing.T) {
	f := newPaymentFixture(false)
	f.addCart(t, "ann@example.com")

	res, err := f.svc.Commit(context.Background(), models.Payment{Email: "ann@example.com", Price: 3})
	require.NoError(t, err)
	require.NotNil(t, res.DeleteResult)
	assert.Zero(t, res.DeleteResult.DeletedCount)
	assert.Len(t, f.carts.items, 1)
	assert.NotNil(t, f.payments.payments[0].CartItems)
	assert.NotNil(t, f.payments.payments[0].MenuItems)
}

func TestPaymentService_ByEmail(t *testing.T) {
	f := newPaymentFixture(false)
	ctx := context.Background()
	_, err := f.svc.Commit(ctx, models.Payment{Email: "ann@example.com", Price: 1})
	require.NoError(t, err)
	_, err = f.svc.Commit(ctx, models.Payment{Email: "bob@example.com", Price: 2})
	require.NoError(t, err)

	mine, err := f.svc.ByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 1.0, mine[0].Price)
}

func TestPaymentService_CreateIntent(t *testing.T) {
	f := newPaymentFixture(false)

	intent, err := f.svc.CreateIntent(context.Background(), decimal.RequireFromString("19.99"))
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret", intent.ClientSecret)
	assert.Equal(t, int64(1999), f.gateway.cents)
	assert.Equal(t, "usd", f.gateway.currency)

	_, err = f.svc.CreateIntent(context.Background(), decimal.Zero)
	assert.ErrorIs(t, err, payment.ErrInvalidAmount)
}

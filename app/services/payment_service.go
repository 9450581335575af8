package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/pkg/logger"
	"github.com/bistrobuzz/bistro/pkg/metrics"
	"github.com/bistrobuzz/bistro/pkg/payment"
)

type PaymentService struct {
	payments PaymentStore
	carts    CartStore
	tx       Transactor
	gateway  payment.Gateway
	currency string
	now      func() time.Time
}

func NewPaymentService(payments PaymentStore, carts CartStore, tx Transactor, gateway payment.Gateway, currency string) *PaymentService {
	return &PaymentService{
		payments: payments,
		carts:    carts,
		tx:       tx,
		gateway:  gateway,
		currency: currency,
		now:      time.Now,
	}
}

func (s *PaymentService) ByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	return s.payments.ByEmail(ctx, email)
}

// Commit stores p and then deletes the cart lines listed in p.CartItems
// that belong to p.Email. The insert always happens first.
//
// Without transactions a failed delete leaves the payment in place and is
// reported through CommitResult.DeleteError. With transactions either both
// writes land or neither does.
func (s *PaymentService) Commit(ctx context.Context, p models.Payment) (models.CommitResult, error) {
	p.ID = primitive.NilObjectID
	if p.Date.IsZero() {
		p.Date = s.now().UTC()
	}
	if p.CartItems == nil {
		p.CartItems = []primitive.ObjectID{}
	}
	if p.MenuItems == nil {
		p.MenuItems = []primitive.ObjectID{}
	}

	var out models.CommitResult
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		out = models.CommitResult{}

		ins, err := s.payments.Insert(ctx, &p)
		if err != nil {
			return err
		}
		out.InsertResult = ins

		del, err := s.carts.DeleteMany(ctx, p.Email, p.CartItems)
		if err != nil {
			if s.tx.Enabled() {
				return err
			}
			logger.WithCtx(ctx).Error("payment stored but cart cleanup failed",
				"payment_id", ins.InsertedID, "email", p.Email, "error", err)
			out.DeleteError = err.Error()
			return nil
		}
		out.DeleteResult = &del
		return nil
	})
	if err != nil {
		metrics.PaymentsCommitted.WithLabelValues("failed").Inc()
		return models.CommitResult{}, err
	}

	if out.DeleteError != "" {
		metrics.PaymentsCommitted.WithLabelValues("partial").Inc()
	} else {
		metrics.PaymentsCommitted.WithLabelValues("ok").Inc()
	}
	return out, nil
}

// CreateIntent opens a card payment intent for price, given in major units.
func (s *PaymentService) CreateIntent(ctx context.Context, price decimal.Decimal) (payment.Intent, error) {
	cents := payment.AmountCents(price)
	if cents <= 0 {
		return payment.Intent{}, payment.ErrInvalidAmount
	}
	return s.gateway.CreateIntent(ctx, cents, s.currency)
}

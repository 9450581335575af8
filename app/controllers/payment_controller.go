package controllers

import (
	"github.com/shopspring/decimal"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/app/services"
	"github.com/bistrobuzz/bistro/pkg/ctx"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

// Store POST /payments records the payment and clears the paid cart lines.
func (h *PaymentController) Store(c *ctx.Context) {
	var in models.Payment
	if !c.BindJSON(&in) {
		return
	}
	if in.Email != c.Email() {
		c.Forbidden()
		return
	}

	res, err := h.payments.Commit(c.Context(), in)
	if err != nil {
		fail(c, "commit payment", err)
		return
	}
	c.Success(res)
}

// Index GET /payments?email=
func (h *PaymentController) Index(c *ctx.Context) {
	list, err := h.payments.ByEmail(c.Context(), c.Query("email"))
	if err != nil {
		fail(c, "list payments", err)
		return
	}
	c.Success(list)
}

type intentRequest struct {
	Price decimal.Decimal `json:"price" validate:"gt=0"`
}

// Intent POST /create-payment-intent
func (h *PaymentController) Intent(c *ctx.Context) {
	var in intentRequest
	if !c.BindJSON(&in) {
		return
	}

	intent, err := h.payments.CreateIntent(c.Context(), in.Price)
	if err != nil {
		fail(c, "create payment intent", err)
		return
	}
	c.Success(map[string]string{"clientSecret": intent.ClientSecret})
}

package controllers

import (
	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/app/services"
	"github.com/bistrobuzz/bistro/pkg/ctx"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// Index GET /carts?email=. The owner gate has already matched the query
// email against the caller.
func (h *CartController) Index(c *ctx.Context) {
	items, err := h.carts.ByEmail(c.Context(), c.Query("email"))
	if err != nil {
		fail(c, "list cart", err)
		return
	}
	c.Success(items)
}

// Store POST /carts. Callers may only add to their own cart.
func (h *CartController) Store(c *ctx.Context) {
	var in models.CartItem
	if !c.BindJSON(&in) {
		return
	}
	if in.Email != c.Email() {
		c.Forbidden()
		return
	}

	res, err := h.carts.Add(c.Context(), in)
	if err != nil {
		fail(c, "add to cart", err)
		return
	}
	c.Success(res)
}

// Destroy DELETE /carts/{id} removes the line only if the caller owns it.
func (h *CartController) Destroy(c *ctx.Context) {
	res, err := h.carts.Remove(c.Context(), c.Email(), c.Param("id"))
	if err != nil {
		fail(c, "remove from cart", err)
		return
	}
	c.Success(res)
}

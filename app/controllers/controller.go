// Package controllers adapts HTTP requests to service calls. Access control
// has already run by the time a handler is invoked.
package controllers

import (
	"errors"
	"net/http"

	"github.com/bistrobuzz/bistro/app/services"
	"github.com/bistrobuzz/bistro/pkg/ctx"
	"github.com/bistrobuzz/bistro/pkg/payment"
)

// fail maps service errors onto responses.
func fail(c *ctx.Context, msg string, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidID):
		c.BadRequest(err.Error())
	case errors.Is(err, payment.ErrInvalidAmount):
		c.BadRequest(err.Error())
	case errors.Is(err, payment.ErrNotConfigured):
		c.Error(http.StatusServiceUnavailable, "Payments are not available")
	default:
		c.Fail(msg, err)
	}
}

// HomeController answers the root health check.
type HomeController struct{}

func NewHomeController() *HomeController { return &HomeController{} }

func (h *HomeController) Index(c *ctx.Context) {
	c.Message("Bistro Buzz is open")
}

package controllers

import (
	"errors"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/app/services"
	"github.com/bistrobuzz/bistro/pkg/ctx"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Index GET /users
func (h *UserController) Index(c *ctx.Context) {
	users, err := h.users.List(c.Context())
	if err != nil {
		fail(c, "list users", err)
		return
	}
	c.Success(users)
}

// Store POST /users. Registering an existing email is not an error.
func (h *UserController) Store(c *ctx.Context) {
	var in models.User
	if !c.BindJSON(&in) {
		return
	}

	res, err := h.users.Register(c.Context(), in)
	if errors.Is(err, services.ErrUserExists) {
		c.Success(map[string]string{"message": services.ErrUserExists.Error()})
		return
	}
	if err != nil {
		fail(c, "register user", err)
		return
	}
	c.Success(res)
}

// AdminCheck GET /user/admin/{email}
func (h *UserController) AdminCheck(c *ctx.Context) {
	ok, err := h.users.IsAdmin(c.Context(), c.Email(), c.Param("email"))
	if err != nil {
		fail(c, "check admin", err)
		return
	}
	c.Success(map[string]bool{"admin": ok})
}

// Promote PATCH /users/admin/{id}
func (h *UserController) Promote(c *ctx.Context) {
	res, err := h.users.Promote(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, "promote user", err)
		return
	}
	c.Success(res)
}

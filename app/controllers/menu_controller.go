package controllers

import (
	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/app/services"
	"github.com/bistrobuzz/bistro/pkg/ctx"
)

type MenuController struct {
	menu *services.MenuService
}

func NewMenuController(menu *services.MenuService) *MenuController {
	return &MenuController{menu: menu}
}

// Index GET /menu
func (h *MenuController) Index(c *ctx.Context) {
	items, err := h.menu.All(c.Context())
	if err != nil {
		fail(c, "list menu", err)
		return
	}
	c.Success(items)
}

// Category GET /menu/{category}
func (h *MenuController) Category(c *ctx.Context) {
	items, err := h.menu.ByCategory(c.Context(), c.Param("category"))
	if err != nil {
		fail(c, "list menu category", err)
		return
	}
	c.Success(items)
}

// Store POST /menu
func (h *MenuController) Store(c *ctx.Context) {
	var in models.MenuItem
	if !c.BindJSON(&in) {
		return
	}
	res, err := h.menu.Create(c.Context(), in)
	if err != nil {
		fail(c, "create menu item", err)
		return
	}
	c.Success(res)
}

// Destroy DELETE /menu/{id}
func (h *MenuController) Destroy(c *ctx.Context) {
	res, err := h.menu.Delete(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, "delete menu item", err)
		return
	}
	c.Success(res)
}

package controllers

import (
	"github.com/bistrobuzz/bistro/app/services"
	"github.com/bistrobuzz/bistro/pkg/ctx"
)

type StatsController struct {
	reports *services.ReportService
}

func NewStatsController(reports *services.ReportService) *StatsController {
	return &StatsController{reports: reports}
}

// Admin GET /admin-stats
func (h *StatsController) Admin(c *ctx.Context) {
	stats, err := h.reports.AdminStats(c.Context())
	if err != nil {
		fail(c, "admin stats", err)
		return
	}
	c.Success(stats)
}

// Orders GET /order-stats
func (h *StatsController) Orders(c *ctx.Context) {
	rows, err := h.reports.CategoryBreakdown(c.Context())
	if err != nil {
		fail(c, "order stats", err)
		return
	}
	c.Success(rows)
}

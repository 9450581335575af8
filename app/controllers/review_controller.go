package controllers

import (
	"github.com/bistrobuzz/bistro/app/services"
	"github.com/bistrobuzz/bistro/pkg/ctx"
)

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// Index GET /reviews
func (h *ReviewController) Index(c *ctx.Context) {
	reviews, err := h.reviews.All(c.Context())
	if err != nil {
		fail(c, "list reviews", err)
		return
	}
	c.Success(reviews)
}

package services

import (
	"context"

	"github.com/bistrobuzz/bistro/app/models"
)

type ReviewService struct {
	reviews ReviewStore
}

func NewReviewService(reviews ReviewStore) *ReviewService {
	return &ReviewService{reviews: reviews}
}

func (s *ReviewService) All(ctx context.Context) ([]models.Review, error) {
	return s.reviews.All(ctx)
}

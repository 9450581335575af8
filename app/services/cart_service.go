package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistrobuzz/bistro/app/models"
)

type CartService struct {
	carts CartStore
}

func NewCartService(carts CartStore) *CartService {
	return &CartService{carts: carts}
}

func (s *CartService) ByEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	return s.carts.ByEmail(ctx, email)
}

func (s *CartService) Add(ctx context.Context, item models.CartItem) (models.InsertResult, error) {
	item.ID = primitive.NilObjectID
	return s.carts.Insert(ctx, &item)
}

// Remove deletes one of email's cart lines. A line owned by someone else is
// left alone and reported as zero deleted.
func (s *CartService) Remove(ctx context.Context, email, idHex string) (models.DeleteResult, error) {
	id, err := parseID(idHex)
	if err != nil {
		return models.DeleteResult{}, err
	}
	return s.carts.Delete(ctx, email, id)
}

package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/pkg/database"
)

// CartRepository handles the cart collection.
type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(database.Carts)}
}

func (r *CartRepository) ByEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	return findAll[models.CartItem](ctx, r.col, bson.D{{Key: "email", Value: email}})
}

func (r *CartRepository) Insert(ctx context.Context, item *models.CartItem) (models.InsertResult, error) {
	return insertOne(ctx, r.col, item)
}

func (r *CartRepository) Delete(ctx context.Context, email string, id primitive.ObjectID) (models.DeleteResult, error) {
	defer observe(r.col, "delete")()

	res, err := r.col.DeleteOne(ctx, ownedLines(email, id))
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("cart: delete: %w", err)
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// DeleteMany removes every cart line of email whose _id is in ids.
func (r *CartRepository) DeleteMany(ctx context.Context, email string, ids []primitive.ObjectID) (models.DeleteResult, error) {
	if len(ids) == 0 {
		return models.DeleteResult{Acknowledged: true}, nil
	}
	defer observe(r.col, "delete_many")()

	res, err := r.col.DeleteMany(ctx, ownedLines(email, ids...))
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("cart: delete many: %w", err)
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// ownedLines matches the given cart lines of email.
func ownedLines(email string, ids ...primitive.ObjectID) bson.D {
	return bson.D{
		{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}},
		{Key: "email", Value: email},
	}
}

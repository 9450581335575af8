package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/pkg/database"
)

// MenuRepository handles the menu collection.
type MenuRepository struct {
	col *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{col: db.Collection(database.Menu)}
}

func (r *MenuRepository) All(ctx context.Context) ([]models.MenuItem, error) {
	return findAll[models.MenuItem](ctx, r.col, bson.D{})
}

func (r *MenuRepository) ByCategory(ctx context.Context, category string) ([]models.MenuItem, error) {
	return findAll[models.MenuItem](ctx, r.col, bson.D{{Key: "category", Value: category}})
}

func (r *MenuRepository) Insert(ctx context.Context, item *models.MenuItem) (models.InsertResult, error) {
	return insertOne(ctx, r.col, item)
}

func (r *MenuRepository) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	return deleteByID(ctx, r.col, id)
}

func (r *MenuRepository) EstimatedCount(ctx context.Context) (int64, error) {
	return estimatedCount(ctx, r.col)
}

// InsertMany loads seed data.
func (r *MenuRepository) InsertMany(ctx context.Context, items []models.MenuItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	defer observe(r.col, "insert_many")()

	docs := make([]interface{}, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

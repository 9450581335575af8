package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/pkg/database"
)

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(database.Reviews)}
}

func (r *ReviewRepository) All(ctx context.Context) ([]models.Review, error) {
	return findAll[models.Review](ctx, r.col, bson.D{})
}

// InsertMany loads seed data.
func (r *ReviewRepository) InsertMany(ctx context.Context, reviews []models.Review) (int, error) {
	if len(reviews) == 0 {
		return 0, nil
	}
	defer observe(r.col, "insert_many")()

	docs := make([]interface{}, len(reviews))
	for i := range reviews {
		docs[i] = reviews[i]
	}
	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

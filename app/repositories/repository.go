// Package repositories reads and writes the MongoDB collections. Every
// method takes the request context and records its latency.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/pkg/metrics"
)

func observe(col *mongo.Collection, op string) func() {
	start := time.Now()
	return func() { metrics.ObserveDBQuery(col.Name(), op, start) }
}

// findAll decodes every document matching filter. The result is never nil
// so empty collections encode as [].
func findAll[T any](ctx context.Context, col *mongo.Collection, filter interface{}) ([]T, error) {
	defer observe(col, "find")()

	cur, err := col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", col.Name(), err)
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", col.Name(), err)
	}
	return out, nil
}

func insertOne(ctx context.Context, col *mongo.Collection, doc interface{}) (models.InsertResult, error) {
	defer observe(col, "insert")()

	res, err := col.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return models.InsertResult{}, fmt.Errorf("%s: insert: %w", col.Name(), models.ErrDuplicate)
	}
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("%s: insert: %w", col.Name(), err)
	}
	return models.InsertResult{Acknowledged: true, InsertedID: hexID(res.InsertedID)}, nil
}

func deleteByID(ctx context.Context, col *mongo.Collection, id primitive.ObjectID) (models.DeleteResult, error) {
	defer observe(col, "delete")()

	res, err := col.DeleteOne(ctx, primitive.M{"_id": id})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%s: delete: %w", col.Name(), err)
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func estimatedCount(ctx context.Context, col *mongo.Collection) (int64, error) {
	defer observe(col, "count")()

	n, err := col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: count: %w", col.Name(), err)
	}
	return n, nil
}

func hexID(v interface{}) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

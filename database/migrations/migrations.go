// Package migrations holds the schema changes for the bistro database.
// Each one registers itself from init(); cmd/bistro imports the package so
// they are known before migrate runs.
package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// index creates a single-field ascending index and drops it on rollback.
type index struct {
	collection string
	field      string
	name       string
	unique     bool
}

func (m index) Up(ctx context.Context, db *mongo.Database) error {
	opts := options.Index().SetName(m.name)
	if m.unique {
		opts.SetUnique(true)
	}
	_, err := db.Collection(m.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: m.field, Value: 1}},
		Options: opts,
	})
	return err
}

func (m index) Down(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(m.collection).Indexes().DropOne(ctx, m.name)
	return err
}

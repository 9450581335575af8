// Package database owns the MongoDB connection. The client is created once
// at boot and handed to repositories; nothing here is global.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	Menu     = "menu"
	Users    = "users"
	Reviews  = "reviews"
	Carts    = "cart"
	Payments = "payments"
	Logs     = "logs"
)

// Store is a connected client plus the application database.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect dials uri and verifies the primary is reachable.
// Returns an error instead of exiting so the caller can shut down cleanly.
func Connect(ctx context.Context, uri, name string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(50).
		SetAppName("bistro")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return &Store{Client: client, DB: client.Database(name)}, nil
}

// Collection returns a handle to the named collection.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.DB.Collection(name)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, waiting at most until ctx is done.
func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

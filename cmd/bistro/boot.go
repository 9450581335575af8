package main

import (
	"context"
	"fmt"

	"github.com/bistrobuzz/bistro/config"
	"github.com/bistrobuzz/bistro/pkg/database"
)

// bootDB loads config and connects to MongoDB. The caller closes the store.
func bootDB(ctx context.Context) (*database.Store, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return database.Connect(ctx, config.DatabaseURI(), config.DatabaseName())
}

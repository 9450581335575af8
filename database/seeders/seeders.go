// Package seeders loads menu and review fixtures into the database.
//
// Seeders register themselves by name and run in registration order:
//
//	func init() {
//	    seeders.Register("menu", seedMenu)
//	}
//
// Run via CLI: bistro seed [--file fixtures.json]
package seeders

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

// SeederFunc writes seed data into db.
type SeederFunc func(ctx context.Context, db *mongo.Database, out io.Writer) error

type entry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []entry
)

func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, entry{name: name, fn: fn})
}

// RunAll executes every registered seeder and stops at the first error.
func RunAll(ctx context.Context, db *mongo.Database, out io.Writer) error {
	mu.Lock()
	current := append([]entry(nil), entries...)
	mu.Unlock()

	if len(current) == 0 {
		fmt.Fprintln(out, "No seeders registered.")
		return nil
	}

	for _, e := range current {
		fmt.Fprintf(out, "Seeding %s... ", e.name)
		if err := e.fn(ctx, db, out); err != nil {
			fmt.Fprintln(out, "failed")
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		fmt.Fprintln(out, "done")
	}
	return nil
}

// Package migration applies versioned schema changes (indexes, validators)
// to the MongoDB database and records which ones ran.
//
// Usage (in database/migrations):
//
//	func init() {
//	    migration.Register("20240101000000_users_email_unique", &UsersEmailUnique{})
//	}
//
// Run from CLI:
//
//	bistro migrate             // run all pending
//	bistro migrate:rollback    // rollback last batch
//	bistro migrate:status
package migration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistrobuzz/bistro/pkg/logger"
)

// Migration is implemented by every schema change.
type Migration interface {
	Up(ctx context.Context, db *mongo.Database) error
	Down(ctx context.Context, db *mongo.Database) error
}

// Record is one applied migration.
type Record struct {
	Name  string    `bson:"name"`
	Batch int       `bson:"batch"`
	RunAt time.Time `bson:"runAt"`
}

// Ledger stores the applied migrations.
type Ledger interface {
	Applied(ctx context.Context) ([]Record, error)
	Add(ctx context.Context, rec Record) error
	Remove(ctx context.Context, name string) error
}

// Entry is a named migration.
type Entry struct {
	Name      string
	Migration Migration
}

var registry []Entry

// Register adds a migration to the global registry. name should be
// timestamp-prefixed; pending migrations run in name order.
func Register(name string, m Migration) {
	registry = append(registry, Entry{Name: name, Migration: m})
}

// Registered returns a copy of the global registry.
func Registered() []Entry {
	return append([]Entry(nil), registry...)
}

// ErrNoMigrations is returned by Run when nothing is registered.
var ErrNoMigrations = errors.New("no migrations registered")

type Runner struct {
	db      *mongo.Database
	ledger  Ledger
	entries []Entry
	out     io.Writer
	now     func() time.Time
}

// New builds a Runner over the registered migrations, tracking them in the
// "migrations" collection of db.
func New(db *mongo.Database, out io.Writer) *Runner {
	return NewRunner(db, NewMongoLedger(db.Collection("migrations")), Registered(), out)
}

func NewRunner(db *mongo.Database, ledger Ledger, entries []Entry, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{db: db, ledger: ledger, entries: entries, out: out, now: time.Now}
}

// Pending returns the migrations that have not run yet, ordered by name.
func (r *Runner) Pending(ctx context.Context) ([]Entry, error) {
	ran, err := r.ledger.Applied(ctx)
	if err != nil {
		return nil, err
	}

	done := make(map[string]bool, len(ran))
	for _, rec := range ran {
		done[rec.Name] = true
	}

	var pending []Entry
	for _, e := range r.entries {
		if !done[e.Name] {
			pending = append(pending, e)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Name < pending[j].Name })
	return pending, nil
}

// Run applies every pending migration as one batch.
func (r *Runner) Run(ctx context.Context) error {
	if len(r.entries) == 0 {
		return ErrNoMigrations
	}

	pending, err := r.Pending(ctx)
	if err != nil {
		return fmt.Errorf("migration: fetch pending: %w", err)
	}
	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return nil
	}

	batch, err := r.nextBatch(ctx)
	if err != nil {
		return err
	}

	for _, e := range pending {
		logger.Info("migration: running", "name", e.Name)
		if err := e.Migration.Up(ctx, r.db); err != nil {
			return fmt.Errorf("migration: %s up: %w", e.Name, err)
		}
		if err := r.ledger.Add(ctx, Record{Name: e.Name, Batch: batch, RunAt: r.now().UTC()}); err != nil {
			return fmt.Errorf("migration: record %s: %w", e.Name, err)
		}
		fmt.Fprintf(r.out, "Migrated: %s\n", e.Name)
	}

	logger.Info("migration: done", "ran", len(pending), "batch", batch)
	return nil
}

// Rollback reverses the most recent batch, newest first.
func (r *Runner) Rollback(ctx context.Context) error {
	ran, err := r.ledger.Applied(ctx)
	if err != nil {
		return err
	}

	last := 0
	for _, rec := range ran {
		if rec.Batch > last {
			last = rec.Batch
		}
	}
	if last == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return nil
	}

	var batch []Record
	for _, rec := range ran {
		if rec.Batch == last {
			batch = append(batch, rec)
		}
	}
	sort.Slice(batch, func(i, j int) bool { return batch[i].Name > batch[j].Name })

	known := make(map[string]Migration, len(r.entries))
	for _, e := range r.entries {
		known[e.Name] = e.Migration
	}

	for _, rec := range batch {
		m, ok := known[rec.Name]
		if !ok {
			return fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}
		logger.Info("migration: rolling back", "name", rec.Name)
		if err := m.Down(ctx, r.db); err != nil {
			return fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.ledger.Remove(ctx, rec.Name); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Rolled back: %s\n", rec.Name)
	}
	return nil
}

// Status prints each registered migration with its batch.
func (r *Runner) Status(ctx context.Context) error {
	ran, err := r.ledger.Applied(ctx)
	if err != nil {
		return err
	}

	byName := make(map[string]Record, len(ran))
	for _, rec := range ran {
		byName[rec.Name] = rec
	}

	fmt.Fprintf(r.out, "%-50s  %-8s  %s\n", "MIGRATION", "STATUS", "BATCH")
	for _, e := range r.entries {
		if rec, ok := byName[e.Name]; ok {
			fmt.Fprintf(r.out, "%-50s  %-8s  %d\n", e.Name, "Ran", rec.Batch)
		} else {
			fmt.Fprintf(r.out, "%-50s  %-8s  -\n", e.Name, "Pending")
		}
	}
	return nil
}

func (r *Runner) nextBatch(ctx context.Context) (int, error) {
	ran, err := r.ledger.Applied(ctx)
	if err != nil {
		return 0, err
	}
	max := 0
	for _, rec := range ran {
		if rec.Batch > max {
			max = rec.Batch
		}
	}
	return max + 1, nil
}

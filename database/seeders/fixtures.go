package seeders

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/app/repositories"
	"github.com/bistrobuzz/bistro/pkg/validate"
)

//go:embed data/fixtures.json
var defaultFixtures []byte

// Fixtures is the seed file layout.
type Fixtures struct {
	Menu    []models.MenuItem `json:"menu"`
	Reviews []models.Review   `json:"reviews"`
}

type MenuWriter interface {
	InsertMany(ctx context.Context, items []models.MenuItem) (int, error)
}

type ReviewWriter interface {
	InsertMany(ctx context.Context, reviews []models.Review) (int, error)
}

func init() {
	Register("menu and reviews", func(ctx context.Context, db *mongo.Database, out io.Writer) error {
		f, err := ParseFixtures(defaultFixtures)
		if err != nil {
			return err
		}
		return Apply(ctx, f, repositories.NewMenuRepository(db), repositories.NewReviewRepository(db), out)
	})
}

// LoadFile reads fixtures from path.
func LoadFile(path string) (Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(data)
}

// ParseFixtures decodes and validates a fixtures document. Every menu item
// must pass the same rules as POST /menu.
func ParseFixtures(data []byte) (Fixtures, error) {
	var f Fixtures
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixtures{}, fmt.Errorf("decode fixtures: %w", err)
	}
	for i := range f.Menu {
		if errs := validate.Struct(&f.Menu[i]); validate.HasErrors(errs) {
			return Fixtures{}, fmt.Errorf("menu[%d]: %v", i, errs)
		}
	}
	return f, nil
}

// Apply inserts f through the given writers.
func Apply(ctx context.Context, f Fixtures, menu MenuWriter, reviews ReviewWriter, out io.Writer) error {
	n, err := menu.InsertMany(ctx, f.Menu)
	if err != nil {
		return fmt.Errorf("insert menu: %w", err)
	}
	m, err := reviews.InsertMany(ctx, f.Reviews)
	if err != nil {
		return fmt.Errorf("insert reviews: %w", err)
	}
	fmt.Fprintf(out, "%d menu items, %d reviews ", n, m)
	return nil
}

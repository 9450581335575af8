package seeders

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bistrobuzz/bistro/app/models"
)

type menuSink struct {
	items []models.MenuItem
	err   error
}

func (s *menuSink) InsertMany(_ context.Context, items []models.MenuItem) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.items = append(s.items, items...)
	return len(items), nil
}

type reviewSink struct{ reviews []models.Review }

func (s *reviewSink) InsertMany(_ context.Context, reviews []models.Review) (int, error) {
	s.reviews = append(s.reviews, reviews...)
	return len(reviews), nil
}

func TestDefaultFixtures(t *testing.T) {
	f, err := ParseFixtures(defaultFixtures)
	require.NoError(t, err)
	assert.NotEmpty(t, f.Menu)
	assert.NotEmpty(t, f.Reviews)

	categories := map[string]bool{}
	for _, it := range f.Menu {
		categories[it.Category] = true
	}
	assert.True(t, categories["dessert"])
	assert.True(t, categories["pizza"])
}

func TestParseFixtures_RejectsInvalidMenuItem(t *testing.T) {
	_, err := ParseFixtures([]byte(`{"menu":[{"name":"","category":"soup","price":3}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "menu[0]")

	_, err = ParseFixtures([]byte(`{"menu":`))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	f, err := ParseFixtures(defaultFixtures)
	require.NoError(t, err)

	menu, reviews := &menuSink{}, &reviewSink{}
	out := &bytes.Buffer{}
	require.NoError(t, Apply(context.Background(), f, menu, reviews, out))
	assert.Len(t, menu.items, len(f.Menu))
	assert.Len(t, reviews.reviews, len(f.Reviews))
	assert.Contains(t, out.String(), "menu items")
}

func TestApply_StopsOnMenuError(t *testing.T) {
	menu, reviews := &menuSink{err: errors.New("write conflict")}, &reviewSink{}
	err := Apply(context.Background(), Fixtures{Menu: []models.MenuItem{{Name: "x", Category: "y"}}}, menu, reviews, &bytes.Buffer{})
	require.Error(t, err)
	assert.Empty(t, reviews.reviews)
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/app/services"
	"github.com/bistrobuzz/bistro/pkg/cache"
)

func TestMenuService_CachesList(t *testing.T) {
	store := &memMenu{items: []models.MenuItem{{Name: "Soup", Category: "soup", Price: 4}}}
	c := newMemCache()
	svc := services.NewMenuService(store, c, time.Minute)
	ctx := context.Background()

	first, err := svc.All(ctx)
	require.NoError(t, err)
	second, err := svc.All(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.allCalls, "second read is served from cache")
}

func TestMenuService_WritesInvalidate(t *testing.T) {
	store := &memMenu{}
	c := newMemCache()
	svc := services.NewMenuService(store, c, time.Minute)
	ctx := context.Background()

	_, err := svc.All(ctx)
	require.NoError(t, err)

	res, err := svc.Create(ctx, models.MenuItem{Name: "Cake", Category: "dessert", Price: 6})
	require.NoError(t, err)
	assert.Equal(t, 1, c.dels)

	items, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, store.allCalls)

	del, err := svc.Delete(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)
	assert.Equal(t, 2, c.dels)
}

func TestMenuService_DeleteInvalidID(t *testing.T) {
	svc := services.NewMenuService(&memMenu{}, newMemCache(), time.Minute)
	_, err := svc.Delete(context.Background(), "xyz")
	assert.ErrorIs(t, err, services.ErrInvalidID)
}

func TestMenuService_WorksWithoutRedis(t *testing.T) {
	store := &memMenu{items: []models.MenuItem{{Name: "Soup", Category: "soup"}, {Name: "Pie", Category: "dessert"}}}
	svc := services.NewMenuService(store, cache.New(nil), time.Minute)
	ctx := context.Background()

	items, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	desserts, err := svc.ByCategory(ctx, "dessert")
	require.NoError(t, err)
	require.Len(t, desserts, 1)
	assert.Equal(t, "Pie", desserts[0].Name)

	none, err := svc.ByCategory(ctx, "pizza")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

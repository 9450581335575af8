package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/pkg/logger"
)

const menuCacheKey = "menu:all"

// MenuService serves the menu. The full list is cached and dropped on every
// write.
type MenuService struct {
	menu  MenuStore
	cache Cache
	ttl   time.Duration
}

func NewMenuService(menu MenuStore, cache Cache, ttl time.Duration) *MenuService {
	return &MenuService{menu: menu, cache: cache, ttl: ttl}
}

func (s *MenuService) All(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if s.cache.Get(ctx, menuCacheKey, &items) && items != nil {
		return items, nil
	}

	items, err := s.menu.All(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, menuCacheKey, items, s.ttl); err != nil {
		logger.WithCtx(ctx).Warn("menu: cache set failed", "error", err)
	}
	return items, nil
}

func (s *MenuService) ByCategory(ctx context.Context, category string) ([]models.MenuItem, error) {
	return s.menu.ByCategory(ctx, category)
}

func (s *MenuService) Create(ctx context.Context, item models.MenuItem) (models.InsertResult, error) {
	item.ID = primitive.NilObjectID
	res, err := s.menu.Insert(ctx, &item)
	if err != nil {
		return res, err
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *MenuService) Delete(ctx context.Context, idHex string) (models.DeleteResult, error) {
	id, err := parseID(idHex)
	if err != nil {
		return models.DeleteResult{}, err
	}
	res, err := s.menu.Delete(ctx, id)
	if err != nil {
		return res, err
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *MenuService) invalidate(ctx context.Context) {
	if err := s.cache.Del(ctx, menuCacheKey); err != nil {
		logger.WithCtx(ctx).Warn("menu: cache invalidate failed", "error", err)
	}
}

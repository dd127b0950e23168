package services

import (
	"context"
	"fmt"
	"strings"

	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/repository"
)

// CatalogService maintains the item catalog. Codes are assigned on save,
// never on read paths.
type CatalogService struct {
	store repository.Store
}

func NewCatalogService(store repository.Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) ListItems(ctx context.Context, category domain.Category, search string) ([]domain.Item, error) {
	if category != "" && !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidItem, category)
	}
	return s.store.Items().List(ctx, category, search)
}

func (s *CatalogService) GetItem(ctx context.Context, id uint) (*domain.Item, error) {
	it, err := s.store.Items().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrItemNotFound
	}
	return it, nil
}

// SaveItem creates or updates an item and makes sure it carries a code.
// The code of an existing item is immutable; updates cannot overwrite it.
func (s *CatalogService) SaveItem(ctx context.Context, item *domain.Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if !item.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidItem, item.Category)
	}
	if item.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidItem)
	}
	if item.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidItem)
	}

	return s.store.Transact(ctx, func(tx repository.Store) error {
		if item.ID == 0 {
			if err := tx.Items().Create(ctx, item); err != nil {
				return fmt.Errorf("create item: %w", err)
			}
		} else {
			existing, err := tx.Items().FindByID(ctx, item.ID)
			if err != nil {
				return err
			}
			if existing == nil {
				return ErrItemNotFound
			}
			item.Code = existing.Code
			if err := tx.Items().Save(ctx, item); err != nil {
				return fmt.Errorf("save item: %w", err)
			}
		}
		_, err := tx.Items().EnsureCode(ctx, item)
		return err
	})
}

func (s *CatalogService) DeleteItem(ctx context.Context, id uint) error {
	it, err := s.store.Items().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if it == nil {
		return ErrItemNotFound
	}
	return s.store.Items().Delete(ctx, id)
}

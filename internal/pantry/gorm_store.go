package pantry

import (
	"context"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/models"
)

// GormStore persists inventory items through GORM. Schema fields map 1:1 to
// the InventoryItem entity, with the usage history carried as a JSON text
// column.
type GormStore struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewGormStore creates a store backed by the given database handle. A
// positive timeout bounds each store operation; GORM itself is not
// context-aware, so the deadline releases the caller while the query
// finishes in the background.
func NewGormStore(db *gorm.DB, timeout time.Duration) *GormStore {
	return &GormStore{db: db, timeout: timeout}
}

func (s *GormStore) do(ctx context.Context, op func() error) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() { done <- op() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CreateItem inserts a new inventory item record
func (s *GormStore) CreateItem(ctx context.Context, item *models.InventoryItem) error {
	return s.do(ctx, func() error {
		return s.db.Create(item).Error
	})
}

// ListItems returns all inventory items belonging to an owner
func (s *GormStore) ListItems(ctx context.Context, ownerID string) ([]*models.InventoryItem, error) {
	var items []*models.InventoryItem
	err := s.do(ctx, func() error {
		return s.db.Where("owner_id = ?", ownerID).Order("created_at").Find(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem saves the full state of an existing inventory item
func (s *GormStore) UpdateItem(ctx context.Context, item *models.InventoryItem) error {
	return s.do(ctx, func() error {
		return s.db.Save(item).Error
	})
}

// DeleteItem removes an inventory item by owner and item id
func (s *GormStore) DeleteItem(ctx context.Context, ownerID, itemID string) error {
	return s.do(ctx, func() error {
		return s.db.Where("owner_id = ? AND item_id = ?", ownerID, itemID).
			Delete(&models.InventoryItem{}).Error
	})
}

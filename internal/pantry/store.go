package pantry

import (
	"context"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/models"
)

// Store represents the durable persistence backend for inventory items,
// keyed by owner identity. Exactly one record is touched per call; the
// engine never needs cross-item transactions.
type Store interface {
	CreateItem(ctx context.Context, item *models.InventoryItem) error
	ListItems(ctx context.Context, ownerID string) ([]*models.InventoryItem, error)
	UpdateItem(ctx context.Context, item *models.InventoryItem) error
	DeleteItem(ctx context.Context, ownerID, itemID string) error
}

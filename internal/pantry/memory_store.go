package pantry

import (
	"context"
	"fmt"
	"sync"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/models"
)

// MemoryStore is the local-only fallback store, substituted when the
// durable backend is unreachable or unconfigured. It satisfies the same
// Store contract with process-lifetime state.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]map[string]models.InventoryItem // ownerID -> itemID -> item
	order map[string][]string                        // ownerID -> itemIDs in insertion order
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]map[string]models.InventoryItem),
		order: make(map[string][]string),
	}
}

// CreateItem inserts a new inventory item record
func (s *MemoryStore) CreateItem(ctx context.Context, item *models.InventoryItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	owned := s.items[item.OwnerID]
	if owned == nil {
		owned = make(map[string]models.InventoryItem)
		s.items[item.OwnerID] = owned
	}
	if _, exists := owned[item.ItemID]; exists {
		return fmt.Errorf("item %s already exists", item.ItemID)
	}
	owned[item.ItemID] = *item
	s.order[item.OwnerID] = append(s.order[item.OwnerID], item.ItemID)
	return nil
}

// ListItems returns all inventory items belonging to an owner
func (s *MemoryStore) ListItems(ctx context.Context, ownerID string) ([]*models.InventoryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Returned in insertion order, matching the created_at ordering the
	// durable store provides.
	items := make([]*models.InventoryItem, 0, len(s.items[ownerID]))
	for _, itemID := range s.order[ownerID] {
		copied := s.items[ownerID][itemID]
		items = append(items, &copied)
	}
	return items, nil
}

// UpdateItem saves the full state of an existing inventory item
func (s *MemoryStore) UpdateItem(ctx context.Context, item *models.InventoryItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	owned := s.items[item.OwnerID]
	if owned == nil {
		return fmt.Errorf("item %s not found", item.ItemID)
	}
	if _, exists := owned[item.ItemID]; !exists {
		return fmt.Errorf("item %s not found", item.ItemID)
	}
	owned[item.ItemID] = *item
	return nil
}

// DeleteItem removes an inventory item by owner and item id
func (s *MemoryStore) DeleteItem(ctx context.Context, ownerID, itemID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items[ownerID], itemID)
	owned := s.order[ownerID]
	for i, id := range owned {
		if id == itemID {
			s.order[ownerID] = append(owned[:i], owned[i+1:]...)
			break
		}
	}
	return nil
}

package pantry

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/ingredient"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/models"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/monitoring"
)

// Service is the inventory engine for a single owner. It holds the owner's
// items as an in-memory snapshot, applies mutations optimistically through
// the Stage* operations, and writes through to the durable store on Commit.
//
// The single-owner assumption is load-bearing: there is no isolation across
// the read-merge-write sequence, so two devices editing the same account
// concurrently can lose a write (last-writer-wins).
type Service struct {
	store   Store
	ownerID string
	metrics *monitoring.Metrics
	now     func() time.Time

	mu    sync.RWMutex
	items map[string]*models.InventoryItem
	order []string // item ids in creation order, for deterministic matching
}

// Option configures a Service
type Option func(*Service)

// WithMetrics attaches operation counters
func WithMetrics(m *monitoring.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService loads the owner's inventory snapshot and returns a ready
// engine for it.
func NewService(ctx context.Context, store Store, ownerID string, opts ...Option) (*Service, error) {
	s := &Service{
		store:   store,
		ownerID: ownerID,
		now:     time.Now,
		items:   make(map[string]*models.InventoryItem),
	}
	for _, opt := range opts {
		opt(s)
	}

	items, err := store.ListItems(ctx, ownerID)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	// Stable so the store's own ordering breaks created_at ties.
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	for _, item := range items {
		s.items[item.ItemID] = item
		s.order = append(s.order, item.ItemID)
	}
	return s, nil
}

// OwnerID returns the owner this service is bound to
func (s *Service) OwnerID() string {
	return s.ownerID
}

// Items returns a snapshot copy of all items in creation order
func (s *Service) Items() []*models.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]*models.InventoryItem, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, cloneItem(s.items[id]))
	}
	return items
}

// Item returns a snapshot copy of one item by id
func (s *Service) Item(itemID string) (*models.InventoryItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[itemID]
	if !ok {
		return nil, false
	}
	return cloneItem(item), true
}

// ItemsByStatus returns snapshot copies of the items with the given status
func (s *Service) ItemsByStatus(status models.InventoryStatus) []*models.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []*models.InventoryItem
	for _, id := range s.order {
		if s.items[id].Status == string(status) {
			items = append(items, cloneItem(s.items[id]))
		}
	}
	return items
}

// findDirect returns the first item whose normalized key matches the
// requested key under the containment rule, in creation order. Caller must
// hold the lock.
func (s *Service) findDirect(key string) *models.InventoryItem {
	for _, id := range s.order {
		if ingredient.SameIngredient(key, s.items[id].NormalizedKey) {
			return s.items[id]
		}
	}
	return nil
}

// cloneItem deep-copies an item so snapshot readers and rollback state
// never alias live engine state.
func cloneItem(item *models.InventoryItem) *models.InventoryItem {
	if item == nil {
		return nil
	}
	copied := *item
	if item.ExpiryDate != nil {
		expiry := *item.ExpiryDate
		copied.ExpiryDate = &expiry
	}
	if item.UsageHistory != nil {
		copied.UsageHistory = append([]models.UsageEvent(nil), item.UsageHistory...)
	}
	return &copied
}

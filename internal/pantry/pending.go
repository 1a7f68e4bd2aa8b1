package pantry

import (
	"context"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/models"
)

// MutationKind represents the kind of staged mutation
type MutationKind string

const (
	// Staged mutation kinds
	MutationCreate MutationKind = "create"
	MutationUpdate MutationKind = "update"
	MutationDelete MutationKind = "delete"
)

// PendingMutation represents an in-memory mutation that has been applied to
// the engine snapshot but not yet confirmed by the durable store. Callers
// Commit it, and on persistence failure choose between retrying Commit and
// Rollback.
type PendingMutation struct {
	Kind   MutationKind
	ItemID string
	// Merged reports whether an add was folded into an existing item
	// rather than creating a new one.
	Merged bool

	before    *models.InventoryItem
	after     *models.InventoryItem
	// position in the creation-order index at deletion time, so a
	// rolled-back delete does not reorder matching
	orderIndex int
	committed  bool
}

// Item returns the post-mutation state, nil for deletions
func (p *PendingMutation) Item() *models.InventoryItem {
	return cloneItem(p.after)
}

// Committed reports whether the mutation has been confirmed durable
func (p *PendingMutation) Committed() bool {
	return p.committed
}

// Commit writes the staged mutation through to the durable store. A failed
// commit leaves the in-memory state ahead of durable state and returns a
// PersistenceError; the mutation stays pending and may be retried or rolled
// back.
func (s *Service) Commit(ctx context.Context, pm *PendingMutation) error {
	if pm.committed {
		return nil
	}

	var err error
	switch pm.Kind {
	case MutationCreate:
		created := cloneItem(pm.after)
		if err = s.store.CreateItem(ctx, created); err == nil {
			// The store assigns the surrogate key and timestamps on
			// insert; carry them onto the live item so later updates
			// address the same row.
			pm.after.Model = created.Model
			s.mu.Lock()
			if live, ok := s.items[pm.ItemID]; ok {
				live.Model = created.Model
			}
			s.mu.Unlock()
		}
	case MutationUpdate:
		err = s.store.UpdateItem(ctx, cloneItem(pm.after))
	case MutationDelete:
		err = s.store.DeleteItem(ctx, s.ownerID, pm.ItemID)
	}
	if err != nil {
		s.metrics.RecordPersistenceFailure()
		return &PersistenceError{Op: string(pm.Kind), Err: err}
	}
	pm.committed = true
	return nil
}

// Rollback reverts the staged mutation in the engine snapshot. It is a
// no-op for committed mutations.
func (s *Service) Rollback(pm *PendingMutation) {
	if pm == nil || pm.committed {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	switch pm.Kind {
	case MutationCreate:
		delete(s.items, pm.ItemID)
		s.removeFromOrder(pm.ItemID)
	case MutationUpdate:
		s.items[pm.ItemID] = cloneItem(pm.before)
	case MutationDelete:
		s.items[pm.ItemID] = cloneItem(pm.before)
		i := pm.orderIndex
		if i < 0 || i > len(s.order) {
			i = len(s.order)
		}
		s.order = append(s.order[:i], append([]string{pm.ItemID}, s.order[i:]...)...)
	}
}

// removeFromOrder drops an item id from the creation-order index and
// returns the position it held, -1 if absent. Caller must hold the lock.
func (s *Service) removeFromOrder(itemID string) int {
	for i, id := range s.order {
		if id == itemID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return i
		}
	}
	return -1
}

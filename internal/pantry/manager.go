package pantry

import (
	"context"
	"sync"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/monitoring"
)

// Manager hands out one Service per owner, loading each owner's inventory
// snapshot on first use. It is the injectable replacement for a
// process-wide inventory context: presentation layers receive a Service and
// hold read-only snapshots plus explicit command calls.
type Manager struct {
	store   Store
	metrics *monitoring.Metrics

	mu       sync.Mutex
	services map[string]*Service
}

// NewManager creates a manager over a store
func NewManager(store Store, metrics *monitoring.Metrics) *Manager {
	return &Manager{
		store:    store,
		metrics:  metrics,
		services: make(map[string]*Service),
	}
}

// Service returns the engine for an owner, loading it if needed
func (m *Manager) Service(ctx context.Context, ownerID string) (*Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if svc, ok := m.services[ownerID]; ok {
		return svc, nil
	}
	svc, err := NewService(ctx, m.store, ownerID, WithMetrics(m.metrics))
	if err != nil {
		return nil, err
	}
	m.services[ownerID] = svc
	return svc, nil
}

package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carlaolanches/printer-server/internal/domain"
)

// Memory is an in-memory OrderStore guarded by a RWMutex. It keeps the
// same contract as the sqlite store minus durability; used in tests and
// when the process is started without a database path.
type Memory struct {
	mu      sync.RWMutex
	records map[string]domain.OrderRecord
	order   []string // ids in insertion order
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]domain.OrderRecord)}
}

var _ OrderStore = (*Memory)(nil)

func (m *Memory) Create(_ context.Context, order domain.Order) (domain.OrderRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := domain.OrderRecord{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Status:    domain.StatusPending,
		Order:     order,
	}
	m.records[rec.ID] = rec
	m.order = append(m.order, rec.ID)
	return rec, nil
}

func (m *Memory) Get(_ context.Context, id string) (domain.OrderRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return domain.OrderRecord{}, ErrNotFound
	}
	return rec, nil
}

func (m *Memory) List(_ context.Context) ([]domain.OrderRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.OrderRecord, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, m.records[m.order[i]])
	}
	return out, nil
}

func (m *Memory) MarkPrinted(_ context.Context, id string) (domain.OrderRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return domain.OrderRecord{}, ErrNotFound
	}
	if rec.Status == domain.StatusPrinted {
		return domain.OrderRecord{}, ErrAlreadyPrinted
	}

	now := time.Now().UTC()
	rec.Status = domain.StatusPrinted
	rec.PrintedAt = &now
	m.records[id] = rec
	return rec, nil
}

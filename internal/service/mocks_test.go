package service

import (
	"context"
	"sync"

	"github.com/heisemmanuell/audiophile-eshop/internal/domain"
	"github.com/heisemmanuell/audiophile-eshop/internal/notifier"
)

// MockCartStore implements cartstore.Store for testing
type MockCartStore struct {
	Items         []domain.CartItem
	GetErr        error
	SnapshotItems []domain.CartItem
	SnapshotErr   error
	ClearErr      error

	SnapshotSaved []domain.CartItem // Captures the snapshot passed to SaveSnapshot
	Cleared       bool
}

func (m *MockCartStore) Get(_ context.Context, _ string) ([]domain.CartItem, error) {
	return m.Items, m.GetErr
}

func (m *MockCartStore) Put(_ context.Context, _ string, items []domain.CartItem) error {
	m.Items = items
	return nil
}

func (m *MockCartStore) Clear(_ context.Context, _ string) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.Cleared = true
	m.Items = nil
	return nil
}

func (m *MockCartStore) SaveSnapshot(_ context.Context, _ string, items []domain.CartItem) error {
	if m.SnapshotErr != nil {
		return m.SnapshotErr
	}
	m.SnapshotSaved = items
	return nil
}

func (m *MockCartStore) Snapshot(_ context.Context, _ string) ([]domain.CartItem, error) {
	return m.SnapshotItems, nil
}

// MockOrderRepository implements repository.OrderRepository for testing
type MockOrderRepository struct {
	CreateErr    error
	GetErr       error
	Stored       *domain.Order // Captures the order passed to CreateOrder
	StoredID     string
	GetResult    *domain.Order
	CreateCalled int
}

func (m *MockOrderRepository) CreateOrder(_ context.Context, order *domain.Order) (string, error) {
	m.CreateCalled++
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.Stored = order
	if m.StoredID == "" {
		m.StoredID = "order-abc-123"
	}
	return m.StoredID, nil
}

func (m *MockOrderRepository) GetOrder(_ context.Context, _ string) (*domain.Order, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.GetResult, nil
}

// MockSender implements notifier.Sender for testing
type MockSender struct {
	mu     sync.Mutex
	Result notifier.Result
	Sent   []notifier.EmailPayload
}

func (m *MockSender) Send(_ context.Context, payload notifier.EmailPayload) notifier.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, payload)
	return m.Result
}

func (m *MockSender) SentPayloads() []notifier.EmailPayload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Sent
}

// recordingPublisher captures published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType, _ string, _ interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events
}

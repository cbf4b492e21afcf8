package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/app-strategy/internal/export"
)

// MockSpreadsheetID is the spreadsheet MockPublisher pretends to write to.
const MockSpreadsheetID = "mock-spreadsheet"

// MockPublisher is a Publisher for tests that records every call.
type MockPublisher struct {
	PublishFunc func(ctx context.Context, s export.Slice) (string, error)
	Calls       []export.Slice
	mu          sync.Mutex
}

// NewMockPublisher creates a new mock publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// Publish implements Publisher.
func (m *MockPublisher) Publish(ctx context.Context, s export.Slice) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, s)
	fn := m.PublishFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, s)
	}
	return TabURL(MockSpreadsheetID, 0), nil
}

// PublishCalls returns a copy of the recorded slices.
func (m *MockPublisher) PublishCalls() []export.Slice {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]export.Slice, len(m.Calls))
	copy(calls, m.Calls)
	return calls
}

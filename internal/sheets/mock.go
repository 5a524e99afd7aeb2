package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/fintrack/internal/service"
)

// MockWriter is a mock implementation of service.ReportWriter for testing.
type MockWriter struct {
	WriteFunc  func(ctx context.Context, report *service.Report) error
	LastReport *service.Report
	WriteCalls int
	mu         sync.Mutex
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write implements the service.ReportWriter interface.
func (m *MockWriter) Write(ctx context.Context, report *service.Report) error {
	m.mu.Lock()
	m.WriteCalls++
	m.LastReport = report
	fn := m.WriteFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, report)
	}
	return nil
}

var _ service.ReportWriter = (*MockWriter)(nil)

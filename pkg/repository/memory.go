package repository

import (
	"context"
	"sync"

	"github.com/fleetscope/fleetscope/pkg/domain/interfaces"
	"github.com/fleetscope/fleetscope/pkg/domain/model"
	"github.com/fleetscope/fleetscope/pkg/domain/types"
)

// Memory implements Repository with in-memory storage
type Memory struct {
	mu      sync.RWMutex
	loadID  types.LoadID
	devices []*model.DeviceRecord
}

// NewMemory creates a new memory repository
func NewMemory() interfaces.Repository {
	return &Memory{}
}

// ReplaceDevices atomically replaces the dataset
func (m *Memory) ReplaceDevices(ctx context.Context, loadID types.LoadID, records []*model.DeviceRecord) error {
	copied, err := validateBatch(loadID, records)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.loadID = loadID
	m.devices = copied
	return nil
}

// ListDevices returns a snapshot copy of the dataset
func (m *Memory) ListDevices(ctx context.Context) ([]*model.DeviceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Copy records to prevent external modification
	records := make([]*model.DeviceRecord, len(m.devices))
	for i, r := range m.devices {
		rCopy := *r
		records[i] = &rCopy
	}
	return records, nil
}

// ActiveLoad returns the current load ID
func (m *Memory) ActiveLoad(ctx context.Context) (types.LoadID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadID, nil
}

// Close closes the repository (no-op for memory)
func (m *Memory) Close() error {
	return nil
}

package types

import (
	"fmt"

	"github.com/google/uuid"
)

// DeviceID represents a device record identifier
type DeviceID int

// String returns the string representation
func (id DeviceID) String() string {
	return fmt.Sprintf("%d", id)
}

// Int returns the int representation
func (id DeviceID) Int() int {
	return int(id)
}

// LoadID identifies one dataset load. Every dataset replacement gets a
// fresh LoadID so log lines and memoized aggregations can be correlated
// with the dataset they came from.
type LoadID string

// String returns the string representation
func (id LoadID) String() string {
	return string(id)
}

// NewLoadID creates a new LoadID
func NewLoadID() LoadID {
	return LoadID(uuid.New().String())
}

// AllValues is the sentinel filter value meaning "no restriction"
const AllValues = "All"

// Package repository internal/domain/repository/snapshot_repository.go
package repository

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned when no feed document has been persisted yet
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository defines the interface for the durable feed cache record
type SnapshotRepository interface {
	// Load returns the last persisted raw feed document
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the persisted feed document
	Save(ctx context.Context, document []byte) error
}

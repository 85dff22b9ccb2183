package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/damon-houk/ecb-currency-exchange/internal/domain/repository"
	"github.com/dgraph-io/badger/v3"
)

// snapshotKey holds the single durable feed document
const snapshotKey = "snapshot:ecb-daily"

// BadgerSnapshotRepository implements the snapshot repository interface using BadgerDB
type BadgerSnapshotRepository struct {
	db  *badger.DB
	key []byte
}

// NewBadgerSnapshotRepository creates a new BadgerDB snapshot repository
func NewBadgerSnapshotRepository(db *badger.DB) *BadgerSnapshotRepository {
	return &BadgerSnapshotRepository{
		db:  db,
		key: []byte(snapshotKey),
	}
}

// Load retrieves the persisted raw feed document
func (r *BadgerSnapshotRepository) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var document []byte

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(r.key)
		if err != nil {
			return err
		}

		document, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) || (err == nil && len(document) == 0) {
		return nil, repository.ErrSnapshotNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return document, nil
}

// Save replaces the persisted feed document. The write is a single Badger
// transaction, so readers never see a partial document.
func (r *BadgerSnapshotRepository) Save(ctx context.Context, document []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(document) == 0 {
		return errors.New("refusing to store an empty snapshot")
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(r.key, document)
	})

	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	return nil
}

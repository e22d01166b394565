package overlay

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/kalpavruksha/backend/internal/domain"
)

// overlayKey is the fixed key the companion tooling writes user
// recommendations under. This module only ever reads it.
const overlayKey = "cg-products"

// Store reads the persisted recommendation overlay from BadgerDB.
type Store struct {
	db *badger.DB
}

// Open opens the Badger database at path.
func Open(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open overlay store at %s: %w", path, err)
	}
	return db, nil
}

// NewStore creates an overlay store over an opened Badger database.
func NewStore(db *badger.DB) *Store {
	return &Store{db: db}
}

// ReadOverlay returns the persisted overlay document. A missing key or a
// malformed payload yields an empty document with no error; only storage
// failures are reported.
func (s *Store) ReadOverlay(ctx context.Context) (*domain.RecommendationDocument, error) {
	var doc domain.RecommendationDocument

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(overlayKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get overlay: %w", err)
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &doc); err != nil {
				// Malformed overlay data is treated as absent, never raised
				log.Printf("[OVERLAY] ignoring malformed overlay payload: %v", err)
				doc = domain.RecommendationDocument{}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

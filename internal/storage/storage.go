// Package storage persists computed analysis results between runs in
// an embedded BadgerDB key-value store.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/mkarren/chesskit/internal/logging"
)

// PerftResult is one cached perft computation.
type PerftResult struct {
	FEN        string    `json:"fen"`
	Depth      int       `json:"depth"`
	Nodes      uint64    `json:"nodes"`
	ComputedAt time.Time `json:"computed_at"`
}

// Store wraps BadgerDB for persistent analysis storage. Results are
// keyed by the position's Zobrist key and the search depth.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store in the given directory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // badger's own logging is noisy; ours is enough

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", dir, err)
	}

	logging.GetLog().Debugf("storage: opened %s", dir)
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func perftKey(zobrist uint64, depth int) []byte {
	return []byte(fmt.Sprintf("perft/%016x/%d", zobrist, depth))
}

// PerftNodes looks up a cached perft result. The second return value
// reports whether the result was present.
func (s *Store) PerftNodes(zobrist uint64, depth int) (PerftResult, bool, error) {
	var res PerftResult
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(zobrist, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &res); err != nil {
				return err
			}
			found = true
			return nil
		})
	})

	return res, found, err
}

// PutPerft stores a perft result.
func (s *Store) PutPerft(zobrist uint64, res PerftResult) error {
	res.ComputedAt = time.Now()

	data, err := json.Marshal(res)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(zobrist, res.Depth), data)
	})
}

package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/cloudpine/rubbertree/pkg/metrics"
	"github.com/cloudpine/rubbertree/pkg/types"
)

var (
	// Bucket names
	bucketFragments   = []byte("fragments")
	bucketAssignments = []byte("assignments")
)

// BoltStore implements Store interface using BoltDB
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore creates a new BoltDB-backed store
func NewBoltStore(dataDir string) (*BoltStore, error) {
	dbPath := filepath.Join(dataDir, "rubbertree.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		buckets := [][]byte{
			bucketFragments,
			bucketAssignments,
		}

		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})

	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Fragment ledger operations

// SaveFragment marks a canonical fragment as consumed. Saving the same
// fragment twice is an upsert.
func (s *BoltStore) SaveFragment(fragment string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFragments)
		return b.Put([]byte(fragment), []byte(time.Now().UTC().Format(time.RFC3339Nano)))
	})
}

// IsFragmentUsed reports whether a canonical fragment has been saved.
func (s *BoltStore) IsFragmentUsed(fragment string) (bool, error) {
	var used bool
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFragments)
		used = b.Get([]byte(fragment)) != nil
		return nil
	})
	if err != nil {
		return false, err
	}
	if used {
		metrics.FragmentLookups.WithLabelValues("hit").Inc()
	} else {
		metrics.FragmentLookups.WithLabelValues("miss").Inc()
	}
	return used, nil
}

// Assignment operations

func (s *BoltStore) CreateAssignment(assignment *types.ShardAssignment) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAssignments)
		data, err := json.Marshal(assignment)
		if err != nil {
			return err
		}
		return b.Put([]byte(assignment.ID), data)
	})
}

func (s *BoltStore) GetAssignment(id string) (*types.ShardAssignment, error) {
	var assignment types.ShardAssignment
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAssignments)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("assignment not found: %s", id)
		}
		return json.Unmarshal(data, &assignment)
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (s *BoltStore) GetAssignmentByIdentifier(identifier string) (*types.ShardAssignment, error) {
	var found *types.ShardAssignment
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAssignments)
		return b.ForEach(func(k, v []byte) error {
			var assignment types.ShardAssignment
			if err := json.Unmarshal(v, &assignment); err != nil {
				return err
			}
			if assignment.Identifier == identifier {
				found = &assignment
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("assignment not found: %s", identifier)
	}
	return found, nil
}

func (s *BoltStore) ListAssignments() ([]*types.ShardAssignment, error) {
	var assignments []*types.ShardAssignment
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAssignments)
		return b.ForEach(func(k, v []byte) error {
			var assignment types.ShardAssignment
			if err := json.Unmarshal(v, &assignment); err != nil {
				return err
			}
			assignments = append(assignments, &assignment)
			return nil
		})
	})
	return assignments, err
}

func (s *BoltStore) DeleteAssignment(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAssignments)
		return b.Delete([]byte(id))
	})
}

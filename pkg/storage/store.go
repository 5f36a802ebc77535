package storage

import (
	"github.com/cloudpine/rubbertree/pkg/types"
)

// Store defines the interface for shard-state persistence: the fragment
// ledger consulted and written by the stateful sharder, plus the shard
// assignment audit records.
//
// Fragments arrive already canonicalized (sorted endpoint values joined
// with a fixed delimiter); implementations treat them as opaque keys and
// must consider two equal strings the same fragment.
type Store interface {
	// Fragment ledger
	SaveFragment(fragment string) error
	IsFragmentUsed(fragment string) (bool, error)

	// Shard assignments
	CreateAssignment(assignment *types.ShardAssignment) error
	GetAssignment(id string) (*types.ShardAssignment, error)
	GetAssignmentByIdentifier(identifier string) (*types.ShardAssignment, error)
	ListAssignments() ([]*types.ShardAssignment, error)
	DeleteAssignment(id string) error

	// Utility
	Close() error
}

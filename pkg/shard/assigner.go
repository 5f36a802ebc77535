package shard

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cloudpine/rubbertree/pkg/lattice"
	"github.com/cloudpine/rubbertree/pkg/log"
	"github.com/cloudpine/rubbertree/pkg/metrics"
	"github.com/cloudpine/rubbertree/pkg/types"
)

// AssignmentStore is a fragment ledger that can also persist shard
// assignment records for auditing.
type AssignmentStore interface {
	FragmentLedger
	CreateAssignment(assignment *types.ShardAssignment) error
}

// Assigner binds a StatefulSearchingSharder to an assignment store. Every
// successful shard gets a durable ShardAssignment record describing which
// caller identity holds which endpoints.
type Assigner struct {
	sharder *StatefulSearchingSharder
	store   AssignmentStore
	logger  zerolog.Logger
}

// NewAssigner creates an Assigner over the given store. Options are
// forwarded to the underlying sharder.
func NewAssigner(store AssignmentStore, opts ...Option) *Assigner {
	return &Assigner{
		sharder: NewStatefulSearchingSharder(store, opts...),
		store:   store,
		logger:  log.WithComponent("shard-assigner"),
	}
}

// Assign computes a shuffle shard for the identifier and records the
// assignment. The returned lattice is the shard; the returned assignment
// carries its freshly minted id.
func (a *Assigner) Assign(l *lattice.Lattice, identifier string, endpointsPerCell, maximumOverlap int) (*lattice.Lattice, *types.ShardAssignment, error) {
	shard, err := a.sharder.ShuffleShard(l, endpointsPerCell, maximumOverlap)
	if err != nil {
		return nil, nil, fmt.Errorf("assigning shard for %q: %w", identifier, err)
	}

	endpoints := shard.AllEndpoints()
	values := make([]string, len(endpoints))
	for i, endpoint := range endpoints {
		values[i] = endpoint.Value
	}

	assignment := &types.ShardAssignment{
		ID:             uuid.New().String(),
		Identifier:     identifier,
		EndpointValues: values,
		CreatedAt:      time.Now().UTC(),
	}
	if err := a.store.CreateAssignment(assignment); err != nil {
		return nil, nil, fmt.Errorf("recording assignment for %q: %w", identifier, err)
	}

	a.logger.Info().
		Str("assignment_id", assignment.ID).
		Str("identifier", identifier).
		Int("endpoints", len(values)).
		Msg("shard assigned")
	metrics.ShardAssignments.Inc()

	return shard, assignment, nil
}

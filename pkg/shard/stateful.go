package shard

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cloudpine/rubbertree/pkg/lattice"
	"github.com/cloudpine/rubbertree/pkg/log"
	"github.com/cloudpine/rubbertree/pkg/metrics"
	"github.com/cloudpine/rubbertree/pkg/sublist"
	"github.com/cloudpine/rubbertree/pkg/types"
)

// ErrNoShardsAvailable is returned when the backtracking search exhausts
// every candidate without finding a shard that honors the overlap bound.
// Callers typically widen the overlap budget or expand the endpoint
// population.
var ErrNoShardsAvailable = errors.New("no shards available within the overlap bound")

// FragmentLedger records which endpoint fragments have been consumed by
// previously assigned shards. Fragments are canonicalized by the sharder
// before every call; the ledger treats the canonical form as an opaque
// key. See CanonicalFragment.
//
// The ledger is the only I/O boundary of the search. A single ShuffleShard
// call reads and then writes the ledger as one logical unit; concurrent
// assignment requires either external serialization or a ledger with
// transactional semantics over the fragment key.
type FragmentLedger interface {
	SaveFragment(fragment string) error
	IsFragmentUsed(fragment string) (bool, error)
}

// StatefulSearchingSharder computes shuffle shards with a hard guarantee
// about the maximum overlap between any two shards it has ever returned,
// using a recursive backtracking search constrained by a fragment ledger.
type StatefulSearchingSharder struct {
	ledger FragmentLedger
	rng    *rand.Rand
	logger zerolog.Logger
}

// Option configures a StatefulSearchingSharder.
type Option func(*StatefulSearchingSharder)

// WithRand replaces the pseudo-random source driving the search's
// candidate ordering. Seed it for reproducible searches.
func WithRand(rng *rand.Rand) Option {
	return func(s *StatefulSearchingSharder) {
		s.rng = rng
	}
}

// NewStatefulSearchingSharder creates a sharder backed by the given
// fragment ledger.
func NewStatefulSearchingSharder(ledger FragmentLedger, opts ...Option) *StatefulSearchingSharder {
	s := &StatefulSearchingSharder{
		ledger: ledger,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		logger: log.WithComponent("stateful-sharder"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ShuffleShard searches for a shard of endpointsPerCell endpoints per
// eligible cell whose overlap with every previously committed shard is at
// most maximumOverlap. On success every size-(maximumOverlap+1) fragment
// of the shard is saved to the ledger; that commit is what future
// searches collide against.
func (s *StatefulSearchingSharder) ShuffleShard(l *lattice.Lattice, endpointsPerCell, maximumOverlap int) (*lattice.Lattice, error) {
	shard, err := s.search(l, endpointsPerCell, maximumOverlap)
	if err != nil {
		return nil, err
	}

	all := shard.AllEndpoints()
	if len(all) == 0 {
		return nil, ErrNoShardsAvailable
	}

	// Commit: mark every fragment of the shard as used. A shard smaller
	// than the fragment size cannot collide with anything, so there is
	// nothing to record.
	if len(all) >= maximumOverlap+1 {
		gen, err := sublist.New(all, maximumOverlap+1)
		if err != nil {
			return nil, err
		}
		for {
			fragment, ok := gen.Next()
			if !ok {
				break
			}
			if err := s.ledger.SaveFragment(CanonicalFragment(fragment)); err != nil {
				return nil, fmt.Errorf("saving fragment: %w", err)
			}
			metrics.FragmentsSaved.Inc()
		}
	}

	s.logger.Debug().
		Int("endpoints", len(all)).
		Int("maximum_overlap", maximumOverlap).
		Msg("shuffle shard committed")
	metrics.ShardsComputed.WithLabelValues("stateful_searching").Inc()

	return shard, nil
}

// search is the recursive backtracking helper. It picks a cell, takes a
// candidate fragment of endpointsPerCell endpoints from it, recurses into
// the lattice with every row and column the cell occupies removed, and
// keeps the first combination whose fragments are all unused. An empty
// lattice is returned when every option is exhausted.
func (s *StatefulSearchingSharder) search(l *lattice.Lattice, endpointsPerCell, maximumOverlap int) (*lattice.Lattice, error) {
	coordinates := l.AllCoordinates()
	s.rng.Shuffle(len(coordinates), func(i, j int) {
		coordinates[i], coordinates[j] = coordinates[j], coordinates[i]
	})

	for _, coordinate := range coordinates {
		// The recursion target excludes every dimension value the chosen
		// coordinate occupies, so later picks land in disjoint rows and
		// columns.
		complement := l
		for i, dimensionName := range l.DimensionNames() {
			var err error
			complement, err = complement.SimulateFailure(dimensionName, coordinate[i])
			if err != nil {
				return nil, err
			}
		}

		endpoints, err := l.EndpointsForSector(coordinate)
		if err != nil {
			return nil, err
		}
		s.rng.Shuffle(len(endpoints), func(i, j int) {
			endpoints[i], endpoints[j] = endpoints[j], endpoints[i]
		})

		gen, err := sublist.New(endpoints, endpointsPerCell)
		if err != nil {
			return nil, err
		}
		for {
			fragment, ok := gen.Next()
			if !ok {
				break
			}

			// If this cell's pick alone already collides, recursing would
			// be wasted work.
			if len(fragment) >= maximumOverlap {
				collides, err := s.tooManyCollisions(fragment, maximumOverlap)
				if err != nil {
					return nil, err
				}
				if collides {
					metrics.ShardSearchBacktracks.Inc()
					continue
				}
			}

			picked, err := s.search(complement, endpointsPerCell, maximumOverlap)
			if err != nil {
				return nil, err
			}

			combined := append(slices.Clone(fragment), picked.AllEndpoints()...)
			if len(combined) >= maximumOverlap {
				collides, err := s.tooManyCollisions(combined, maximumOverlap)
				if err != nil {
					return nil, err
				}
				if collides {
					metrics.ShardSearchBacktracks.Inc()
					continue
				}
			}

			if err := picked.AddEndpointsForSector(coordinate, fragment); err != nil {
				return nil, err
			}
			return picked, nil
		}
	}

	return lattice.New(l.DimensionNames())
}

// tooManyCollisions reports whether any size-(maximumOverlap+1) fragment
// of the haystack has already been consumed.
func (s *StatefulSearchingSharder) tooManyCollisions(haystack []types.Endpoint, maximumOverlap int) (bool, error) {
	if len(haystack) <= maximumOverlap {
		return false, nil
	}
	if len(haystack) == maximumOverlap+1 {
		return s.ledger.IsFragmentUsed(CanonicalFragment(haystack))
	}

	gen, err := sublist.New(haystack, maximumOverlap+1)
	if err != nil {
		return false, err
	}
	for {
		fragment, ok := gen.Next()
		if !ok {
			return false, nil
		}
		used, err := s.ledger.IsFragmentUsed(CanonicalFragment(fragment))
		if err != nil {
			return false, err
		}
		if used {
			return true, nil
		}
	}
}

// CanonicalFragment renders a fragment as the ledger key: the endpoint
// values sorted ascending, joined with "/". Two fragments with equal
// sorted content always canonicalize identically.
func CanonicalFragment(fragment []types.Endpoint) string {
	values := make([]string, len(fragment))
	for i, endpoint := range fragment {
		values[i] = endpoint.Value
	}
	slices.Sort(values)
	return strings.Join(values, "/")
}

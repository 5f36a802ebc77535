package shard

import (
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/cloudpine/rubbertree/pkg/lattice"
	"github.com/cloudpine/rubbertree/pkg/metrics"
	"github.com/cloudpine/rubbertree/pkg/types"
)

// ErrInsufficientCell is returned when a lattice cell holds fewer
// endpoints than the sharder must select from it.
var ErrInsufficientCell = errors.New("cell has fewer endpoints than requested per cell")

// SimpleSignatureSharder derives shuffle shards by hashing a caller
// identifier. It is stateless: the same (seed, identifier, lattice) input
// always yields the same shard, and no record of past assignments is
// kept. Overlap between two identifiers' shards is probabilistic rather
// than bounded.
type SimpleSignatureSharder struct {
	seed uint64
}

// NewSimpleSignatureSharder creates a sharder keyed by a fixed seed.
// Operators running several independent sharded services should give each
// a distinct seed so that the services shard identifiers differently.
func NewSimpleSignatureSharder(seed uint64) *SimpleSignatureSharder {
	return &SimpleSignatureSharder{seed: seed}
}

// ShuffleShard selects endpointsPerCell endpoints from every occupied
// cell of the lattice, chosen by repeated salted hashing of the seed and
// identifier, and returns them as a fresh lattice at the same
// coordinates.
func (s *SimpleSignatureSharder) ShuffleShard(l *lattice.Lattice, identifier []byte, endpointsPerCell int) (*lattice.Lattice, error) {
	shard, err := lattice.New(l.DimensionNames())
	if err != nil {
		return nil, err
	}

	// The keyed message is the 8-byte big-endian seed followed by the
	// caller identifier.
	message := make([]byte, 8+len(identifier))
	binary.BigEndian.PutUint64(message, s.seed)
	copy(message[8:], identifier)

	for _, coordinate := range l.AllCoordinates() {
		endpoints, err := l.EndpointsForSector(coordinate)
		if err != nil {
			return nil, err
		}
		if len(endpoints) < endpointsPerCell {
			return nil, fmt.Errorf("%w: coordinate %v has %d endpoints, need %d",
				ErrInsufficientCell, coordinate, len(endpoints), endpointsPerCell)
		}

		coordinateBytes := canonicalCoordinate(coordinate)
		cellSize := big.NewInt(int64(len(endpoints)))

		picked := make([]bool, len(endpoints))
		selected := make([]types.Endpoint, 0, endpointsPerCell)
		var salt [8]byte
		for step := uint64(0); len(selected) < endpointsPerCell; step++ {
			binary.BigEndian.PutUint64(salt[:], step)

			digest := md5.New()
			digest.Write(salt[:])
			digest.Write(coordinateBytes)
			digest.Write(message)

			index := new(big.Int).SetBytes(digest.Sum(nil))
			i := index.Mod(index, cellSize).Int64()
			if picked[i] {
				continue
			}
			picked[i] = true
			selected = append(selected, endpoints[i])
		}

		if err := shard.AddEndpointsForSector(coordinate, selected); err != nil {
			return nil, err
		}
	}

	metrics.ShardsComputed.WithLabelValues("simple_signature").Inc()
	return shard, nil
}

// canonicalCoordinate renders a coordinate as length-prefixed components,
// so distinct coordinates always hash distinctly.
func canonicalCoordinate(coordinate []string) []byte {
	var b []byte
	for _, component := range coordinate {
		b = binary.AppendUvarint(b, uint64(len(component)))
		b = append(b, component...)
	}
	return b
}

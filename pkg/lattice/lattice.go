package lattice

import (
	"encoding/binary"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/cloudpine/rubbertree/pkg/types"
)

var (
	// ErrNoDimensions is returned when a lattice is constructed without
	// any dimension names.
	ErrNoDimensions = errors.New("at least one dimension is required")

	// ErrDimensionMismatch is returned when a sector coordinate does not
	// have one component per lattice dimension.
	ErrDimensionMismatch = errors.New("mismatch between dimensions of lattice and sector")

	// ErrUnknownDimension is returned when an operation names a dimension
	// the lattice does not have.
	ErrUnknownDimension = errors.New("unknown dimension name")
)

// Lattice is an n-dimensional container for service endpoints, where each
// dimension is a fault-isolation axis such as an availability zone or a
// software version. Endpoints are addressed by sector coordinates: one
// value per dimension.
//
// Lattices are built by append-only AddEndpointsForSector calls and are
// treated as immutable once handed to a sharder or the vulcanizer.
// SimulateFailure never mutates its receiver; it returns a fresh lattice
// with the failed slice removed.
type Lattice struct {
	dimensionNames    []string
	valuesByDimension map[string]map[string]struct{}
	cells             map[string]*cell
}

// cell is one occupied sector: its coordinate and the ordered endpoint
// sequence added to it. Duplicates and insertion order are preserved.
type cell struct {
	coordinate []string
	endpoints  []types.Endpoint
}

// New creates an n-dimensional lattice where each dimension represents a
// meaningful availability axis, e.g. ["AvailabilityZone", "SoftwareVersion"].
func New(dimensionNames []string) (*Lattice, error) {
	if len(dimensionNames) == 0 {
		return nil, ErrNoDimensions
	}

	valuesByDimension := make(map[string]map[string]struct{}, len(dimensionNames))
	for _, name := range dimensionNames {
		valuesByDimension[name] = make(map[string]struct{})
	}

	return &Lattice{
		dimensionNames:    slices.Clone(dimensionNames),
		valuesByDimension: valuesByDimension,
		cells:             make(map[string]*cell),
	}, nil
}

// encodeCoordinate produces an injective map key for a coordinate by
// length-prefixing each component. Component-wise ordering is recovered
// from the stored coordinate slices, never from this encoding.
func encodeCoordinate(coordinate []string) string {
	var b []byte
	for _, component := range coordinate {
		b = binary.AppendUvarint(b, uint64(len(component)))
		b = append(b, component...)
	}
	return string(b)
}

// AddEndpointsForSector appends endpoints to the sector at the given
// coordinate and registers each coordinate component as an observed value
// of its dimension.
func (l *Lattice) AddEndpointsForSector(coordinate []string, endpoints []types.Endpoint) error {
	if len(coordinate) != len(l.dimensionNames) {
		return fmt.Errorf("%w: coordinate has %d components, lattice has %d dimensions",
			ErrDimensionMismatch, len(coordinate), len(l.dimensionNames))
	}

	key := encodeCoordinate(coordinate)
	c, ok := l.cells[key]
	if !ok {
		c = &cell{coordinate: slices.Clone(coordinate)}
		l.cells[key] = c
	}
	c.endpoints = append(c.endpoints, endpoints...)

	for i, name := range l.dimensionNames {
		l.valuesByDimension[name][coordinate[i]] = struct{}{}
	}

	return nil
}

// AddEndpoint appends a single endpoint to the sector at the given
// coordinate.
func (l *Lattice) AddEndpoint(coordinate []string, endpoint types.Endpoint) error {
	return l.AddEndpointsForSector(coordinate, []types.Endpoint{endpoint})
}

// EndpointsForSector returns the ordered endpoint sequence for a sector,
// or nil if the sector is unoccupied.
func (l *Lattice) EndpointsForSector(coordinate []string) ([]types.Endpoint, error) {
	if len(coordinate) != len(l.dimensionNames) {
		return nil, fmt.Errorf("%w: coordinate has %d components, lattice has %d dimensions",
			ErrDimensionMismatch, len(coordinate), len(l.dimensionNames))
	}

	c, ok := l.cells[encodeCoordinate(coordinate)]
	if !ok {
		return nil, nil
	}
	return slices.Clone(c.endpoints), nil
}

// AllCoordinates returns the occupied sector coordinates sorted
// lexicographically by component.
func (l *Lattice) AllCoordinates() [][]string {
	coordinates := make([][]string, 0, len(l.cells))
	for _, c := range l.cells {
		coordinates = append(coordinates, slices.Clone(c.coordinate))
	}
	slices.SortFunc(coordinates, slices.Compare)
	return coordinates
}

// AllEndpoints returns every endpoint in the lattice: sectors in sorted
// coordinate order, endpoints within a sector in insertion order.
func (l *Lattice) AllEndpoints() []types.Endpoint {
	var all []types.Endpoint
	for _, coordinate := range l.AllCoordinates() {
		all = append(all, l.cells[encodeCoordinate(coordinate)].endpoints...)
	}
	return all
}

// DimensionNames returns the ordered dimension names fixed at
// construction.
func (l *Lattice) DimensionNames() []string {
	return slices.Clone(l.dimensionNames)
}

// DimensionName returns the name of the numbered dimension.
func (l *Lattice) DimensionName(dimension int) string {
	return l.dimensionNames[dimension]
}

// DimensionValues returns the observed values for a dimension in sorted
// order, e.g. ["us-east-1a", "us-east-1b"] for "AvailabilityZone".
func (l *Lattice) DimensionValues(dimensionName string) ([]string, error) {
	values, ok := l.valuesByDimension[dimensionName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dimensionName)
	}
	return slices.Sorted(maps.Keys(values)), nil
}

// DimensionSize returns how many discrete values a dimension contains.
func (l *Lattice) DimensionSize(dimensionName string) (int, error) {
	values, ok := l.valuesByDimension[dimensionName]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDimension, dimensionName)
	}
	return len(values), nil
}

// Dimensionality maps each dimension name to its number of observed
// values.
func (l *Lattice) Dimensionality() map[string]int {
	dimensionality := make(map[string]int, len(l.dimensionNames))
	for _, name := range l.dimensionNames {
		dimensionality[name] = len(l.valuesByDimension[name])
	}
	return dimensionality
}

// SimulateFailure returns a fresh lattice with every sector whose
// coordinate carries dimensionValue in dimensionName removed. For example
// simulating the failure of "AvailabilityZone" => "us-east-1a" drops the
// whole us-east-1a slice. The receiver is not modified, and the returned
// lattice's per-dimension value sets reflect only the surviving sectors.
func (l *Lattice) SimulateFailure(dimensionName, dimensionValue string) (*Lattice, error) {
	dimension := slices.Index(l.dimensionNames, dimensionName)
	if dimension == -1 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dimensionName)
	}

	sublattice, err := New(l.dimensionNames)
	if err != nil {
		return nil, err
	}

	for _, coordinate := range l.AllCoordinates() {
		if coordinate[dimension] == dimensionValue {
			continue
		}
		if err := sublattice.AddEndpointsForSector(coordinate, l.cells[encodeCoordinate(coordinate)].endpoints); err != nil {
			return nil, err
		}
	}

	return sublattice, nil
}

// String renders the lattice for debugging: a dimension-name header
// followed by one "[coordinate] -> [endpoints]" line per occupied sector.
func (l *Lattice) String() string {
	var sb strings.Builder

	sb.WriteString("[")
	sb.WriteString(strings.Join(l.dimensionNames, " , "))
	sb.WriteString("]\n")

	for _, coordinate := range l.AllCoordinates() {
		sb.WriteString("[")
		sb.WriteString(strings.Join(coordinate, " , "))
		sb.WriteString("] -> [")
		endpoints := l.cells[encodeCoordinate(coordinate)].endpoints
		for i, endpoint := range endpoints {
			if i > 0 {
				sb.WriteString(" , ")
			}
			sb.WriteString(endpoint.String())
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

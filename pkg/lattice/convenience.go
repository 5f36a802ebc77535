package lattice

import "github.com/cloudpine/rubbertree/pkg/types"

// SingleCellDimension is the reserved dimension name (and coordinate
// value) used by single-cell lattices.
const SingleCellDimension = "DimensionX"

// DefaultDimension is the dimension name used by NewOneDimensional when
// no name is given.
const DefaultDimension = "AvailabilityZone"

// NewSingleCell creates a lattice with a single compartment holding the
// given endpoints. Useful when a service has no meaningful fault-isolation
// structure but should still get a resilient answer tree.
func NewSingleCell(endpoints ...types.Endpoint) *Lattice {
	l, _ := New([]string{SingleCellDimension})
	// The reserved dimension has exactly one coordinate value.
	_ = l.AddEndpointsForSector([]string{SingleCellDimension}, endpoints)
	return l
}

// NewOneDimensional creates a lattice with a single named availability
// axis. An empty name selects DefaultDimension.
func NewOneDimensional(dimensionName string) *Lattice {
	if dimensionName == "" {
		dimensionName = DefaultDimension
	}
	l, _ := New([]string{dimensionName})
	return l
}

// NewTwoDimensional creates a lattice with two named availability axes,
// e.g. "AvailabilityZone" and "SoftwareVersion".
func NewTwoDimensional(dimensionXName, dimensionYName string) *Lattice {
	l, _ := New([]string{dimensionXName, dimensionYName})
	return l
}

package topology

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cloudpine/rubbertree/pkg/lattice"
	"github.com/cloudpine/rubbertree/pkg/types"
)

var (
	// ErrNoDimensions is returned when a document declares no dimensions.
	ErrNoDimensions = errors.New("topology must declare at least one dimension")

	// ErrEmptyValue is returned when an endpoint has no record data.
	ErrEmptyValue = errors.New("endpoint value must not be empty")
)

// Document is the YAML description of an endpoint population: the
// fault-isolation dimensions and the endpoints occupying each sector.
//
//	dimensions: [AvailabilityZone, SoftwareVersion]
//	sectors:
//	  - coordinate: [us-east-1a, v2.1]
//	    endpoints:
//	      - value: 192.0.2.10
//	        health_checks: [hc-1a2b3c]
type Document struct {
	Dimensions []string `yaml:"dimensions"`
	Sectors    []Sector `yaml:"sectors"`
}

// Sector places a group of endpoints at one lattice coordinate.
type Sector struct {
	Coordinate []string   `yaml:"coordinate"`
	Endpoints  []Endpoint `yaml:"endpoints"`
}

// Endpoint describes one endpoint within a sector.
type Endpoint struct {
	Value        string   `yaml:"value"`
	HealthChecks []string `yaml:"health_checks,omitempty"`
}

// Parse reads a topology document and builds the corresponding lattice.
func Parse(data []byte) (*lattice.Lattice, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing topology: %w", err)
	}
	return doc.Lattice()
}

// Load reads a topology document from a file and builds the lattice.
func Load(path string) (*lattice.Lattice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topology %s: %w", path, err)
	}
	return Parse(data)
}

// Lattice builds the lattice described by the document.
func (d *Document) Lattice() (*lattice.Lattice, error) {
	if len(d.Dimensions) == 0 {
		return nil, ErrNoDimensions
	}

	l, err := lattice.New(d.Dimensions)
	if err != nil {
		return nil, err
	}

	for _, sector := range d.Sectors {
		endpoints := make([]types.Endpoint, 0, len(sector.Endpoints))
		for _, endpoint := range sector.Endpoints {
			if endpoint.Value == "" {
				return nil, fmt.Errorf("sector %v: %w", sector.Coordinate, ErrEmptyValue)
			}
			endpoints = append(endpoints, types.Endpoint{
				Value:          endpoint.Value,
				HealthCheckIDs: endpoint.HealthChecks,
			})
		}
		if err := l.AddEndpointsForSector(sector.Coordinate, endpoints); err != nil {
			return nil, fmt.Errorf("sector %v: %w", sector.Coordinate, err)
		}
	}

	return l, nil
}

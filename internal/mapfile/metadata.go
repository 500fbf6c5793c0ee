package mapfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Origin is the pose of the map image's lower-left corner in the robot's
// world frame.
type Origin struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Theta float64 `yaml:"theta"`
}

// Metadata is the per-map document written next to the PNG image. The edge
// PC's ingest tooling reads it back, so field values round-trip exactly;
// key order is whatever the encoder produces.
type Metadata struct {
	Name       string  `yaml:"name"`
	Resolution float64 `yaml:"resolution"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Origin     Origin  `yaml:"origin"`
}

// WriteMetadataFile serializes m as YAML to path.
func WriteMetadataFile(path string, m Metadata) error {
	b, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	return WriteFileAtomic(path, b, 0o644)
}

// ReadMetadataFile parses the YAML metadata document at path.
func ReadMetadataFile(path string) (Metadata, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, err
	}
	var m Metadata
	if err := yaml.Unmarshal(b, &m); err != nil {
		return Metadata{}, fmt.Errorf("parse metadata: %w", err)
	}
	return m, nil
}

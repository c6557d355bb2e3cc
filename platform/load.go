// File: load.go
// Role: YAML loading and structural validation of a platform description.
package platform

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Load decodes a platform description from r and validates it: every PE
// name must be unique across the whole description.
func Load(r io.Reader) (*Description, error) {
	var d Description
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("platform: decode: %w", err)
	}
	if len(d.Clusters) == 0 {
		return nil, ErrEmptyDescription
	}
	seen := make(map[string]bool)
	for _, c := range d.Clusters {
		for _, pe := range c.PEs {
			if seen[pe.Name] {
				return nil, fmt.Errorf("%w: %s", ErrDuplicatePEName, pe.Name)
			}
			seen[pe.Name] = true
		}
	}
	return &d, nil
}

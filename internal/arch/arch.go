// Package arch maps a named network architecture to its effective depth.
package arch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Architectures with a single supported depth. The table value overrides
// whatever depth the caller supplied. Variable-depth families (resnet,
// densenet) and unknown names pass the caller's depth through; an invalid
// pair is surfaced by the external trainer at run time, not here.
var fixedDepths = map[string]int{
	"alexnet":   8,
	"nin":       16,
	"vgg":       22,
	"googlenet": 32,
}

// Resolver resolves architecture names to effective depths. The zero
// table is the built-in one; profiles loaded from a YAML file extend or
// override it.
type Resolver struct {
	fixed map[string]int
}

// NewResolver returns a Resolver with the built-in fixed-depth table.
func NewResolver() *Resolver {
	fixed := make(map[string]int, len(fixedDepths))
	for name, depth := range fixedDepths {
		fixed[name] = depth
	}
	return &Resolver{fixed: fixed}
}

// LoadProfiles merges fixed-depth entries from a YAML file into the table.
// The file is a flat mapping of architecture name to depth:
//
//	alexnet: 8
//	squeezenet: 18
//
// File entries win over built-ins.
func (r *Resolver) LoadProfiles(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading architecture profiles: %w", err)
	}
	profiles := make(map[string]int)
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return fmt.Errorf("parsing architecture profiles: %w", err)
	}
	for name, depth := range profiles {
		r.fixed[name] = depth
	}
	return nil
}

// EffectiveDepth returns the depth the trainer should be invoked with.
// Pure function of the table: fixed-depth architectures ignore the
// supplied depth, everything else passes it through unchanged.
func (r *Resolver) EffectiveDepth(architecture string, depth int) int {
	if fixed, ok := r.fixed[architecture]; ok {
		return fixed
	}
	return depth
}

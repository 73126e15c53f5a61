// Package schema defines the read-only method schema surface consumed by the
// evolution engine. The schema registry is an external collaborator: the
// engine resolves a method id into its parameter definitions and never
// mutates them.
package schema

import (
	"sync"

	"github.com/variantlab/evolve-go/pkg/errors"
)

// ParamType classifies a parameter for mutation purposes.
type ParamType string

const (
	Categorical ParamType = "categorical"
	Numeric     ParamType = "numeric"
	Color       ParamType = "color"
	Other       ParamType = "other"
)

// ParameterDefinition describes one tunable parameter of a generative method.
type ParameterDefinition struct {
	Name    string    `json:"name" yaml:"name"`
	Type    ParamType `json:"type" yaml:"type"`
	Options []string  `json:"options,omitempty" yaml:"options,omitempty"` // categorical only

	// Optional declared range for numeric parameters. Mutation clamps into
	// [Min, Max] only when both are set.
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// MethodSchema is the parameter schema of one generative method.
type MethodSchema struct {
	ID         string                `json:"id" yaml:"id"`
	Name       string                `json:"name,omitempty" yaml:"name,omitempty"`
	Parameters []ParameterDefinition `json:"parameters" yaml:"parameters"`
}

// Parameter returns the definition for a parameter name, if declared.
func (m *MethodSchema) Parameter(name string) (ParameterDefinition, bool) {
	for _, p := range m.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterDefinition{}, false
}

// Registry resolves method ids into schemas.
type Registry interface {
	Resolve(methodID string) (*MethodSchema, error)
}

// StaticRegistry is an in-memory Registry for embedders and tests.
type StaticRegistry struct {
	mu      sync.RWMutex
	methods map[string]*MethodSchema
}

// NewStaticRegistry creates a registry preloaded with the given schemas.
func NewStaticRegistry(methods ...*MethodSchema) *StaticRegistry {
	r := &StaticRegistry{methods: make(map[string]*MethodSchema, len(methods))}
	for _, m := range methods {
		r.methods[m.ID] = m
	}
	return r
}

// Register adds or replaces a method schema.
func (r *StaticRegistry) Register(m *MethodSchema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods[m.ID] = m
}

// Resolve implements Registry.
func (r *StaticRegistry) Resolve(methodID string) (*MethodSchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.methods[methodID]
	if !ok {
		return nil, errors.WithFields(
			errors.New(errors.MethodNotFound, "method not found"),
			errors.Fields{"method_id": methodID},
		)
	}
	return m, nil
}

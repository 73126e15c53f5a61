package schema

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/variantlab/evolve-go/pkg/errors"
)

func TestStaticRegistryResolve(t *testing.T) {
	banner := &MethodSchema{
		ID: "banner-v1",
		Parameters: []ParameterDefinition{
			{Name: "style", Type: Categorical, Options: []string{"modern", "classic"}},
			{Name: "font_size", Type: Numeric},
		},
	}
	registry := NewStaticRegistry(banner)

	resolved, err := registry.Resolve("banner-v1")
	require.NoError(t, err)
	assert.Equal(t, banner, resolved)
}

func TestStaticRegistryUnknownMethod(t *testing.T) {
	registry := NewStaticRegistry()

	_, err := registry.Resolve("missing")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.New(errors.MethodNotFound, "")))
}

func TestStaticRegistryRegister(t *testing.T) {
	registry := NewStaticRegistry()
	registry.Register(&MethodSchema{ID: "poster-v2"})

	resolved, err := registry.Resolve("poster-v2")
	require.NoError(t, err)
	assert.Equal(t, "poster-v2", resolved.ID)
}

func TestMethodSchemaParameter(t *testing.T) {
	m := &MethodSchema{
		ID: "banner-v1",
		Parameters: []ParameterDefinition{
			{Name: "style", Type: Categorical, Options: []string{"modern"}},
		},
	}

	p, ok := m.Parameter("style")
	require.True(t, ok)
	assert.Equal(t, Categorical, p.Type)

	_, ok = m.Parameter("nope")
	assert.False(t, ok)
}

package evolution

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossoverDisjointKeysCoverUnion(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := map[string]interface{}{"a": 1}
	b := map[string]interface{}{"b": 2}

	for i := 0; i < 50; i++ {
		child := crossoverParams(a, b, rng)
		require.Len(t, child, 2)
		assert.Equal(t, 1, child["a"])
		assert.Equal(t, 2, child["b"])
	}
}

func TestCrossoverSharedKeysPickEitherParent(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a := map[string]interface{}{"style": "modern", "size": 10}
	b := map[string]interface{}{"style": "classic", "size": 20}

	fromA, fromB := 0, 0
	for i := 0; i < 200; i++ {
		child := crossoverParams(a, b, rng)
		switch child["style"] {
		case "modern":
			fromA++
		case "classic":
			fromB++
		default:
			t.Fatalf("unexpected value %v", child["style"])
		}
	}

	// Roughly 50/50; both sides must appear.
	assert.Greater(t, fromA, 50)
	assert.Greater(t, fromB, 50)
}

func TestCrossoverDoesNotMutateParents(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := map[string]interface{}{"x": 1, "y": 2}
	b := map[string]interface{}{"x": 3, "z": 4}

	_ = crossoverParams(a, b, rng)

	assert.Equal(t, map[string]interface{}{"x": 1, "y": 2}, a)
	assert.Equal(t, map[string]interface{}{"x": 3, "z": 4}, b)
}

func TestCrossoverDeterministic(t *testing.T) {
	a := map[string]interface{}{"x": 1, "y": 2, "z": 3}
	b := map[string]interface{}{"x": 4, "y": 5, "w": 6}

	rngA := rand.New(rand.NewSource(9))
	rngB := rand.New(rand.NewSource(9))
	for i := 0; i < 50; i++ {
		assert.Equal(t, crossoverParams(a, b, rngA), crossoverParams(a, b, rngB))
	}
}

package evolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusActive.Terminal())
	assert.False(t, StatusPaused.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusAbandoned.Terminal())
}

func TestGenerationRecomputeStats(t *testing.T) {
	gen := &Generation{Genomes: []*Genome{
		{Fitness: 20},
		{Fitness: 100},
		{Fitness: 60},
	}}
	gen.recomputeStats()

	assert.Equal(t, 60.0, gen.AvgFitness)
	assert.Equal(t, 100.0, gen.BestFitness)
}

func TestGenerationRecomputeStatsEmpty(t *testing.T) {
	gen := &Generation{}
	gen.recomputeStats()
	assert.Equal(t, 0.0, gen.AvgFitness)
	assert.Equal(t, 0.0, gen.BestFitness)
}

func TestPromoteBestKeepsHighWaterMark(t *testing.T) {
	session := &Session{}
	g1 := &Genome{ID: "g1", Fitness: 60, Params: map[string]interface{}{"a": 1}}
	session.promoteBest(g1)
	require.NotNil(t, session.BestGenome)
	assert.Equal(t, "g1", session.BestGenome.ID)

	// A lower-fitness genome never demotes the best.
	session.promoteBest(&Genome{ID: "g2", Fitness: 40})
	assert.Equal(t, "g1", session.BestGenome.ID)

	// The best is a copy: re-rating the live genome leaves it untouched.
	g1.Fitness = 10
	assert.Equal(t, 60.0, session.BestGenome.Fitness)

	session.promoteBest(&Genome{ID: "g3", Fitness: 80})
	assert.Equal(t, "g3", session.BestGenome.ID)
}

func TestGenomeClone(t *testing.T) {
	g := &Genome{
		ID:        "g1",
		Params:    map[string]interface{}{"a": 1},
		ParentIDs: []string{"p1", "p2"},
		Mutations: []Mutation{{Parameter: "a", FromValue: 0, ToValue: 1, Type: mutationTypeRandom}},
		Fitness:   70,
	}
	c := g.clone()

	assert.Equal(t, g, c)

	c.Params["a"] = 2
	c.ParentIDs[0] = "px"
	assert.Equal(t, 1, g.Params["a"])
	assert.Equal(t, "p1", g.ParentIDs[0])
}

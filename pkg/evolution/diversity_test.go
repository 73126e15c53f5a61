package evolution

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func genomeWithParams(params map[string]interface{}) *Genome {
	return &Genome{Params: params}
}

func TestDiversityIdenticalGenomesIsZero(t *testing.T) {
	genomes := []*Genome{
		genomeWithParams(map[string]interface{}{"a": 1, "b": "x"}),
		genomeWithParams(map[string]interface{}{"a": 1, "b": "x"}),
		genomeWithParams(map[string]interface{}{"a": 1, "b": "x"}),
	}
	assert.Equal(t, 0.0, diversityScore(genomes))
}

func TestDiversitySmallPopulations(t *testing.T) {
	assert.Equal(t, 0.0, diversityScore(nil))
	assert.Equal(t, 0.0, diversityScore([]*Genome{genomeWithParams(map[string]interface{}{"a": 1})}))
}

func TestDiversityScaling(t *testing.T) {
	// Two genomes differing in exactly one key: mean difference 1 → score 20.
	genomes := []*Genome{
		genomeWithParams(map[string]interface{}{"a": 1, "b": 2}),
		genomeWithParams(map[string]interface{}{"a": 1, "b": 3}),
	}
	assert.Equal(t, 20.0, diversityScore(genomes))
}

func TestDiversityCappedAtHundred(t *testing.T) {
	// Disjoint key sets of size 4: every pair differs in 8 keys → raw 160.
	genomes := []*Genome{
		genomeWithParams(map[string]interface{}{"a": 1, "b": 2, "c": 3, "d": 4}),
		genomeWithParams(map[string]interface{}{"e": 1, "f": 2, "g": 3, "h": 4}),
	}
	assert.Equal(t, 100.0, diversityScore(genomes))
}

func TestDiversityBounds(t *testing.T) {
	// Random-ish populations always land in [0, 100].
	for n := 2; n <= 6; n++ {
		genomes := make([]*Genome, n)
		for i := range genomes {
			genomes[i] = genomeWithParams(map[string]interface{}{
				"a": i,
				"b": fmt.Sprintf("v%d", i%2),
				"c": "shared",
			})
		}
		score := diversityScore(genomes)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}

func TestDifferenceCountKeyUnion(t *testing.T) {
	a := map[string]interface{}{"x": 1, "y": 2}
	b := map[string]interface{}{"y": 2, "z": 3}

	// x missing from b, z missing from a, y equal.
	assert.Equal(t, 2, differenceCount(a, b))
}

func TestDifferenceCountSerializedComparison(t *testing.T) {
	// int 1 and float64 1 render identically, so they count as equal. This
	// keeps diversity stable across a JSON persistence round trip.
	a := map[string]interface{}{"x": 1}
	b := map[string]interface{}{"x": float64(1)}
	assert.Equal(t, 0, differenceCount(a, b))
}

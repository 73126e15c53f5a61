package evolution

import (
	"fmt"
)

// diversityScore measures how different the genomes of one generation are
// from each other: for every unique pair, count the parameter keys (over the
// union of both key sets) whose serialized values differ, then scale the mean
// count by DiversityScale, capped at 100. A monitoring signal only; it feeds
// no selection decision.
func diversityScore(genomes []*Genome) float64 {
	if len(genomes) < 2 {
		return 0
	}

	totalDiff := 0
	pairs := 0
	for i := 0; i < len(genomes); i++ {
		for j := i + 1; j < len(genomes); j++ {
			totalDiff += differenceCount(genomes[i].Params, genomes[j].Params)
			pairs++
		}
	}

	score := float64(totalDiff) / float64(pairs) * DiversityScale
	if score > 100 {
		return 100
	}
	return score
}

// differenceCount counts keys whose serialized values differ between two
// parameter maps, over the union of their key sets. A key missing from one
// side counts as a difference.
func differenceCount(a, b map[string]interface{}) int {
	diff := 0
	for k, av := range a {
		bv, ok := b[k]
		if !ok || serializeValue(av) != serializeValue(bv) {
			diff++
		}
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			diff++
		}
	}
	return diff
}

// serializeValue renders a parameter value for comparison. Values that render
// identically are treated as equal regardless of underlying type, which keeps
// the metric stable across a JSON persistence round trip.
func serializeValue(v interface{}) string {
	return fmt.Sprintf("%v", v)
}
